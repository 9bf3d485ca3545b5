package relationshipstore

import (
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	"time"

	"gorm.io/gorm"
)

type Provider interface {
	// ListActive returns active, not yet ended representations of the candidate, newest first.
	ListActive(candidateID string, now time.Time) ([]dbmodels.RecruiterRelationship, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) ListActive(candidateID string, now time.Time) ([]dbmodels.RecruiterRelationship, error) {
	list := []dbmodels.RecruiterRelationship{}
	err := i.db.
		Where("candidate_id = ?", candidateID).
		Where("status = ?", models.RelationshipActive).
		Where("relationship_end_date is null or relationship_end_date > ?", now).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
