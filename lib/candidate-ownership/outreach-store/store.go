package outreachstore

import (
	dbmodels "recruiting-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.CandidateOutreach) (id string, err error)
	GetByID(id string) (*dbmodels.CandidateOutreach, error)
	Update(id string, updMap map[string]any) error
	ListByCandidate(candidateID string) ([]dbmodels.CandidateOutreach, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.CandidateOutreach) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.CandidateOutreach, error) {
	rec := dbmodels.CandidateOutreach{}
	err := i.db.
		Model(&dbmodels.CandidateOutreach{}).
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]any) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.CandidateOutreach{}).
		Where("id = ?", id).
		Updates(updMap)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return errors.New("outreach record not found")
	}
	return nil
}

func (i impl) ListByCandidate(candidateID string) ([]dbmodels.CandidateOutreach, error) {
	list := []dbmodels.CandidateOutreach{}
	err := i.db.
		Where("candidate_id = ?", candidateID).
		Order("sent_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
