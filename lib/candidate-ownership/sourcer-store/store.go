package sourcerstore

import (
	apperrors "recruiting-backend/lib/utils/app-errors"
	dbmodels "recruiting-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	GetLatest(candidateID string) (*dbmodels.CandidateSourcer, error)
	// CreateIfUnprotected stores rec unless another sourcer is still protected at now.
	// The same sourcer gets its current record back with created=false.
	CreateIfUnprotected(rec dbmodels.CandidateSourcer, now time.Time) (current *dbmodels.CandidateSourcer, created bool, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetLatest(candidateID string) (*dbmodels.CandidateSourcer, error) {
	return latest(i.db, candidateID)
}

func latest(tx *gorm.DB, candidateID string) (*dbmodels.CandidateSourcer, error) {
	rec := dbmodels.CandidateSourcer{}
	err := tx.
		Model(&dbmodels.CandidateSourcer{}).
		Where("candidate_id = ?", candidateID).
		Order("sourced_at desc").
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

func (i impl) CreateIfUnprotected(rec dbmodels.CandidateSourcer, now time.Time) (current *dbmodels.CandidateSourcer, created bool, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		// row lock on the candidate keeps first-sourcer-wins under concurrent calls
		var candidate dbmodels.Candidate
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", rec.CandidateID).
			First(&candidate).
			Error
		if err != nil {
			return err
		}
		existing, err := latest(tx, rec.CandidateID)
		if err != nil {
			return err
		}
		if existing != nil && existing.IsProtected(now) {
			current = existing
			if existing.SourcerID != rec.SourcerID {
				return apperrors.ErrProtected
			}
			return nil
		}
		if err = tx.Create(&rec).Error; err != nil {
			return err
		}
		err = tx.
			Model(&dbmodels.Candidate{}).
			Where("id = ?", rec.CandidateID).
			Update("sourcer_id", rec.SourcerID).
			Error
		if err != nil {
			return err
		}
		current = &rec
		created = true
		return nil
	})
	if err != nil {
		return current, false, err
	}
	return current, created, nil
}
