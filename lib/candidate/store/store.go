package candidatestore

import (
	dbmodels "recruiting-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	GetByID(id string) (*dbmodels.Candidate, error)
	GetByUserID(userID string) (*dbmodels.Candidate, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(id string) (*dbmodels.Candidate, error) {
	return i.first("id = ?", id)
}

func (i impl) GetByUserID(userID string) (*dbmodels.Candidate, error) {
	return i.first("user_id = ?", userID)
}

func (i impl) first(query string, args ...any) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Model(&dbmodels.Candidate{}).
		Where(query, args...).
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
