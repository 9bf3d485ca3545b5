package jobstore

import (
	dbmodels "recruiting-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	GetByID(id string) (*dbmodels.Job, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(id string) (*dbmodels.Job, error) {
	rec := dbmodels.Job{}
	err := i.db.
		Model(&dbmodels.Job{}).
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
