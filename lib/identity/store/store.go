package identitystore

import (
	dbmodels "recruiting-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	GetRecruiterByUserID(userID string) (*dbmodels.Recruiter, error)
	GetRecruiterByID(id string) (*dbmodels.Recruiter, error)
	GetCompanyMember(userID string) (*dbmodels.CompanyMember, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetRecruiterByUserID(userID string) (*dbmodels.Recruiter, error) {
	rec := dbmodels.Recruiter{}
	err := i.db.Where("user_id = ?", userID).First(&rec).Error
	return notFoundAsNil(&rec, err)
}

func (i impl) GetRecruiterByID(id string) (*dbmodels.Recruiter, error) {
	rec := dbmodels.Recruiter{}
	err := i.db.Where("id = ?", id).First(&rec).Error
	return notFoundAsNil(&rec, err)
}

func (i impl) GetCompanyMember(userID string) (*dbmodels.CompanyMember, error) {
	rec := dbmodels.CompanyMember{}
	err := i.db.Where("user_id = ?", userID).First(&rec).Error
	return notFoundAsNil(&rec, err)
}

func notFoundAsNil[T any](rec *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}
