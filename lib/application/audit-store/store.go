package auditstore

import (
	dbmodels "recruiting-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	ListByApplication(applicationID string) ([]dbmodels.AuditLog, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) ListByApplication(applicationID string) ([]dbmodels.AuditLog, error) {
	list := []dbmodels.AuditLog{}
	err := i.db.
		Model(&dbmodels.AuditLog{}).
		Where("application_id = ?", applicationID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
