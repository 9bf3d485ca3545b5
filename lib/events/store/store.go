package eventstore

import (
	dbmodels "recruiting-backend/models/db"
	"time"

	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.DomainEvent) (id string, err error)
	ListUndelivered(limit, maxAttempts int) ([]dbmodels.DomainEvent, error)
	MarkDelivered(ids []string, at time.Time) error
	IncAttempts(ids []string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.DomainEvent) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListUndelivered(limit, maxAttempts int) ([]dbmodels.DomainEvent, error) {
	list := []dbmodels.DomainEvent{}
	tx := i.db.
		Model(&dbmodels.DomainEvent{}).
		Where("delivered = ?", false)
	if maxAttempts > 0 {
		tx = tx.Where("attempts < ?", maxAttempts)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Order("created_at").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) MarkDelivered(ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.DomainEvent{}).
		Where("id in ?", ids).
		Updates(map[string]any{
			"delivered":    true,
			"delivered_at": at,
		}).
		Error
}

func (i impl) IncAttempts(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.DomainEvent{}).
		Where("id in ?", ids).
		Update("attempts", gorm.Expr("attempts + 1")).
		Error
}
