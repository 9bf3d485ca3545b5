package dbmodels

import (
	"recruiting-backend/models"
	"time"
)

// DomainEvent is the outbox record of a published event.
type DomainEvent struct {
	BaseModel
	EventType     models.EventType `gorm:"type:varchar(100);index"`
	SourceService string           `gorm:"type:varchar(100)"`
	Payload       JSONMap          `gorm:"type:jsonb"`
	SchemaValid   bool
	Delivered     bool `gorm:"index"`
	DeliveredAt   *time.Time
	Attempts      int
}
