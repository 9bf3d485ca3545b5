package dbmodels

import "recruiting-backend/models"

type Job struct {
	BaseModel
	CompanyID string           `gorm:"type:varchar(36);index"`
	Title     string           `gorm:"type:varchar(255)"`
	Status    models.JobStatus `gorm:"type:varchar(50)"`
}

type CompanyMember struct {
	BaseModel
	CompanyID string `gorm:"type:varchar(36);index"`
	UserID    string `gorm:"type:varchar(36);uniqueIndex"`
}
