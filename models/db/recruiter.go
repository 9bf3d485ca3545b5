package dbmodels

import (
	"recruiting-backend/models"
	"time"
)

// Recruiter is the local copy of the recruiter directory.
type Recruiter struct {
	BaseModel
	UserID    string `gorm:"type:varchar(36);uniqueIndex"`
	FirstName string `gorm:"type:varchar(255)"`
	LastName  string `gorm:"type:varchar(255)"`
	Email     string `gorm:"type:varchar(255)"`
	Active    bool
}

func (r Recruiter) GetFullName() string {
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}

// RecruiterRelationship is a recruiter's representation agreement with a candidate.
type RecruiterRelationship struct {
	BaseModel
	RecruiterID         string                    `gorm:"type:varchar(36);index"`
	CandidateID         string                    `gorm:"type:varchar(36);index"`
	Status              models.RelationshipStatus `gorm:"type:varchar(50)"`
	RelationshipEndDate *time.Time
}

func (r RecruiterRelationship) IsActive(now time.Time) bool {
	if r.Status != models.RelationshipActive {
		return false
	}
	return r.RelationshipEndDate == nil || r.RelationshipEndDate.After(now)
}
