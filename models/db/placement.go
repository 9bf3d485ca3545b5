package dbmodels

import (
	"recruiting-backend/models"
	"time"
)

type Placement struct {
	BaseModel
	ApplicationID          string                `gorm:"type:varchar(36);uniqueIndex"`
	JobID                  string                `gorm:"type:varchar(36);index"`
	CandidateID            string                `gorm:"type:varchar(36);index"`
	CompanyID              string                `gorm:"type:varchar(36);index"`
	RecruiterID            *string               `gorm:"type:varchar(36);index"`
	State                  models.PlacementState `gorm:"type:varchar(50);index"`
	StartDate              *time.Time
	EndDate                *time.Time
	GuaranteeDays          int
	GuaranteeExpiresAt     *time.Time `gorm:"index"`
	FailedAt               *time.Time
	FailureReason          string
	ReplacementPlacementID *string `gorm:"type:varchar(36)"` // failed placement this one replaces
	FeeAmount              float64
}

// IsWithinGuarantee is evaluated against the given time on every call.
func (p Placement) IsWithinGuarantee(now time.Time) bool {
	return p.GuaranteeExpiresAt != nil && p.GuaranteeExpiresAt.After(now)
}

type PlacementCollaborator struct {
	BaseModel
	PlacementID     string                  `gorm:"type:varchar(36);index"`
	RecruiterID     string                  `gorm:"type:varchar(36);index"`
	Role            models.CollaboratorRole `gorm:"type:varchar(50)"`
	SplitPercentage float64
	SplitAmount     float64
	Notes           string
}

type PlacementFilter struct {
	State       models.PlacementState
	CompanyID   string
	RecruiterID string
}
