package dbmodels

import (
	"recruiting-backend/models"
	"time"
)

type Application struct {
	BaseModel
	CandidateID       string                  `gorm:"type:varchar(36);index:idx_candidate_job"`
	JobID             string                  `gorm:"type:varchar(36);index:idx_candidate_job"`
	CompanyID         string                  `gorm:"type:varchar(36);index"`
	RecruiterID       *string                 `gorm:"type:varchar(36);index"`
	Stage             models.ApplicationStage `gorm:"type:varchar(50);index"`
	AcceptedByCompany bool
	Notes             string // candidate notes or the recruiter pitch
	RecruiterNotes    string
	AIReviewed        bool
	AIScore           *float64
	DeclineReason     string `gorm:"type:varchar(255)"`
	DeclineNotes      string
	ActionDueAt       *time.Time // deadline for the pending party
	SubmittedAt       *time.Time
	HiredAt           *time.Time
}

func (a Application) HasRecruiter() bool {
	return a.RecruiterID != nil && *a.RecruiterID != ""
}

func (a Application) GetRecruiterID() string {
	if a.RecruiterID == nil {
		return ""
	}
	return *a.RecruiterID
}

// IsParticipant reports whether the actor is a party of the application.
func (a Application) IsParticipant(actor models.Actor) bool {
	switch actor.Role {
	case models.CandidateRole:
		return actor.EntityID == a.CandidateID
	case models.RecruiterRole:
		return a.HasRecruiter() && actor.EntityID == *a.RecruiterID
	case models.CompanyRole:
		return actor.EntityID == a.CompanyID
	}
	return actor.IsAdmin()
}

type ApplicationFilter struct {
	CandidateID string
	RecruiterID string
	CompanyID   string
	Stages      []models.ApplicationStage
	Limit       int
}

type AuditLog struct {
	BaseModel
	ApplicationID string          `gorm:"type:varchar(36);index"`
	Action        string          `gorm:"type:varchar(100)"`
	ActorUserID   string          `gorm:"type:varchar(36)"`
	ActorRole     models.UserRole `gorm:"type:varchar(50)"`
	OldValue      JSONMap         `gorm:"type:jsonb"`
	NewValue      JSONMap         `gorm:"type:jsonb"`
	Metadata      JSONMap         `gorm:"type:jsonb"`
}

const (
	AuditCreated            = "created"
	AuditRecruiterProposed  = "recruiter_proposed"
	AuditCandidateApproved  = "candidate_approved"
	AuditCandidateDeclined  = "candidate_declined"
	AuditDraftCompleted     = "draft_completed"
	AuditAIReviewCompleted  = "ai_review_completed"
	AuditSubmittedToCompany = "submitted_to_company"
	AuditStageChanged       = "stage_changed"
	AuditAccepted           = "accepted"
	AuditWithdrawn          = "withdrawn"
	AuditPrescreenRequested = "prescreen_requested"
)

// OldStage and NewStage read the stage snapshot of an audit entry, empty when absent.
func (a AuditLog) OldStage() models.ApplicationStage {
	return stageFromSnapshot(a.OldValue)
}

func (a AuditLog) NewStage() models.ApplicationStage {
	return stageFromSnapshot(a.NewValue)
}

func stageFromSnapshot(m JSONMap) models.ApplicationStage {
	if m == nil {
		return ""
	}
	switch v := m["stage"].(type) {
	case string:
		return models.ApplicationStage(v)
	case models.ApplicationStage:
		return v
	}
	return ""
}
