package applicationapimodels

import (
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

type SubmitData struct {
	CandidateID string `json:"candidate_id"` // taken from the caller for candidates
	JobID       string `json:"job_id"`
	Notes       string `json:"notes"`
}

func (s SubmitData) Validate() error {
	if s.JobID == "" {
		return errors.New("job_id is required")
	}
	return nil
}

type ProposeData struct {
	CandidateID string `json:"candidate_id"`
	JobID       string `json:"job_id"`
	Pitch       string `json:"pitch"`
}

func (p ProposeData) Validate() error {
	if p.CandidateID == "" {
		return errors.New("candidate_id is required")
	}
	if p.JobID == "" {
		return errors.New("job_id is required")
	}
	return nil
}

type DeclineData struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

func (d DeclineData) Validate() error {
	if d.Reason == "" {
		return errors.New("reason is required")
	}
	return nil
}

type NotesData struct {
	Notes string `json:"notes"`
}

type StageChangeData struct {
	Stage models.ApplicationStage `json:"stage"`
	Notes string                  `json:"notes"`
}

func (s StageChangeData) Validate() error {
	if !s.Stage.IsValid() {
		return errors.Errorf("unknown stage %q", s.Stage)
	}
	return nil
}

type WithdrawData struct {
	Reason string `json:"reason"`
}

type PrescreenData struct {
	RecruiterID *string `json:"recruiter_id"` // empty keeps the recruiter unassigned
}

type AIReviewData struct {
	Score *float64 `json:"score"`
}

func (a AIReviewData) Validate() error {
	if a.Score != nil && (*a.Score < 0 || *a.Score > 100) {
		return errors.New("score must be within 0..100")
	}
	return nil
}

type ApplicationView struct {
	ID                string                  `json:"id"`
	CandidateID       string                  `json:"candidate_id"`
	JobID             string                  `json:"job_id"`
	CompanyID         string                  `json:"company_id"`
	RecruiterID       *string                 `json:"recruiter_id,omitempty"`
	Stage             models.ApplicationStage `json:"stage"`
	AcceptedByCompany bool                    `json:"accepted_by_company"`
	Notes             string                  `json:"notes,omitempty"`
	RecruiterNotes    string                  `json:"recruiter_notes,omitempty"`
	AIReviewed        bool                    `json:"ai_reviewed"`
	AIScore           *float64                `json:"ai_score,omitempty"`
	DeclineReason     string                  `json:"decline_reason,omitempty"`
	ActionDueAt       *time.Time              `json:"action_due_at,omitempty"`
	SubmittedAt       *time.Time              `json:"submitted_at,omitempty"`
	HiredAt           *time.Time              `json:"hired_at,omitempty"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

func ApplicationConvert(rec dbmodels.Application) ApplicationView {
	return ApplicationView{
		ID:                rec.ID,
		CandidateID:       rec.CandidateID,
		JobID:             rec.JobID,
		CompanyID:         rec.CompanyID,
		RecruiterID:       rec.RecruiterID,
		Stage:             rec.Stage,
		AcceptedByCompany: rec.AcceptedByCompany,
		Notes:             rec.Notes,
		RecruiterNotes:    rec.RecruiterNotes,
		AIReviewed:        rec.AIReviewed,
		AIScore:           rec.AIScore,
		DeclineReason:     rec.DeclineReason,
		ActionDueAt:       rec.ActionDueAt,
		SubmittedAt:       rec.SubmittedAt,
		HiredAt:           rec.HiredAt,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
}

type AuditView struct {
	ID          string          `json:"id"`
	Action      string          `json:"action"`
	ActorUserID string          `json:"actor_user_id"`
	ActorRole   models.UserRole `json:"actor_role"`
	OldValue    map[string]any  `json:"old_value,omitempty"`
	NewValue    map[string]any  `json:"new_value,omitempty"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func AuditConvert(list []dbmodels.AuditLog) []AuditView {
	result := make([]AuditView, 0, len(list))
	for _, rec := range list {
		result = append(result, AuditView{
			ID:          rec.ID,
			Action:      rec.Action,
			ActorUserID: rec.ActorUserID,
			ActorRole:   rec.ActorRole,
			OldValue:    rec.OldValue,
			NewValue:    rec.NewValue,
			Metadata:    rec.Metadata,
			CreatedAt:   rec.CreatedAt,
		})
	}
	return result
}
