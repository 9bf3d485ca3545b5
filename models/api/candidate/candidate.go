package candidateapimodels

import (
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

type SourceData struct {
	SourcerType models.SourcerType `json:"sourcer_type"` // recruiter for recruiters, platform for admins
	WindowDays  int                `json:"window_days"`  // 0 takes the configured window
	Notes       string             `json:"notes"`
}

func (s SourceData) Validate() error {
	if s.SourcerType != "" && !s.SourcerType.IsValid() {
		return errors.Errorf("unknown sourcer type %q", s.SourcerType)
	}
	if s.WindowDays < 0 {
		return errors.New("window_days must not be negative")
	}
	return nil
}

type OutreachData struct {
	JobID   *string `json:"job_id"`
	Subject string  `json:"subject"`
	Body    string  `json:"body"`
}

func (o OutreachData) Validate() error {
	if o.Subject == "" {
		return errors.New("subject is required")
	}
	return nil
}

type EngagementData struct {
	Opened       bool `json:"opened"`
	Clicked      bool `json:"clicked"`
	Replied      bool `json:"replied"`
	Unsubscribed bool `json:"unsubscribed"`
	Bounced      bool `json:"bounced"`
}

type SourcerView struct {
	ID                   string             `json:"id"`
	CandidateID          string             `json:"candidate_id"`
	SourcerID            string             `json:"sourcer_id"`
	SourcerType          models.SourcerType `json:"sourcer_type"`
	SourcedAt            time.Time          `json:"sourced_at"`
	ProtectionWindowDays int                `json:"protection_window_days"`
	ProtectionExpiresAt  time.Time          `json:"protection_expires_at"`
	Notes                string             `json:"notes,omitempty"`
}

func SourcerConvert(rec dbmodels.CandidateSourcer) SourcerView {
	return SourcerView{
		ID:                   rec.ID,
		CandidateID:          rec.CandidateID,
		SourcerID:            rec.SourcerID,
		SourcerType:          rec.SourcerType,
		SourcedAt:            rec.SourcedAt,
		ProtectionWindowDays: rec.ProtectionWindowDays,
		ProtectionExpiresAt:  rec.ProtectionExpiresAt,
		Notes:                rec.Notes,
	}
}

type OutreachView struct {
	ID             string     `json:"id"`
	CandidateID    string     `json:"candidate_id"`
	RecruiterID    string     `json:"recruiter_id"`
	JobID          *string    `json:"job_id,omitempty"`
	Subject        string     `json:"subject"`
	SentAt         time.Time  `json:"sent_at"`
	OpenedAt       *time.Time `json:"opened_at,omitempty"`
	ClickedAt      *time.Time `json:"clicked_at,omitempty"`
	RepliedAt      *time.Time `json:"replied_at,omitempty"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
	Bounced        bool       `json:"bounced"`
}

func OutreachConvert(rec dbmodels.CandidateOutreach) OutreachView {
	return OutreachView{
		ID:             rec.ID,
		CandidateID:    rec.CandidateID,
		RecruiterID:    rec.RecruiterID,
		JobID:          rec.JobID,
		Subject:        rec.Subject,
		SentAt:         rec.SentAt,
		OpenedAt:       rec.OpenedAt,
		ClickedAt:      rec.ClickedAt,
		RepliedAt:      rec.RepliedAt,
		UnsubscribedAt: rec.UnsubscribedAt,
		Bounced:        rec.Bounced,
	}
}

type CanWorkWithView struct {
	CandidateID string `json:"candidate_id"`
	RecruiterID string `json:"recruiter_id"`
	Allowed     bool   `json:"allowed"`
}
