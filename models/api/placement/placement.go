package placementapimodels

import (
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

const dateLayout = "2006-01-02"

type DateData struct {
	Date string `json:"date"` // YYYY-MM-DD
}

func (d DateData) Parse() (time.Time, error) {
	if d.Date == "" {
		return time.Time{}, errors.New("date is required")
	}
	parsed, err := time.Parse(dateLayout, d.Date)
	if err != nil {
		return time.Time{}, errors.Errorf("date must be in %v format", dateLayout)
	}
	return parsed, nil
}

type FailData struct {
	Reason string `json:"reason"`
}

func (f FailData) Validate() error {
	if f.Reason == "" {
		return errors.New("reason is required")
	}
	return nil
}

type StateChangeData struct {
	State  models.PlacementState `json:"state"`
	Reason string                `json:"reason"`
}

func (s StateChangeData) Validate() error {
	if !s.State.IsValid() {
		return errors.Errorf("unknown placement state %q", s.State)
	}
	return nil
}

type LinkReplacementData struct {
	ReplacementPlacementID string `json:"replacement_placement_id"`
}

func (l LinkReplacementData) Validate() error {
	if l.ReplacementPlacementID == "" {
		return errors.New("replacement_placement_id is required")
	}
	return nil
}

type ListFilter struct {
	State       models.PlacementState `json:"state"`
	CompanyID   string                `json:"company_id"`
	RecruiterID string                `json:"recruiter_id"`
}

func (f ListFilter) Validate() error {
	if f.State != "" && !f.State.IsValid() {
		return errors.Errorf("unknown placement state %q", f.State)
	}
	return nil
}

func (f ListFilter) ToFilter() dbmodels.PlacementFilter {
	return dbmodels.PlacementFilter{
		State:       f.State,
		CompanyID:   f.CompanyID,
		RecruiterID: f.RecruiterID,
	}
}

type PlacementView struct {
	ID                     string                `json:"id"`
	ApplicationID          string                `json:"application_id"`
	JobID                  string                `json:"job_id"`
	CandidateID            string                `json:"candidate_id"`
	CompanyID              string                `json:"company_id"`
	RecruiterID            *string               `json:"recruiter_id,omitempty"`
	State                  models.PlacementState `json:"state"`
	StartDate              *time.Time            `json:"start_date,omitempty"`
	EndDate                *time.Time            `json:"end_date,omitempty"`
	GuaranteeDays          int                   `json:"guarantee_days"`
	GuaranteeExpiresAt     *time.Time            `json:"guarantee_expires_at,omitempty"`
	IsWithinGuarantee      bool                  `json:"is_within_guarantee"`
	FailedAt               *time.Time            `json:"failed_at,omitempty"`
	FailureReason          string                `json:"failure_reason,omitempty"`
	ReplacementPlacementID *string               `json:"replacement_placement_id,omitempty"`
	FeeAmount              float64               `json:"fee_amount"`
}

func PlacementConvert(rec dbmodels.Placement, now time.Time) PlacementView {
	return PlacementView{
		ID:                     rec.ID,
		ApplicationID:          rec.ApplicationID,
		JobID:                  rec.JobID,
		CandidateID:            rec.CandidateID,
		CompanyID:              rec.CompanyID,
		RecruiterID:            rec.RecruiterID,
		State:                  rec.State,
		StartDate:              rec.StartDate,
		EndDate:                rec.EndDate,
		GuaranteeDays:          rec.GuaranteeDays,
		GuaranteeExpiresAt:     rec.GuaranteeExpiresAt,
		IsWithinGuarantee:      rec.IsWithinGuarantee(now),
		FailedAt:               rec.FailedAt,
		FailureReason:          rec.FailureReason,
		ReplacementPlacementID: rec.ReplacementPlacementID,
		FeeAmount:              rec.FeeAmount,
	}
}

func PlacementListConvert(list []dbmodels.Placement, now time.Time) []PlacementView {
	result := make([]PlacementView, 0, len(list))
	for _, rec := range list {
		result = append(result, PlacementConvert(rec, now))
	}
	return result
}
