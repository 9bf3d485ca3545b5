package placementapimodels

import (
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"

	"github.com/pkg/errors"
)

type CollaboratorData struct {
	RecruiterID     string                  `json:"recruiter_id"`
	Role            models.CollaboratorRole `json:"role"`
	SplitPercentage float64                 `json:"split_percentage"`
	SplitAmount     float64                 `json:"split_amount"`
	Notes           string                  `json:"notes"`
}

func (c CollaboratorData) Validate() error {
	if c.RecruiterID == "" {
		return errors.New("recruiter_id is required")
	}
	if !c.Role.IsValid() {
		return errors.Errorf("unknown collaborator role %q", c.Role)
	}
	if c.SplitPercentage <= 0 || c.SplitPercentage > models.MaxSplitPercentage {
		return errors.New("split_percentage must be within (0, 100]")
	}
	if !models.IsSplitPrecise(c.SplitPercentage) {
		return errors.New("split_percentage allows at most two decimal places")
	}
	if c.SplitAmount < 0 {
		return errors.New("split_amount must not be negative")
	}
	return nil
}

type CollaboratorView struct {
	ID              string                  `json:"id"`
	PlacementID     string                  `json:"placement_id"`
	RecruiterID     string                  `json:"recruiter_id"`
	Role            models.CollaboratorRole `json:"role"`
	SplitPercentage float64                 `json:"split_percentage"`
	SplitAmount     float64                 `json:"split_amount"`
	Notes           string                  `json:"notes,omitempty"`
}

func CollaboratorConvert(rec dbmodels.PlacementCollaborator) CollaboratorView {
	return CollaboratorView{
		ID:              rec.ID,
		PlacementID:     rec.PlacementID,
		RecruiterID:     rec.RecruiterID,
		Role:            rec.Role,
		SplitPercentage: rec.SplitPercentage,
		SplitAmount:     rec.SplitAmount,
		Notes:           rec.Notes,
	}
}

type RecommendedSplitsData struct {
	TotalShare float64                             `json:"total_share"` // fee amount to split
	Roles      []models.CollaboratorRole           `json:"roles"`
	Weights    map[models.CollaboratorRole]float64 `json:"weights"` // overrides the configured weights
}

func (r RecommendedSplitsData) Validate() error {
	if r.TotalShare < 0 {
		return errors.New("total_share must not be negative")
	}
	if len(r.Roles) == 0 {
		return errors.New("roles are required")
	}
	for _, role := range r.Roles {
		if !role.IsValid() {
			return errors.Errorf("unknown collaborator role %q", role)
		}
	}
	return nil
}
