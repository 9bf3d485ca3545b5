package collaboration

import (
	apperrors "recruiting-backend/lib/utils/app-errors"
	"recruiting-backend/lib/utils/helpers"
	"recruiting-backend/models"
)

type RecommendedSplit struct {
	Role            models.CollaboratorRole `json:"role"`
	Weight          float64                 `json:"weight"`
	SplitPercentage float64                 `json:"split_percentage"`
	SplitAmount     float64                 `json:"split_amount"`
}

// CalculateRecommendedSplits divides totalShare across roles proportionally to their weights.
// weights overrides the defaults per role; a role may appear more than once.
func CalculateRecommendedSplits(totalShare float64, roles []models.CollaboratorRole, defaults, weights map[models.CollaboratorRole]float64) ([]RecommendedSplit, error) {
	if len(roles) == 0 {
		return nil, apperrors.BusinessRule("at least one role is required")
	}
	if totalShare < 0 {
		return nil, apperrors.BusinessRule("total share cannot be negative")
	}
	resolved := make([]float64, len(roles))
	sum := 0.0
	for idx, role := range roles {
		if !role.IsValid() {
			return nil, apperrors.BusinessRule("unknown collaborator role %v", role)
		}
		weight, ok := weights[role]
		if !ok {
			weight = defaults[role]
		}
		if weight < 0 {
			return nil, apperrors.BusinessRule("weight of %v cannot be negative", role)
		}
		resolved[idx] = weight
		sum += weight
	}
	if sum == 0 {
		return nil, apperrors.BusinessRule("role weights sum to zero")
	}
	result := make([]RecommendedSplit, 0, len(roles))
	for idx, role := range roles {
		weight := resolved[idx]
		result = append(result, RecommendedSplit{
			Role:            role,
			Weight:          weight,
			SplitPercentage: helpers.Round2(weight / sum * 100),
			SplitAmount:     helpers.Round2(totalShare * weight / sum),
		})
	}
	return result, nil
}
