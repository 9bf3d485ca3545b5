package models

import "time"

const (
	DefaultProtectionWindowDays = 365
	DefaultGuaranteeDays        = 90
	DefaultProposalResponseDays = 7
	DefaultUrgentWithin         = 24 * time.Hour
)

var DefaultRoleWeights = map[CollaboratorRole]float64{
	CollaboratorSourcer:   40,
	CollaboratorSubmitter: 30,
	CollaboratorCloser:    20,
	CollaboratorSupport:   10,
}

// WorkflowSettings is handed to the workflow components at construction.
type WorkflowSettings struct {
	ProtectionWindowDays int
	GuaranteeDays        int
	ProposalResponseDays int
	UrgentWithin         time.Duration
	RoleWeights          map[CollaboratorRole]float64
}

// WithDefaults fills zero values with the documented defaults.
func (s WorkflowSettings) WithDefaults() WorkflowSettings {
	if s.ProtectionWindowDays <= 0 {
		s.ProtectionWindowDays = DefaultProtectionWindowDays
	}
	if s.GuaranteeDays <= 0 {
		s.GuaranteeDays = DefaultGuaranteeDays
	}
	if s.ProposalResponseDays <= 0 {
		s.ProposalResponseDays = DefaultProposalResponseDays
	}
	if s.UrgentWithin <= 0 {
		s.UrgentWithin = DefaultUrgentWithin
	}
	weights := make(map[CollaboratorRole]float64, len(DefaultRoleWeights))
	for role, weight := range DefaultRoleWeights {
		weights[role] = weight
	}
	for role, weight := range s.RoleWeights {
		if weight > 0 {
			weights[role] = weight
		}
	}
	s.RoleWeights = weights
	return s
}
