package models

import "math"

type CollaboratorRole string

const (
	CollaboratorSourcer   CollaboratorRole = "sourcer"
	CollaboratorSubmitter CollaboratorRole = "submitter"
	CollaboratorCloser    CollaboratorRole = "closer"
	CollaboratorSupport   CollaboratorRole = "support"
)

func (r CollaboratorRole) IsValid() bool {
	switch r {
	case CollaboratorSourcer, CollaboratorSubmitter, CollaboratorCloser, CollaboratorSupport:
		return true
	}
	return false
}

// MaxSplitPercentage is the ceiling for the sum of all collaborator splits of one placement.
const MaxSplitPercentage = 100.0

// IsSplitPrecise reports whether the percentage has at most two decimal places.
func IsSplitPrecise(percentage float64) bool {
	hundredths := percentage * 100
	return math.Abs(hundredths-math.Round(hundredths)) < 1e-6
}
