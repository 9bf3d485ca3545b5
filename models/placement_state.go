package models

type PlacementState string

const (
	PlacementHired     PlacementState = "hired"
	PlacementActive    PlacementState = "active"
	PlacementCompleted PlacementState = "completed"
	PlacementFailed    PlacementState = "failed"
)

var placementTransitions = map[PlacementState][]PlacementState{
	PlacementHired:  {PlacementActive, PlacementFailed},
	PlacementActive: {PlacementCompleted, PlacementFailed},
}

func (s PlacementState) IsValid() bool {
	switch s {
	case PlacementHired, PlacementActive, PlacementCompleted, PlacementFailed:
		return true
	}
	return false
}

func (s PlacementState) IsTerminal() bool {
	return s == PlacementCompleted || s == PlacementFailed
}

func (s PlacementState) AllowChange(to PlacementState) bool {
	for _, next := range placementTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
