package models

type ApplicationStage string

const (
	StageRecruiterProposed ApplicationStage = "recruiter_proposed"
	StageDraft             ApplicationStage = "draft"
	StageAIReview          ApplicationStage = "ai_review"
	StageScreen            ApplicationStage = "screen" // recruiter review
	StageSubmitted         ApplicationStage = "submitted"
	StageInterview         ApplicationStage = "interview"
	StageOffer             ApplicationStage = "offer"
	StageHired             ApplicationStage = "hired"
	StageRejected          ApplicationStage = "rejected"
	StageWithdrawn         ApplicationStage = "withdrawn"
)

var stageOrder = map[ApplicationStage]int{
	StageRecruiterProposed: 0,
	StageDraft:             1,
	StageAIReview:          2,
	StageScreen:            3,
	StageSubmitted:         4,
	StageInterview:         5,
	StageOffer:             6,
	StageHired:             7,
}

// strictTransitions covers the submission and recruiter routing part of the graph.
var strictTransitions = map[ApplicationStage][]ApplicationStage{
	StageRecruiterProposed: {StageDraft, StageRejected},
	StageDraft:             {StageAIReview},
	StageAIReview:          {StageScreen, StageSubmitted},
	StageScreen:            {StageSubmitted},
	StageSubmitted:         {StageScreen},
}

// pipelineStages are the company-driven stages where any forward move is accepted.
var pipelineStages = map[ApplicationStage]bool{
	StageSubmitted: true,
	StageInterview: true,
	StageOffer:     true,
	StageHired:     true,
}

func (s ApplicationStage) IsValid() bool {
	_, ok := stageOrder[s]
	return ok || s == StageRejected || s == StageWithdrawn
}

func (s ApplicationStage) IsTerminal() bool {
	return s == StageHired || s == StageRejected || s == StageWithdrawn
}

// IsActive reports whether the application still blocks a new one on the same (candidate, job) pair.
func (s ApplicationStage) IsActive() bool {
	return s != StageRejected && s != StageWithdrawn
}

func (s ApplicationStage) IsPipeline() bool {
	return pipelineStages[s] && !s.IsTerminal()
}

// AllowStrict checks the fixed early-stage transition table.
func (s ApplicationStage) AllowStrict(to ApplicationStage) bool {
	for _, next := range strictTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowPipeline checks a company/recruiter driven move: forward through the pipeline or out to rejected.
func (s ApplicationStage) AllowPipeline(to ApplicationStage) bool {
	if s.IsTerminal() {
		return false
	}
	if to == StageRejected {
		return true
	}
	if !s.IsPipeline() || !pipelineStages[to] {
		return false
	}
	return stageOrder[to] > stageOrder[s]
}

// AllowWithdraw - candidate may pull out of any non terminal stage
func (s ApplicationStage) AllowWithdraw() bool {
	return !s.IsTerminal()
}

// IsLegalTransition is the union of every authority over the stage graph.
func IsLegalTransition(from, to ApplicationStage) bool {
	if from.AllowStrict(to) || from.AllowPipeline(to) {
		return true
	}
	return to == StageWithdrawn && from.AllowWithdraw()
}

// InitialStage is where a directly submitted application starts, and where an AI-reviewed one lands.
func InitialStage(hasRecruiter bool) ApplicationStage {
	if hasRecruiter {
		return StageScreen
	}
	return StageSubmitted
}
