package models

type ProposalType string

const (
	ProposalJobOpportunity    ProposalType = "job_opportunity"    // recruiter pitched a job to the candidate
	ProposalDraft             ProposalType = "application_draft"  // candidate still completing the application
	ProposalAIReview          ProposalType = "ai_review"          // waiting for automated scoring
	ProposalRecruiterReview   ProposalType = "recruiter_review"   // recruiter screens before submitting
	ProposalRepresented       ProposalType = "represented"        // submitted to the company through a recruiter
	ProposalDirectApplication ProposalType = "direct_application" // submitted without a recruiter
	ProposalInterview         ProposalType = "interview"
	ProposalOffer             ProposalType = "offer"
	ProposalClosed            ProposalType = "closed"
)

// ActionParty is who has to move an application forward.
type ActionParty string

const (
	PartyCandidate ActionParty = "candidate"
	PartyRecruiter ActionParty = "recruiter"
	PartyCompany   ActionParty = "company"
	PartySystem    ActionParty = "system"
	PartyNone      ActionParty = "none"
)

var stagePendingParty = map[ApplicationStage]ActionParty{
	StageRecruiterProposed: PartyCandidate,
	StageDraft:             PartyCandidate,
	StageAIReview:          PartySystem,
	StageScreen:            PartyRecruiter,
	StageSubmitted:         PartyCompany,
	StageInterview:         PartyCompany,
	StageOffer:             PartyCompany, // the company records hire or rejection, the candidate can only withdraw
	StageHired:             PartyNone,
	StageRejected:          PartyNone,
	StageWithdrawn:         PartyNone,
}

func (s ApplicationStage) PendingParty() ActionParty {
	if party, ok := stagePendingParty[s]; ok {
		return party
	}
	return PartyNone
}

func (r UserRole) Party() ActionParty {
	switch r {
	case CandidateRole:
		return PartyCandidate
	case RecruiterRole:
		return PartyRecruiter
	case CompanyRole:
		return PartyCompany
	}
	return PartyNone
}

type StatusBadge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

type ProposalDisplay struct {
	Badge       StatusBadge `json:"status_badge"`
	ActionLabel string      `json:"action_label"`
	Subtitle    string      `json:"subtitle"`
}

var stageBadges = map[ApplicationStage]StatusBadge{
	StageRecruiterProposed: {Label: "New opportunity", Color: "purple"},
	StageDraft:             {Label: "Draft", Color: "gray"},
	StageAIReview:          {Label: "AI review", Color: "blue"},
	StageScreen:            {Label: "Recruiter review", Color: "blue"},
	StageSubmitted:         {Label: "Submitted", Color: "indigo"},
	StageInterview:         {Label: "Interviewing", Color: "yellow"},
	StageOffer:             {Label: "Offer", Color: "orange"},
	StageHired:             {Label: "Hired", Color: "green"},
	StageRejected:          {Label: "Rejected", Color: "red"},
	StageWithdrawn:         {Label: "Withdrawn", Color: "gray"},
}

var typeActions = map[ProposalType]ProposalDisplay{
	ProposalJobOpportunity:    {ActionLabel: "Review opportunity", Subtitle: "A recruiter thinks this job is a match"},
	ProposalDraft:             {ActionLabel: "Complete application", Subtitle: "Finish your application to submit it"},
	ProposalAIReview:          {ActionLabel: "", Subtitle: "Your application is being reviewed"},
	ProposalRecruiterReview:   {ActionLabel: "Review candidate", Subtitle: "Screen the candidate before submitting"},
	ProposalRepresented:       {ActionLabel: "Review candidate", Subtitle: "Submitted by a recruiter"},
	ProposalDirectApplication: {ActionLabel: "Review application", Subtitle: "Candidate applied directly"},
	ProposalInterview:         {ActionLabel: "Update interview", Subtitle: "Interview in progress"},
	ProposalOffer:             {ActionLabel: "Record offer outcome", Subtitle: "An offer has been extended"},
	ProposalClosed:            {ActionLabel: "", Subtitle: "No further action required"},
}

// Display returns the static UI metadata for the stage/type pair.
func Display(stage ApplicationStage, proposalType ProposalType) ProposalDisplay {
	display := typeActions[proposalType]
	display.Badge = stageBadges[stage]
	return display
}
