package models

type EventType string

const (
	EventApplicationCreated           EventType = "application.created"
	EventApplicationRecruiterProposed EventType = "application.recruiter_proposed"
	EventApplicationCandidateApproved EventType = "application.candidate_approved"
	EventApplicationCandidateDeclined EventType = "application.candidate_declined"
	EventApplicationStageChanged      EventType = "application.stage_changed"
	EventApplicationWithdrawn         EventType = "application.withdrawn"
	EventApplicationAccepted          EventType = "application.accepted"
	EventApplicationSubmitted         EventType = "application.submitted_to_company"
	EventApplicationPrescreen         EventType = "application.prescreen_requested"
	EventCandidateSourced             EventType = "candidate.sourced"
	EventCandidateOutreachSent        EventType = "candidate.outreach_sent"
	EventPlacementStateChanged        EventType = "placement.state_changed"
	EventPlacementActivated           EventType = "placement.activated"
	EventPlacementCompleted           EventType = "placement.completed"
	EventPlacementFailed              EventType = "placement.failed"
	EventPlacementReplacement         EventType = "placement.replacement_requested"
	EventCollaborationAccepted        EventType = "collaboration.accepted"
)

// EventPayload is the body of a domain event, carrying ids and the fields consumers need without re-querying.
type EventPayload map[string]any
