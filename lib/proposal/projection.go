package proposal

import (
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	"time"
)

// View is the pending-action projection of one application for one caller.
type View struct {
	ApplicationID     string                  `json:"application_id"`
	CandidateID       string                  `json:"candidate_id"`
	JobID             string                  `json:"job_id"`
	CompanyID         string                  `json:"company_id"`
	RecruiterID       string                  `json:"recruiter_id,omitempty"`
	Stage             models.ApplicationStage `json:"stage"`
	Type              models.ProposalType     `json:"type"`
	PendingActionBy   models.ActionParty      `json:"pending_action_by"`
	CanCurrentUserAct bool                    `json:"can_current_user_act"`
	DueAt             *time.Time              `json:"due_at,omitempty"`
	IsOverdue         bool                    `json:"is_overdue"`
	IsUrgent          bool                    `json:"is_urgent"`
	Display           models.ProposalDisplay  `json:"display"`
	UpdatedAt         time.Time               `json:"updated_at"`

	participant bool
}

// IsActionable - the caller is the party the application waits for.
func (v View) IsActionable() bool {
	return v.CanCurrentUserAct
}

// IsWaiting - the caller takes part but another party has to move.
func (v View) IsWaiting() bool {
	return v.participant &&
		!v.CanCurrentUserAct &&
		v.PendingActionBy != models.PartyNone &&
		!v.Stage.IsTerminal()
}

func TypeOf(app dbmodels.Application) models.ProposalType {
	switch app.Stage {
	case models.StageRecruiterProposed:
		return models.ProposalJobOpportunity
	case models.StageDraft:
		return models.ProposalDraft
	case models.StageAIReview:
		return models.ProposalAIReview
	case models.StageScreen:
		return models.ProposalRecruiterReview
	case models.StageSubmitted:
		if app.HasRecruiter() {
			return models.ProposalRepresented
		}
		return models.ProposalDirectApplication
	case models.StageInterview:
		return models.ProposalInterview
	case models.StageOffer:
		return models.ProposalOffer
	}
	return models.ProposalClosed
}

// Project derives the view; it never changes app.
func Project(app dbmodels.Application, actor models.Actor, now time.Time, urgentWithin time.Duration) View {
	proposalType := TypeOf(app)
	pending := app.Stage.PendingParty()
	participant := app.IsParticipant(actor)
	view := View{
		ApplicationID:     app.ID,
		CandidateID:       app.CandidateID,
		JobID:             app.JobID,
		CompanyID:         app.CompanyID,
		RecruiterID:       app.GetRecruiterID(),
		Stage:             app.Stage,
		Type:              proposalType,
		PendingActionBy:   pending,
		CanCurrentUserAct: participant && pending != models.PartyNone && pending == actor.Role.Party(),
		Display:           models.Display(app.Stage, proposalType),
		UpdatedAt:         app.UpdatedAt,
		participant:       participant,
	}
	if app.ActionDueAt != nil && !app.Stage.IsTerminal() {
		due := *app.ActionDueAt
		view.DueAt = &due
		view.IsOverdue = due.Before(now)
		view.IsUrgent = !view.IsOverdue && !due.After(now.Add(urgentWithin))
	}
	return view
}
