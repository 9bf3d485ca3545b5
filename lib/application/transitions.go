package application

import (
	apperrors "recruiting-backend/lib/utils/app-errors"
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// stageChange describes one persisted move of an application.
type stageChange struct {
	action   string
	to       models.ApplicationStage
	updMap   map[string]any
	metadata dbmodels.JSONMap
}

// apply writes the change with a compare-and-update on the current stage and reloads the record.
func (i impl) apply(actor models.Actor, rec *dbmodels.Application, change stageChange) (*dbmodels.Application, error) {
	logger := log.
		WithField("application_id", rec.ID).
		WithField("old_stage", rec.Stage).
		WithField("new_stage", change.to)
	if !models.IsLegalTransition(rec.Stage, change.to) {
		return nil, apperrors.InvalidTransition("cannot move application from %v to %v", rec.Stage, change.to)
	}
	updMap := change.updMap
	if updMap == nil {
		updMap = map[string]any{}
	}
	updMap["stage"] = change.to
	audit := i.newAudit(actor, change.action, rec.Stage, change.to, change.metadata)
	err := i.store.Transition(rec.ID, rec.Stage, updMap, audit)
	if err != nil {
		return nil, i.transitionError(logger, err)
	}
	logger.Info("application stage changed")
	return i.get(rec.ID)
}

func (i impl) transitionError(logger *log.Entry, err error) error {
	if errors.Is(err, apperrors.ErrStaleRecord) {
		logger.Info("application changed by a concurrent request")
		return apperrors.InvalidTransition("application was changed by another request, reload and retry")
	}
	logger.WithError(err).Error("failed to store application transition")
	return err
}

func (i impl) stageChangedEvent(rec *dbmodels.Application, from models.ApplicationStage, actor models.Actor, extra models.EventPayload) {
	payload := models.EventPayload{
		"application_id": rec.ID,
		"candidate_id":   rec.CandidateID,
		"job_id":         rec.JobID,
		"company_id":     rec.CompanyID,
		"old_stage":      string(from),
		"new_stage":      string(rec.Stage),
		"changed_by":     string(actor.Role),
	}
	if rec.HasRecruiter() {
		payload["recruiter_id"] = rec.GetRecruiterID()
	}
	for key, value := range extra {
		payload[key] = value
	}
	i.publish(models.EventApplicationStageChanged, payload)
}

// getForCandidate loads the application and checks the caller is its candidate.
func (i impl) getForCandidate(actor models.Actor, id string, allowAdmin bool) (*dbmodels.Application, error) {
	rec, err := i.get(id)
	if err != nil {
		return nil, err
	}
	if actor.Is(models.CandidateRole, rec.CandidateID) {
		return rec, nil
	}
	if allowAdmin && actor.IsAdmin() {
		return rec, nil
	}
	return nil, apperrors.Forbidden("only the candidate of the application can do this")
}

// getForCompany loads the application and checks the caller is its company or an administrator.
func (i impl) getForCompany(actor models.Actor, id string) (*dbmodels.Application, error) {
	rec, err := i.get(id)
	if err != nil {
		return nil, err
	}
	if actor.Is(models.CompanyRole, rec.CompanyID) || actor.IsAdmin() {
		return rec, nil
	}
	return nil, apperrors.Forbidden("only the hiring company can do this")
}

func (i impl) Approve(actor models.Actor, id string) (*dbmodels.Application, error) {
	rec, err := i.getForCandidate(actor, id, false)
	if err != nil {
		return nil, err
	}
	if rec.Stage != models.StageRecruiterProposed {
		return nil, apperrors.InvalidTransition("application is not a pending proposal")
	}
	from := rec.Stage
	rec, err = i.apply(actor, rec, stageChange{
		action: dbmodels.AuditCandidateApproved,
		to:     models.StageDraft,
		updMap: map[string]any{"action_due_at": nil},
	})
	if err != nil {
		return nil, err
	}
	i.publish(models.EventApplicationCandidateApproved, models.EventPayload{
		"application_id": rec.ID,
		"candidate_id":   rec.CandidateID,
		"job_id":         rec.JobID,
		"recruiter_id":   rec.GetRecruiterID(),
		"old_stage":      string(from),
		"stage":          string(rec.Stage),
	})
	return rec, nil
}

func (i impl) Decline(actor models.Actor, id, reason, notes string) (*dbmodels.Application, error) {
	rec, err := i.getForCandidate(actor, id, false)
	if err != nil {
		return nil, err
	}
	if rec.Stage != models.StageRecruiterProposed {
		return nil, apperrors.InvalidTransition("application is not a pending proposal")
	}
	from := rec.Stage
	rec, err = i.apply(actor, rec, stageChange{
		action: dbmodels.AuditCandidateDeclined,
		to:     models.StageRejected,
		updMap: map[string]any{
			"decline_reason": reason,
			"decline_notes":  notes,
			"action_due_at":  nil,
		},
		metadata: dbmodels.JSONMap{
			"decline_reason": reason,
			"decline_notes":  notes,
		},
	})
	if err != nil {
		return nil, err
	}
	i.publish(models.EventApplicationCandidateDeclined, models.EventPayload{
		"application_id": rec.ID,
		"candidate_id":   rec.CandidateID,
		"job_id":         rec.JobID,
		"recruiter_id":   rec.GetRecruiterID(),
		"old_stage":      string(from),
		"stage":          string(rec.Stage),
		"decline_reason": reason,
	})
	return rec, nil
}

func (i impl) CompleteDraft(actor models.Actor, id, notes string) (*dbmodels.Application, error) {
	rec, err := i.getForCandidate(actor, id, true)
	if err != nil {
		return nil, err
	}
	if !rec.Stage.AllowStrict(models.StageAIReview) {
		return nil, apperrors.InvalidTransition("only a draft can be completed")
	}
	from := rec.Stage
	updMap := map[string]any{}
	if notes != "" {
		updMap["notes"] = notes
	}
	rec, err = i.apply(actor, rec, stageChange{
		action: dbmodels.AuditDraftCompleted,
		to:     models.StageAIReview,
		updMap: updMap,
	})
	if err != nil {
		return nil, err
	}
	i.stageChangedEvent(rec, from, actor, models.EventPayload{"ai_review_requested": true})
	return rec, nil
}

func (i impl) CompleteAIReview(id string, score *float64) (*dbmodels.Application, error) {
	logger := log.WithField("application_id", id)
	rec, err := i.get(id)
	if err != nil {
		return nil, err
	}
	if rec.Stage != models.StageAIReview {
		logger.WithField("stage", rec.Stage).Info("late ai review callback ignored")
		return rec, nil
	}
	from := rec.Stage
	to := models.InitialStage(rec.HasRecruiter())
	updMap := map[string]any{
		"stage":       to,
		"ai_reviewed": true,
	}
	metadata := dbmodels.JSONMap{}
	if score != nil {
		updMap["ai_score"] = *score
		metadata["ai_score"] = *score
	}
	if to == models.StageSubmitted {
		updMap["submitted_at"] = i.now()
	}
	actor := models.SystemActor()
	audit := i.newAudit(actor, dbmodels.AuditAIReviewCompleted, from, to, metadata)
	err = i.store.Transition(rec.ID, from, updMap, audit)
	if errors.Is(err, apperrors.ErrStaleRecord) {
		logger.Info("concurrent ai review callback ignored")
		return i.get(id)
	}
	if err != nil {
		logger.WithError(err).Error("failed to store ai review result")
		return nil, err
	}
	rec, err = i.get(id)
	if err != nil {
		return nil, err
	}
	i.stageChangedEvent(rec, from, actor, nil)
	return rec, nil
}

func (i impl) SubmitToCompany(actor models.Actor, id, notes string) (*dbmodels.Application, error) {
	rec, err := i.get(id)
	if err != nil {
		return nil, err
	}
	if !rec.HasRecruiter() || !actor.Is(models.RecruiterRole, rec.GetRecruiterID()) {
		return nil, apperrors.Forbidden("only the recruiter of record can submit to the company")
	}
	if rec.Stage != models.StageScreen {
		return nil, apperrors.InvalidTransition("application is not in recruiter review")
	}
	updMap := map[string]any{
		"submitted_at": i.now(),
	}
	if notes != "" {
		updMap["recruiter_notes"] = appendNotes(rec.RecruiterNotes, notes)
	}
	rec, err = i.apply(actor, rec, stageChange{
		action: dbmodels.AuditSubmittedToCompany,
		to:     models.StageSubmitted,
		updMap: updMap,
	})
	if err != nil {
		return nil, err
	}
	i.publish(models.EventApplicationSubmitted, models.EventPayload{
		"application_id": rec.ID,
		"candidate_id":   rec.CandidateID,
		"job_id":         rec.JobID,
		"company_id":     rec.CompanyID,
		"recruiter_id":   rec.GetRecruiterID(),
	})
	return rec, nil
}

func (i impl) ChangeStage(actor models.Actor, id string, stage models.ApplicationStage, notes string) (*dbmodels.Application, error) {
	rec, err := i.get(id)
	if err != nil {
		return nil, err
	}
	allowed := actor.IsAdmin() ||
		actor.Is(models.CompanyRole, rec.CompanyID) ||
		(rec.HasRecruiter() && actor.Is(models.RecruiterRole, rec.GetRecruiterID()))
	if !allowed {
		return nil, apperrors.Forbidden("no access to the application pipeline")
	}
	if !stage.IsValid() || !rec.Stage.AllowPipeline(stage) {
		return nil, apperrors.InvalidTransition("cannot move application from %v to %v", rec.Stage, stage)
	}
	from := rec.Stage
	var metadata dbmodels.JSONMap
	if notes != "" {
		metadata = dbmodels.JSONMap{"notes": notes}
	}
	if stage == models.StageHired {
		return i.hire(actor, rec, metadata)
	}
	rec, err = i.apply(actor, rec, stageChange{
		action:   dbmodels.AuditStageChanged,
		to:       stage,
		metadata: metadata,
	})
	if err != nil {
		return nil, err
	}
	i.stageChangedEvent(rec, from, actor, nil)
	return rec, nil
}

// hire moves the application to hired and opens its placement in one transaction.
func (i impl) hire(actor models.Actor, rec *dbmodels.Application, metadata dbmodels.JSONMap) (*dbmodels.Application, error) {
	logger := log.WithField("application_id", rec.ID)
	from := rec.Stage
	now := i.now()
	updMap := map[string]any{
		"stage":         models.StageHired,
		"hired_at":      now,
		"action_due_at": nil,
	}
	placement := dbmodels.Placement{
		ApplicationID: rec.ID,
		JobID:         rec.JobID,
		CandidateID:   rec.CandidateID,
		CompanyID:     rec.CompanyID,
		RecruiterID:   rec.RecruiterID,
		State:         models.PlacementHired,
		GuaranteeDays: i.settings.GuaranteeDays,
	}
	audit := i.newAudit(actor, dbmodels.AuditStageChanged, from, models.StageHired, metadata)
	placementID, err := i.store.TransitionToHired(rec.ID, from, updMap, audit, placement)
	if err != nil {
		return nil, i.transitionError(logger, err)
	}
	logger.WithField("placement_id", placementID).Info("candidate hired")
	rec, err = i.get(rec.ID)
	if err != nil {
		return nil, err
	}
	i.stageChangedEvent(rec, from, actor, models.EventPayload{"placement_id": placementID})
	i.publish(models.EventPlacementStateChanged, models.EventPayload{
		"placement_id":   placementID,
		"application_id": rec.ID,
		"company_id":     rec.CompanyID,
		"candidate_id":   rec.CandidateID,
		"old_state":      "",
		"new_state":      string(models.PlacementHired),
		"guarantee_days": placement.GuaranteeDays,
	})
	return rec, nil
}

func (i impl) Accept(actor models.Actor, id string) (*dbmodels.Application, error) {
	rec, err := i.getForCompany(actor, id)
	if err != nil {
		return nil, err
	}
	if rec.AcceptedByCompany {
		return rec, nil
	}
	if rec.Stage.IsTerminal() {
		return nil, apperrors.InvalidTransition("application is already closed")
	}
	audit := i.newAudit(actor, dbmodels.AuditAccepted, "", "", nil)
	audit.OldValue["accepted_by_company"] = false
	audit.NewValue["accepted_by_company"] = true
	// stage is unchanged, the compare guards against a concurrent close
	err = i.store.Transition(rec.ID, rec.Stage, map[string]any{"accepted_by_company": true}, audit)
	if err != nil {
		return nil, i.transitionError(log.WithField("application_id", id), err)
	}
	rec, err = i.get(id)
	if err != nil {
		return nil, err
	}
	i.publish(models.EventApplicationAccepted, models.EventPayload{
		"application_id": rec.ID,
		"candidate_id":   rec.CandidateID,
		"job_id":         rec.JobID,
		"company_id":     rec.CompanyID,
	})
	return rec, nil
}

func (i impl) Withdraw(actor models.Actor, id, reason string) (*dbmodels.Application, error) {
	rec, err := i.getForCandidate(actor, id, false)
	if err != nil {
		return nil, err
	}
	if rec.Stage == models.StageRejected {
		return nil, apperrors.InvalidTransition("a rejected application cannot be withdrawn")
	}
	if !rec.Stage.AllowWithdraw() {
		return nil, apperrors.InvalidTransition("application is already closed")
	}
	from := rec.Stage
	var metadata dbmodels.JSONMap
	if reason != "" {
		metadata = dbmodels.JSONMap{"reason": reason}
	}
	rec, err = i.apply(actor, rec, stageChange{
		action:   dbmodels.AuditWithdrawn,
		to:       models.StageWithdrawn,
		updMap:   map[string]any{"action_due_at": nil},
		metadata: metadata,
	})
	if err != nil {
		return nil, err
	}
	payload := models.EventPayload{
		"application_id": rec.ID,
		"candidate_id":   rec.CandidateID,
		"job_id":         rec.JobID,
		"company_id":     rec.CompanyID,
		"old_stage":      string(from),
	}
	if reason != "" {
		payload["reason"] = reason
	}
	i.publish(models.EventApplicationWithdrawn, payload)
	return rec, nil
}

func (i impl) RequestPrescreen(actor models.Actor, id string, recruiterID *string) (*dbmodels.Application, error) {
	rec, err := i.getForCompany(actor, id)
	if err != nil {
		return nil, err
	}
	if rec.Stage != models.StageSubmitted {
		return nil, apperrors.InvalidTransition("pre-screen is only available for submitted applications")
	}
	if rec.HasRecruiter() {
		return nil, apperrors.BusinessRule("application already has a recruiter")
	}
	logger := log.WithField("application_id", id)
	updMap := map[string]any{}
	autoAssign := recruiterID == nil || *recruiterID == ""
	if !autoAssign {
		if err = i.checkAssignable(rec.CandidateID, *recruiterID); err != nil {
			return nil, err
		}
		updMap["recruiter_id"] = *recruiterID
	}
	from := rec.Stage
	rec, err = i.apply(actor, rec, stageChange{
		action:   dbmodels.AuditPrescreenRequested,
		to:       models.StageScreen,
		updMap:   updMap,
		metadata: dbmodels.JSONMap{"auto_assign": autoAssign},
	})
	if err != nil {
		return nil, err
	}
	logger.WithField("auto_assign", autoAssign).Info("pre-screen requested")
	payload := models.EventPayload{
		"application_id": rec.ID,
		"candidate_id":   rec.CandidateID,
		"job_id":         rec.JobID,
		"company_id":     rec.CompanyID,
		"old_stage":      string(from),
		"auto_assign":    autoAssign,
	}
	if rec.HasRecruiter() {
		payload["recruiter_id"] = rec.GetRecruiterID()
	}
	i.publish(models.EventApplicationPrescreen, payload)
	return rec, nil
}

func (i impl) checkAssignable(candidateID, recruiterID string) error {
	active, err := i.directory.IsRecruiterActive(recruiterID)
	if err != nil {
		return err
	}
	if !active {
		return apperrors.BusinessRule("recruiter is not active")
	}
	ok, err := i.ownership.CanWorkWith(candidateID, recruiterID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Forbidden("candidate is protected by another sourcer")
	}
	return nil
}

func appendNotes(current, notes string) string {
	notes = strings.TrimSpace(notes)
	if current == "" {
		return notes
	}
	return current + "\n\n" + notes
}
