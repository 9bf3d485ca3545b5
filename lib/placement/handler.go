package placement

import (
	"recruiting-backend/db"
	collaborationstore "recruiting-backend/lib/collaboration/store"
	"recruiting-backend/lib/events"
	placementstore "recruiting-backend/lib/placement/store"
	apperrors "recruiting-backend/lib/utils/app-errors"
	initchecker "recruiting-backend/lib/utils/init-checker"
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	GetByID(actor models.Actor, id string) (*dbmodels.Placement, error)
	Activate(actor models.Actor, id string, startDate time.Time) (*dbmodels.Placement, error)
	Complete(actor models.Actor, id string, endDate time.Time) (*dbmodels.Placement, error)
	Fail(actor models.Actor, id, reason string) (*dbmodels.Placement, error)
	// ChangeState routes a generic state request to the matching lifecycle operation.
	ChangeState(actor models.Actor, id string, state models.PlacementState, reason string) (*dbmodels.Placement, error)
	IsWithinGuarantee(actor models.Actor, id string) (bool, error)
	RequestReplacement(actor models.Actor, id string) (*dbmodels.Placement, error)
	LinkReplacement(actor models.Actor, failedID, replacementID string) (*dbmodels.Placement, error)
	List(actor models.Actor, filter dbmodels.PlacementFilter) ([]dbmodels.Placement, error)
	FindExpiring(actor models.Actor, days int) ([]dbmodels.Placement, error)
}

var Instance Provider

func NewHandler(settings models.WorkflowSettings) {
	initchecker.CheckInit("events", events.Instance)
	Instance = NewProvider(Deps{
		Placements:    placementstore.NewInstance(db.DB),
		Collaborators: collaborationstore.NewInstance(db.DB),
		Events:        events.Instance,
	}, settings)
}

type Deps struct {
	Placements    placementstore.Provider
	Collaborators collaborationstore.Provider
	Events        events.Provider
	Now           func() time.Time
}

func NewProvider(deps Deps, settings models.WorkflowSettings) Provider {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return impl{
		store:         deps.Placements,
		collaborators: deps.Collaborators,
		events:        deps.Events,
		settings:      settings.WithDefaults(),
		now:           now,
	}
}

type impl struct {
	store         placementstore.Provider
	collaborators collaborationstore.Provider
	events        events.Provider
	settings      models.WorkflowSettings
	now           func() time.Time
}

func (i impl) GetByID(actor models.Actor, id string) (*dbmodels.Placement, error) {
	rec, err := i.get(id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, rec) {
		return nil, apperrors.Forbidden("no access to the placement")
	}
	return rec, nil
}

func (i impl) Activate(actor models.Actor, id string, startDate time.Time) (*dbmodels.Placement, error) {
	rec, err := i.getForManage(actor, id)
	if err != nil {
		return nil, err
	}
	if !rec.State.AllowChange(models.PlacementActive) {
		return nil, invalidTransition(rec.State, models.PlacementActive)
	}
	guaranteeDays := rec.GuaranteeDays
	if guaranteeDays <= 0 {
		guaranteeDays = i.settings.GuaranteeDays
	}
	expiresAt := startDate.AddDate(0, 0, guaranteeDays)
	from := rec.State
	rec, err = i.changeState(rec, models.PlacementActive, map[string]any{
		"start_date":           startDate,
		"guarantee_days":       guaranteeDays,
		"guarantee_expires_at": expiresAt,
	})
	if err != nil {
		return nil, err
	}
	i.stateChangedEvent(rec, from)
	i.publish(models.EventPlacementActivated, models.EventPayload{
		"placement_id":         rec.ID,
		"application_id":       rec.ApplicationID,
		"company_id":           rec.CompanyID,
		"candidate_id":         rec.CandidateID,
		"start_date":           startDate.Format(time.RFC3339),
		"guarantee_days":       guaranteeDays,
		"guarantee_expires_at": expiresAt.Format(time.RFC3339),
	})
	return rec, nil
}

func (i impl) Complete(actor models.Actor, id string, endDate time.Time) (*dbmodels.Placement, error) {
	rec, err := i.getForManage(actor, id)
	if err != nil {
		return nil, err
	}
	if !rec.State.AllowChange(models.PlacementCompleted) {
		return nil, invalidTransition(rec.State, models.PlacementCompleted)
	}
	from := rec.State
	rec, err = i.changeState(rec, models.PlacementCompleted, map[string]any{
		"end_date": endDate,
	})
	if err != nil {
		return nil, err
	}
	collaborators, err := i.collaborators.ListByPlacement(rec.ID)
	if err != nil {
		log.WithField("placement_id", rec.ID).WithError(err).Error("failed to load collaborators for completion event")
	}
	i.stateChangedEvent(rec, from)
	i.publish(models.EventPlacementCompleted, models.EventPayload{
		"placement_id":   rec.ID,
		"application_id": rec.ApplicationID,
		"company_id":     rec.CompanyID,
		"candidate_id":   rec.CandidateID,
		"end_date":       endDate.Format(time.RFC3339),
		"fee_amount":     rec.FeeAmount,
		"collaborators":  splitList(collaborators),
	})
	return rec, nil
}

func (i impl) Fail(actor models.Actor, id, reason string) (*dbmodels.Placement, error) {
	rec, err := i.getForManage(actor, id)
	if err != nil {
		return nil, err
	}
	if !rec.State.AllowChange(models.PlacementFailed) {
		return nil, invalidTransition(rec.State, models.PlacementFailed)
	}
	from := rec.State
	now := i.now()
	rec, err = i.changeState(rec, models.PlacementFailed, map[string]any{
		"failed_at":      now,
		"failure_reason": reason,
	})
	if err != nil {
		return nil, err
	}
	i.stateChangedEvent(rec, from)
	i.publish(models.EventPlacementFailed, models.EventPayload{
		"placement_id":        rec.ID,
		"application_id":      rec.ApplicationID,
		"company_id":          rec.CompanyID,
		"candidate_id":        rec.CandidateID,
		"reason":              reason,
		"failed_at":           now.Format(time.RFC3339),
		"is_within_guarantee": rec.IsWithinGuarantee(now),
	})
	return rec, nil
}

func (i impl) ChangeState(actor models.Actor, id string, state models.PlacementState, reason string) (*dbmodels.Placement, error) {
	switch state {
	case models.PlacementActive:
		return i.Activate(actor, id, i.now())
	case models.PlacementCompleted:
		return i.Complete(actor, id, i.now())
	case models.PlacementFailed:
		return i.Fail(actor, id, reason)
	}
	rec, err := i.getForManage(actor, id)
	if err != nil {
		return nil, err
	}
	return nil, invalidTransition(rec.State, state)
}

func (i impl) IsWithinGuarantee(actor models.Actor, id string) (bool, error) {
	rec, err := i.GetByID(actor, id)
	if err != nil {
		return false, err
	}
	return rec.IsWithinGuarantee(i.now()), nil
}

func (i impl) RequestReplacement(actor models.Actor, id string) (*dbmodels.Placement, error) {
	rec, err := i.getForManage(actor, id)
	if err != nil {
		return nil, err
	}
	if rec.State != models.PlacementFailed {
		return nil, apperrors.BusinessRule("replacement is only available for failed placements")
	}
	now := i.now()
	if !rec.IsWithinGuarantee(now) {
		return nil, apperrors.BusinessRule("guarantee period has expired")
	}
	i.publish(models.EventPlacementReplacement, models.EventPayload{
		"placement_id":         rec.ID,
		"application_id":       rec.ApplicationID,
		"job_id":               rec.JobID,
		"company_id":           rec.CompanyID,
		"requested_by":         actor.UserID,
		"guarantee_expires_at": rec.GuaranteeExpiresAt.Format(time.RFC3339),
	})
	log.WithField("placement_id", id).Info("placement replacement requested")
	return rec, nil
}

func (i impl) LinkReplacement(actor models.Actor, failedID, replacementID string) (*dbmodels.Placement, error) {
	failed, err := i.getForManage(actor, failedID)
	if err != nil {
		return nil, err
	}
	if failed.State != models.PlacementFailed {
		return nil, apperrors.BusinessRule("only a failed placement can be replaced")
	}
	if failedID == replacementID {
		return nil, apperrors.BusinessRule("placement cannot replace itself")
	}
	replacement, err := i.getForManage(actor, replacementID)
	if err != nil {
		return nil, err
	}
	if err = i.store.SetReplacementOf(replacement.ID, failed.ID); err != nil {
		log.
			WithField("placement_id", replacementID).
			WithField("replaced_placement_id", failedID).
			WithError(err).
			Error("failed to link replacement placement")
		return nil, err
	}
	return i.get(replacementID)
}

func (i impl) List(actor models.Actor, filter dbmodels.PlacementFilter) ([]dbmodels.Placement, error) {
	switch {
	case actor.IsAdmin():
	case actor.Role == models.CompanyRole:
		filter.CompanyID = actor.EntityID
	case actor.Role == models.RecruiterRole:
		filter.RecruiterID = actor.EntityID
	default:
		return nil, apperrors.Forbidden("no access to placements")
	}
	if filter.State != "" && !filter.State.IsValid() {
		return nil, apperrors.BusinessRule("unknown placement state %v", filter.State)
	}
	return i.store.List(filter)
}

func (i impl) FindExpiring(actor models.Actor, days int) ([]dbmodels.Placement, error) {
	if days <= 0 {
		return nil, apperrors.BusinessRule("days must be positive")
	}
	now := i.now()
	list, err := i.store.ListExpiring(now, now.AddDate(0, 0, days))
	if err != nil {
		log.WithError(err).Error("failed to load expiring placements")
		return nil, err
	}
	result := make([]dbmodels.Placement, 0, len(list))
	for _, rec := range list {
		if rec.State.IsTerminal() || !canView(actor, &rec) {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

func (i impl) changeState(rec *dbmodels.Placement, to models.PlacementState, updMap map[string]any) (*dbmodels.Placement, error) {
	logger := log.
		WithField("placement_id", rec.ID).
		WithField("old_state", rec.State).
		WithField("new_state", to)
	updMap["state"] = to
	err := i.store.ChangeState(rec.ID, rec.State, updMap)
	if err != nil {
		if errors.Is(err, apperrors.ErrStaleRecord) {
			return nil, apperrors.InvalidTransition("placement was changed by another request, reload and retry")
		}
		logger.WithError(err).Error("failed to store placement state")
		return nil, err
	}
	logger.Info("placement state changed")
	return i.get(rec.ID)
}

func (i impl) stateChangedEvent(rec *dbmodels.Placement, from models.PlacementState) {
	i.publish(models.EventPlacementStateChanged, models.EventPayload{
		"placement_id":   rec.ID,
		"application_id": rec.ApplicationID,
		"company_id":     rec.CompanyID,
		"old_state":      string(from),
		"new_state":      string(rec.State),
	})
}

func (i impl) get(id string) (*dbmodels.Placement, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("placement_id", id).WithError(err).Error("failed to load placement")
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.NotFound("placement not found")
	}
	return rec, nil
}

func (i impl) getForManage(actor models.Actor, id string) (*dbmodels.Placement, error) {
	rec, err := i.get(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.Is(models.CompanyRole, rec.CompanyID) {
		return nil, apperrors.Forbidden("only the hiring company can manage the placement")
	}
	return rec, nil
}

func (i impl) publish(eventType models.EventType, payload models.EventPayload) {
	if i.events == nil {
		return
	}
	i.events.Publish(eventType, payload)
}

func canView(actor models.Actor, rec *dbmodels.Placement) bool {
	if actor.IsAdmin() || actor.Is(models.CompanyRole, rec.CompanyID) {
		return true
	}
	return rec.RecruiterID != nil && actor.Is(models.RecruiterRole, *rec.RecruiterID)
}

func invalidTransition(from, to models.PlacementState) error {
	return apperrors.InvalidTransition("cannot move placement from %v to %v", from, to)
}

// splitList is the payout view of the collaborators carried by placement.completed.
func splitList(list []dbmodels.PlacementCollaborator) []any {
	result := make([]any, 0, len(list))
	for _, rec := range list {
		result = append(result, map[string]any{
			"recruiter_id":     rec.RecruiterID,
			"role":             string(rec.Role),
			"split_percentage": rec.SplitPercentage,
			"split_amount":     rec.SplitAmount,
		})
	}
	return result
}
