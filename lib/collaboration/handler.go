package collaboration

import (
	"recruiting-backend/db"
	collaborationstore "recruiting-backend/lib/collaboration/store"
	"recruiting-backend/lib/events"
	placementstore "recruiting-backend/lib/placement/store"
	apperrors "recruiting-backend/lib/utils/app-errors"
	initchecker "recruiting-backend/lib/utils/init-checker"
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	AddCollaborator(actor models.Actor, req AddRequest) (*dbmodels.PlacementCollaborator, error)
	ListCollaborators(actor models.Actor, placementID string) ([]dbmodels.PlacementCollaborator, error)
	RecommendedSplits(totalShare float64, roles []models.CollaboratorRole, weights map[models.CollaboratorRole]float64) ([]RecommendedSplit, error)
}

type AddRequest struct {
	PlacementID     string
	RecruiterID     string
	Role            models.CollaboratorRole
	SplitPercentage float64
	SplitAmount     float64
	Notes           string
}

var Instance Provider

func NewHandler(settings models.WorkflowSettings) {
	initchecker.CheckInit("events", events.Instance)
	Instance = NewProvider(
		collaborationstore.NewInstance(db.DB),
		placementstore.NewInstance(db.DB),
		events.Instance,
		settings,
	)
}

func NewProvider(store collaborationstore.Provider, placements placementstore.Provider, publisher events.Provider, settings models.WorkflowSettings) Provider {
	return impl{
		store:      store,
		placements: placements,
		events:     publisher,
		settings:   settings.WithDefaults(),
	}
}

type impl struct {
	store      collaborationstore.Provider
	placements placementstore.Provider
	events     events.Provider
	settings   models.WorkflowSettings
}

func (i impl) AddCollaborator(actor models.Actor, req AddRequest) (*dbmodels.PlacementCollaborator, error) {
	logger := log.
		WithField("placement_id", req.PlacementID).
		WithField("recruiter_id", req.RecruiterID)
	placement, err := i.getPlacement(req.PlacementID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.Is(models.CompanyRole, placement.CompanyID) && !isRecruiterOfRecord(actor, placement) {
		return nil, apperrors.Forbidden("no access to the placement splits")
	}
	if req.RecruiterID == "" {
		return nil, apperrors.BusinessRule("recruiter is required")
	}
	if !req.Role.IsValid() {
		return nil, apperrors.BusinessRule("unknown collaborator role %v", req.Role)
	}
	if req.SplitPercentage <= 0 || req.SplitPercentage > models.MaxSplitPercentage {
		return nil, apperrors.BusinessRule("split percentage must be within (0, %v]", models.MaxSplitPercentage)
	}
	if !models.IsSplitPrecise(req.SplitPercentage) {
		return nil, apperrors.BusinessRule("split percentage allows at most two decimal places")
	}
	if req.SplitAmount < 0 {
		return nil, apperrors.BusinessRule("split amount cannot be negative")
	}
	rec := dbmodels.PlacementCollaborator{
		PlacementID:     req.PlacementID,
		RecruiterID:     req.RecruiterID,
		Role:            req.Role,
		SplitPercentage: req.SplitPercentage,
		SplitAmount:     req.SplitAmount,
		Notes:           req.Notes,
	}
	id, allocated, err := i.store.AddWithinCeiling(rec, models.MaxSplitPercentage)
	if err != nil {
		if errors.Is(err, apperrors.ErrOverAllocation) {
			logger.
				WithField("allocated", allocated).
				WithField("requested", req.SplitPercentage).
				Info("split over allocation rejected")
			return nil, apperrors.BusinessRule("split over allocation: %.2f%% already allocated, %.2f%% requested", allocated, req.SplitPercentage)
		}
		logger.WithError(err).Error("failed to store collaborator")
		return nil, err
	}
	rec.ID = id
	i.publish(models.EventCollaborationAccepted, models.EventPayload{
		"placement_id":     rec.PlacementID,
		"collaborator_id":  id,
		"recruiter_id":     rec.RecruiterID,
		"role":             string(rec.Role),
		"split_percentage": rec.SplitPercentage,
		"split_amount":     rec.SplitAmount,
		"total_allocated":  allocated + rec.SplitPercentage,
	})
	logger.Info("collaborator added")
	return &rec, nil
}

func (i impl) ListCollaborators(actor models.Actor, placementID string) ([]dbmodels.PlacementCollaborator, error) {
	placement, err := i.getPlacement(placementID)
	if err != nil {
		return nil, err
	}
	list, err := i.store.ListByPlacement(placementID)
	if err != nil {
		log.WithField("placement_id", placementID).WithError(err).Error("failed to load collaborators")
		return nil, err
	}
	if actor.IsAdmin() || actor.Is(models.CompanyRole, placement.CompanyID) || isRecruiterOfRecord(actor, placement) {
		return list, nil
	}
	for _, rec := range list {
		if actor.Is(models.RecruiterRole, rec.RecruiterID) {
			return list, nil
		}
	}
	return nil, apperrors.Forbidden("no access to the placement splits")
}

func (i impl) RecommendedSplits(totalShare float64, roles []models.CollaboratorRole, weights map[models.CollaboratorRole]float64) ([]RecommendedSplit, error) {
	return CalculateRecommendedSplits(totalShare, roles, i.settings.RoleWeights, weights)
}

func (i impl) getPlacement(id string) (*dbmodels.Placement, error) {
	rec, err := i.placements.GetByID(id)
	if err != nil {
		log.WithField("placement_id", id).WithError(err).Error("failed to load placement")
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.NotFound("placement not found")
	}
	return rec, nil
}

func (i impl) publish(eventType models.EventType, payload models.EventPayload) {
	if i.events == nil {
		return
	}
	i.events.Publish(eventType, payload)
}

func isRecruiterOfRecord(actor models.Actor, placement *dbmodels.Placement) bool {
	return placement.RecruiterID != nil && actor.Is(models.RecruiterRole, *placement.RecruiterID)
}
