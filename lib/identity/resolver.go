package identity

import (
	"recruiting-backend/db"
	candidatestore "recruiting-backend/lib/candidate/store"
	identitystore "recruiting-backend/lib/identity/store"
	apperrors "recruiting-backend/lib/utils/app-errors"
	"recruiting-backend/models"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type ResolveStatus string

const (
	StatusActive   ResolveStatus = "active"
	StatusInactive ResolveStatus = "inactive"
	StatusNotFound ResolveStatus = "not_found"
)

type Resolution struct {
	EntityID string
	Status   ResolveStatus
}

// Provider maps an opaque caller identity to its role-specific entity.
type Provider interface {
	Resolve(userID string, role models.UserRole) (Resolution, error)
	ResolveActor(userID string, role models.UserRole) (models.Actor, error)
	IsRecruiterActive(recruiterID string) (bool, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewResolver(identitystore.NewInstance(db.DB), candidatestore.NewInstance(db.DB))
}

func NewResolver(store identitystore.Provider, candidateStore candidatestore.Provider) Provider {
	return impl{
		store:          store,
		candidateStore: candidateStore,
	}
}

type impl struct {
	store          identitystore.Provider
	candidateStore candidatestore.Provider
}

func (i impl) Resolve(userID string, role models.UserRole) (Resolution, error) {
	notFound := Resolution{Status: StatusNotFound}
	if userID == "" {
		return notFound, nil
	}
	switch role {
	case models.CandidateRole:
		rec, err := i.candidateStore.GetByUserID(userID)
		if err != nil {
			return notFound, errors.Wrap(err, "candidate lookup failed")
		}
		if rec == nil {
			return notFound, nil
		}
		return Resolution{EntityID: rec.ID, Status: StatusActive}, nil
	case models.RecruiterRole:
		rec, err := i.store.GetRecruiterByUserID(userID)
		if err != nil {
			return notFound, errors.Wrap(err, "recruiter lookup failed")
		}
		if rec == nil {
			return notFound, nil
		}
		if !rec.Active {
			return Resolution{EntityID: rec.ID, Status: StatusInactive}, nil
		}
		return Resolution{EntityID: rec.ID, Status: StatusActive}, nil
	case models.CompanyRole:
		rec, err := i.store.GetCompanyMember(userID)
		if err != nil {
			return notFound, errors.Wrap(err, "company member lookup failed")
		}
		if rec == nil {
			return notFound, nil
		}
		return Resolution{EntityID: rec.CompanyID, Status: StatusActive}, nil
	case models.AdminRole:
		return Resolution{EntityID: userID, Status: StatusActive}, nil
	}
	return notFound, nil
}

func (i impl) ResolveActor(userID string, role models.UserRole) (models.Actor, error) {
	logger := log.
		WithField("user_id", userID).
		WithField("role", role)
	res, err := i.Resolve(userID, role)
	if err != nil {
		logger.WithError(err).Error("caller identity resolution failed")
		return models.Actor{}, err
	}
	if res.Status != StatusActive {
		logger.WithField("status", res.Status).Warn("caller has no active entity")
		return models.Actor{}, apperrors.Forbidden("no active %v profile for the caller", role.ToHuman())
	}
	return models.Actor{UserID: userID, Role: role, EntityID: res.EntityID}, nil
}

func (i impl) IsRecruiterActive(recruiterID string) (bool, error) {
	if recruiterID == "" {
		return false, nil
	}
	rec, err := i.store.GetRecruiterByID(recruiterID)
	if err != nil {
		return false, errors.Wrap(err, "recruiter lookup failed")
	}
	return rec != nil && rec.Active, nil
}
