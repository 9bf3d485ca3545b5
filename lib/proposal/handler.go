package proposal

import (
	"recruiting-backend/db"
	applicationstore "recruiting-backend/lib/application/store"
	apperrors "recruiting-backend/lib/utils/app-errors"
	"recruiting-backend/models"
	apimodels "recruiting-backend/models/api"
	dbmodels "recruiting-backend/models/db"
	"time"

	log "github.com/sirupsen/logrus"
)

type Partition string

const (
	PartitionAll        Partition = "all"
	PartitionActionable Partition = "actionable"
	PartitionWaiting    Partition = "waiting"
)

type ListRequest struct {
	Partition Partition
	apimodels.Pagination
}

type Summary struct {
	Total      int `json:"total"`
	Actionable int `json:"actionable"`
	Waiting    int `json:"waiting"`
	Urgent     int `json:"urgent"`
	Overdue    int `json:"overdue"`
}

type ListResult struct {
	Items    []View  `json:"items"`
	Summary  Summary `json:"summary"`
	RowCount int64   `json:"row_count"` // rows in the requested partition before paging
}

type Provider interface {
	Get(actor models.Actor, applicationID string) (*View, error)
	List(actor models.Actor, req ListRequest) (ListResult, error)
}

var Instance Provider

func NewHandler(settings models.WorkflowSettings) {
	Instance = NewProvider(applicationstore.NewInstance(db.DB), settings, nil)
}

func NewProvider(store applicationstore.Provider, settings models.WorkflowSettings, now func() time.Time) Provider {
	if now == nil {
		now = time.Now
	}
	return impl{
		store:        store,
		urgentWithin: settings.WithDefaults().UrgentWithin,
		now:          now,
	}
}

type impl struct {
	store        applicationstore.Provider
	urgentWithin time.Duration
	now          func() time.Time
}

func (i impl) Get(actor models.Actor, applicationID string) (*View, error) {
	app, err := i.store.GetByID(applicationID)
	if err != nil {
		log.WithField("application_id", applicationID).WithError(err).Error("failed to load application")
		return nil, err
	}
	if app == nil {
		return nil, apperrors.NotFound("application not found")
	}
	if !app.IsParticipant(actor) {
		return nil, apperrors.Forbidden("no access to the application")
	}
	view := Project(*app, actor, i.now(), i.urgentWithin)
	return &view, nil
}

func (i impl) List(actor models.Actor, req ListRequest) (ListResult, error) {
	filter, err := filterFor(actor)
	if err != nil {
		return ListResult{}, err
	}
	list, err := i.store.List(filter)
	if err != nil {
		log.WithField("user_id", actor.UserID).WithError(err).Error("failed to load applications for proposals")
		return ListResult{}, err
	}
	now := i.now()
	views := make([]View, 0, len(list))
	for _, app := range list {
		views = append(views, Project(app, actor, now, i.urgentWithin))
	}
	result := ListResult{Summary: summarize(views)}
	selected := make([]View, 0, len(views))
	for _, view := range views {
		switch req.Partition {
		case PartitionActionable:
			if !view.IsActionable() {
				continue
			}
		case PartitionWaiting:
			if !view.IsWaiting() {
				continue
			}
		}
		selected = append(selected, view)
	}
	result.RowCount = int64(len(selected))
	from, to := req.Pagination.Bounds(len(selected))
	result.Items = selected[from:to]
	return result, nil
}

// summarize counts over the full, unpaged set.
func summarize(views []View) Summary {
	summary := Summary{Total: len(views)}
	for _, view := range views {
		if view.IsActionable() {
			summary.Actionable++
		}
		if view.IsWaiting() {
			summary.Waiting++
		}
		if view.IsUrgent {
			summary.Urgent++
		}
		if view.IsOverdue {
			summary.Overdue++
		}
	}
	return summary
}

func filterFor(actor models.Actor) (dbmodels.ApplicationFilter, error) {
	switch {
	case actor.Role == models.CandidateRole:
		return dbmodels.ApplicationFilter{CandidateID: actor.EntityID}, nil
	case actor.Role == models.RecruiterRole:
		return dbmodels.ApplicationFilter{RecruiterID: actor.EntityID}, nil
	case actor.Role == models.CompanyRole:
		return dbmodels.ApplicationFilter{CompanyID: actor.EntityID}, nil
	case actor.IsAdmin():
		return dbmodels.ApplicationFilter{}, nil
	}
	return dbmodels.ApplicationFilter{}, apperrors.Forbidden("no access to proposals")
}
