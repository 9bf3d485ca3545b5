package proposal

import (
	"fmt"
	"recruiting-backend/models"
	apimodels "recruiting-backend/models/api"
	dbmodels "recruiting-backend/models/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	now       = time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	candidate = models.Actor{UserID: "u-c", Role: models.CandidateRole, EntityID: "C"}
	recruiter = models.Actor{UserID: "u-r", Role: models.RecruiterRole, EntityID: "R"}
	company   = models.Actor{UserID: "u-co", Role: models.CompanyRole, EntityID: "CO"}
)

func app(id string, stage models.ApplicationStage, recruiterID string) dbmodels.Application {
	rec := dbmodels.Application{
		BaseModel:   dbmodels.BaseModel{ID: id},
		CandidateID: "C",
		JobID:       "J",
		CompanyID:   "CO",
		Stage:       stage,
	}
	if recruiterID != "" {
		rec.RecruiterID = &recruiterID
	}
	return rec
}

func due(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestTypeOf(t *testing.T) {
	cases := []struct {
		stage     models.ApplicationStage
		recruiter string
		expected  models.ProposalType
	}{
		{models.StageRecruiterProposed, "R", models.ProposalJobOpportunity},
		{models.StageDraft, "", models.ProposalDraft},
		{models.StageAIReview, "", models.ProposalAIReview},
		{models.StageScreen, "R", models.ProposalRecruiterReview},
		{models.StageSubmitted, "R", models.ProposalRepresented},
		{models.StageSubmitted, "", models.ProposalDirectApplication},
		{models.StageInterview, "", models.ProposalInterview},
		{models.StageOffer, "", models.ProposalOffer},
		{models.StageHired, "", models.ProposalClosed},
		{models.StageWithdrawn, "", models.ProposalClosed},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf(`%v with recruiter %q`, c.stage, c.recruiter), func(t *testing.T) {
			require.Equal(t, c.expected, TypeOf(app("a", c.stage, c.recruiter)))
		})
	}
}

func TestProject(t *testing.T) {
	t.Run(`candidate must answer a proposal`, func(t *testing.T) {
		rec := app("a", models.StageRecruiterProposed, "R")
		rec.ActionDueAt = due(10 * time.Hour)
		view := Project(rec, candidate, now, 24*time.Hour)
		require.Equal(t, models.PartyCandidate, view.PendingActionBy)
		require.True(t, view.CanCurrentUserAct)
		require.True(t, view.IsUrgent)
		require.False(t, view.IsOverdue)
		require.Equal(t, "Review opportunity", view.Display.ActionLabel)

		view = Project(rec, recruiter, now, 24*time.Hour)
		require.False(t, view.CanCurrentUserAct)
		require.True(t, view.IsWaiting())
	})
	t.Run(`overdue`, func(t *testing.T) {
		rec := app("a", models.StageRecruiterProposed, "R")
		rec.ActionDueAt = due(-time.Hour)
		view := Project(rec, candidate, now, 24*time.Hour)
		require.True(t, view.IsOverdue)
		require.False(t, view.IsUrgent)
	})
	t.Run(`not urgent yet`, func(t *testing.T) {
		rec := app("a", models.StageRecruiterProposed, "R")
		rec.ActionDueAt = due(48 * time.Hour)
		view := Project(rec, candidate, now, 24*time.Hour)
		require.False(t, view.IsOverdue)
		require.False(t, view.IsUrgent)
	})
	t.Run(`recruiter of another application cannot act`, func(t *testing.T) {
		rec := app("a", models.StageScreen, "R2")
		view := Project(rec, recruiter, now, 24*time.Hour)
		require.Equal(t, models.PartyRecruiter, view.PendingActionBy)
		require.False(t, view.CanCurrentUserAct)
		require.False(t, view.IsWaiting())
	})
	t.Run(`offer waits for the company`, func(t *testing.T) {
		rec := app("a", models.StageOffer, "")
		view := Project(rec, company, now, 24*time.Hour)
		require.Equal(t, models.PartyCompany, view.PendingActionBy)
		require.True(t, view.CanCurrentUserAct)
		require.Equal(t, "Record offer outcome", view.Display.ActionLabel)

		view = Project(rec, candidate, now, 24*time.Hour)
		require.False(t, view.CanCurrentUserAct)
		require.True(t, view.IsWaiting())
	})
	t.Run(`terminal application has no pending party`, func(t *testing.T) {
		rec := app("a", models.StageHired, "")
		rec.ActionDueAt = due(-time.Hour)
		view := Project(rec, company, now, 24*time.Hour)
		require.Equal(t, models.PartyNone, view.PendingActionBy)
		require.False(t, view.CanCurrentUserAct)
		require.False(t, view.IsWaiting())
		require.False(t, view.IsOverdue)
	})
	t.Run(`projection does not change the application`, func(t *testing.T) {
		rec := app("a", models.StageSubmitted, "")
		copied := rec
		_ = Project(rec, company, now, 24*time.Hour)
		require.Equal(t, copied, rec)
	})
}

type fakeStore struct {
	list []dbmodels.Application
}

func (f *fakeStore) Create(rec dbmodels.Application, audit dbmodels.AuditLog) (string, error) {
	return "", nil
}

func (f *fakeStore) GetByID(id string) (*dbmodels.Application, error) {
	for _, rec := range f.list {
		if rec.ID == id {
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ExistsActive(candidateID, jobID string) (bool, error) {
	return false, nil
}

func (f *fakeStore) Transition(id string, expected models.ApplicationStage, updMap map[string]any, audit dbmodels.AuditLog) error {
	return nil
}

func (f *fakeStore) TransitionToHired(id string, expected models.ApplicationStage, updMap map[string]any, audit dbmodels.AuditLog, placement dbmodels.Placement) (string, error) {
	return "", nil
}

func (f *fakeStore) List(filter dbmodels.ApplicationFilter) ([]dbmodels.Application, error) {
	result := []dbmodels.Application{}
	for _, rec := range f.list {
		if filter.CandidateID != "" && rec.CandidateID != filter.CandidateID {
			continue
		}
		if filter.CompanyID != "" && rec.CompanyID != filter.CompanyID {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

func TestList(t *testing.T) {
	urgent := app("p1", models.StageRecruiterProposed, "R")
	urgent.ActionDueAt = due(2 * time.Hour)
	overdue := app("p2", models.StageRecruiterProposed, "R")
	overdue.ActionDueAt = due(-2 * time.Hour)
	store := &fakeStore{list: []dbmodels.Application{
		urgent,
		overdue,
		app("d1", models.StageDraft, ""),
		app("s1", models.StageSubmitted, ""),
		app("i1", models.StageInterview, ""),
		app("h1", models.StageHired, ""),
	}}
	h := NewProvider(store, models.WorkflowSettings{}, func() time.Time { return now })

	t.Run(`summary covers the full set`, func(t *testing.T) {
		res, err := h.List(candidate, ListRequest{Partition: PartitionActionable, Pagination: apimodels.Pagination{Page: 1, Limit: 2}})
		require.NoError(t, err)
		require.Equal(t, Summary{Total: 6, Actionable: 3, Waiting: 2, Urgent: 1, Overdue: 1}, res.Summary)
		require.Equal(t, int64(3), res.RowCount)
		require.Len(t, res.Items, 2)

		res, err = h.List(candidate, ListRequest{Partition: PartitionActionable, Pagination: apimodels.Pagination{Page: 2, Limit: 2}})
		require.NoError(t, err)
		require.Len(t, res.Items, 1)
		require.Equal(t, 3, res.Summary.Actionable)
	})
	t.Run(`waiting partition`, func(t *testing.T) {
		res, err := h.List(candidate, ListRequest{Partition: PartitionWaiting})
		require.NoError(t, err)
		require.Len(t, res.Items, 2)
		for _, view := range res.Items {
			require.Equal(t, models.PartyCompany, view.PendingActionBy)
		}
	})
	t.Run(`company view`, func(t *testing.T) {
		res, err := h.List(company, ListRequest{Partition: PartitionAll})
		require.NoError(t, err)
		require.Equal(t, 2, res.Summary.Actionable)
		require.Len(t, res.Items, 6)
	})
	t.Run(`get checks access`, func(t *testing.T) {
		view, err := h.Get(candidate, "p1")
		require.NoError(t, err)
		require.True(t, view.IsUrgent)
		_, err = h.Get(models.Actor{Role: models.CandidateRole, EntityID: "C9"}, "p1")
		require.Error(t, err)
		_, err = h.Get(candidate, "missing")
		require.Error(t, err)
	})
}
