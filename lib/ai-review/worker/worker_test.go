package aireviewworker

import (
	"context"
	"fmt"
	baseworker "recruiting-backend/lib/utils/base-worker"
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeApplications struct {
	list []dbmodels.Application
}

func (f *fakeApplications) Create(rec dbmodels.Application, audit dbmodels.AuditLog) (string, error) {
	return "", nil
}

func (f *fakeApplications) GetByID(id string) (*dbmodels.Application, error) {
	return nil, nil
}

func (f *fakeApplications) ExistsActive(candidateID, jobID string) (bool, error) {
	return false, nil
}

func (f *fakeApplications) Transition(id string, expected models.ApplicationStage, updMap map[string]any, audit dbmodels.AuditLog) error {
	return nil
}

func (f *fakeApplications) TransitionToHired(id string, expected models.ApplicationStage, updMap map[string]any, audit dbmodels.AuditLog, placement dbmodels.Placement) (string, error) {
	return "", nil
}

func (f *fakeApplications) List(filter dbmodels.ApplicationFilter) ([]dbmodels.Application, error) {
	return f.list, nil
}

type fakeJobs struct{}

func (fakeJobs) GetByID(id string) (*dbmodels.Job, error) {
	return &dbmodels.Job{BaseModel: dbmodels.BaseModel{ID: id}, Title: "Go developer"}, nil
}

type fakeCandidates struct{}

func (fakeCandidates) GetByID(id string) (*dbmodels.Candidate, error) {
	return &dbmodels.Candidate{BaseModel: dbmodels.BaseModel{ID: id}, FirstName: "Jane"}, nil
}

func (fakeCandidates) GetByUserID(userID string) (*dbmodels.Candidate, error) {
	return nil, nil
}

type fakeScorer struct {
	fail map[string]bool
}

func (f fakeScorer) Score(ctx context.Context, job dbmodels.Job, candidate dbmodels.Candidate, app dbmodels.Application) (float64, error) {
	if f.fail[app.ID] {
		return 0, fmt.Errorf("gpt unavailable")
	}
	return 75, nil
}

type fakeCompleter struct {
	scores map[string]*float64
}

func (f *fakeCompleter) CompleteAIReview(id string, score *float64) (*dbmodels.Application, error) {
	f.scores[id] = score
	return &dbmodels.Application{}, nil
}

func TestHandle(t *testing.T) {
	completer := &fakeCompleter{scores: map[string]*float64{}}
	i := &impl{
		BaseImpl: *baseworker.NewInstance("ai-review-test", 0, time.Second),
		applications: &fakeApplications{list: []dbmodels.Application{
			{BaseModel: dbmodels.BaseModel{ID: "a1"}, CandidateID: "C", JobID: "J", Stage: models.StageAIReview},
			{BaseModel: dbmodels.BaseModel{ID: "a2"}, CandidateID: "C", JobID: "J", Stage: models.StageAIReview},
		}},
		candidates: fakeCandidates{},
		jobs:       fakeJobs{},
		scorer:     fakeScorer{fail: map[string]bool{"a2": true}},
		completer:  completer,
		batchSize:  10,
	}
	i.handle(context.Background())

	require.Len(t, completer.scores, 2)
	require.NotNil(t, completer.scores["a1"])
	require.Equal(t, 75.0, *completer.scores["a1"])
	require.Nil(t, completer.scores["a2"])

	t.Run(`without scorer`, func(t *testing.T) {
		completer.scores = map[string]*float64{}
		i.scorer = nil
		i.handle(context.Background())
		require.Len(t, completer.scores, 2)
		require.Nil(t, completer.scores["a1"])
	})
	t.Run(`cancelled context stops the pass`, func(t *testing.T) {
		completer.scores = map[string]*float64{}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		i.handle(ctx)
		require.Empty(t, completer.scores)
	})
}
