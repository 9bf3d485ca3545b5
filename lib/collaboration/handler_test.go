package collaboration

import (
	"fmt"
	collaborationstore "recruiting-backend/lib/collaboration/store"
	apperrors "recruiting-backend/lib/utils/app-errors"
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeStore mirrors the row lock of the real store with a mutex.
type fakeStore struct {
	mu   sync.Mutex
	list []dbmodels.PlacementCollaborator
}

func (f *fakeStore) ListByPlacement(placementID string) ([]dbmodels.PlacementCollaborator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []dbmodels.PlacementCollaborator{}
	for _, rec := range f.list {
		if rec.PlacementID == placementID {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (f *fakeStore) AddWithinCeiling(rec dbmodels.PlacementCollaborator, ceiling float64) (string, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	allocated := 0.0
	for _, existing := range f.list {
		if existing.PlacementID == rec.PlacementID {
			allocated += existing.SplitPercentage
		}
	}
	if collaborationstore.ExceedsCeiling(allocated, rec.SplitPercentage, ceiling) {
		return "", allocated, apperrors.ErrOverAllocation
	}
	rec.ID = fmt.Sprintf("col-%d", len(f.list)+1)
	f.list = append(f.list, rec)
	return rec.ID, allocated, nil
}

func (f *fakeStore) sum(placementID string) float64 {
	list, _ := f.ListByPlacement(placementID)
	total := 0.0
	for _, rec := range list {
		total += rec.SplitPercentage
	}
	return total
}

type fakePlacements struct {
	list map[string]dbmodels.Placement
}

func (f *fakePlacements) GetByID(id string) (*dbmodels.Placement, error) {
	rec, ok := f.list[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakePlacements) ChangeState(id string, expected models.PlacementState, updMap map[string]any) error {
	return nil
}

func (f *fakePlacements) SetReplacementOf(replacementID, failedID string) error {
	return nil
}

func (f *fakePlacements) List(filter dbmodels.PlacementFilter) ([]dbmodels.Placement, error) {
	return nil, nil
}

func (f *fakePlacements) ListExpiring(from, until time.Time) ([]dbmodels.Placement, error) {
	return nil, nil
}

type fakeEvents struct {
	mu    sync.Mutex
	count int
}

func (f *fakeEvents) Publish(eventType models.EventType, payload models.EventPayload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
}

var company = models.Actor{UserID: "u-co", Role: models.CompanyRole, EntityID: "CO"}

func newTestHandler() (Provider, *fakeStore, *fakeEvents) {
	store := &fakeStore{}
	publisher := &fakeEvents{}
	recruiterID := "R1"
	placements := &fakePlacements{list: map[string]dbmodels.Placement{
		"P": {BaseModel: dbmodels.BaseModel{ID: "P"}, CompanyID: "CO", RecruiterID: &recruiterID, State: models.PlacementActive},
	}}
	return NewProvider(store, placements, publisher, models.WorkflowSettings{}), store, publisher
}

func TestAddCollaborator(t *testing.T) {
	t.Run(`ceiling is enforced`, func(t *testing.T) {
		h, store, publisher := newTestHandler()
		_, err := h.AddCollaborator(company, AddRequest{PlacementID: "P", RecruiterID: "R1", Role: models.CollaboratorSourcer, SplitPercentage: 50})
		require.NoError(t, err)
		_, err = h.AddCollaborator(company, AddRequest{PlacementID: "P", RecruiterID: "R2", Role: models.CollaboratorSubmitter, SplitPercentage: 40})
		require.NoError(t, err)
		require.Equal(t, 90.0, store.sum("P"))

		_, err = h.AddCollaborator(company, AddRequest{PlacementID: "P", RecruiterID: "R3", Role: models.CollaboratorCloser, SplitPercentage: 10})
		require.NoError(t, err)
		require.Equal(t, 100.0, store.sum("P"))

		_, err = h.AddCollaborator(company, AddRequest{PlacementID: "P", RecruiterID: "R4", Role: models.CollaboratorSupport, SplitPercentage: 1})
		require.True(t, apperrors.IsBusinessRule(err))
		require.Len(t, store.list, 3)
		require.Equal(t, 3, publisher.count)
	})
	t.Run(`concurrent additions never pass the ceiling`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		var wg sync.WaitGroup
		for n := 0; n < 20; n++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				_, _ = h.AddCollaborator(company, AddRequest{
					PlacementID:     "P",
					RecruiterID:     fmt.Sprintf("R%d", n),
					Role:            models.CollaboratorSupport,
					SplitPercentage: 15,
				})
			}(n)
		}
		wg.Wait()
		require.LessOrEqual(t, store.sum("P"), 100.0)
		require.Len(t, store.list, 6)
	})
	t.Run(`sub hundredth splits are rejected`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		_, err := h.AddCollaborator(company, AddRequest{PlacementID: "P", RecruiterID: "R1", Role: models.CollaboratorSourcer, SplitPercentage: 100})
		require.NoError(t, err)
		_, err = h.AddCollaborator(company, AddRequest{PlacementID: "P", RecruiterID: "R2", Role: models.CollaboratorSupport, SplitPercentage: 0.004})
		require.True(t, apperrors.IsBusinessRule(err))
		require.Equal(t, 100.0, store.sum("P"))
	})
	t.Run(`validation`, func(t *testing.T) {
		h, _, _ := newTestHandler()
		_, err := h.AddCollaborator(company, AddRequest{PlacementID: "X", RecruiterID: "R1", Role: models.CollaboratorSourcer, SplitPercentage: 10})
		require.True(t, apperrors.IsNotFound(err))
		_, err = h.AddCollaborator(company, AddRequest{PlacementID: "P", RecruiterID: "R1", Role: "lead", SplitPercentage: 10})
		require.True(t, apperrors.IsBusinessRule(err))
		_, err = h.AddCollaborator(company, AddRequest{PlacementID: "P", RecruiterID: "R1", Role: models.CollaboratorSourcer, SplitPercentage: 0})
		require.True(t, apperrors.IsBusinessRule(err))
		_, err = h.AddCollaborator(company, AddRequest{PlacementID: "P", RecruiterID: "R1", Role: models.CollaboratorSourcer, SplitPercentage: 101})
		require.True(t, apperrors.IsBusinessRule(err))
		stranger := models.Actor{UserID: "u-r9", Role: models.RecruiterRole, EntityID: "R9"}
		_, err = h.AddCollaborator(stranger, AddRequest{PlacementID: "P", RecruiterID: "R9", Role: models.CollaboratorSourcer, SplitPercentage: 10})
		require.True(t, apperrors.IsForbidden(err))
	})
}

func TestListCollaborators(t *testing.T) {
	h, _, _ := newTestHandler()
	_, err := h.AddCollaborator(company, AddRequest{PlacementID: "P", RecruiterID: "R2", Role: models.CollaboratorCloser, SplitPercentage: 20})
	require.NoError(t, err)

	collaborator := models.Actor{UserID: "u-r2", Role: models.RecruiterRole, EntityID: "R2"}
	list, err := h.ListCollaborators(collaborator, "P")
	require.NoError(t, err)
	require.Len(t, list, 1)

	stranger := models.Actor{UserID: "u-r9", Role: models.RecruiterRole, EntityID: "R9"}
	_, err = h.ListCollaborators(stranger, "P")
	require.True(t, apperrors.IsForbidden(err))
}

func TestCalculateRecommendedSplits(t *testing.T) {
	defaults := models.WorkflowSettings{}.WithDefaults().RoleWeights

	t.Run(`default weights`, func(t *testing.T) {
		list, err := CalculateRecommendedSplits(10000, []models.CollaboratorRole{
			models.CollaboratorSourcer, models.CollaboratorSubmitter, models.CollaboratorCloser, models.CollaboratorSupport,
		}, defaults, nil)
		require.NoError(t, err)
		require.Len(t, list, 4)
		require.Equal(t, 40.0, list[0].SplitPercentage)
		require.Equal(t, 4000.0, list[0].SplitAmount)
		require.Equal(t, 10.0, list[3].SplitPercentage)
		require.Equal(t, 1000.0, list[3].SplitAmount)
	})
	t.Run(`rounded to cents`, func(t *testing.T) {
		list, err := CalculateRecommendedSplits(10000, []models.CollaboratorRole{
			models.CollaboratorSourcer, models.CollaboratorSubmitter,
		}, defaults, nil)
		require.NoError(t, err)
		require.Equal(t, 57.14, list[0].SplitPercentage)
		require.Equal(t, 5714.29, list[0].SplitAmount)
		require.Equal(t, 42.86, list[1].SplitPercentage)
		require.Equal(t, 4285.71, list[1].SplitAmount)
	})
	t.Run(`override weights`, func(t *testing.T) {
		list, err := CalculateRecommendedSplits(900, []models.CollaboratorRole{
			models.CollaboratorSourcer, models.CollaboratorCloser,
		}, defaults, map[models.CollaboratorRole]float64{models.CollaboratorSourcer: 20})
		require.NoError(t, err)
		require.Equal(t, 50.0, list[0].SplitPercentage)
		require.Equal(t, 450.0, list[1].SplitAmount)
	})
	t.Run(`zero weights`, func(t *testing.T) {
		_, err := CalculateRecommendedSplits(900, []models.CollaboratorRole{models.CollaboratorSupport}, defaults,
			map[models.CollaboratorRole]float64{models.CollaboratorSupport: 0})
		require.True(t, apperrors.IsBusinessRule(err))
		_, err = CalculateRecommendedSplits(900, nil, defaults, nil)
		require.True(t, apperrors.IsBusinessRule(err))
	})
}
