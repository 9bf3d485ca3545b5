package candidateownership

import (
	"fmt"
	apperrors "recruiting-backend/lib/utils/app-errors"
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeCandidates struct {
	list map[string]dbmodels.Candidate
}

func (f *fakeCandidates) GetByID(id string) (*dbmodels.Candidate, error) {
	rec, ok := f.list[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeCandidates) GetByUserID(userID string) (*dbmodels.Candidate, error) {
	return nil, nil
}

type fakeSourcers struct {
	list []dbmodels.CandidateSourcer
}

func (f *fakeSourcers) GetLatest(candidateID string) (*dbmodels.CandidateSourcer, error) {
	var latest *dbmodels.CandidateSourcer
	for idx := range f.list {
		rec := f.list[idx]
		if rec.CandidateID != candidateID {
			continue
		}
		if latest == nil || rec.SourcedAt.After(latest.SourcedAt) {
			latest = &rec
		}
	}
	return latest, nil
}

func (f *fakeSourcers) CreateIfUnprotected(rec dbmodels.CandidateSourcer, now time.Time) (*dbmodels.CandidateSourcer, bool, error) {
	existing, _ := f.GetLatest(rec.CandidateID)
	if existing != nil && existing.IsProtected(now) {
		if existing.SourcerID != rec.SourcerID {
			return existing, false, apperrors.ErrProtected
		}
		return existing, false, nil
	}
	rec.ID = fmt.Sprintf("src-%d", len(f.list)+1)
	f.list = append(f.list, rec)
	return &rec, true, nil
}

func (f *fakeSourcers) activeCount(candidateID string, now time.Time) int {
	count := 0
	for _, rec := range f.list {
		if rec.CandidateID == candidateID && rec.IsProtected(now) {
			count++
		}
	}
	return count
}

type fakeOutreach struct {
	list map[string]dbmodels.CandidateOutreach
}

func (f *fakeOutreach) Create(rec dbmodels.CandidateOutreach) (string, error) {
	if f.list == nil {
		f.list = map[string]dbmodels.CandidateOutreach{}
	}
	rec.ID = fmt.Sprintf("out-%d", len(f.list)+1)
	f.list[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeOutreach) GetByID(id string) (*dbmodels.CandidateOutreach, error) {
	rec, ok := f.list[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeOutreach) Update(id string, updMap map[string]any) error {
	rec := f.list[id]
	for key, value := range updMap {
		switch key {
		case "opened_at":
			t := value.(time.Time)
			rec.OpenedAt = &t
		case "replied_at":
			t := value.(time.Time)
			rec.RepliedAt = &t
		case "bounced":
			rec.Bounced = value.(bool)
		}
	}
	f.list[id] = rec
	return nil
}

func (f *fakeOutreach) ListByCandidate(candidateID string) ([]dbmodels.CandidateOutreach, error) {
	result := []dbmodels.CandidateOutreach{}
	for _, rec := range f.list {
		if rec.CandidateID == candidateID {
			result = append(result, rec)
		}
	}
	return result, nil
}

type publishedEvent struct {
	eventType models.EventType
	payload   models.EventPayload
}

type fakeEvents struct {
	list []publishedEvent
}

func (f *fakeEvents) Publish(eventType models.EventType, payload models.EventPayload) {
	f.list = append(f.list, publishedEvent{eventType: eventType, payload: payload})
}

func (f *fakeEvents) count(eventType models.EventType) int {
	count := 0
	for _, e := range f.list {
		if e.eventType == eventType {
			count++
		}
	}
	return count
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) SendEMail(senderName, to, subject, message string) error {
	f.sent = append(f.sent, to)
	return f.err
}

type testEnv struct {
	handler  Provider
	sourcers *fakeSourcers
	outreach *fakeOutreach
	events   *fakeEvents
	mailer   *fakeMailer
	now      time.Time
}

func newTestEnv() *testEnv {
	env := &testEnv{
		sourcers: &fakeSourcers{},
		outreach: &fakeOutreach{},
		events:   &fakeEvents{},
		mailer:   &fakeMailer{},
		now:      time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
	}
	candidates := &fakeCandidates{list: map[string]dbmodels.Candidate{
		"C": {BaseModel: dbmodels.BaseModel{ID: "C"}, FirstName: "Jane", Email: "jane@example.com"},
	}}
	env.handler = NewProvider(Deps{
		Candidates: candidates,
		Sourcers:   env.sourcers,
		Outreach:   env.outreach,
		Events:     env.events,
		Mailer:     env.mailer,
		Now:        func() time.Time { return env.now },
	}, models.WorkflowSettings{})
	return env
}

func TestFirstContactSources(t *testing.T) {
	require.True(t, FirstContactSources(nil))
	require.False(t, FirstContactSources(&dbmodels.CandidateSourcer{SourcerID: "R1"}))
}

func TestRecordOutreach(t *testing.T) {
	t.Run(`first outreach sources the candidate and blocks others`, func(t *testing.T) {
		env := newTestEnv()
		rec, err := env.handler.RecordOutreach(OutreachRequest{CandidateID: "C", RecruiterID: "R1", Subject: "Hi", Body: "Role"})
		require.NoError(t, err)
		require.Equal(t, "R1", rec.RecruiterID)

		sourcer, err := env.handler.GetSourcer("C")
		require.NoError(t, err)
		require.NotNil(t, sourcer)
		require.Equal(t, "R1", sourcer.SourcerID)
		require.Equal(t, FirstOutreachNote, sourcer.Notes)
		require.Equal(t, 365, sourcer.ProtectionWindowDays)
		require.Equal(t, env.now.AddDate(0, 0, 365), sourcer.ProtectionExpiresAt)
		require.Equal(t, 1, env.events.count(models.EventCandidateSourced))
		require.Equal(t, 1, env.events.count(models.EventCandidateOutreachSent))
		require.Equal(t, []string{"jane@example.com"}, env.mailer.sent)

		_, err = env.handler.SourceCandidate(SourceRequest{CandidateID: "C", SourcerID: "R2"})
		require.True(t, apperrors.IsBusinessRule(err))
		require.Equal(t, 1, env.sourcers.activeCount("C", env.now))
	})
	t.Run(`second outreach by the sourcer does not source again`, func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.RecordOutreach(OutreachRequest{CandidateID: "C", RecruiterID: "R1"})
		require.NoError(t, err)
		_, err = env.handler.RecordOutreach(OutreachRequest{CandidateID: "C", RecruiterID: "R1"})
		require.NoError(t, err)
		require.Len(t, env.sourcers.list, 1)
		require.Equal(t, 2, env.events.count(models.EventCandidateOutreachSent))
	})
	t.Run(`outreach to a protected candidate is forbidden`, func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.SourceCandidate(SourceRequest{CandidateID: "C", SourcerID: "R1"})
		require.NoError(t, err)
		_, err = env.handler.RecordOutreach(OutreachRequest{CandidateID: "C", RecruiterID: "R2"})
		require.True(t, apperrors.IsForbidden(err))
		require.Empty(t, env.outreach.list)
	})
	t.Run(`expired protection allows outreach without sourcing`, func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.SourceCandidate(SourceRequest{CandidateID: "C", SourcerID: "R1", WindowDays: 10})
		require.NoError(t, err)
		env.now = env.now.AddDate(0, 0, 11)
		_, err = env.handler.RecordOutreach(OutreachRequest{CandidateID: "C", RecruiterID: "R2"})
		require.NoError(t, err)
		require.Len(t, env.sourcers.list, 1)
	})
	t.Run(`mail failure does not fail the outreach`, func(t *testing.T) {
		env := newTestEnv()
		env.mailer.err = fmt.Errorf("smtp down")
		_, err := env.handler.RecordOutreach(OutreachRequest{CandidateID: "C", RecruiterID: "R1"})
		require.NoError(t, err)
		require.Len(t, env.outreach.list, 1)
	})
	t.Run(`unknown candidate`, func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.RecordOutreach(OutreachRequest{CandidateID: "X", RecruiterID: "R1"})
		require.True(t, apperrors.IsNotFound(err))
	})
}

func TestSourceCandidate(t *testing.T) {
	t.Run(`same sourcer while protected is a no-op`, func(t *testing.T) {
		env := newTestEnv()
		first, err := env.handler.SourceCandidate(SourceRequest{CandidateID: "C", SourcerID: "R1"})
		require.NoError(t, err)
		second, err := env.handler.SourceCandidate(SourceRequest{CandidateID: "C", SourcerID: "R1"})
		require.NoError(t, err)
		require.Equal(t, first.ID, second.ID)
		require.Len(t, env.sourcers.list, 1)
		require.Equal(t, 1, env.events.count(models.EventCandidateSourced))
	})
	t.Run(`new sourcer after expiry`, func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.SourceCandidate(SourceRequest{CandidateID: "C", SourcerID: "R1", WindowDays: 30})
		require.NoError(t, err)
		env.now = env.now.AddDate(0, 0, 30)
		rec, err := env.handler.SourceCandidate(SourceRequest{CandidateID: "C", SourcerID: "R2"})
		require.NoError(t, err)
		require.Equal(t, "R2", rec.SourcerID)
		require.Equal(t, 1, env.sourcers.activeCount("C", env.now))
	})
	t.Run(`invalid sourcer type`, func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.SourceCandidate(SourceRequest{CandidateID: "C", SourcerID: "R1", SourcerType: "agency"})
		require.True(t, apperrors.IsBusinessRule(err))
	})
}

func TestCanWorkWith(t *testing.T) {
	env := newTestEnv()
	ok, err := env.handler.CanWorkWith("C", "R2")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = env.handler.SourceCandidate(SourceRequest{CandidateID: "C", SourcerID: "R1", WindowDays: 5})
	require.NoError(t, err)
	ok, _ = env.handler.CanWorkWith("C", "R1")
	require.True(t, ok)
	ok, _ = env.handler.CanWorkWith("C", "R2")
	require.False(t, ok)

	env.now = env.now.AddDate(0, 0, 5)
	ok, _ = env.handler.CanWorkWith("C", "R2")
	require.True(t, ok)
}

func TestListOutreach(t *testing.T) {
	env := newTestEnv()
	_, err := env.handler.RecordOutreach(OutreachRequest{CandidateID: "C", RecruiterID: "R1", Subject: "First"})
	require.NoError(t, err)
	env.now = env.now.AddDate(2, 0, 0)
	_, err = env.handler.RecordOutreach(OutreachRequest{CandidateID: "C", RecruiterID: "R2", Subject: "Second"})
	require.NoError(t, err)

	t.Run(`recruiter sees only own outreach`, func(t *testing.T) {
		list, err := env.handler.ListOutreach(models.Actor{UserID: "u-r2", Role: models.RecruiterRole, EntityID: "R2"}, "C")
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "Second", list[0].Subject)

		list, err = env.handler.ListOutreach(models.Actor{UserID: "u-r3", Role: models.RecruiterRole, EntityID: "R3"}, "C")
		require.NoError(t, err)
		require.Empty(t, list)
	})
	t.Run(`admin sees everything`, func(t *testing.T) {
		list, err := env.handler.ListOutreach(models.Actor{UserID: "adm", Role: models.AdminRole, EntityID: "adm"}, "C")
		require.NoError(t, err)
		require.Len(t, list, 2)
	})
	t.Run(`other roles are forbidden`, func(t *testing.T) {
		_, err := env.handler.ListOutreach(models.Actor{UserID: "u-c", Role: models.CandidateRole, EntityID: "C"}, "C")
		require.True(t, apperrors.IsForbidden(err))
	})
	t.Run(`unknown candidate`, func(t *testing.T) {
		_, err := env.handler.ListOutreach(models.Actor{UserID: "u-r1", Role: models.RecruiterRole, EntityID: "R1"}, "X")
		require.True(t, apperrors.IsNotFound(err))
	})
}

func TestUpdateEngagement(t *testing.T) {
	env := newTestEnv()
	rec, err := env.handler.RecordOutreach(OutreachRequest{CandidateID: "C", RecruiterID: "R1"})
	require.NoError(t, err)

	opened := env.now
	updated, err := env.handler.UpdateEngagement(rec.ID, EngagementUpdate{Opened: true})
	require.NoError(t, err)
	require.Equal(t, opened, *updated.OpenedAt)

	env.now = env.now.Add(time.Hour)
	updated, err = env.handler.UpdateEngagement(rec.ID, EngagementUpdate{Opened: true, Replied: true, Bounced: true})
	require.NoError(t, err)
	require.Equal(t, opened, *updated.OpenedAt)
	require.Equal(t, env.now, *updated.RepliedAt)
	require.True(t, updated.Bounced)

	_, err = env.handler.UpdateEngagement("missing", EngagementUpdate{Opened: true})
	require.True(t, apperrors.IsNotFound(err))
}
