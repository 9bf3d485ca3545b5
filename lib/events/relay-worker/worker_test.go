package relayworker

import (
	"context"
	baseworker "recruiting-backend/lib/utils/base-worker"
	"recruiting-backend/models"
	dbmodels "recruiting-backend/models/db"
	wsmodels "recruiting-backend/models/ws"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	pending   []dbmodels.DomainEvent
	delivered []string
	attempted []string
}

func (f *fakeStore) Create(rec dbmodels.DomainEvent) (string, error) {
	return "", nil
}

func (f *fakeStore) ListUndelivered(limit, maxAttempts int) ([]dbmodels.DomainEvent, error) {
	return f.pending, nil
}

func (f *fakeStore) MarkDelivered(ids []string, at time.Time) error {
	f.delivered = append(f.delivered, ids...)
	return nil
}

func (f *fakeStore) IncAttempts(ids []string) error {
	f.attempted = append(f.attempted, ids...)
	return nil
}

type fakeHub struct {
	accept map[models.EventType]bool
	sent   []wsmodels.ServerMessage
}

func (f *fakeHub) Broadcast(msg wsmodels.ServerMessage) int {
	f.sent = append(f.sent, msg)
	if f.accept[msg.Type] {
		return 1
	}
	return 0
}

func TestRelay(t *testing.T) {
	store := &fakeStore{pending: []dbmodels.DomainEvent{
		{BaseModel: dbmodels.BaseModel{ID: "e1"}, EventType: models.EventApplicationCreated, Payload: dbmodels.JSONMap{"application_id": "a", "company_id": "co"}},
		{BaseModel: dbmodels.BaseModel{ID: "e2"}, EventType: models.EventPlacementFailed, Payload: dbmodels.JSONMap{"placement_id": "p"}},
	}}
	hub := &fakeHub{accept: map[models.EventType]bool{models.EventApplicationCreated: true}}
	i := &impl{
		BaseImpl:    *baseworker.NewInstance("relay-test", 0, time.Second),
		store:       store,
		hub:         hub,
		batchSize:   10,
		maxAttempts: 5,
		now:         time.Now,
	}
	i.handle(context.Background())

	require.Equal(t, []string{"e1"}, store.delivered)
	require.Equal(t, []string{"e2"}, store.attempted)
	require.Len(t, hub.sent, 2)
	require.Equal(t, "a", hub.sent[0].Payload["application_id"])
	require.Equal(t, []string{"co"}, hub.sent[0].Audience.Companies)
}
