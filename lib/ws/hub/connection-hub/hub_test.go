package connectionhub

import (
	"recruiting-backend/models"
	wsmodels "recruiting-backend/models/ws"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	companyA      = models.Actor{UserID: "u-co-a", Role: models.CompanyRole, EntityID: "CO-A"}
	companyB      = models.Actor{UserID: "u-co-b", Role: models.CompanyRole, EntityID: "CO-B"}
	candidate     = models.Actor{UserID: "u-cand", Role: models.CandidateRole, EntityID: "C1"}
	admin         = models.Actor{UserID: "u-adm", Role: models.AdminRole, EntityID: "u-adm"}
	placementDone = wsmodels.ServerMessage{
		Type: models.EventPlacementCompleted,
		Audience: wsmodels.AudienceOf(models.EventPayload{
			"placement_id": "P1",
			"company_id":   "CO-A",
			"fee_amount":   10000.0,
		}),
	}
)

func TestHub(t *testing.T) {
	Init()
	hub := Instance.(*impl)

	t.Run(`events reach only the parties they name`, func(t *testing.T) {
		hub.AddClient(companyA, nil)
		hub.AddClient(candidate, nil)
		require.Equal(t, 1, hub.Broadcast(placementDone))

		hub.AddClient(companyB, nil)
		require.Equal(t, 1, hub.Broadcast(placementDone))
	})
	t.Run(`admins receive every event`, func(t *testing.T) {
		hub.AddClient(admin, nil)
		require.Equal(t, 2, hub.Broadcast(placementDone))
		require.Equal(t, 1, hub.Broadcast(wsmodels.ServerMessage{Type: models.EventApplicationAccepted}))
	})
	t.Run(`reconnect replaces the old session`, func(t *testing.T) {
		old := hub.clients[companyA.UserID]
		hub.AddClient(companyA, nil)
		require.Error(t, old.ctx.Err())
		require.False(t, old.enqueue(placementDone))
		require.Len(t, hub.clients, 4)
		require.Equal(t, 2, hub.Broadcast(placementDone))
	})
	t.Run(`deleted client no longer receives`, func(t *testing.T) {
		hub.DeleteClient(admin.UserID, nil)
		hub.DeleteClient("missing", nil)
		require.Equal(t, 1, hub.Broadcast(placementDone))
		require.False(t, hub.IsConnected(admin.UserID))
	})
	t.Run(`session without a socket is not connected`, func(t *testing.T) {
		require.False(t, hub.IsConnected(companyA.UserID))
	})
}
