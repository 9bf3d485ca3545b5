package connectionhub

import (
	"sync"

	"recruiting-backend/models"
	wsmodels "recruiting-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
)

// Provider keeps live event subscribers, one session per user.
type Provider interface {
	AddClient(actor models.Actor, conn *websocket.Conn)
	// DeleteClient is a no-op when the session of userID was replaced by a newer conn.
	DeleteClient(userID string, conn *websocket.Conn)
	// Broadcast enqueues msg for the sessions in its audience and returns how many accepted it.
	Broadcast(msg wsmodels.ServerMessage) (delivered int)
	IsConnected(userID string) bool
}

var Instance Provider

func Init() {
	Instance = &impl{
		clients: map[string]*clientSession{},
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[string]*clientSession // by user id
}

func (i *impl) DeleteClient(userID string, conn *websocket.Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[userID]
	if !ok || sess.conn != conn {
		return
	}
	delete(i.clients, userID)
	sess.stop()
}

func (i *impl) AddClient(actor models.Actor, conn *websocket.Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	oldSess, ok := i.clients[actor.UserID]
	if ok {
		oldSess.stop()
	}
	i.clients[actor.UserID] = newSession(actor, conn)
}

func (i *impl) Broadcast(msg wsmodels.ServerMessage) (delivered int) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for userID, sess := range i.clients {
		if !msg.Audience.Includes(sess.actor) {
			continue
		}
		msg.ToUserID = userID
		if sess.enqueue(msg) {
			delivered++
		}
	}
	return delivered
}

func (i *impl) IsConnected(userID string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	sess, ok := i.clients[userID]
	return ok && sess.connected()
}
