package connectionhub

import (
	"context"
	"recruiting-backend/models"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	sendBufferSize = 64
	writeTimeout   = 10 * time.Second
)

// clientSession owns the write side of one subscriber connection.
type clientSession struct {
	actor     models.Actor
	conn      *websocket.Conn
	queue     chan any
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newSession(actor models.Actor, conn *websocket.Conn) *clientSession {
	ctx, cancel := context.WithCancel(context.Background())
	sess := &clientSession{
		actor:  actor,
		conn:   conn,
		queue:  make(chan any, sendBufferSize),
		ctx:    ctx,
		cancel: cancel,
	}
	go sess.writeLoop()
	return sess
}

func (s *clientSession) stop() {
	s.cancel()
}

func (s *clientSession) connected() bool {
	return s.conn != nil && s.conn.Conn != nil && s.ctx.Err() == nil
}

// enqueue never blocks the publisher, a full buffer counts as not delivered.
func (s *clientSession) enqueue(msg any) bool {
	if s.ctx.Err() != nil {
		return false
	}
	select {
	case s.queue <- msg:
		return true
	default:
		return false
	}
}

func (s *clientSession) writeLoop() {
	for {
		select {
		case <-s.ctx.Done():
			s.close()
			return
		case msg := <-s.queue:
			if err := s.write(msg); err != nil {
				log.WithError(err).Warn("failed to send event to subscriber, dropping session")
				s.cancel()
			}
		}
	}
}

func (s *clientSession) write(msg any) error {
	if s.conn == nil || s.conn.Conn == nil {
		return nil
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return s.conn.WriteJSON(msg)
}

func (s *clientSession) close() {
	s.closeOnce.Do(func() {
		if s.conn == nil || s.conn.Conn == nil {
			return
		}
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if err := s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
			log.WithError(err).Debug("close frame not sent")
		}
	})
}
