package wsclient

import (
	"fmt"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

func NewClient(userID string, c *websocket.Conn) *WsClient {
	return &WsClient{
		conn:   c,
		userID: userID,
	}
}

// WsClient reads the subscriber side of the socket until it is closed; subscribers only listen.
type WsClient struct {
	conn   *websocket.Conn
	userID string
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

func (c *WsClient) Dispatch() {
	for {
		if c.conn == nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				log.WithError(err).WithField("user_id", c.userID).Error("failed to read subscriber message")
			}
			break
		}
		log.WithField("ws_message", fmt.Sprintf("%s", data)).Debug("ws-msg")
	}
}
