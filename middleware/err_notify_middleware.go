package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type errNotification struct {
	Code   int    `json:"code"`
	Method string `json:"method"`
	Path   string `json:"path"`
	Error  string `json:"error"`
}

// ErrNotify posts every 5xx response to an alerting webhook.
func ErrNotify(addr string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		statusCode := c.Response().StatusCode()
		if statusCode < http.StatusInternalServerError {
			return err
		}

		var data struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}
		body := c.Response().Body()
		if unmErr := json.Unmarshal(body, &data); unmErr != nil {
			log.WithError(unmErr).Warn("failed to decode response body for error notification")
		}
		notification := errNotification{
			Code:   statusCode,
			Method: c.Method(),
			Path:   c.OriginalURL(),
			Error:  data.Message,
		}
		if r := c.Route(); r != nil {
			notification.Path = r.Path
		}
		if notification.Error == "" {
			notification.Error = string(body)
		}

		go func() {
			payload, mErr := json.Marshal(notification)
			if mErr != nil {
				return
			}
			resp, reqErr := http.Post(addr, fiber.MIMEApplicationJSON, strings.NewReader(string(payload)))
			if reqErr != nil {
				log.WithError(reqErr).Warn("failed to send error notification")
				return
			}
			resp.Body.Close()
		}()
		return err
	}
}
