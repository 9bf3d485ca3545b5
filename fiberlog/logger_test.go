package fiberlog

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	out := new(bytes.Buffer)
	logger := log.New()
	logger.SetOutput(out)
	logger.SetFormatter(&log.JSONFormatter{})

	app := fiber.New()
	app.Use(New(Config{Logger: logger, Tags: []string{TagMethod, TagPath, TagStatus, TagBody}}))
	app.Post("/ping", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})
	app.Get("/broken", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusInternalServerError)
	})

	t.Run(`success logged at info with tags`, func(t *testing.T) {
		out.Reset()
		resp, err := app.Test(httptest.NewRequest("POST", "/ping", strings.NewReader(`{"a":1}`)))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		line := out.String()
		require.Contains(t, line, `"level":"info"`)
		require.Contains(t, line, `"method":"POST"`)
		require.Contains(t, line, `"path":"/ping"`)
		require.Contains(t, line, `"status":200`)
	})
	t.Run(`error status logged at warn`, func(t *testing.T) {
		out.Reset()
		_, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
		require.NoError(t, err)
		require.Contains(t, out.String(), `"level":"warning"`)
	})
	t.Run(`server error logged at error`, func(t *testing.T) {
		out.Reset()
		_, err := app.Test(httptest.NewRequest("GET", "/broken", nil))
		require.NoError(t, err)
		require.Contains(t, out.String(), `"level":"error"`)
	})
	t.Run(`preflight not logged`, func(t *testing.T) {
		out.Reset()
		_, err := app.Test(httptest.NewRequest("OPTIONS", "/ping", nil))
		require.NoError(t, err)
		require.Empty(t, out.String())
	})
}

func TestTruncate(t *testing.T) {
	long := bytes.Repeat([]byte("x"), maxBodyLogSize+10)
	require.Len(t, truncate(long), maxBodyLogSize+3)
	require.Equal(t, "short", truncate([]byte("short")))
}
