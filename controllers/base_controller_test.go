package controllers

import (
	"io"
	"net/http/httptest"
	apperrors "recruiting-backend/lib/utils/app-errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestSendError(t *testing.T) {
	c := BaseAPIController{}
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", apperrors.NotFound("application not found"), fiber.StatusNotFound, "NOT_FOUND"},
		{"invalid transition", apperrors.InvalidTransition("cannot move"), fiber.StatusConflict, "INVALID_TRANSITION"},
		{"forbidden", apperrors.Forbidden("not yours"), fiber.StatusForbidden, "FORBIDDEN"},
		{"business rule", errors.Wrap(apperrors.BusinessRule("over allocation"), "add collaborator"), fiber.StatusUnprocessableEntity, "BUSINESS_RULE"},
		{"internal", errors.New("pq: connection refused"), fiber.StatusInternalServerError, "internal error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(ctx *fiber.Ctx) error {
				return c.SendError(ctx, log.NewEntry(log.StandardLogger()), tc.err, "operation failed")
			})
			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			require.Contains(t, string(body), tc.body)
			require.NotContains(t, string(body), "pq:")
		})
	}
}

func TestGetParam(t *testing.T) {
	c := BaseAPIController{}
	app := fiber.New()
	app.Get("/items/:id", func(ctx *fiber.Ctx) error {
		id, err := c.GetID(ctx)
		if err != nil {
			return c.SendBadRequest(ctx, err)
		}
		_, err = c.GetParam(ctx, "other")
		require.Error(t, err)
		return ctx.SendString(id)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/items/A1", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, "A1", string(body))
}
