package fiberlog

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Config is config for middleware
type Config struct {
	// Logger falls back to the standard logrus logger when nil.
	Logger *logrus.Logger
	Tags   []string
	// Skip drops the access line for matching requests; preflight requests are skipped when nil.
	Skip func(c *fiber.Ctx) bool
}

// ConfigDefault is the default config
var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
	},
}

func skipPreflight(c *fiber.Ctx) bool {
	return c.Method() == fiber.MethodOptions
}
