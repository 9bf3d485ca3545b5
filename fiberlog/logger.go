package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// New creates a new middleware handler
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) != 0 {
		cfg = config[0]
	}
	if cfg.Logger == nil {
		cfg.Logger = log.StandardLogger()
	}
	if cfg.Skip == nil {
		cfg.Skip = skipPreflight
	}
	pid := os.Getpid()
	tags := getFuncTagMap(cfg)
	return func(c *fiber.Ctx) error {
		d := &data{pid: pid, start: time.Now()}
		err := c.Next()
		d.end = time.Now()
		if cfg.Skip(c) {
			return err
		}
		cfg.Logger.WithFields(collectFields(tags, c, d)).Log(levelFor(c.Response().StatusCode()), requestMessage(c))
		return err
	}
}

// collectFields evaluates every tag, empty strings are left out.
func collectFields(tags map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	fields := make(log.Fields, len(tags))
	for name, tag := range tags {
		value := tag(c, d)
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		fields[name] = value
	}
	return fields
}

func levelFor(status int) log.Level {
	switch {
	case status >= fiber.StatusInternalServerError:
		return log.ErrorLevel
	case status >= fiber.StatusMultipleChoices:
		return log.WarnLevel
	}
	return log.InfoLevel
}

func requestMessage(c *fiber.Ctx) string {
	if route := c.Route(); route != nil && route.Path != "" {
		return "api request " + route.Path
	}
	return "api request"
}
