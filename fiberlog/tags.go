package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// data is collected per request
type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag computes the value of one log field
type FuncTag func(c *fiber.Ctx, d *data) interface{}

const (
	TagPid     = "pid"
	TagLatency = "latency"
	TagStatus  = "status"
	TagMethod  = "method"
	TagPath    = "path"
	TagURL     = "url"
	TagIP      = "ip"
	TagUA      = "user_agent"
	TagBody    = "body"
	TagResBody = "res_body"
	RequestID  = "request_id"
)

const maxBodyLogSize = 4096

var tagFuncs = map[string]FuncTag{
	TagPid: func(c *fiber.Ctx, d *data) interface{} {
		return d.pid
	},
	TagLatency: func(c *fiber.Ctx, d *data) interface{} {
		return d.end.Sub(d.start).String()
	},
	TagStatus: func(c *fiber.Ctx, d *data) interface{} {
		return c.Response().StatusCode()
	},
	TagMethod: func(c *fiber.Ctx, d *data) interface{} {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, d *data) interface{} {
		return c.Path()
	},
	TagURL: func(c *fiber.Ctx, d *data) interface{} {
		return c.OriginalURL()
	},
	TagIP: func(c *fiber.Ctx, d *data) interface{} {
		return c.IP()
	},
	TagUA: func(c *fiber.Ctx, d *data) interface{} {
		return c.Get(fiber.HeaderUserAgent)
	},
	TagBody: func(c *fiber.Ctx, d *data) interface{} {
		return truncate(c.Body())
	},
	TagResBody: func(c *fiber.Ctx, d *data) interface{} {
		return truncate(c.Response().Body())
	},
	RequestID: func(c *fiber.Ctx, d *data) interface{} {
		if id := c.Get(fiber.HeaderXRequestID); id != "" {
			return id
		}
		return c.GetRespHeader(fiber.HeaderXRequestID)
	},
}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	ftm := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := tagFuncs[tag]; ok {
			ftm[tag] = ft
		}
	}
	return ftm
}

func truncate(body []byte) string {
	if len(body) > maxBodyLogSize {
		return string(body[:maxBodyLogSize]) + "..."
	}
	return string(body)
}
