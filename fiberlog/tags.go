package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid     = "pid"
	TagStatus  = "status"
	TagLatency = "latency"
	TagMethod  = "method"
	TagPath    = "path"
	TagRoute   = "route"
	TagIP      = "ip"
	TagQuery   = "query"
	TagBytes   = "bytes_sent"
	TagError   = "error"
	TagUserID  = "user_id"
	TagOrgID   = "org_id"
)

// FuncTag - значение поля лога для запроса
type FuncTag func(c *fiber.Ctx, d *data) interface{}

type data struct {
	pid   int
	start time.Time
	end   time.Time
	err   error
}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(_ *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagStatus: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Response().StatusCode()
		},
		TagLatency: func(_ *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagMethod: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Path()
		},
		TagRoute: func(c *fiber.Ctx, _ *data) interface{} {
			if r := c.Route(); r != nil {
				return r.Path
			}
			return ""
		},
		TagIP: func(c *fiber.Ctx, _ *data) interface{} {
			return c.IP()
		},
		TagQuery: func(c *fiber.Ctx, _ *data) interface{} {
			return string(c.Request().URI().QueryString())
		},
		TagBytes: func(c *fiber.Ctx, _ *data) interface{} {
			return len(c.Response().Body())
		},
		TagError: func(_ *fiber.Ctx, d *data) interface{} {
			if d.err != nil {
				return d.err.Error()
			}
			return ""
		},
		TagUserID: func(c *fiber.Ctx, _ *data) interface{} {
			return claim(c, "sub")
		},
		TagOrgID: func(c *fiber.Ctx, _ *data) interface{} {
			return claim(c, "org")
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}
