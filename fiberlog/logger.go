package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

// getLogrusFields calls FuncTag functions on matching keys
func getLogrusFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields)
	for k, ft := range ftm {
		value := ft(c, d)
		strValue, ok := value.(string)
		if ok {
			if strValue != "" {
				f[k] = strValue
			}
		} else {
			f[k] = value
		}
	}
	return f
}

// New creates a new middleware handler
func New(config ...Config) fiber.Handler {
	var cfg Config
	if len(config) == 0 {
		cfg = ConfigDefault
	} else {
		cfg = config[0]
	}
	pid := os.Getpid()
	ftm := getFuncTagMap(cfg)
	skip := make(map[string]struct{}, len(cfg.Skip))
	for _, path := range cfg.Skip {
		skip[path] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		if _, ok := skip[c.Path()]; ok {
			return c.Next()
		}
		d := &data{pid: pid, start: time.Now()}
		d.err = c.Next()
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return d.err
		}

		message := getMessage(c)
		logger := log.StandardLogger()
		if cfg.Logger != nil {
			logger = cfg.Logger
		}
		entity := logger.WithFields(getLogrusFields(ftm, c, d))
		if d.err != nil || c.Response().StatusCode() >= fiber.StatusInternalServerError {
			entity.Error(message)
		} else if c.Response().StatusCode() >= fiber.StatusBadRequest {
			entity.Warn(message)
		} else {
			entity.Info(message)
		}
		return d.err
	}
}

func getMessage(c *fiber.Ctx) string {
	return "запрос api: " + c.Method() + " " + c.Path()
}

// claim - значение из jwt-токена, если запрос прошел авторизацию
func claim(c *fiber.Ctx, key string) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	value, _ := claims[key].(string)
	return value
}
