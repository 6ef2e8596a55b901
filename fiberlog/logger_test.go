package fiberlog

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	app := fiber.New()
	app.Use(New(Config{Logger: logger, Tags: []string{TagStatus, TagMethod, TagRoute}, Skip: []string{"/metrics"}}))
	app.Get("/job/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run(`request is logged`, func(t *testing.T) {
		hook.Reset()
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/job/1", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		require.Len(t, hook.AllEntries(), 1)
		entry := hook.LastEntry()
		require.Equal(t, logrus.WarnLevel, entry.Level)
		require.Equal(t, fiber.StatusNotFound, entry.Data[TagStatus])
		require.Equal(t, "/job/:id", entry.Data[TagRoute])
	})

	t.Run(`skipped path`, func(t *testing.T) {
		hook.Reset()
		_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
		require.Nil(t, err)
		require.Empty(t, hook.AllEntries())
	})
}
