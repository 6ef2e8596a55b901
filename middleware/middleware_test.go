package middleware

import (
	authutils "hr-pipeline-backend/lib/utils/auth-utils"
	"hr-pipeline-backend/models"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(WithSecret(secret), OrgRequired())
	app.Get("/org", func(ctx *fiber.Ctx) error {
		return ctx.SendString(GetUserOrg(ctx) + "/" + GetUserID(ctx))
	})
	app.Post("/template", PipelineManagerRequired(), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})
	app.Put("/job", JobManagerRequired(), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})
	return app
}

func request(t *testing.T, app *fiber.App, method, path string, role models.UserRole, orgID string) int {
	token, err := authutils.GetToken(secret, "user-1", orgID, role, time.Hour)
	require.Nil(t, err)
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.Nil(t, err)
	return resp.StatusCode
}

func TestRoles(t *testing.T) {
	app := newApp()

	t.Run(`pipeline management`, func(t *testing.T) {
		require.Equal(t, fiber.StatusOK, request(t, app, fiber.MethodPost, "/template", models.UserRoleOwner, "org-1"))
		require.Equal(t, fiber.StatusOK, request(t, app, fiber.MethodPost, "/template", models.UserRoleHR, "org-1"))
		require.Equal(t, fiber.StatusForbidden, request(t, app, fiber.MethodPost, "/template", models.UserRoleHiringManager, "org-1"))
		require.Equal(t, fiber.StatusForbidden, request(t, app, fiber.MethodPost, "/template", models.UserRoleInterviewer, "org-1"))
	})

	t.Run(`job management`, func(t *testing.T) {
		require.Equal(t, fiber.StatusOK, request(t, app, fiber.MethodPut, "/job", models.UserRoleHiringManager, "org-1"))
		require.Equal(t, fiber.StatusForbidden, request(t, app, fiber.MethodPut, "/job", models.UserRoleInterviewer, "org-1"))
	})

	t.Run(`organization is required`, func(t *testing.T) {
		require.Equal(t, fiber.StatusForbidden, request(t, app, fiber.MethodGet, "/org", models.UserRoleOwner, ""))
	})

	t.Run(`token is required`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/org", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestWithBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Use(WithBodyLimit(8))
	app.Post("/", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader("1234")))
	require.Nil(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader("1234567890")))
	require.Nil(t, err)
	require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
}
