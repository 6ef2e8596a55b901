package controllers

import (
	"encoding/json"
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestSendError(t *testing.T) {
	c := BaseAPIController{}
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", errors.Wrap(models.NewValidationError("name", "не указано название"), "ошибка"), fiber.StatusBadRequest},
		{"protected stage", models.ProtectedStageError{StageID: "s1"}, fiber.StatusBadRequest},
		{"protected template", models.ProtectedTemplateError{TemplateID: "t1"}, fiber.StatusBadRequest},
		{"not found", models.NewNotFoundError("вакансия", "j1"), fiber.StatusNotFound},
		{"conflict", models.SyncConflictError{JobID: "j1"}, fiber.StatusConflict},
		{"reorder", models.ReorderPersistenceError{Confirmed: []string{"a", "b"}, Cause: errors.New("timeout")}, fiber.StatusInternalServerError},
		{"internal", errors.New("pq: connection refused"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(ctx *fiber.Ctx) error {
				return c.SendError(ctx, c.GetLogger(ctx), tc.err, "Ошибка операции")
			})
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			require.Nil(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.Nil(t, err)
			var result apimodels.Response
			require.Nil(t, json.Unmarshal(body, &result))
			require.Equal(t, "fail", result.Status)
			switch tc.name {
			case "validation":
				require.Equal(t, "не указано название", result.Message)
				require.Equal(t, map[string]interface{}{"field": "name"}, result.Data)
			case "reorder":
				require.Equal(t, []interface{}{"a", "b"}, result.Data)
			case "internal":
				require.Equal(t, "Ошибка операции", result.Message)
			}
		})
	}
}

func TestGetID(t *testing.T) {
	c := BaseAPIController{}
	app := fiber.New()
	app.Get("/:id", func(ctx *fiber.Ctx) error {
		id, err := c.GetID(ctx)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		return ctx.SendString(id)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/0b1e7f0a-1111-4000-8000-000000000001", nil))
	require.Nil(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/not-an-id", nil))
	require.Nil(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
