package apiv1

import (
	"bytes"
	"encoding/json"
	applicationhandler "hr-pipeline-backend/lib/application"
	boardevents "hr-pipeline-backend/lib/board-events"
	xlsexport "hr-pipeline-backend/lib/export/xls"
	jobhandler "hr-pipeline-backend/lib/job"
	jobactivityhandler "hr-pipeline-backend/lib/job-activity"
	pipelinehandler "hr-pipeline-backend/lib/pipeline"
	pipelinesync "hr-pipeline-backend/lib/pipeline-sync"
	scoreaggregator "hr-pipeline-backend/lib/score-aggregator"
	scorecardhandler "hr-pipeline-backend/lib/scorecard"
	authutils "hr-pipeline-backend/lib/utils/auth-utils"
	"hr-pipeline-backend/lib/utils/lock"
	"hr-pipeline-backend/lib/utils/memstore"
	"hr-pipeline-backend/middleware"
	"hr-pipeline-backend/models"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newApp(t *testing.T) *fiber.App {
	mem := memstore.New()
	events := boardevents.New(nil)
	activity := jobactivityhandler.New(mem.ActivityStore(nil))
	locker := lock.New()
	pipelinehandler.Instance = pipelinehandler.New(nil, mem.Transaction, mem.TemplateStore, mem.StageStore)
	pipelinesync.Instance = pipelinesync.New(nil, mem.Transaction, pipelinesync.Stores{
		Job:         mem.JobStore,
		Application: mem.ApplicationStore,
		Template:    mem.TemplateStore,
		Stage:       mem.StageStore,
	}, activity, events, locker, time.Second)
	jobhandler.Instance = jobhandler.New(mem.JobStore(nil), mem.TemplateStore(nil), mem.ScorecardStore(nil),
		pipelinehandler.Instance, activity, events, locker, time.Second)
	xlsexport.NewHandler()
	applicationhandler.Instance = applicationhandler.New(mem.ApplicationStore(nil), mem.JobStore(nil), xlsexport.Instance)
	scorecardhandler.Instance = scorecardhandler.New(nil, mem.Transaction, mem.ScorecardStore, mem.JobStore(nil))
	scoreaggregator.Instance = scoreaggregator.New(mem.ApplicationStore(nil), scorecardhandler.Instance, activity)

	app := fiber.New()
	space := fiber.New()
	app.Mount("/api/v1/space", space)
	space.Use(middleware.WithSecret(secret), middleware.OrgRequired())
	InitPipelineApiRouters(space)
	InitJobApiRouters(space)
	InitApplicationApiRouters(space)
	InitScorecardApiRouters(space)
	return app
}

func call(t *testing.T, app *fiber.App, role models.UserRole, method, path string, body interface{}) (int, apiResponse) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.Nil(t, err)
		reader = bytes.NewReader(data)
	}
	token, err := authutils.GetToken(secret, "user-1", "org-1", role, time.Hour)
	require.Nil(t, err)
	req := httptest.NewRequest(method, "/api/v1/space"+path, reader)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.Nil(t, err)
	result := apiResponse{}
	raw, err := io.ReadAll(resp.Body)
	require.Nil(t, err)
	if resp.Header.Get(fiber.HeaderContentType) == fiber.MIMEApplicationJSON {
		require.Nil(t, json.Unmarshal(raw, &result))
	}
	return resp.StatusCode, result
}

func TestJobFlow(t *testing.T) {
	app := newApp(t)

	status, resp := call(t, app, models.UserRoleHR, fiber.MethodPost, "/job", fiber.Map{"title": "Backend Engineer"})
	require.Equal(t, fiber.StatusOK, status, resp.Message)
	job := struct {
		ID             string `json:"id"`
		TemplateID     string `json:"template_id"`
		PipelineConfig []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"pipeline_config"`
		PipelineVersion int `json:"pipeline_version"`
	}{}
	require.Nil(t, json.Unmarshal(resp.Data, &job))
	require.NotEmpty(t, job.PipelineConfig)
	require.Equal(t, "Applied", job.PipelineConfig[0].Name)

	status, resp = call(t, app, models.UserRoleHR, fiber.MethodPost, "/job/"+job.ID+"/application", fiber.Map{"candidate_id": "cand-1"})
	require.Equal(t, fiber.StatusOK, status, resp.Message)
	application := struct {
		ID           string `json:"id"`
		CurrentStage string `json:"current_stage"`
	}{}
	require.Nil(t, json.Unmarshal(resp.Data, &application))
	require.Equal(t, job.PipelineConfig[0].ID, application.CurrentStage)

	t.Run("перевод кандидата по названию этапа", func(t *testing.T) {
		status, resp := call(t, app, models.UserRoleInterviewer, fiber.MethodPut, "/application/"+application.ID+"/move", fiber.Map{"stage_id": "Hired"})
		require.Equal(t, fiber.StatusOK, status, resp.Message)
		move := struct {
			ToStageID string `json:"to_stage_id"`
		}{}
		require.Nil(t, json.Unmarshal(resp.Data, &move))
		require.Equal(t, job.PipelineConfig[len(job.PipelineConfig)-2].ID, move.ToStageID)
	})

	t.Run("перевод на неизвестный этап", func(t *testing.T) {
		status, _ := call(t, app, models.UserRoleHR, fiber.MethodPut, "/application/"+application.ID+"/move", fiber.Map{"stage_id": "Unknown"})
		require.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("доска вакансии", func(t *testing.T) {
		status, resp := call(t, app, models.UserRoleHR, fiber.MethodGet, "/job/"+job.ID+"/board", nil)
		require.Equal(t, fiber.StatusOK, status, resp.Message)
		board := struct {
			Columns []struct {
				Applications []struct {
					ID string `json:"id"`
				} `json:"applications"`
			} `json:"columns"`
		}{}
		require.Nil(t, json.Unmarshal(resp.Data, &board))
		require.Len(t, board.Columns, len(job.PipelineConfig))
		require.Len(t, board.Columns[len(board.Columns)-2].Applications, 1)
	})

	t.Run("оценка кандидата", func(t *testing.T) {
		status, resp := call(t, app, models.UserRoleInterviewer, fiber.MethodPut, "/job/"+job.ID+"/candidate/cand-1/score",
			fiber.Map{"technical": 4, "communication": 5, "recommendation": "Yes"})
		require.Equal(t, fiber.StatusOK, status, resp.Message)
		score := struct {
			OverallScore float64 `json:"overall_score"`
		}{}
		require.Nil(t, json.Unmarshal(resp.Data, &score))
		require.Equal(t, 4.5, score.OverallScore)

		status, _ = call(t, app, models.UserRoleInterviewer, fiber.MethodPut, "/job/"+job.ID+"/candidate/cand-1/score",
			fiber.Map{"technical": 7})
		require.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("смена шаблона без подтверждения", func(t *testing.T) {
		status, resp := call(t, app, models.UserRoleHR, fiber.MethodPost, "/pipeline/template", fiber.Map{"name": "Продажи"})
		require.Equal(t, fiber.StatusOK, status, resp.Message)
		var templateID string
		require.Nil(t, json.Unmarshal(resp.Data, &templateID))

		status, _ = call(t, app, models.UserRoleHR, fiber.MethodPut, "/job/"+job.ID+"/pipeline/template",
			fiber.Map{"template_id": templateID})
		require.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("тот же шаблон без подтверждения", func(t *testing.T) {
		status, resp := call(t, app, models.UserRoleHR, fiber.MethodPut, "/job/"+job.ID+"/pipeline/template",
			fiber.Map{"template_id": job.TemplateID})
		require.Equal(t, fiber.StatusOK, status, resp.Message)
	})

	t.Run("перенос этапа вакансии", func(t *testing.T) {
		status, resp := call(t, app, models.UserRoleHR, fiber.MethodPut, "/job/"+job.ID+"/pipeline/reorder",
			fiber.Map{"from_index": 0, "to_index": 1})
		require.Equal(t, fiber.StatusOK, status, resp.Message)
		stages := []struct {
			ID string `json:"id"`
		}{}
		require.Nil(t, json.Unmarshal(resp.Data, &stages))
		require.Equal(t, job.PipelineConfig[1].ID, stages[0].ID)
		require.Equal(t, job.PipelineConfig[0].ID, stages[1].ID)
	})

	t.Run("права на изменение вакансии", func(t *testing.T) {
		status, _ := call(t, app, models.UserRoleInterviewer, fiber.MethodPost, "/job/"+job.ID+"/clone", nil)
		require.Equal(t, fiber.StatusForbidden, status)
	})

	t.Run("выгрузки", func(t *testing.T) {
		token, err := authutils.GetToken(secret, "user-1", "org-1", models.UserRoleHR, time.Hour)
		require.Nil(t, err)
		req := httptest.NewRequest(fiber.MethodGet, "/api/v1/space/job/"+job.ID+"/board/export", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".xlsx")

		req = httptest.NewRequest(fiber.MethodGet, "/api/v1/space/application/"+application.ID+"/scorecard/pdf", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err = app.Test(req, -1)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.Nil(t, err)
		require.True(t, bytes.HasPrefix(body, []byte("%PDF")))
	})
}

func TestScorecardFlow(t *testing.T) {
	app := newApp(t)
	body := fiber.Map{
		"name":       "Инженеры",
		"is_default": true,
		"sections": []fiber.Map{
			{"key": "tech", "label": "Технические навыки", "weight": 2},
			{"key": "comm", "label": "Коммуникация"},
		},
	}

	status, _ := call(t, app, models.UserRoleInterviewer, fiber.MethodPost, "/scorecard/template", body)
	require.Equal(t, fiber.StatusForbidden, status)

	status, resp := call(t, app, models.UserRoleHR, fiber.MethodPost, "/scorecard/template", body)
	require.Equal(t, fiber.StatusOK, status, resp.Message)
	var scorecardID string
	require.Nil(t, json.Unmarshal(resp.Data, &scorecardID))

	status, resp = call(t, app, models.UserRoleInterviewer, fiber.MethodGet, "/scorecard/template/"+scorecardID, nil)
	require.Equal(t, fiber.StatusOK, status, resp.Message)
	scorecard := struct {
		IsDefault bool `json:"is_default"`
		Sections  []struct {
			Key    string  `json:"key"`
			Weight float64 `json:"weight"`
		} `json:"sections"`
	}{}
	require.Nil(t, json.Unmarshal(resp.Data, &scorecard))
	require.True(t, scorecard.IsDefault)
	require.Len(t, scorecard.Sections, 2)
	require.Equal(t, 1.0, scorecard.Sections[1].Weight)

	status, resp = call(t, app, models.UserRoleHR, fiber.MethodPost, "/job", fiber.Map{"title": "Backend Engineer"})
	require.Equal(t, fiber.StatusOK, status, resp.Message)
	job := struct {
		ID string `json:"id"`
	}{}
	require.Nil(t, json.Unmarshal(resp.Data, &job))
	status, resp = call(t, app, models.UserRoleHR, fiber.MethodPost, "/job/"+job.ID+"/application", fiber.Map{"candidate_id": "cand-1"})
	require.Equal(t, fiber.StatusOK, status, resp.Message)

	t.Run("критерий вне карты оценки", func(t *testing.T) {
		status, _ := call(t, app, models.UserRoleInterviewer, fiber.MethodPut, "/job/"+job.ID+"/candidate/cand-1/score",
			fiber.Map{"tech": 4, "leadership": 5})
		require.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("оценка по карте", func(t *testing.T) {
		status, resp := call(t, app, models.UserRoleInterviewer, fiber.MethodPut, "/job/"+job.ID+"/candidate/cand-1/score",
			fiber.Map{"tech": 4, "comm": 5})
		require.Equal(t, fiber.StatusOK, status, resp.Message)
	})

	t.Run("некорректные критерии", func(t *testing.T) {
		status, _ := call(t, app, models.UserRoleHR, fiber.MethodPut, "/scorecard/template/"+scorecardID,
			fiber.Map{"sections": []fiber.Map{}})
		require.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("удаление", func(t *testing.T) {
		status, resp := call(t, app, models.UserRoleHR, fiber.MethodDelete, "/scorecard/template/"+scorecardID, nil)
		require.Equal(t, fiber.StatusOK, status, resp.Message)
		status, _ = call(t, app, models.UserRoleHR, fiber.MethodGet, "/scorecard/template/"+scorecardID, nil)
		require.Equal(t, fiber.StatusNotFound, status)
	})
}

func TestRequestErrors(t *testing.T) {
	app := newApp(t)

	t.Run("некорректный идентификатор", func(t *testing.T) {
		status, _ := call(t, app, models.UserRoleHR, fiber.MethodGet, "/job/not-uuid", nil)
		require.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("вакансия не найдена", func(t *testing.T) {
		status, resp := call(t, app, models.UserRoleHR, fiber.MethodGet, "/job/"+uuid.NewString(), nil)
		require.Equal(t, fiber.StatusNotFound, status)
		require.Equal(t, "fail", resp.Status)
	})

	t.Run("без токена", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/api/v1/space/pipeline/template", nil)
		resp, err := app.Test(req, -1)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
