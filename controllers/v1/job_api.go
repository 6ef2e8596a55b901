package apiv1

import (
	"fmt"
	"hr-pipeline-backend/controllers"
	applicationhandler "hr-pipeline-backend/lib/application"
	jobhandler "hr-pipeline-backend/lib/job"
	pipelinesync "hr-pipeline-backend/lib/pipeline-sync"
	scoreaggregator "hr-pipeline-backend/lib/score-aggregator"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
	applicationapimodels "hr-pipeline-backend/models/api/application"
	jobapimodels "hr-pipeline-backend/models/api/job"
	pipelineapimodels "hr-pipeline-backend/models/api/pipeline"
	dbmodels "hr-pipeline-backend/models/db"
	"time"

	"github.com/gofiber/fiber/v2"
)

type jobApiController struct {
	controllers.BaseAPIController
}

func InitJobApiRouters(app *fiber.App) {
	controller := jobApiController{}
	app.Route("job", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", middleware.JobManagerRequired(), controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", middleware.JobManagerRequired(), controller.update)
			idRoute.Delete("", middleware.JobManagerRequired(), controller.delete)
			idRoute.Post("clone", middleware.JobManagerRequired(), controller.clone)
			idRoute.Post("activity/list", controller.activityList)
			idRoute.Route("pipeline", func(pipelineRoute fiber.Router) {
				pipelineRoute.Use(middleware.JobManagerRequired())
				pipelineRoute.Put("sync", controller.pipelineSync)
				pipelineRoute.Put("template", controller.pipelineTemplate)
				pipelineRoute.Put("reorder", controller.pipelineReorder)
			})
			idRoute.Get("board", controller.board)
			idRoute.Get("board/export", controller.boardExport)
			idRoute.Route("application", func(applicationRoute fiber.Router) {
				applicationRoute.Get("", controller.applicationList)
				applicationRoute.Post("", controller.applicationCreate)
			})
			idRoute.Put("candidate/:candidate_id/score", controller.score)
		})
	})
}

// @Summary Создание вакансии
// @Tags Вакансия
// @Description Этапы копируются из шаблона (по умолчанию - из шаблона организации)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.JobData	true	"request body"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job [post]
func (c *jobApiController) create(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := jobhandler.Instance.CreateJob(ctx.UserContext(), orgID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания вакансии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список вакансий
// @Tags Вакансия
// @Description Список вакансий организации
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.JobFilter	true	"request filter body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/list [post]
func (c *jobApiController) list(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	list, rowCount, err := jobhandler.Instance.ListJobs(orgID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка вакансий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Получение вакансии
// @Tags Вакансия
// @Description Вакансия с собственным списком этапов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id} [get]
func (c *jobApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	resp, err := jobhandler.Instance.GetJob(orgID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения вакансии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Изменение вакансии
// @Tags Вакансия
// @Description Изменение названия, статуса или списка этапов вакансии
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.JobUpdate	true	"request body"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id} [put]
func (c *jobApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapimodels.JobUpdate
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := jobhandler.Instance.UpdateJob(ctx.UserContext(), orgID, userID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения вакансии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление вакансии
// @Tags Вакансия
// @Description Удаление вакансии вместе с откликами
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id} [delete]
func (c *jobApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	if err = jobhandler.Instance.DeleteJob(orgID, id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления вакансии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Копирование вакансии
// @Tags Вакансия
// @Description Копия вакансии в статусе черновика с копией списка этапов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/clone [post]
func (c *jobApiController) clone(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := jobhandler.Instance.CloneJob(ctx.UserContext(), orgID, userID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка копирования вакансии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Журнал действий
// @Tags Вакансия
// @Description Журнал действий по вакансии, новые записи первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.ActivityFilter	true	"request filter body"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]jobapimodels.ActivityView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/activity/list [post]
func (c *jobApiController) activityList(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapimodels.ActivityFilter
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	list, rowCount, err := jobhandler.Instance.ListActivity(orgID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения журнала действий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Синхронизация этапов с шаблоном
// @Tags Этапы вакансии
// @Description Этапы вакансии заменяются текущими этапами шаблона. Этапы кандидатов не изменяются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/pipeline/sync [put]
func (c *jobApiController) pipelineSync(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := pipelinesync.Instance.SyncFromTemplate(ctx.UserContext(), orgID, userID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка синхронизации этапов вакансии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Смена шаблона вакансии
// @Tags Этапы вакансии
// @Description Этапы вакансии заменяются этапами нового шаблона, этапы всех кандидатов сбрасываются. Требуется confirmed=true
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.ChangeTemplateData	true	"request body"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/pipeline/template [put]
func (c *jobApiController) pipelineTemplate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapimodels.ChangeTemplateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := pipelinesync.Instance.ChangeTemplate(ctx.UserContext(), orgID, userID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены шаблона вакансии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Перенос этапа вакансии
// @Tags Этапы вакансии
// @Description Перенос этапа с позиции from_index на позицию to_index. При ошибке сохранения в data возвращается подтвержденный порядок
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 pipelineapimodels.ReorderData	true	"request body"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response{data=dbmodels.PipelineSnapshot}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response{data=[]string}
// @router /api/v1/space/job/{id}/pipeline/reorder [put]
func (c *jobApiController) pipelineReorder(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload pipelineapimodels.ReorderData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Некорректные позиции этапа")
	}
	orgID := middleware.GetUserOrg(ctx)
	userID := middleware.GetUserID(ctx)
	var resp dbmodels.PipelineSnapshot
	resp, err = pipelinesync.Instance.ReorderJobStages(ctx.UserContext(), orgID, userID, id, payload.FromIndex, payload.ToIndex)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения порядка этапов вакансии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Доска вакансии
// @Tags Кандидаты
// @Description Кандидаты по колонкам этапов вакансии. Кандидаты с неизвестным этапом показываются в первой колонке с признаком orphaned
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.BoardView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/board [get]
func (c *jobApiController) board(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	resp, err := applicationhandler.Instance.Board(orgID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения доски вакансии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Доска вакансии. Выгрузить в Excel
// @Tags Кандидаты
// @Description Доска вакансии. Выгрузить в Excel
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/board/export [get]
func (c *jobApiController) boardExport(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	data, err := applicationhandler.Instance.ExportBoard(orgID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки доски вакансии в Excel")
	}
	fileName := fmt.Sprintf("board-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Список откликов
// @Tags Кандидаты
// @Description Отклики вакансии в порядке поступления
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/application [get]
func (c *jobApiController) applicationList(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	list, err := applicationhandler.Instance.ListByJob(orgID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка откликов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание отклика
// @Tags Кандидаты
// @Description Кандидат добавляется на первый этап вакансии
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.ApplicationData	true	"request body"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/application [post]
func (c *jobApiController) applicationCreate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicationapimodels.ApplicationData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	resp, err := applicationhandler.Instance.CreateApplication(ctx.UserContext(), orgID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания отклика")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Оценка кандидата
// @Tags Кандидаты
// @Description Оценки по критериям (целые 1..5) и рекомендация. Итоговая оценка - среднее с округлением до десятых
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 object	true	"оценки: {\"technical\": 4, \"communication\": 2, \"recommendation\": \"Yes\"}"
// @Param   id          		path    string  				    	true         "job ID"
// @Param   candidate_id  		path    string  				    	true         "candidate ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ScoreView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/candidate/{candidate_id}/score [put]
func (c *jobApiController) score(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	candidateID := ctx.Params("candidate_id")
	if candidateID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан кандидат"))
	}
	var payload dbmodels.ScoreDetails
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Некорректные оценки кандидата")
	}
	orgID := middleware.GetUserOrg(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := scoreaggregator.Instance.UpdateCandidateScore(ctx.UserContext(), orgID, userID, id, candidateID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения оценки кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
