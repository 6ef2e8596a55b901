package apiv1

import (
	"fmt"
	"hr-pipeline-backend/controllers"
	applicationhandler "hr-pipeline-backend/lib/application"
	pipelinesync "hr-pipeline-backend/lib/pipeline-sync"
	"hr-pipeline-backend/middleware"
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"
	applicationapimodels "hr-pipeline-backend/models/api/application"

	"github.com/gofiber/fiber/v2"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app *fiber.App) {
	controller := applicationApiController{}
	app.Route("application/:id", func(router fiber.Router) {
		router.Get("", controller.get)
		router.Put("move", controller.move)
		router.Get("scorecard/pdf", controller.scorecard)
	})
}

// @Summary Получение отклика
// @Tags Кандидаты
// @Description Получение отклика
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "application ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/application/{id} [get]
func (c *applicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	resp, err := applicationhandler.Instance.GetApplication(orgID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения отклика")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Перевод кандидата на этап
// @Tags Кандидаты
// @Description Допустим перевод на любой этап вакансии. stage_id - идентификатор либо название этапа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.MoveData	true	"request body"
// @Param   id          		path    string  				    	true         "application ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.MoveView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/application/{id}/move [put]
func (c *applicationApiController) move(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicationapimodels.MoveData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Не указан этап")
	}
	orgID := middleware.GetUserOrg(ctx)
	userID := middleware.GetUserID(ctx)
	resp, err := pipelinesync.Instance.MoveApplication(ctx.UserContext(), orgID, userID, id, models.ParseStageRef(payload.StageID))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка перевода кандидата на этап")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Оценки кандидата в PDF
// @Tags Кандидаты
// @Description Сводка оценок кандидата
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "application ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/application/{id}/scorecard/pdf [get]
func (c *applicationApiController) scorecard(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	file, err := applicationhandler.Instance.ScorecardPDF(orgID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования оценок кандидата в PDF")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="scorecard-%v.pdf"`, id))
	return ctx.Send(file)
}
