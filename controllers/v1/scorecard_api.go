package apiv1

import (
	"hr-pipeline-backend/controllers"
	scorecardhandler "hr-pipeline-backend/lib/scorecard"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
	scorecardapimodels "hr-pipeline-backend/models/api/scorecard"

	"github.com/gofiber/fiber/v2"
)

type scorecardApiController struct {
	controllers.BaseAPIController
}

func InitScorecardApiRouters(app *fiber.App) {
	controller := scorecardApiController{}
	app.Route("scorecard", func(router fiber.Router) {
		router.Route("template", func(templateRoute fiber.Router) {
			templateRoute.Get("", controller.list)
			templateRoute.Post("", middleware.PipelineManagerRequired(), controller.create)
			templateRoute.Route(":id", func(idRoute fiber.Router) {
				idRoute.Get("", controller.get)
				idRoute.Put("", middleware.PipelineManagerRequired(), controller.update)
				idRoute.Delete("", middleware.PipelineManagerRequired(), controller.delete)
				idRoute.Put("set_default", middleware.PipelineManagerRequired(), controller.setDefault)
			})
		})
	})
}

// @Summary Список карт оценки
// @Tags Карты оценки
// @Description Карты оценки кандидатов организации, карта по умолчанию первой
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]scorecardapimodels.ScorecardView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/scorecard/template [get]
func (c *scorecardApiController) list(ctx *fiber.Ctx) error {
	orgID := middleware.GetUserOrg(ctx)
	list, err := scorecardhandler.Instance.ListTemplates(orgID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка карт оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание карты оценки
// @Tags Карты оценки
// @Description Без критериев карта получает стандартный набор
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 scorecardapimodels.ScorecardData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/scorecard/template [post]
func (c *scorecardApiController) create(ctx *fiber.Ctx) error {
	var payload scorecardapimodels.ScorecardData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	id, err := scorecardhandler.Instance.CreateTemplate(orgID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания карты оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получение карты оценки
// @Tags Карты оценки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "scorecard ID"
// @Success 200 {object} apimodels.Response{data=scorecardapimodels.ScorecardView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/scorecard/template/{id} [get]
func (c *scorecardApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	resp, err := scorecardhandler.Instance.GetTemplate(orgID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения карты оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Изменение карты оценки
// @Tags Карты оценки
// @Description Изменение названия, описания, критериев, признака по умолчанию. Сохраненные оценки кандидатов не пересчитываются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 scorecardapimodels.ScorecardUpdate	true	"request body"
// @Param   id          		path    string  				    	true         "scorecard ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/scorecard/template/{id} [put]
func (c *scorecardApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload scorecardapimodels.ScorecardUpdate
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	if err = scorecardhandler.Instance.UpdateTemplate(orgID, id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения карты оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Карта оценки по умолчанию
// @Tags Карты оценки
// @Description Признак по умолчанию снимается с остальных карт организации
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "scorecard ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/scorecard/template/{id}/set_default [put]
func (c *scorecardApiController) setDefault(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	if err = scorecardhandler.Instance.SetDefaultTemplate(orgID, id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения карты оценки по умолчанию")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление карты оценки
// @Tags Карты оценки
// @Description Вакансии с удаленной картой оцениваются по карте по умолчанию
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "scorecard ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/scorecard/template/{id} [delete]
func (c *scorecardApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	if err = scorecardhandler.Instance.DeleteTemplate(orgID, id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления карты оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
