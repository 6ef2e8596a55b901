package apiv1

import (
	"hr-pipeline-backend/controllers"
	pipelinehandler "hr-pipeline-backend/lib/pipeline"
	pipelinesync "hr-pipeline-backend/lib/pipeline-sync"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
	pipelineapimodels "hr-pipeline-backend/models/api/pipeline"

	"github.com/gofiber/fiber/v2"
)

type pipelineApiController struct {
	controllers.BaseAPIController
}

func InitPipelineApiRouters(app *fiber.App) {
	controller := pipelineApiController{}
	app.Route("pipeline", func(router fiber.Router) {
		router.Route("template", func(templateRoute fiber.Router) {
			templateRoute.Get("", controller.templateList)
			templateRoute.Post("", middleware.PipelineManagerRequired(), controller.templateCreate)
			templateRoute.Route(":id", func(idRoute fiber.Router) {
				idRoute.Get("", controller.templateGet)
				idRoute.Put("", middleware.PipelineManagerRequired(), controller.templateUpdate)
				idRoute.Delete("", middleware.PipelineManagerRequired(), controller.templateDelete)
				idRoute.Put("set_default", middleware.PipelineManagerRequired(), controller.templateSetDefault)
				idRoute.Put("reorder", middleware.PipelineManagerRequired(), controller.templateReorder)
			})
		})
		router.Route("stage", func(stageRoute fiber.Router) {
			stageRoute.Get("", controller.stageList)
			stageRoute.Post("", middleware.PipelineManagerRequired(), controller.stageCreate)
			stageRoute.Route(":id", func(idRoute fiber.Router) {
				idRoute.Put("", middleware.PipelineManagerRequired(), controller.stageUpdate)
				idRoute.Delete("", middleware.PipelineManagerRequired(), controller.stageDelete)
			})
		})
	})
}

// @Summary Список шаблонов
// @Tags Шаблоны этапов
// @Description Список шаблонов этапов организации. Шаблон по умолчанию создается при первом обращении
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]pipelineapimodels.TemplateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/pipeline/template [get]
func (c *pipelineApiController) templateList(ctx *fiber.Ctx) error {
	orgID := middleware.GetUserOrg(ctx)
	list, err := pipelinehandler.Instance.ListTemplates(orgID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка шаблонов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание шаблона
// @Tags Шаблоны этапов
// @Description Создание шаблона
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 pipelineapimodels.TemplateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/pipeline/template [post]
func (c *pipelineApiController) templateCreate(ctx *fiber.Ctx) error {
	var payload pipelineapimodels.TemplateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Некорректные данные шаблона")
	}
	orgID := middleware.GetUserOrg(ctx)
	id, err := pipelinehandler.Instance.CreateTemplate(orgID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания шаблона")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получение шаблона
// @Tags Шаблоны этапов
// @Description Шаблон с этапами
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "template ID"
// @Success 200 {object} apimodels.Response{data=pipelineapimodels.TemplateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/pipeline/template/{id} [get]
func (c *pipelineApiController) templateGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	resp, err := pipelinehandler.Instance.GetTemplate(orgID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения шаблона")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Изменение шаблона
// @Tags Шаблоны этапов
// @Description Изменение названия, описания, признака по умолчанию
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 pipelineapimodels.TemplateUpdate	true	"request body"
// @Param   id          		path    string  				    	true         "template ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/pipeline/template/{id} [put]
func (c *pipelineApiController) templateUpdate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload pipelineapimodels.TemplateUpdate
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Некорректные данные шаблона")
	}
	orgID := middleware.GetUserOrg(ctx)
	if err = pipelinehandler.Instance.UpdateTemplate(orgID, id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения шаблона")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Шаблон по умолчанию
// @Tags Шаблоны этапов
// @Description Шаблон становится шаблоном организации по умолчанию, признак снимается с остальных
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "template ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/pipeline/template/{id}/set_default [put]
func (c *pipelineApiController) templateSetDefault(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	if err = pipelinehandler.Instance.SetDefaultTemplate(orgID, id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения шаблона по умолчанию")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление шаблона
// @Tags Шаблоны этапов
// @Description Шаблон по умолчанию удалить нельзя. Вакансии сохраняют свои этапы
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "template ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/pipeline/template/{id} [delete]
func (c *pipelineApiController) templateDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	if err = pipelinehandler.Instance.DeleteTemplate(orgID, id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления шаблона")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Перенос этапа шаблона
// @Tags Шаблоны этапов
// @Description Перенос этапа с позиции from_index на позицию to_index. При ошибке сохранения в data возвращается подтвержденный порядок
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 pipelineapimodels.ReorderData	true	"request body"
// @Param   id          		path    string  				    	true         "template ID"
// @Success 200 {object} apimodels.Response{data=pipelineapimodels.ReorderView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response{data=[]string}
// @router /api/v1/space/pipeline/template/{id}/reorder [put]
func (c *pipelineApiController) templateReorder(ctx *fiber.Ctx) error {
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
	ids, err := pipelinesync.Instance.ReorderTemplateStages(ctx.UserContext(), orgID, id, payload.FromIndex, payload.ToIndex)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения порядка этапов шаблона")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(pipelineapimodels.ReorderView{StageIDs: ids}))
}

// @Summary Список этапов
// @Tags Этапы
// @Description Этапы шаблона в порядке следования, без template_id - этапы всех шаблонов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   template_id		query		string	false	"template ID"
// @Success 200 {object} apimodels.Response{data=[]pipelineapimodels.StageView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/pipeline/stage [get]
func (c *pipelineApiController) stageList(ctx *fiber.Ctx) error {
	var filter pipelineapimodels.StageFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректные параметры запроса"))
	}
	orgID := middleware.GetUserOrg(ctx)
	list, err := pipelinehandler.Instance.ListStages(orgID, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка этапов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание этапа
// @Tags Этапы
// @Description Без order этап добавляется в конец шаблона
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 pipelineapimodels.StageData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/pipeline/stage [post]
func (c *pipelineApiController) stageCreate(ctx *fiber.Ctx) error {
	var payload pipelineapimodels.StageData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Некорректные данные этапа")
	}
	orgID := middleware.GetUserOrg(ctx)
	id, err := pipelinehandler.Instance.CreateStage(orgID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания этапа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Изменение этапа
// @Tags Этапы
// @Description Изменение названия, цвета, позиции или признака этапа по умолчанию
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 pipelineapimodels.StageUpdate	true	"request body"
// @Param   id          		path    string  				    	true         "stage ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/pipeline/stage/{id} [put]
func (c *pipelineApiController) stageUpdate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload pipelineapimodels.StageUpdate
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Некорректные данные этапа")
	}
	orgID := middleware.GetUserOrg(ctx)
	if err = pipelinehandler.Instance.UpdateStage(orgID, id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения этапа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление этапа
// @Tags Этапы
// @Description Этап по умолчанию удалить нельзя. Кандидаты вакансий не изменяются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "stage ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/pipeline/stage/{id} [delete]
func (c *pipelineApiController) stageDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	if err = pipelinehandler.Instance.DeleteStage(orgID, id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления этапа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
