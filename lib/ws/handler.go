package ws

import (
	boardevents "hr-pipeline-backend/lib/board-events"
	jobhandler "hr-pipeline-backend/lib/job"
	wsclient "hr-pipeline-backend/lib/ws/client"
	wssession "hr-pipeline-backend/lib/ws/session"
	"hr-pipeline-backend/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

func InitWs(router fiber.Router) {
	router.Use("", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		ctx.Locals("userID", middleware.GetUserID(ctx))
		ctx.Locals("orgID", middleware.GetUserOrg(ctx))
		return ctx.Next()
	})
	router.Get("/jobs/:id", websocket.New(boardHandler))
}

// @Summary События доски вакансии
// @Tags Websocket
// @Description Перевод кандидатов и изменение этапов вакансии в реальном времени
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   id          		path    	string  	true        "job ID"
// @Success 200 {object} wsmodels.BoardEvent
// @Failure 400
// @Failure 403
// @Failure 500
// @router /api/v1/ws/jobs/{id} [get]
func boardHandler(c *websocket.Conn) {
	userID, _ := c.Locals("userID").(string)
	orgID, _ := c.Locals("orgID").(string)
	jobID := c.Params("id")
	logger := log.WithField("user_id", userID).WithField("job_id", jobID)
	sess := wssession.New(jobID, c)
	defer sess.Close()
	if _, err := jobhandler.Instance.GetJob(orgID, jobID); err != nil {
		logger.WithError(err).Warn("подписка на доску недоступной вакансии")
		return
	}
	unsubscribe := boardevents.Instance.Subscribe(jobID, sess)
	defer unsubscribe()
	logger.Debug("подписка на события доски")
	wsclient.NewClient(userID, jobID, c).Dispatch()
}
