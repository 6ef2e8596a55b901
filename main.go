package main

import (
	"context"
	"fmt"
	"hr-pipeline-backend/config"
	apiv1 "hr-pipeline-backend/controllers/v1"
	"hr-pipeline-backend/db"
	"hr-pipeline-backend/fiberlog"
	"hr-pipeline-backend/initializers"
	"hr-pipeline-backend/lib/ws"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	requestTimeout := time.Duration(config.Conf.App.RequestTimeoutSec) * time.Second
	app := fiber.New(fiber.Config{
		BodyLimit:    int(config.Conf.App.BodyLimit),
		ReadTimeout:  requestTimeout,
		WriteTimeout: requestTimeout,
	})
	app.Use(fiberRecover.New())

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", func(ctx *fiber.Ctx) error {
		if err := db.PingDB(); err != nil {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError(err.Error()))
		}
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
	})

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowOrigins: config.Conf.App.CorsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiV1.Use(middleware.WithBodyLimit(config.Conf.App.BodyLimit))
	if config.Conf.App.ErrNotifyURL != "" {
		apiV1.Use(middleware.ErrNotify(config.Conf.App.ErrNotifyURL))
	}

	//space
	space := fiber.New()
	apiV1.Mount("/space", space)
	space.Use(middleware.AuthorizationRequired())
	space.Use(middleware.OrgRequired())
	apiv1.InitPipelineApiRouters(space)
	apiv1.InitJobApiRouters(space)
	apiv1.InitApplicationApiRouters(space)
	apiv1.InitScorecardApiRouters(space)

	//ws
	wsApp := fiber.New()
	apiV1.Mount("/ws", wsApp)
	wsApp.Use(middleware.AuthorizationRequired())
	wsApp.Use(middleware.OrgRequired())
	ws.InitWs(wsApp)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		_ = <-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.ShutdownWithTimeout(requestTimeout); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		db.Close()
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
