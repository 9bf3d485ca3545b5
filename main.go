package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"recruiting-backend/config"
	apiv1 "recruiting-backend/controllers/v1"
	"recruiting-backend/fiberlog"
	"recruiting-backend/initializers"
	"recruiting-backend/lib/identity"
	"recruiting-backend/lib/rbac"
	"recruiting-backend/lib/ws"
	"recruiting-backend/middleware"
	"sync"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: int(config.Conf.App.BodyLimitMB) * 1024 * 1024,
	})
	app.Use(fiberRecover.New())

	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			Path:     "/swagger",
			FilePath: swaggerFile,
		}))
	} else {
		log.Warn("swagger docs not found, /swagger disabled")
	}

	//live domain events, mounted ahead of the api middleware chain
	wsApp := fiber.New()
	wsApp.Use(middleware.AuthorizationRequired())
	wsApp.Use(middleware.ResolveActor(identity.Instance))
	ws.InitWs(wsApp)
	app.Mount("/api/v1/ws", wsApp)

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	if config.Conf.App.ErrNotify != "" {
		apiV1.Use(middleware.ErrNotify(config.Conf.App.ErrNotify))
	}
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiV1.Use(middleware.WithBodyLimit(config.Conf.App.BodyLimitMB * 1024 * 1024))

	//workflow
	apiV1.Use(middleware.AuthorizationRequired())
	apiV1.Use(middleware.RbacMiddleware(rbac.Instance))
	apiV1.Use(middleware.ResolveActor(identity.Instance))
	apiv1.InitApplicationApiRouters(apiV1)
	apiv1.InitProposalApiRouters(apiV1)
	apiv1.InitCandidateApiRouters(apiV1)
	apiv1.InitPlacementApiRouters(apiV1)
	apiv1.InitCollaborationApiRouters(apiV1)
	apiv1.InitPermissionsApiRouters(apiV1)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		<-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
