package initializers

import (
	"context"
	"recruiting-backend/config"
	"recruiting-backend/fiberlog"
	aireviewworker "recruiting-backend/lib/ai-review/worker"
	"recruiting-backend/lib/application"
	candidateownership "recruiting-backend/lib/candidate-ownership"
	"recruiting-backend/lib/collaboration"
	"recruiting-backend/lib/events"
	relayworker "recruiting-backend/lib/events/relay-worker"
	xlsexport "recruiting-backend/lib/export/xls"
	"recruiting-backend/lib/identity"
	"recruiting-backend/lib/placement"
	"recruiting-backend/lib/proposal"
	"recruiting-backend/lib/rbac"
	"recruiting-backend/lib/utils/lock"
	connectionhub "recruiting-backend/lib/ws/hub/connection-hub"
	"time"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	connectionhub.Init()
	lock.InitResourceLock(ctx)
	rbac.NewHandler()

	settings := config.Conf.WorkflowSettings()
	// order matters: handlers capture the Instance of their dependencies
	events.NewHandler(config.Conf.App.ServiceName)
	identity.NewHandler()
	candidateownership.NewHandler(settings)
	application.NewHandler(settings)
	placement.NewHandler(settings)
	collaboration.NewHandler(settings)
	proposal.NewHandler(settings)
	xlsexport.NewHandler()
	go initWorkers(ctx)
}

// started with a gap to spread the load
func initWorkers(ctx context.Context) {
	// re-delivery of outbox events without a live subscriber
	relayworker.StartWorker(ctx)

	if makeTimeGap(ctx) {
		// scoring of applications waiting in ai_review
		aireviewworker.StartWorker(ctx)
	}
}

func makeTimeGap(ctx context.Context) (canRun bool) {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Second * 10):
		return true
	}
}
