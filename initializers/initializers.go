package initializers

import (
	"context"
	"hr-pipeline-backend/config"
	"hr-pipeline-backend/fiberlog"
	applicationhandler "hr-pipeline-backend/lib/application"
	boardevents "hr-pipeline-backend/lib/board-events"
	xlsexport "hr-pipeline-backend/lib/export/xls"
	jobhandler "hr-pipeline-backend/lib/job"
	jobactivityhandler "hr-pipeline-backend/lib/job-activity"
	pipelinehandler "hr-pipeline-backend/lib/pipeline"
	pipelinesync "hr-pipeline-backend/lib/pipeline-sync"
	scoreaggregator "hr-pipeline-backend/lib/score-aggregator"
	scorecardhandler "hr-pipeline-backend/lib/scorecard"
	baseworker "hr-pipeline-backend/lib/utils/base-worker"
	"time"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger()
	InitDBConnection()
	redisClient := InitRedis(ctx)
	boardevents.NewHandler(redisClient)
	jobactivityhandler.NewHandler()
	pipelinehandler.NewHandler()
	xlsexport.NewHandler()
	lockWait := time.Duration(config.Conf.Pipeline.LockWaitSec) * time.Second
	pipelinesync.NewHandler(lockWait)
	jobhandler.NewHandler(lockWait)
	applicationhandler.NewHandler()
	scorecardhandler.NewHandler()
	scoreaggregator.NewHandler()
	if redisClient != nil {
		// подписка на redis переподключается после обрыва
		go baseworker.NewInstance("board-events", 0, 5*time.Second).Run(ctx, boardevents.Instance.Run)
	}
}
