package initializers

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"talentflow-backend/config"
	"talentflow-backend/fiberlog"
	assessmenthandler "talentflow-backend/lib/assessment"
	candidatehandler "talentflow-backend/lib/candidate"
	xlsexport "talentflow-backend/lib/export/xls"
	jobhandler "talentflow-backend/lib/job"
	"talentflow-backend/lib/seed"
	"talentflow-backend/lib/simnet"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	simnet.Init(
		time.Duration(config.Conf.SimNet.MinDelayMs)*time.Millisecond,
		time.Duration(config.Conf.SimNet.MaxDelayMs)*time.Millisecond,
		config.Conf.SimNet.ReadFailRate,
		config.Conf.SimNet.WriteFailRate,
		*config.Conf.SimNet.Enabled,
	)
	xlsexport.NewHandler()
	jobhandler.NewHandler()
	candidatehandler.NewHandler()
	assessmenthandler.NewHandler()
	seed.NewHandler(config.Conf.Seed.Jobs, config.Conf.Seed.Candidates, config.Conf.Seed.Assessments)
	if *config.Conf.Seed.OnStart {
		if err := seed.Instance.EnsureSeeded(); err != nil {
			log.WithError(err).Fatal("failed to seed the document store")
		}
	}
}
