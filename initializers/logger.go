package initializers

import (
	"hr-pipeline-backend/config"
	"hr-pipeline-backend/fiberlog"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func InitLogger() *fiberlog.Config {
	level, err := log.ParseLevel(config.Conf.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	out := logOutput()

	log.SetFormatter(jsonFormatter())
	log.SetOutput(out)
	log.SetLevel(level)
	if err != nil {
		log.WithError(err).Warnf("некорректный уровень логирования: %v", config.Conf.Log.Level)
	}

	logger := log.New()
	logger.SetFormatter(jsonFormatter())
	logger.SetOutput(out)
	logger.SetLevel(level)
	return &fiberlog.Config{
		Logger: logger,
		Tags: []string{
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagRoute,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.TagIP,
			fiberlog.TagUserID,
			fiberlog.TagOrgID,
			fiberlog.TagError,
		},
		Skip: fiberlog.ConfigDefault.Skip,
	}
}

func jsonFormatter() *log.JSONFormatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

// logOutput - при заданном файле лог пишется и в stdout, и в файл с ротацией
func logOutput() io.Writer {
	if config.Conf.Log.File == "" {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   config.Conf.Log.File,
		MaxSize:    config.Conf.Log.MaxSizeMb,
		MaxBackups: config.Conf.Log.MaxBackups,
		Compress:   true,
	})
}
