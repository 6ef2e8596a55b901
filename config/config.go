package config

import (
	"os"

	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr        string `default:"" env:"APP_HOST"`
		Port              int    `default:"8080"  env:"APP_PORT"`
		RequestTimeoutSec int    `default:"30" env:"APP_REQUEST_TIMEOUT_SEC"`
		BodyLimit         int64  `default:"4194304" env:"APP_BODY_LIMIT"`
		ErrNotifyURL      string `default:"" env:"APP_ERR_NOTIFY_URL"`
		CorsOrigins       string `default:"*" env:"APP_CORS_ORIGINS"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"hr-pipeline" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret      string `default:"" env:"JWT_SECRET"`
		JWTExpireInSec int64  `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
	}
	Redis struct {
		// Пустой адрес - события доски рассылаются только внутри экземпляра
		Address  string `default:"" env:"REDIS_ADDRESS"`
		Password string `default:"" env:"REDIS_PASSWORD"`
		DB       int    `default:"0" env:"REDIS_DB"`
	}
	Log struct {
		Level      string `default:"info" env:"LOG_LEVEL"`
		File       string `default:"" env:"LOG_FILE"`
		MaxSizeMb  int    `default:"100" env:"LOG_MAX_SIZE_MB"`
		MaxBackups int    `default:"5" env:"LOG_MAX_BACKUPS"`
	}
	Pipeline struct {
		// Описание шаблона этапов по умолчанию, пусто - встроенное
		SeedFile string `default:"" env:"PIPELINE_SEED_FILE"`
		// Ожидание блокировки вакансии при синхронизации этапов
		LockWaitSec int `default:"5" env:"PIPELINE_LOCK_WAIT_SEC"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err = godotenv.Load(); err != nil {
			log.WithError(err).Warn("ошибка загрузки .env")
		}
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
