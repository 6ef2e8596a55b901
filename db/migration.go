package db

import (
	dbmodels "hr-pipeline-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.PipelineTemplate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры PipelineTemplate")
	}
	if err := DB.AutoMigrate(&dbmodels.PipelineStage{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры PipelineStage")
	}
	if err := DB.AutoMigrate(&dbmodels.Job{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Job")
	}
	if err := DB.AutoMigrate(&dbmodels.Application{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Application")
	}
	if err := DB.AutoMigrate(&dbmodels.JobActivity{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры JobActivity")
	}
	if err := DB.AutoMigrate(&dbmodels.ScorecardTemplate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ScorecardTemplate")
	}
	// у организации не более одного шаблона по умолчанию
	err := DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_pipeline_templates_org_default ON pipeline_templates (org_id) WHERE is_default").Error
	if err != nil {
		return errors.Wrap(err, "ошибка создания индекса шаблона по умолчанию")
	}
	err = DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_scorecard_templates_org_default ON scorecard_templates (org_id) WHERE is_default").Error
	if err != nil {
		return errors.Wrap(err, "ошибка создания индекса карты оценки по умолчанию")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
