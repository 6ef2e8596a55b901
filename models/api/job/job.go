package jobapimodels

import (
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"
	dbmodels "hr-pipeline-backend/models/db"
	"strings"
	"time"
)

type JobData struct {
	Title               string  `json:"title"`                 // Название вакансии
	TemplateID          *string `json:"template_id"`           // Шаблон этапов, по умолчанию шаблон организации
	ScorecardTemplateID *string `json:"scorecard_template_id"` // Карта оценки, по умолчанию карта организации
}

func (j JobData) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return models.NewValidationError("title", "не указано название вакансии")
	}
	return nil
}

type JobUpdate struct {
	Title               *string                    `json:"title"`                 // Название вакансии
	Status              *models.JobStatus          `json:"status"`                // Статус
	PipelineConfig      *dbmodels.PipelineSnapshot `json:"pipeline_config"`       // Этапы вакансии
	ScorecardTemplateID *string                    `json:"scorecard_template_id"` // Карта оценки, пустая строка сбрасывает привязку
}

func (j JobUpdate) Validate() error {
	if j.Title != nil && strings.TrimSpace(*j.Title) == "" {
		return models.NewValidationError("title", "не указано название вакансии")
	}
	if j.Status != nil && !j.Status.IsValid() {
		return models.NewValidationError("status", "некорректный статус вакансии")
	}
	if j.PipelineConfig != nil {
		return j.PipelineConfig.Validate()
	}
	return nil
}

type JobFilter struct {
	apimodels.Pagination
	Search   string             `json:"search"`   // Поиск по названию
	Statuses []models.JobStatus `json:"statuses"` // Статусы
}

type JobView struct {
	ID                  string                    `json:"id"`                    // Идентификатор вакансии
	Title               string                    `json:"title"`                 // Название вакансии
	Status              models.JobStatus          `json:"status"`                // Статус
	TemplateID          string                    `json:"template_id"`           // Шаблон этапов
	PipelineConfig      dbmodels.PipelineSnapshot `json:"pipeline_config"`       // Этапы вакансии
	PipelineVersion     int                       `json:"pipeline_version"`      // Версия списка этапов
	ScorecardTemplateID string                    `json:"scorecard_template_id"` // Карта оценки
	CreatedAt           time.Time                 `json:"created_at"`
}

func JobConvert(rec dbmodels.Job) JobView {
	stages := rec.PipelineConfig
	if stages == nil {
		stages = dbmodels.PipelineSnapshot{}
	}
	return JobView{
		ID:                  rec.ID,
		Title:               rec.Title,
		Status:              rec.Status,
		TemplateID:          rec.TemplateID(),
		PipelineConfig:      stages,
		PipelineVersion:     rec.PipelineVersion,
		ScorecardTemplateID: rec.ScorecardID(),
		CreatedAt:           rec.CreatedAt,
	}
}

// ChangeTemplateData - перевод вакансии на другой шаблон.
// Все кандидаты вакансии теряют текущий этап, поэтому требуется подтверждение.
type ChangeTemplateData struct {
	TemplateID string `json:"template_id"` // Новый шаблон
	Confirmed  bool   `json:"confirmed"`   // Подтверждение сброса этапов кандидатов
}

func (c ChangeTemplateData) Validate() error {
	if c.TemplateID == "" {
		return models.NewValidationError("template_id", "не указан шаблон")
	}
	return nil
}

// ValidateConfirmed - проверяется после сравнения с текущим шаблоном вакансии
func (c ChangeTemplateData) ValidateConfirmed() error {
	if !c.Confirmed {
		return models.NewValidationError("confirmed", "смена шаблона сбросит этапы всех кандидатов вакансии, требуется подтверждение")
	}
	return nil
}
