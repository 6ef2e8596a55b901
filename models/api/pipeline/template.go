package pipelineapimodels

import (
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
	"strings"
	"unicode/utf8"
)

const maxNameLength = 255

type TemplateData struct {
	Name        string `json:"name"`        // Название шаблона
	Description string `json:"description"` // Описание
	IsDefault   bool   `json:"is_default"`  // Шаблон по умолчанию
}

func (t TemplateData) Validate() error {
	return validateName("name", t.Name, "не указано название шаблона")
}

type TemplateUpdate struct {
	Name        *string `json:"name"`        // Название шаблона
	Description *string `json:"description"` // Описание
	IsDefault   *bool   `json:"is_default"`  // Шаблон по умолчанию
}

func (t TemplateUpdate) Validate() error {
	if t.Name != nil {
		return validateName("name", *t.Name, "не указано название шаблона")
	}
	return nil
}

type TemplateView struct {
	ID          string      `json:"id"`          // Идентификатор шаблона
	Name        string      `json:"name"`        // Название шаблона
	Description string      `json:"description"` // Описание
	IsDefault   bool        `json:"is_default"`  // Шаблон по умолчанию
	Stages      []StageView `json:"stages"`      // Этапы в порядке следования
}

// ReorderData - перенос этапа с позиции from_index на позицию to_index
type ReorderData struct {
	FromIndex int `json:"from_index"`
	ToIndex   int `json:"to_index"`
}

func (r ReorderData) Validate() error {
	if r.FromIndex < 0 {
		return models.NewValidationError("from_index", "позиция этапа не может быть отрицательной")
	}
	if r.ToIndex < 0 {
		return models.NewValidationError("to_index", "новая позиция этапа не может быть отрицательной")
	}
	return nil
}

func TemplateConvert(rec dbmodels.PipelineTemplate) TemplateView {
	stages := make([]dbmodels.PipelineStage, len(rec.Stages))
	copy(stages, rec.Stages)
	dbmodels.SortStages(stages)
	result := TemplateView{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		IsDefault:   rec.IsDefault,
		Stages:      make([]StageView, 0, len(stages)),
	}
	for _, stage := range stages {
		result.Stages = append(result.Stages, StageConvert(stage))
	}
	return result
}

func validateName(field, name, emptyMsg string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.NewValidationError(field, emptyMsg)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return models.NewValidationError(field, "название не должно превышать 255 символов")
	}
	return nil
}
