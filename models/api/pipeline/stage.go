package pipelineapimodels

import (
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
	"regexp"
)

var colorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type StageData struct {
	TemplateID string `json:"template_id"` // Идентификатор шаблона
	Name       string `json:"name"`        // Название этапа
	Color      string `json:"color"`       // Цвет в формате #RRGGBB
	Order      *int   `json:"order"`       // Позиция этапа, по умолчанию в конец списка
	IsDefault  bool   `json:"is_default"`  // Обязательный этап, не может быть удален
}

func (s StageData) Validate() error {
	if s.TemplateID == "" {
		return models.NewValidationError("template_id", "не указан шаблон")
	}
	if err := validateName("name", s.Name, "не указано название этапа"); err != nil {
		return err
	}
	if err := validateColor(s.Color); err != nil {
		return err
	}
	if s.Order != nil && *s.Order < 0 {
		return models.NewValidationError("order", "позиция этапа не может быть отрицательной")
	}
	return nil
}

type StageUpdate struct {
	Name      *string `json:"name"`       // Название этапа
	Color     *string `json:"color"`      // Цвет в формате #RRGGBB
	Order     *int    `json:"order"`      // Новая позиция этапа
	IsDefault *bool   `json:"is_default"` // Обязательный этап
}

func (s StageUpdate) Validate() error {
	if s.Name != nil {
		if err := validateName("name", *s.Name, "не указано название этапа"); err != nil {
			return err
		}
	}
	if s.Color != nil {
		if err := validateColor(*s.Color); err != nil {
			return err
		}
	}
	if s.Order != nil && *s.Order < 0 {
		return models.NewValidationError("order", "позиция этапа не может быть отрицательной")
	}
	return nil
}

type StageFilter struct {
	TemplateID string `query:"template_id"` // Идентификатор шаблона
}

type StageView struct {
	ID         string `json:"id"`          // Идентификатор этапа
	TemplateID string `json:"template_id"` // Идентификатор шаблона
	Name       string `json:"name"`        // Название этапа
	Color      string `json:"color"`       // Цвет
	Order      int    `json:"order"`       // Позиция этапа
	IsDefault  bool   `json:"is_default"`  // Обязательный этап
}

func StageConvert(rec dbmodels.PipelineStage) StageView {
	return StageView{
		ID:         rec.ID,
		TemplateID: rec.TemplateID,
		Name:       rec.Name,
		Color:      rec.Color,
		Order:      rec.StageOrder,
		IsDefault:  rec.IsDefault,
	}
}

func validateColor(color string) error {
	if color == "" || colorRe.MatchString(color) {
		return nil
	}
	return models.NewValidationError("color", "цвет должен быть указан в формате #RRGGBB")
}
