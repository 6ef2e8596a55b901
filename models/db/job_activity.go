package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
)

type JobActivity struct {
	BaseOrgModel
	JobID         string `gorm:"type:varchar(36);index"`
	ApplicationID *string
	UserID        *string
	ActionType    ActivityType  `gorm:"type:varchar(100)"`
	Details       EntityChanges `gorm:"type:jsonb"`
}

type ActivityType string

const (
	ActivityPipelineUpdated   ActivityType = "PIPELINE_UPDATED"          // Изменен список этапов вакансии
	ActivityPipelineReordered ActivityType = "PIPELINE_REORDERED"        // Изменен порядок этапов вакансии
	ActivityPipelineSynced    ActivityType = "PIPELINE_SYNCED"           // Этапы синхронизированы с шаблоном
	ActivityTemplateChanged   ActivityType = "PIPELINE_TEMPLATE_CHANGED" // Вакансия переведена на другой шаблон
	ActivityStageChanged      ActivityType = "STAGE_CHANGED"             // Кандидат переведен на другой этап
	ActivityScoreUpdated      ActivityType = "SCORE_UPDATED"             // Обновлена оценка кандидата
	ActivityClonedFrom        ActivityType = "CLONED_FROM"               // Вакансия скопирована
)

type EntityChanges struct {
	Description string         `json:"description"` // Комментрий
	Data        []FieldChanges `json:"data"`        // Список изменений
}

type FieldChanges struct {
	Field    string `json:"field"`     // Измененное поле
	OldValue any    `json:"old_value"` // Старое значение
	NewValue any    `json:"new_value"` // Новое значение
}

func (j EntityChanges) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *EntityChanges) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	}
	return nil
}
