package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"hr-pipeline-backend/models"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// SnapshotStage - этап в составе вакансии, копия этапа шаблона по значению
type SnapshotStage struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// PipelineSnapshot - собственный список этапов вакансии.
// Изменения шаблона не влияют на вакансию до явной синхронизации.
type PipelineSnapshot []SnapshotStage

func (s PipelineSnapshot) Value() (driver.Value, error) {
	if s == nil {
		s = PipelineSnapshot{}
	}
	valueString, err := json.Marshal(s)
	return string(valueString), err
}

func (s *PipelineSnapshot) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*s = PipelineSnapshot{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("неподдерживаемый тип для этапов вакансии: %T", value)
	}
	return json.Unmarshal(data, s)
}

func (s PipelineSnapshot) Clone() PipelineSnapshot {
	if s == nil {
		return nil
	}
	result := make(PipelineSnapshot, len(s))
	copy(result, s)
	return result
}

// Renumber - порядок этапов приводится к позиции в списке: 0..n-1
func (s PipelineSnapshot) Renumber() PipelineSnapshot {
	result := s.Clone()
	for k := range result {
		result[k].Order = k
	}
	return result
}

// Move - этап с позиции from переносится на позицию to, остальные сдвигаются
func (s PipelineSnapshot) Move(from, to int) (PipelineSnapshot, error) {
	if from < 0 || from >= len(s) {
		return nil, models.NewValidationError("from_index", fmt.Sprintf("позиция этапа вне диапазона: %v", from))
	}
	if to < 0 || to >= len(s) {
		return nil, models.NewValidationError("to_index", fmt.Sprintf("новая позиция этапа вне диапазона: %v", to))
	}
	result := MoveItem(s, from, to)
	return PipelineSnapshot(result).Renumber(), nil
}

// MoveItem - удаляет элемент с позиции from и вставляет его на позицию to
func MoveItem[T any](list []T, from, to int) []T {
	result := make([]T, 0, len(list))
	result = append(result, list[:from]...)
	result = append(result, list[from+1:]...)
	item := list[from]
	result = append(result[:to], append([]T{item}, result[to:]...)...)
	return result
}

// Find - этап по ссылке кандидата: сначала по идентификатору, затем по названию
func (s PipelineSnapshot) Find(ref models.StageRef) (index int, stage *SnapshotStage) {
	if ref.IsUnset() {
		return -1, nil
	}
	for k := range s {
		if s[k].ID == ref.String() {
			return k, &s[k]
		}
	}
	for k := range s {
		if s[k].Name == ref.String() {
			return k, &s[k]
		}
	}
	return -1, nil
}

func (s PipelineSnapshot) FirstStageID() string {
	if len(s) == 0 {
		return ""
	}
	return s[0].ID
}

func (s PipelineSnapshot) IDs() []string {
	result := make([]string, 0, len(s))
	for _, stage := range s {
		result = append(result, stage.ID)
	}
	return result
}

// Normalize - новым этапам присваивается идентификатор, пустой цвет заменяется цветом по умолчанию,
// порядок перенумеровывается по позиции в списке
func (s PipelineSnapshot) Normalize() PipelineSnapshot {
	result := s.Renumber()
	for k := range result {
		result[k].Name = strings.TrimSpace(result[k].Name)
		if result[k].ID == "" {
			result[k].ID = uuid.NewString()
		}
		if result[k].Color == "" {
			result[k].Color = models.DefaultStageColor
		}
	}
	return result
}

func (s PipelineSnapshot) Validate() error {
	ids := make(map[string]struct{}, len(s))
	for k, stage := range s {
		if strings.TrimSpace(stage.Name) == "" {
			return models.NewValidationError("pipeline_config", fmt.Sprintf("не указано название этапа на позиции %v", k))
		}
		if stage.ID == "" {
			continue
		}
		if _, ok := ids[stage.ID]; ok {
			return models.NewValidationError("pipeline_config", fmt.Sprintf("повторяющийся идентификатор этапа: %v", stage.ID))
		}
		ids[stage.ID] = struct{}{}
	}
	return nil
}

// IsDense - порядок этапов образует последовательность 0..n-1 без пропусков и повторов
func (s PipelineSnapshot) IsDense() bool {
	for k, stage := range s {
		if stage.Order != k {
			return false
		}
	}
	return true
}

// LegacySnapshot - этапы по умолчанию для вакансий без шаблона (ключи этапов из старой схемы)
func LegacySnapshot() PipelineSnapshot {
	names := []struct{ id, name string }{
		{"new", "New Candidates"},
		{"shortlisted", "Shortlisted"},
		{"technical_review", "Technical Review"},
		{"interview_round_1", "Interview Round 1"},
		{"interview_round_2", "Interview Round 2"},
		{"offer", "Offer"},
		{"hired", models.HiredStageName},
		{"rejected", "Rejected"},
	}
	result := make(PipelineSnapshot, 0, len(names))
	for k, item := range names {
		result = append(result, SnapshotStage{
			ID:    item.id,
			Name:  item.name,
			Color: models.DefaultStageColor,
			Order: k,
		})
	}
	return result
}
