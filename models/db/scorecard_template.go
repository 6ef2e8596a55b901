package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// ScorecardSection - критерий карты оценки кандидата
type ScorecardSection struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

type ScorecardSections []ScorecardSection

func (s ScorecardSections) Value() (driver.Value, error) {
	if s == nil {
		s = ScorecardSections{}
	}
	valueString, err := json.Marshal(s)
	return string(valueString), err
}

func (s *ScorecardSections) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*s = ScorecardSections{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("неподдерживаемый тип для критериев карты оценки: %T", value)
	}
	return json.Unmarshal(data, s)
}

func (s ScorecardSections) Has(key string) bool {
	for _, section := range s {
		if section.Key == key {
			return true
		}
	}
	return false
}

func (s ScorecardSections) Keys() []string {
	result := make([]string, 0, len(s))
	for _, section := range s {
		result = append(result, section.Key)
	}
	return result
}

// DefaultScorecardSections - критерии новой карты оценки, если они не указаны
func DefaultScorecardSections() ScorecardSections {
	return ScorecardSections{
		{Key: "technical_score", Label: "Технические навыки", Weight: 1},
		{Key: "communication_score", Label: "Коммуникация", Weight: 1},
		{Key: "culture_fit_score", Label: "Соответствие культуре", Weight: 1},
		{Key: "problem_solving_score", Label: "Решение задач", Weight: 1},
		{Key: "leadership_score", Label: "Лидерство", Weight: 1},
	}
}

// ScorecardTemplate - набор критериев оценки кандидатов.
// У организации не более одной карты оценки по умолчанию.
type ScorecardTemplate struct {
	BaseOrgModel
	Name        string `gorm:"type:varchar(255)"`
	Description string
	IsDefault   bool
	Sections    ScorecardSections `gorm:"type:jsonb"`
}
