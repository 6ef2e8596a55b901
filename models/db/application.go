package dbmodels

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"hr-pipeline-backend/models"
	"sort"
	"time"

	"github.com/pkg/errors"
)

type Application struct {
	BaseOrgModel
	CandidateID    string `gorm:"type:varchar(36);index:idx_job_candidate"`
	JobID          string `gorm:"type:varchar(36);index:idx_job_candidate"`
	CurrentStage   string `gorm:"type:varchar(255)"`
	AppliedAt      time.Time
	ScoreDetails   ScoreDetails `gorm:"type:jsonb"`
	OverallScore   *float64
	Recommendation models.Recommendation `gorm:"type:varchar(50)"`
}

func (a Application) StageRef() models.StageRef {
	return models.ParseStageRef(a.CurrentStage)
}

const recommendationKey = "recommendation"

// ScoreDetails - оценки по критериям (ключ критерия -> оценка) и итоговая рекомендация.
// В JSON хранится плоским объектом: {"technical": 4, "communication": 2, "recommendation": "Yes"}
type ScoreDetails struct {
	Ratings        map[string]float64
	Recommendation models.Recommendation
}

func (d ScoreDetails) MarshalJSON() ([]byte, error) {
	data := make(map[string]interface{}, len(d.Ratings)+1)
	for key, value := range d.Ratings {
		data[key] = value
	}
	if d.Recommendation != "" {
		data[recommendationKey] = d.Recommendation
	}
	return json.Marshal(data)
}

func (d *ScoreDetails) UnmarshalJSON(value []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(value, &raw); err != nil {
		return models.NewValidationError("score_details", "оценки кандидата должны быть объектом")
	}
	result := ScoreDetails{Ratings: make(map[string]float64, len(raw))}
	for key, item := range raw {
		if key == recommendationKey {
			var recommendation string
			if err := json.Unmarshal(item, &recommendation); err != nil {
				return models.NewValidationError(recommendationKey, "рекомендация должна быть строкой")
			}
			result.Recommendation = models.Recommendation(recommendation)
			continue
		}
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			return models.NewValidationError(key, fmt.Sprintf("не указана оценка по критерию %v", key))
		}
		var rating float64
		if err := json.Unmarshal(item, &rating); err != nil {
			return models.NewValidationError(key, fmt.Sprintf("оценка по критерию %v должна быть числом", key))
		}
		result.Ratings[key] = rating
	}
	*d = result
	return nil
}

func (d ScoreDetails) Value() (driver.Value, error) {
	valueString, err := json.Marshal(d)
	return string(valueString), err
}

func (d *ScoreDetails) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = ScoreDetails{}
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	}
	return errors.Errorf("неподдерживаемый тип для оценок кандидата: %T", value)
}

// Criteria - ключи критериев в алфавитном порядке
func (d ScoreDetails) Criteria() []string {
	result := make([]string, 0, len(d.Ratings))
	for key := range d.Ratings {
		result = append(result, key)
	}
	sort.Strings(result)
	return result
}
