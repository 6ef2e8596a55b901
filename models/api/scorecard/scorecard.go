package scorecardapimodels

import (
	"fmt"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLength     = 255
	recommendationKey = "recommendation"
)

type ScorecardData struct {
	Name        string                     `json:"name"`        // Название карты оценки
	Description string                     `json:"description"` // Описание
	IsDefault   bool                       `json:"is_default"`  // Карта оценки по умолчанию
	Sections    dbmodels.ScorecardSections `json:"sections"`    // Критерии, без указания используются стандартные
}

func (s ScorecardData) Validate() error {
	if err := validateName(s.Name); err != nil {
		return err
	}
	if s.Sections == nil {
		return nil
	}
	return ValidateSections(s.Sections)
}

type ScorecardUpdate struct {
	Name        *string                     `json:"name"`        // Название карты оценки
	Description *string                     `json:"description"` // Описание
	IsDefault   *bool                       `json:"is_default"`  // Карта оценки по умолчанию
	Sections    *dbmodels.ScorecardSections `json:"sections"`    // Критерии
}

func (s ScorecardUpdate) Validate() error {
	if s.Name != nil {
		if err := validateName(*s.Name); err != nil {
			return err
		}
	}
	if s.Sections != nil {
		return ValidateSections(*s.Sections)
	}
	return nil
}

type ScorecardView struct {
	ID          string                     `json:"id"`          // Идентификатор карты оценки
	Name        string                     `json:"name"`        // Название
	Description string                     `json:"description"` // Описание
	IsDefault   bool                       `json:"is_default"`  // Карта оценки по умолчанию
	Sections    dbmodels.ScorecardSections `json:"sections"`    // Критерии
}

func ScorecardConvert(rec dbmodels.ScorecardTemplate) ScorecardView {
	sections := rec.Sections
	if sections == nil {
		sections = dbmodels.ScorecardSections{}
	}
	return ScorecardView{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		IsDefault:   rec.IsDefault,
		Sections:    sections,
	}
}

// ValidateSections - ключи критериев непустые и уникальны, вес положительный или не указан
func ValidateSections(sections dbmodels.ScorecardSections) error {
	if len(sections) == 0 {
		return models.NewValidationError("sections", "карта оценки должна содержать хотя бы один критерий")
	}
	seen := make(map[string]bool, len(sections))
	for _, section := range sections {
		key := strings.TrimSpace(section.Key)
		if key == "" {
			return models.NewValidationError("sections", "не указан ключ критерия")
		}
		if key == recommendationKey {
			return models.NewValidationError("sections", fmt.Sprintf("ключ %v зарезервирован для рекомендации", recommendationKey))
		}
		if seen[key] {
			return models.NewValidationError("sections", fmt.Sprintf("критерий %v указан несколько раз", key))
		}
		seen[key] = true
		if section.Weight < 0 {
			return models.NewValidationError("sections", fmt.Sprintf("вес критерия %v не может быть отрицательным", key))
		}
	}
	return nil
}

// NormalizeSections - ключи без пробелов, пустое название заменяется ключом, вес по умолчанию 1
func NormalizeSections(sections dbmodels.ScorecardSections) dbmodels.ScorecardSections {
	result := make(dbmodels.ScorecardSections, 0, len(sections))
	for _, section := range sections {
		section.Key = strings.TrimSpace(section.Key)
		section.Label = strings.TrimSpace(section.Label)
		if section.Label == "" {
			section.Label = section.Key
		}
		if section.Weight == 0 {
			section.Weight = 1
		}
		result = append(result, section)
	}
	return result
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.NewValidationError("name", "не указано название карты оценки")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return models.NewValidationError("name", "название не должно превышать 255 символов")
	}
	return nil
}
