package scoreaggregator

import (
	"fmt"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
	"math"
	"strings"
)

type Result struct {
	OverallScore   float64
	Recommendation models.Recommendation
}

// Aggregate - среднее по оценкам критериев с округлением до одного знака.
// Рекомендация в расчет не входит, без оценок результат 0.
func Aggregate(details dbmodels.ScoreDetails) (Result, error) {
	if err := Validate(details); err != nil {
		return Result{}, err
	}
	result := Result{Recommendation: details.Recommendation}
	if len(details.Ratings) == 0 {
		return result, nil
	}
	sum := 0.0
	for _, criterion := range details.Criteria() {
		sum += details.Ratings[criterion]
	}
	result.OverallScore = round(sum / float64(len(details.Ratings)))
	return result, nil
}

func Validate(details dbmodels.ScoreDetails) error {
	for _, criterion := range details.Criteria() {
		rating := details.Ratings[criterion]
		if rating != math.Trunc(rating) || rating < models.MinRating || rating > models.MaxRating {
			return models.NewValidationError(criterion,
				fmt.Sprintf("оценка по критерию %v должна быть целым числом от %v до %v", criterion, models.MinRating, models.MaxRating))
		}
	}
	if details.Recommendation != "" {
		if err := details.Recommendation.IsValid(); err != nil {
			return models.NewValidationError("recommendation", err.Error())
		}
	}
	return nil
}

// ValidateCriteria - оценки выставляются только по критериям карты оценки вакансии
func ValidateCriteria(details dbmodels.ScoreDetails, sections dbmodels.ScorecardSections) error {
	for _, criterion := range details.Criteria() {
		if !sections.Has(criterion) {
			return models.NewValidationError(criterion,
				fmt.Sprintf("критерий %v отсутствует в карте оценки вакансии, допустимые критерии: %v",
					criterion, strings.Join(sections.Keys(), ", ")))
		}
	}
	return nil
}

func round(value float64) float64 {
	return math.Round(value*10) / 10
}
