package applicationapimodels

import (
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
	"strings"
	"time"
)

type ApplicationData struct {
	CandidateID string `json:"candidate_id"` // Идентификатор кандидата
}

func (a ApplicationData) Validate() error {
	if strings.TrimSpace(a.CandidateID) == "" {
		return models.NewValidationError("candidate_id", "не указан кандидат")
	}
	return nil
}

type ApplicationView struct {
	ID             string                `json:"id"`             // Идентификатор отклика
	CandidateID    string                `json:"candidate_id"`   // Идентификатор кандидата
	JobID          string                `json:"job_id"`         // Идентификатор вакансии
	CurrentStage   string                `json:"current_stage"`  // Текущий этап (идентификатор или название у старых записей)
	AppliedAt      time.Time             `json:"applied_at"`     // Дата отклика
	ScoreDetails   dbmodels.ScoreDetails `json:"score_details"`  // Оценки по критериям
	OverallScore   *float64              `json:"overall_score"`  // Итоговая оценка
	Recommendation models.Recommendation `json:"recommendation"` // Рекомендация
}

func ApplicationConvert(rec dbmodels.Application) ApplicationView {
	return ApplicationView{
		ID:             rec.ID,
		CandidateID:    rec.CandidateID,
		JobID:          rec.JobID,
		CurrentStage:   rec.CurrentStage,
		AppliedAt:      rec.AppliedAt,
		ScoreDetails:   rec.ScoreDetails,
		OverallScore:   rec.OverallScore,
		Recommendation: rec.Recommendation,
	}
}

// MoveData - перевод кандидата на этап (идентификатор либо название этапа вакансии)
type MoveData struct {
	StageID string `json:"stage_id"`
}

func (m MoveData) Validate() error {
	if strings.TrimSpace(m.StageID) == "" {
		return models.NewValidationError("stage_id", "не указан этап")
	}
	return nil
}

type MoveView struct {
	ApplicationID string `json:"application_id"`
	FromStageID   string `json:"from_stage_id"` // Этап до перевода, пустой если кандидат не был привязан к этапу
	ToStageID     string `json:"to_stage_id"`
	ToStageName   string `json:"to_stage_name"`
	Changed       bool   `json:"changed"`   // false - кандидат уже находился на этом этапе
	Celebrate     bool   `json:"celebrate"` // кандидат принят на работу
}

type ScoreView struct {
	OverallScore   float64               `json:"overall_score"`  // Итоговая оценка
	Recommendation models.Recommendation `json:"recommendation"` // Рекомендация
	Details        dbmodels.ScoreDetails `json:"details"`        // Оценки по критериям
}
