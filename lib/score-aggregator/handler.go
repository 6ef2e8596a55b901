package scoreaggregator

import (
	"context"
	"fmt"
	"hr-pipeline-backend/db"
	applicationstore "hr-pipeline-backend/lib/application/store"
	jobactivityhandler "hr-pipeline-backend/lib/job-activity"
	"hr-pipeline-backend/lib/metrics"
	scorecardhandler "hr-pipeline-backend/lib/scorecard"
	"hr-pipeline-backend/models"
	applicationapimodels "hr-pipeline-backend/models/api/application"
	dbmodels "hr-pipeline-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	UpdateCandidateScore(ctx context.Context, orgID, userID, jobID, candidateID string, details dbmodels.ScoreDetails) (applicationapimodels.ScoreView, error)
}

var Instance Provider

func NewHandler() {
	Instance = New(applicationstore.NewInstance(db.DB), scorecardhandler.Instance, jobactivityhandler.Instance)
}

func New(store applicationstore.Provider, scorecards scorecardhandler.Provider, activity jobactivityhandler.Provider) Provider {
	return impl{
		store:      store,
		scorecards: scorecards,
		activity:   activity,
	}
}

type impl struct {
	store      applicationstore.Provider
	scorecards scorecardhandler.Provider
	activity   jobactivityhandler.Provider
}

// UpdateCandidateScore сохраняет оценки кандидата по вакансии вместе с итоговой оценкой и рекомендацией.
// Если у вакансии есть карта оценки, допускаются только ее критерии.
func (i impl) UpdateCandidateScore(ctx context.Context, orgID, userID, jobID, candidateID string, details dbmodels.ScoreDetails) (result applicationapimodels.ScoreView, err error) {
	defer func(start time.Time) { metrics.Observe("update_score", start, err) }(time.Now())
	logger := log.WithField("org_id", orgID).
		WithField("job_id", jobID).
		WithField("candidate_id", candidateID)
	aggregated, err := Aggregate(details)
	if err != nil {
		return result, err
	}
	rec, err := i.store.GetByCandidate(orgID, jobID, candidateID)
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения отклика кандидата")
	}
	if rec == nil {
		return result, models.NewNotFoundError("отклик кандидата", candidateID)
	}
	scorecard, err := i.scorecards.JobScorecard(orgID, jobID)
	if err != nil {
		return result, err
	}
	if scorecard != nil {
		if err = ValidateCriteria(details, scorecard.Sections); err != nil {
			return result, err
		}
	}
	updMap := map[string]interface{}{
		"score_details":  details,
		"overall_score":  aggregated.OverallScore,
		"recommendation": aggregated.Recommendation,
	}
	if err = i.store.Update(orgID, rec.ID, updMap); err != nil {
		return result, errors.Wrap(err, "ошибка сохранения оценки кандидата")
	}
	var oldScore interface{}
	if rec.OverallScore != nil {
		oldScore = *rec.OverallScore
	}
	i.activity.Save(orgID, jobID, rec.ID, userID, dbmodels.ActivityScoreUpdated, dbmodels.EntityChanges{
		Description: fmt.Sprintf("Обновлена оценка кандидата: %v", aggregated.OverallScore),
		Data: []dbmodels.FieldChanges{
			{Field: "overall_score", OldValue: oldScore, NewValue: aggregated.OverallScore},
			{Field: "recommendation", OldValue: rec.Recommendation, NewValue: aggregated.Recommendation},
		},
	})
	logger.WithField("overall_score", aggregated.OverallScore).Info("оценка кандидата обновлена")
	return applicationapimodels.ScoreView{
		OverallScore:   aggregated.OverallScore,
		Recommendation: aggregated.Recommendation,
		Details:        details,
	}, nil
}
