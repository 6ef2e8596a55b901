package scoreaggregator

import (
	"context"
	jobactivityhandler "hr-pipeline-backend/lib/job-activity"
	scorecardhandler "hr-pipeline-backend/lib/scorecard"
	"hr-pipeline-backend/lib/utils/memstore"
	"hr-pipeline-backend/models"
	scorecardapimodels "hr-pipeline-backend/models/api/scorecard"
	dbmodels "hr-pipeline-backend/models/db"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestUpdateCandidateScore(t *testing.T) {
	const orgID = "org-1"
	mem := memstore.New()
	scorecards := scorecardhandler.New(nil, mem.Transaction, mem.ScorecardStore, mem.JobStore(nil))
	handler := New(mem.ApplicationStore(nil), scorecards, jobactivityhandler.New(mem.ActivityStore(nil)))
	_, err := mem.JobStore(nil).Create(dbmodels.Job{
		BaseOrgModel: dbmodels.BaseOrgModel{BaseModel: dbmodels.BaseModel{ID: "job-1"}, OrgID: orgID},
		Title:        "Go Developer",
	})
	require.Nil(t, err)
	appID, err := mem.ApplicationStore(nil).Create(dbmodels.Application{
		BaseOrgModel: dbmodels.BaseOrgModel{OrgID: orgID},
		CandidateID:  "candidate-1",
		JobID:        "job-1",
		AppliedAt:    time.Now(),
	})
	require.Nil(t, err)

	t.Run(`score is saved`, func(t *testing.T) {
		details := parse(t, `{"tech": 5, "comm": 4, "culture": 4, "recommendation": "Strong Yes"}`)
		view, err := handler.UpdateCandidateScore(context.Background(), orgID, "user-1", "job-1", "candidate-1", details)
		require.Nil(t, err)
		require.Equal(t, 4.3, view.OverallScore)
		require.Equal(t, models.RecommendationStrongYes, view.Recommendation)

		rec, err := mem.ApplicationStore(nil).GetByID(orgID, appID)
		require.Nil(t, err)
		require.NotNil(t, rec.OverallScore)
		require.Equal(t, 4.3, *rec.OverallScore)
		require.Equal(t, models.RecommendationStrongYes, rec.Recommendation)
		require.Equal(t, details, rec.ScoreDetails)

		activities := mem.Activities()
		require.Len(t, activities, 1)
		require.Equal(t, dbmodels.ActivityScoreUpdated, activities[0].ActionType)
		require.Equal(t, appID, *activities[0].ApplicationID)
	})

	t.Run(`invalid rating is rejected`, func(t *testing.T) {
		_, err := handler.UpdateCandidateScore(context.Background(), orgID, "user-1", "job-1", "candidate-1",
			parse(t, `{"tech": 7}`))
		var validationErr models.ValidationError
		require.True(t, errors.As(err, &validationErr))
		require.Equal(t, "tech", validationErr.Field)

		rec, err := mem.ApplicationStore(nil).GetByID(orgID, appID)
		require.Nil(t, err)
		require.Equal(t, 4.3, *rec.OverallScore)
	})

	t.Run(`unknown candidate`, func(t *testing.T) {
		_, err := handler.UpdateCandidateScore(context.Background(), orgID, "user-1", "job-1", "candidate-2",
			parse(t, `{"tech": 3}`))
		var notFoundErr models.NotFoundError
		require.True(t, errors.As(err, &notFoundErr))
	})

	t.Run(`activity failure does not fail the update`, func(t *testing.T) {
		mem.Fail("activity.Create", errors.New("connection reset"))
		view, err := handler.UpdateCandidateScore(context.Background(), orgID, "user-1", "job-1", "candidate-1",
			parse(t, `{"tech": 2}`))
		require.Nil(t, err)
		require.Equal(t, 2.0, view.OverallScore)
	})

	t.Run(`default scorecard limits criteria`, func(t *testing.T) {
		scorecardID, err := scorecards.CreateTemplate(orgID, scorecardapimodels.ScorecardData{
			Name:      "Инженеры",
			IsDefault: true,
			Sections: dbmodels.ScorecardSections{
				{Key: "tech", Label: "Технические навыки", Weight: 3},
				{Key: "comm", Label: "Коммуникация", Weight: 1},
			},
		})
		require.Nil(t, err)
		defer func() {
			require.Nil(t, scorecards.DeleteTemplate(orgID, scorecardID))
		}()

		_, err = handler.UpdateCandidateScore(context.Background(), orgID, "user-1", "job-1", "candidate-1",
			parse(t, `{"tech": 5, "culture": 4}`))
		var validationErr models.ValidationError
		require.True(t, errors.As(err, &validationErr))
		require.Equal(t, "culture", validationErr.Field)

		view, err := handler.UpdateCandidateScore(context.Background(), orgID, "user-1", "job-1", "candidate-1",
			parse(t, `{"tech": 5, "comm": 2}`))
		require.Nil(t, err)
		require.Equal(t, 3.5, view.OverallScore)
	})

	t.Run(`job scorecard takes precedence over the default`, func(t *testing.T) {
		defaultID, err := scorecards.CreateTemplate(orgID, scorecardapimodels.ScorecardData{Name: "Общая", IsDefault: true})
		require.Nil(t, err)
		jobScorecardID, err := scorecards.CreateTemplate(orgID, scorecardapimodels.ScorecardData{
			Name:     "Продажи",
			Sections: dbmodels.ScorecardSections{{Key: "negotiation"}},
		})
		require.Nil(t, err)
		require.Nil(t, mem.JobStore(nil).Update(orgID, "job-1", map[string]interface{}{"scorecard_template_id": jobScorecardID}))

		_, err = handler.UpdateCandidateScore(context.Background(), orgID, "user-1", "job-1", "candidate-1",
			parse(t, `{"technical_score": 4}`))
		var validationErr models.ValidationError
		require.True(t, errors.As(err, &validationErr))
		require.Equal(t, "technical_score", validationErr.Field)

		view, err := handler.UpdateCandidateScore(context.Background(), orgID, "user-1", "job-1", "candidate-1",
			parse(t, `{"negotiation": 4}`))
		require.Nil(t, err)
		require.Equal(t, 4.0, view.OverallScore)

		require.Nil(t, scorecards.DeleteTemplate(orgID, jobScorecardID))
		view, err = handler.UpdateCandidateScore(context.Background(), orgID, "user-1", "job-1", "candidate-1",
			parse(t, `{"technical_score": 4}`))
		require.Nil(t, err)
		require.Equal(t, 4.0, view.OverallScore)
		require.Nil(t, scorecards.DeleteTemplate(orgID, defaultID))
	})
}
