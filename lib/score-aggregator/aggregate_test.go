package scoreaggregator

import (
	"encoding/json"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) dbmodels.ScoreDetails {
	details := dbmodels.ScoreDetails{}
	require.Nil(t, json.Unmarshal([]byte(raw), &details))
	return details
}

func TestAggregate(t *testing.T) {
	t.Run(`mean excludes recommendation`, func(t *testing.T) {
		result, err := Aggregate(parse(t, `{"tech": 4, "comm": 2, "recommendation": "Yes"}`))
		require.Nil(t, err)
		require.Equal(t, 3.0, result.OverallScore)
		require.Equal(t, models.RecommendationYes, result.Recommendation)
	})

	t.Run(`empty details`, func(t *testing.T) {
		result, err := Aggregate(parse(t, `{}`))
		require.Nil(t, err)
		require.Equal(t, 0.0, result.OverallScore)
		require.Equal(t, models.Recommendation(""), result.Recommendation)
	})

	t.Run(`single criterion`, func(t *testing.T) {
		result, err := Aggregate(parse(t, `{"a": 5}`))
		require.Nil(t, err)
		require.Equal(t, 5.0, result.OverallScore)
	})

	t.Run(`rounded to one decimal`, func(t *testing.T) {
		result, err := Aggregate(parse(t, `{"a": 5, "b": 4, "c": 4}`))
		require.Nil(t, err)
		require.Equal(t, 4.3, result.OverallScore)
	})

	t.Run(`recommendation only`, func(t *testing.T) {
		result, err := Aggregate(parse(t, `{"recommendation": "Strong No"}`))
		require.Nil(t, err)
		require.Equal(t, 0.0, result.OverallScore)
		require.Equal(t, models.RecommendationStrongNo, result.Recommendation)
	})

	t.Run(`invalid ratings`, func(t *testing.T) {
		for _, raw := range []string{`{"a": 0}`, `{"a": 6}`, `{"a": 3.5}`, `{"a": -1}`} {
			_, err := Aggregate(parse(t, raw))
			var validationErr models.ValidationError
			require.True(t, errors.As(err, &validationErr), raw)
			require.Equal(t, "a", validationErr.Field)
		}
	})

	t.Run(`unknown recommendation`, func(t *testing.T) {
		_, err := Aggregate(parse(t, `{"a": 3, "recommendation": "Maybe"}`))
		var validationErr models.ValidationError
		require.True(t, errors.As(err, &validationErr))
		require.Equal(t, "recommendation", validationErr.Field)
	})

	t.Run(`non numeric rating is rejected on parse`, func(t *testing.T) {
		details := dbmodels.ScoreDetails{}
		err := json.Unmarshal([]byte(`{"a": "five"}`), &details)
		var validationErr models.ValidationError
		require.True(t, errors.As(err, &validationErr))
	})
}
