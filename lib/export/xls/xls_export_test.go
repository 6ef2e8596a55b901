package xlsexport

import (
	"hr-pipeline-backend/models"
	applicationapimodels "hr-pipeline-backend/models/api/application"
	dbmodels "hr-pipeline-backend/models/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportBoard(t *testing.T) {
	score := 4.5
	board := applicationapimodels.BoardView{
		Columns: []applicationapimodels.ColumnView{
			{
				Stage: dbmodels.SnapshotStage{ID: "s1", Name: "Applied"},
				Applications: []applicationapimodels.CardView{
					{ApplicationView: applicationapimodels.ApplicationView{CandidateID: "candidate-1", CurrentStage: "new"}, Orphaned: true},
					{ApplicationView: applicationapimodels.ApplicationView{CandidateID: "candidate-2", CurrentStage: "s1"}},
				},
			},
			{
				Stage: dbmodels.SnapshotStage{ID: "s2", Name: "Hired"},
				Applications: []applicationapimodels.CardView{
					{ApplicationView: applicationapimodels.ApplicationView{
						CandidateID:    "candidate-3",
						CurrentStage:   "s2",
						AppliedAt:      time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
						OverallScore:   &score,
						Recommendation: models.RecommendationStrongYes,
					}},
				},
			},
		},
	}

	buf, err := impl{}.ExportBoard("Go Developer", board)
	require.Nil(t, err)

	f, err := excelize.OpenReader(buf)
	require.Nil(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	require.Nil(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, boardHeaders, rows[0])
	require.Equal(t, []string{"candidate-1", "Applied", "Да"}, rows[1][:3])
	require.Equal(t, []string{"candidate-2", "Applied", "Нет"}, rows[2][:3])
	require.Equal(t, []string{"candidate-3", "Hired", "Нет", "05.03.2024", "4.5", "Strong Yes"}, rows[3])

	t.Run(`empty board`, func(t *testing.T) {
		buf, err := impl{}.ExportBoard("Go Developer", applicationapimodels.BoardView{})
		require.Nil(t, err)
		f, err := excelize.OpenReader(buf)
		require.Nil(t, err)
		defer f.Close()
		rows, err := f.GetRows(SheetName)
		require.Nil(t, err)
		require.Len(t, rows, 1)
	})

	t.Run(`unassigned candidates`, func(t *testing.T) {
		board := applicationapimodels.BoardView{
			Unassigned: []applicationapimodels.ApplicationView{{CandidateID: "candidate-4", CurrentStage: "new"}},
		}
		buf, err := impl{}.ExportBoard("Go Developer", board)
		require.Nil(t, err)
		f, err := excelize.OpenReader(buf)
		require.Nil(t, err)
		defer f.Close()
		rows, err := f.GetRows(SheetName)
		require.Nil(t, err)
		require.Equal(t, []string{"candidate-4", "", "Да"}, rows[1][:3])
	})
}
