package applicationhandler

import (
	"bytes"
	"context"
	xlsexport "hr-pipeline-backend/lib/export/xls"
	"hr-pipeline-backend/lib/metrics"
	"hr-pipeline-backend/lib/utils/memstore"
	"hr-pipeline-backend/models"
	applicationapimodels "hr-pipeline-backend/models/api/application"
	dbmodels "hr-pipeline-backend/models/db"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const orgID = "org-1"

func init() {
	xlsexport.NewHandler()
}

func newJob(t *testing.T, mem *memstore.Memory, snapshot dbmodels.PipelineSnapshot) string {
	id, err := mem.JobStore(nil).Create(dbmodels.Job{
		BaseOrgModel:   dbmodels.BaseOrgModel{OrgID: orgID},
		Title:          "Go Developer",
		PipelineConfig: snapshot,
	})
	require.Nil(t, err)
	return id
}

func snapshot() dbmodels.PipelineSnapshot {
	return dbmodels.PipelineSnapshot{
		{ID: "0b1e7f0a-1111-4000-8000-000000000001", Name: "Applied", Order: 0},
		{ID: "0b1e7f0a-1111-4000-8000-000000000002", Name: "Interview", Order: 1},
		{ID: "0b1e7f0a-1111-4000-8000-000000000003", Name: "Hired", Order: 2},
	}
}

func TestCreateApplication(t *testing.T) {
	mem := memstore.New()
	handler := New(mem.ApplicationStore(nil), mem.JobStore(nil), xlsexport.Instance)
	jobID := newJob(t, mem, snapshot())

	t.Run(`candidate starts at the first stage`, func(t *testing.T) {
		view, err := handler.CreateApplication(context.Background(), orgID, jobID, applicationapimodels.ApplicationData{CandidateID: "candidate-1"})
		require.Nil(t, err)
		require.Equal(t, snapshot()[0].ID, view.CurrentStage)
		require.False(t, view.AppliedAt.IsZero())
	})

	t.Run(`candidate applies once`, func(t *testing.T) {
		_, err := handler.CreateApplication(context.Background(), orgID, jobID, applicationapimodels.ApplicationData{CandidateID: "candidate-1"})
		var validationErr models.ValidationError
		require.True(t, errors.As(err, &validationErr))
		require.Equal(t, "candidate_id", validationErr.Field)
	})

	t.Run(`job without stages`, func(t *testing.T) {
		emptyJobID := newJob(t, mem, dbmodels.PipelineSnapshot{})
		view, err := handler.CreateApplication(context.Background(), orgID, emptyJobID, applicationapimodels.ApplicationData{CandidateID: "candidate-1"})
		require.Nil(t, err)
		require.Equal(t, "", view.CurrentStage)
	})

	t.Run(`unknown job`, func(t *testing.T) {
		_, err := handler.CreateApplication(context.Background(), orgID, "missing", applicationapimodels.ApplicationData{CandidateID: "candidate-2"})
		var notFoundErr models.NotFoundError
		require.True(t, errors.As(err, &notFoundErr))
	})
}

func TestBoard(t *testing.T) {
	mem := memstore.New()
	handler := New(mem.ApplicationStore(nil), mem.JobStore(nil), xlsexport.Instance)
	jobID := newJob(t, mem, snapshot())
	stages := map[string]string{
		"candidate-1": snapshot()[1].ID,
		"candidate-2": "Hired",
		"candidate-3": "new",
		"candidate-4": "",
	}
	for candidate, stage := range stages {
		_, err := mem.ApplicationStore(nil).Create(dbmodels.Application{
			BaseOrgModel: dbmodels.BaseOrgModel{OrgID: orgID},
			CandidateID:  candidate,
			JobID:        jobID,
			CurrentStage: stage,
		})
		require.Nil(t, err)
	}
	before := testutil.ToFloat64(metrics.OrphansResolved)

	board, err := handler.Board(orgID, jobID)
	require.Nil(t, err)
	require.Len(t, board.Columns, 3)
	require.Len(t, board.Columns[0].Applications, 2)
	for _, card := range board.Columns[0].Applications {
		require.True(t, card.Orphaned)
	}
	require.Len(t, board.Columns[1].Applications, 1)
	require.Equal(t, "candidate-1", board.Columns[1].Applications[0].CandidateID)
	require.Len(t, board.Columns[2].Applications, 1)
	require.False(t, board.Columns[2].Applications[0].Orphaned)
	require.Empty(t, board.Unassigned)
	require.Equal(t, before+2, testutil.ToFloat64(metrics.OrphansResolved))

	t.Run(`job without stages`, func(t *testing.T) {
		emptyJobID := newJob(t, mem, nil)
		_, err := mem.ApplicationStore(nil).Create(dbmodels.Application{
			BaseOrgModel: dbmodels.BaseOrgModel{OrgID: orgID},
			CandidateID:  "candidate-5",
			JobID:        emptyJobID,
			CurrentStage: "new",
		})
		require.Nil(t, err)
		board, err := handler.Board(orgID, emptyJobID)
		require.Nil(t, err)
		require.Empty(t, board.Columns)
		require.Len(t, board.Unassigned, 1)
	})
}

func TestExports(t *testing.T) {
	mem := memstore.New()
	handler := New(mem.ApplicationStore(nil), mem.JobStore(nil), xlsexport.Instance)
	jobID := newJob(t, mem, snapshot())
	view, err := handler.CreateApplication(context.Background(), orgID, jobID, applicationapimodels.ApplicationData{CandidateID: "candidate-1"})
	require.Nil(t, err)

	t.Run(`board xlsx`, func(t *testing.T) {
		buf, err := handler.ExportBoard(orgID, jobID)
		require.Nil(t, err)
		require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
	})

	t.Run(`scorecard pdf`, func(t *testing.T) {
		file, err := handler.ScorecardPDF(orgID, view.ID)
		require.Nil(t, err)
		require.True(t, bytes.HasPrefix(file, []byte("%PDF")))
	})

	t.Run(`unknown application`, func(t *testing.T) {
		_, err := handler.ScorecardPDF(orgID, "missing")
		var notFoundErr models.NotFoundError
		require.True(t, errors.As(err, &notFoundErr))
	})
}
