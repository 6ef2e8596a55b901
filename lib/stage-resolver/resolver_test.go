package stageresolver

import (
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	appliedID   = "5c0b6f0e-5d3f-4f57-9a52-0e8f7c6c0a01"
	interviewID = "5c0b6f0e-5d3f-4f57-9a52-0e8f7c6c0a02"
	hiredID     = "5c0b6f0e-5d3f-4f57-9a52-0e8f7c6c0a03"
)

func testSnapshot() dbmodels.PipelineSnapshot {
	return dbmodels.PipelineSnapshot{
		{ID: appliedID, Name: "Applied", Color: "#3B82F6", Order: 0},
		{ID: interviewID, Name: "Interview", Color: "#F59E0B", Order: 1},
		{ID: hiredID, Name: models.HiredStageName, Color: "#10B981", Order: 2},
	}
}

func application(id, stage string) dbmodels.Application {
	rec := dbmodels.Application{CurrentStage: stage}
	rec.ID = id
	return rec
}

func cardIDs(column Column) []string {
	result := []string{}
	for _, card := range column.Cards {
		result = append(result, card.Application.ID)
	}
	return result
}

func TestResolve(t *testing.T) {
	t.Run(`legacy stage key lands in first column`, func(t *testing.T) {
		list := []dbmodels.Application{application("c", "new")}
		board := Resolve(testSnapshot(), list)
		require.Len(t, board.Columns, 3)
		require.Equal(t, []string{"c"}, cardIDs(board.Columns[0]))
		require.True(t, board.Columns[0].Cards[0].Orphaned)
		require.Equal(t, "new", list[0].CurrentStage)
		require.Equal(t, 1, board.OrphanCount())
	})

	t.Run(`match by id then by name`, func(t *testing.T) {
		list := []dbmodels.Application{
			application("a", hiredID),
			application("b", "Interview"),
			application("c", " "+interviewID+" "),
		}
		board := Resolve(testSnapshot(), list)
		require.Empty(t, board.Columns[0].Cards)
		require.Equal(t, []string{"b", "c"}, cardIDs(board.Columns[1]))
		require.False(t, board.Columns[1].Cards[0].Orphaned)
		require.Equal(t, []string{"a"}, cardIDs(board.Columns[2]))
		require.Zero(t, board.OrphanCount())
	})

	t.Run(`id match wins over earlier name match`, func(t *testing.T) {
		snapshot := testSnapshot()
		// первый этап назван так же, как идентификатор последнего
		snapshot[0].Name = hiredID
		board := Resolve(snapshot, []dbmodels.Application{application("a", hiredID)})
		require.Equal(t, []string{"a"}, cardIDs(board.Columns[2]))
	})

	t.Run(`duplicate names resolve to earliest stage`, func(t *testing.T) {
		snapshot := testSnapshot()
		snapshot[2].Name = "Interview"
		board := Resolve(snapshot, []dbmodels.Application{application("a", "Interview")})
		require.Equal(t, []string{"a"}, cardIDs(board.Columns[1]))
		require.Empty(t, board.Columns[2].Cards)
	})

	t.Run(`empty and unknown stages are orphans in input order`, func(t *testing.T) {
		list := []dbmodels.Application{
			application("a", ""),
			application("b", appliedID),
			application("c", "0d7f1c3e-0000-4000-8000-000000000000"),
		}
		board := Resolve(testSnapshot(), list)
		require.Equal(t, []string{"a", "b", "c"}, cardIDs(board.Columns[0]))
		require.True(t, board.Columns[0].Cards[0].Orphaned)
		require.False(t, board.Columns[0].Cards[1].Orphaned)
		require.True(t, board.Columns[0].Cards[2].Orphaned)
	})

	t.Run(`empty snapshot returns unassigned`, func(t *testing.T) {
		list := []dbmodels.Application{application("a", appliedID), application("b", "")}
		board := Resolve(dbmodels.PipelineSnapshot{}, list)
		require.Empty(t, board.Columns)
		require.Len(t, board.Unassigned, 2)
		require.Equal(t, "a", board.Unassigned[0].ID)
	})

	t.Run(`resolution is idempotent`, func(t *testing.T) {
		list := []dbmodels.Application{
			application("a", "new"),
			application("b", interviewID),
			application("c", "Hired"),
			application("d", ""),
		}
		first := Resolve(testSnapshot(), list)
		second := Resolve(testSnapshot(), list)
		require.Equal(t, first, second)
		for _, rec := range list {
			require.NotEqual(t, appliedID, rec.CurrentStage)
		}
	})
}

func TestLocate(t *testing.T) {
	require.Equal(t, Placement{Index: -1}, Locate(nil, models.ParseStageRef(appliedID)))
	require.Equal(t, Placement{Index: 1}, Locate(testSnapshot(), models.ParseStageRef(interviewID)))
	require.Equal(t, Placement{Index: 0, Orphaned: true}, Locate(testSnapshot(), models.ParseStageRef("")))
}
