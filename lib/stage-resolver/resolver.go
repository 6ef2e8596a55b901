package stageresolver

import (
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

type Card struct {
	Application dbmodels.Application
	Orphaned    bool // этап кандидата не найден в списке этапов вакансии
}

type Column struct {
	Stage dbmodels.SnapshotStage
	Cards []Card
}

type Board struct {
	Columns    []Column
	Unassigned []dbmodels.Application // вакансия без этапов
}

func (b Board) OrphanCount() int {
	count := 0
	for _, column := range b.Columns {
		for _, card := range column.Cards {
			if card.Orphaned {
				count++
			}
		}
	}
	return count
}

// Placement - позиция кандидата на доске
type Placement struct {
	Index    int // индекс колонки, -1 если у вакансии нет этапов
	Orphaned bool
}

// Locate - колонка для ссылки на этап: совпадение по идентификатору, затем по названию.
// Кандидат с ненайденным или пустым этапом попадает в первую колонку.
func Locate(snapshot dbmodels.PipelineSnapshot, ref models.StageRef) Placement {
	if len(snapshot) == 0 {
		return Placement{Index: -1}
	}
	index, stage := snapshot.Find(ref)
	if stage == nil {
		return Placement{Index: 0, Orphaned: true}
	}
	return Placement{Index: index}
}

// Resolve раскладывает кандидатов по колонкам этапов вакансии.
// Входные данные не изменяются, порядок кандидатов внутри колонки совпадает с входным.
func Resolve(snapshot dbmodels.PipelineSnapshot, applications []dbmodels.Application) Board {
	if len(snapshot) == 0 {
		unassigned := make([]dbmodels.Application, len(applications))
		copy(unassigned, applications)
		return Board{
			Columns:    []Column{},
			Unassigned: unassigned,
		}
	}
	board := Board{
		Columns:    make([]Column, 0, len(snapshot)),
		Unassigned: []dbmodels.Application{},
	}
	for _, stage := range snapshot {
		board.Columns = append(board.Columns, Column{
			Stage: stage,
			Cards: []Card{},
		})
	}
	for _, application := range applications {
		placement := Locate(snapshot, application.StageRef())
		column := &board.Columns[placement.Index]
		column.Cards = append(column.Cards, Card{
			Application: application,
			Orphaned:    placement.Orphaned,
		})
	}
	return board
}
