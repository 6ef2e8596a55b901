package applicationapimodels

import dbmodels "hr-pipeline-backend/models/db"

type BoardView struct {
	Columns    []ColumnView      `json:"columns"`    // Колонки в порядке этапов вакансии
	Unassigned []ApplicationView `json:"unassigned"` // Кандидаты вакансии без этапов
}

type ColumnView struct {
	Stage        dbmodels.SnapshotStage `json:"stage"`
	Applications []CardView             `json:"applications"`
}

type CardView struct {
	ApplicationView
	Orphaned bool `json:"orphaned"` // этап кандидата не найден, показан в первой колонке
}
