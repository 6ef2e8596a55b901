package dbmodels

import "sort"

type PipelineStage struct {
	BaseOrgModel
	TemplateID string `gorm:"type:varchar(36);index"`
	Name       string `gorm:"type:varchar(255)"`
	Color      string `gorm:"type:varchar(16)"`
	StageOrder int
	IsDefault  bool
}

func SortStages(list []PipelineStage) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].StageOrder < list[j].StageOrder
	})
}

// SnapshotFromStages - этапы шаблона в порядке StageOrder, порядок перенумерован с нуля
func SnapshotFromStages(list []PipelineStage) PipelineSnapshot {
	sorted := make([]PipelineStage, len(list))
	copy(sorted, list)
	SortStages(sorted)
	result := make(PipelineSnapshot, 0, len(sorted))
	for k, stage := range sorted {
		result = append(result, SnapshotStage{
			ID:    stage.ID,
			Name:  stage.Name,
			Color: stage.Color,
			Order: k,
		})
	}
	return result
}
