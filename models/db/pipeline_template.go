package dbmodels

import (
	"gorm.io/gorm"
)

type PipelineTemplate struct {
	BaseOrgModel
	Name        string `gorm:"type:varchar(255)"`
	Description string
	IsDefault   bool
	Stages      []PipelineStage `gorm:"foreignKey:TemplateID"`
}

func (t *PipelineTemplate) AfterDelete(tx *gorm.DB) (err error) {
	if t.ID == "" {
		return nil
	}
	return tx.Where("template_id = ?", t.ID).Delete(&PipelineStage{}).Error
}

// Snapshot - копия этапов шаблона по значению для назначения вакансии
func (t PipelineTemplate) Snapshot() PipelineSnapshot {
	return SnapshotFromStages(t.Stages)
}
