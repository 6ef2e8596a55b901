package dbmodels

import (
	"hr-pipeline-backend/models"

	"gorm.io/gorm"
)

type Job struct {
	BaseOrgModel
	Title               string           `gorm:"type:varchar(255)"`
	Status              models.JobStatus `gorm:"type:varchar(50)"`
	AuthorID            string           `gorm:"type:varchar(36)"`
	PipelineTemplateID  *string          `gorm:"type:varchar(36);index"`
	PipelineConfig      PipelineSnapshot `gorm:"type:jsonb"`
	PipelineVersion     int              `gorm:"default:0"`
	ScorecardTemplateID *string          `gorm:"type:varchar(36)"`
}

func (j *Job) AfterDelete(tx *gorm.DB) (err error) {
	if j.ID == "" {
		return nil
	}
	return tx.Where("job_id = ?", j.ID).Delete(&Application{}).Error
}

func (j Job) TemplateID() string {
	if j.PipelineTemplateID == nil {
		return ""
	}
	return *j.PipelineTemplateID
}

func (j Job) ScorecardID() string {
	if j.ScorecardTemplateID == nil {
		return ""
	}
	return *j.ScorecardTemplateID
}

type JobFilter struct {
	Search   string             `json:"search"`
	Statuses []models.JobStatus `json:"statuses"`
}
