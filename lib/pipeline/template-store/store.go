package templatestore

import (
	dbmodels "hr-pipeline-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.PipelineTemplate) (id string, err error)
	GetByID(orgID, id string) (*dbmodels.PipelineTemplate, error)
	GetDefault(orgID string) (*dbmodels.PipelineTemplate, error)
	List(orgID string) (list []dbmodels.PipelineTemplate, err error)
	Count(orgID string) (count int64, err error)
	Update(orgID, id string, updMap map[string]interface{}) error
	ClearDefault(orgID string) error
	Delete(orgID, id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.PipelineTemplate) (id string, err error) {
	err = i.db.
		Omit("Stages").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(orgID, id string) (*dbmodels.PipelineTemplate, error) {
	rec := dbmodels.PipelineTemplate{}
	err := i.withStages().
		Where("id = ?", id).
		Where("org_id = ?", orgID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetDefault(orgID string) (*dbmodels.PipelineTemplate, error) {
	rec := dbmodels.PipelineTemplate{}
	err := i.withStages().
		Where("org_id = ?", orgID).
		Where("is_default = ?", true).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(orgID string) (list []dbmodels.PipelineTemplate, err error) {
	list = []dbmodels.PipelineTemplate{}
	err = i.withStages().
		Where("org_id = ?", orgID).
		Order("is_default desc").
		Order("name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Count(orgID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.PipelineTemplate{}).
		Where("org_id = ?", orgID).
		Count(&count).
		Error
	return count, err
}

func (i impl) Update(orgID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.PipelineTemplate{}).
		Where("id = ?", id).
		Where("org_id = ?", orgID).
		Updates(updMap).
		Error
}

func (i impl) ClearDefault(orgID string) error {
	return i.db.
		Model(&dbmodels.PipelineTemplate{}).
		Where("org_id = ?", orgID).
		Where("is_default = ?", true).
		Update("is_default", false).
		Error
}

func (i impl) Delete(orgID, id string) error {
	delRec := dbmodels.PipelineTemplate{
		BaseOrgModel: dbmodels.BaseOrgModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			OrgID:     orgID,
		},
	}
	return i.db.
		Where("org_id = ?", orgID).
		Delete(&delRec).
		Error
}

func (i impl) withStages() *gorm.DB {
	return i.db.
		Preload("Stages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("stage_order")
		})
}
