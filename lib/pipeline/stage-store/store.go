package stagestore

import (
	dbmodels "hr-pipeline-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.PipelineStage) (id string, err error)
	GetByID(orgID, id string) (*dbmodels.PipelineStage, error)
	List(orgID, templateID string) (list []dbmodels.PipelineStage, err error)
	Update(orgID, id string, updMap map[string]interface{}) error
	SetOrder(orgID, templateID string, ids []string) error
	MaxOrder(orgID, templateID string) (order int, err error)
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

func (i impl) Create(rec dbmodels.PipelineStage) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(orgID, id string) (*dbmodels.PipelineStage, error) {
	rec := dbmodels.PipelineStage{}
	err := i.db.
		Model(&dbmodels.PipelineStage{}).
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

// List - этапы организации в порядке шаблона и позиции; пустой templateID - по всем шаблонам
func (i impl) List(orgID, templateID string) (list []dbmodels.PipelineStage, err error) {
	list = []dbmodels.PipelineStage{}
	tx := i.db.
		Where("org_id = ?", orgID)
	if templateID != "" {
		tx = tx.Where("template_id = ?", templateID)
	}
	err = tx.
		Order("template_id").
		Order("stage_order").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(orgID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.PipelineStage{}).
		Where("id = ?", id).
		Where("org_id = ?", orgID).
		Updates(updMap).
		Error
}

// SetOrder - позиция этапа равна его индексу в ids. Повторный вызов с теми же ids ничего не меняет.
func (i impl) SetOrder(orgID, templateID string, ids []string) error {
	for order, id := range ids {
		err := i.db.
			Model(&dbmodels.PipelineStage{}).
			Where("id = ?", id).
			Where("org_id = ?", orgID).
			Where("template_id = ?", templateID).
			Update("stage_order", order).
			Error
		if err != nil {
			return errors.Wrapf(err, "ошибка сохранения позиции этапа %v", id)
		}
	}
	return nil
}

// MaxOrder - наибольшая позиция этапа в шаблоне, -1 для шаблона без этапов
func (i impl) MaxOrder(orgID, templateID string) (order int, err error) {
	type result struct {
		MaxOrder int
	}
	res := result{}
	err = i.db.Table("pipeline_stages").
		Where("org_id = ?", orgID).
		Where("template_id = ?", templateID).
		Select("coalesce(max(stage_order), -1) as max_order").
		Find(&res).Error
	if err != nil {
		return 0, err
	}
	return res.MaxOrder, nil
}

func (i impl) Delete(orgID, id string) error {
	return i.db.
		Where("id = ?", id).
		Where("org_id = ?", orgID).
		Delete(&dbmodels.PipelineStage{}).
		Error
}
