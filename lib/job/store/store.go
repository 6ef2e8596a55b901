package jobstore

import (
	dbmodels "hr-pipeline-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Job) (id string, err error)
	GetByID(orgID, id string) (*dbmodels.Job, error)
	List(orgID string, filter dbmodels.JobFilter, offset, limit int) (list []dbmodels.Job, rowCount int64, err error)
	Update(orgID, id string, updMap map[string]interface{}) error
	UpdateSnapshot(orgID, id string, snapshot dbmodels.PipelineSnapshot, expectedVersion *int, updMap map[string]interface{}) (updated bool, err error)
	Delete(orgID, id string) error
}

// LockKey - ключ блокировки изменений этапов вакансии
func LockKey(jobID string) string {
	return "job:" + jobID
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Job) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(orgID, id string) (*dbmodels.Job, error) {
	rec := dbmodels.Job{}
	err := i.db.
		Model(&dbmodels.Job{}).
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

func (i impl) List(orgID string, filter dbmodels.JobFilter, offset, limit int) (list []dbmodels.Job, rowCount int64, err error) {
	list = []dbmodels.Job{}
	tx := i.db.
		Model(&dbmodels.Job{}).
		Where("org_id = ?", orgID)
	if filter.Search != "" {
		tx = tx.Where("LOWER(title) like ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if len(filter.Statuses) != 0 {
		tx = tx.Where("status in (?)", filter.Statuses)
	}
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	err = tx.
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) Update(orgID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.Job{}).
		Where("id = ?", id).
		Where("org_id = ?", orgID).
		Updates(updMap).
		Error
}

// UpdateSnapshot записывает этапы вакансии одним запросом и увеличивает версию.
// С expectedVersion запись выполняется только при совпадении версии, updated=false - версия изменилась.
func (i impl) UpdateSnapshot(orgID, id string, snapshot dbmodels.PipelineSnapshot, expectedVersion *int, updMap map[string]interface{}) (updated bool, err error) {
	values := map[string]interface{}{}
	for key, value := range updMap {
		values[key] = value
	}
	values["pipeline_config"] = snapshot
	values["pipeline_version"] = gorm.Expr("pipeline_version + 1")
	tx := i.db.
		Model(&dbmodels.Job{}).
		Where("id = ?", id).
		Where("org_id = ?", orgID)
	if expectedVersion != nil {
		tx = tx.Where("pipeline_version = ?", *expectedVersion)
	}
	tx = tx.Updates(values)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) Delete(orgID, id string) error {
	delRec := dbmodels.Job{
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
