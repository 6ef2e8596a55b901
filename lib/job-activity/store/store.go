package jobactivitystore

import (
	dbmodels "hr-pipeline-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.JobActivity) (id string, err error)
	List(orgID, jobID string, offset, limit int) (list []dbmodels.JobActivity, err error)
	ListCount(orgID, jobID string) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.JobActivity) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(orgID, jobID string, offset, limit int) (list []dbmodels.JobActivity, err error) {
	list = []dbmodels.JobActivity{}
	err = i.getListTx(orgID, jobID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(orgID, jobID string) (count int64, err error) {
	err = i.getListTx(orgID, jobID).
		Count(&count).
		Error
	return count, err
}

func (i impl) getListTx(orgID, jobID string) *gorm.DB {
	return i.db.
		Model(&dbmodels.JobActivity{}).
		Where("org_id = ?", orgID).
		Where("job_id = ?", jobID)
}
