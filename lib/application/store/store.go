package applicationstore

import (
	dbmodels "hr-pipeline-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Application) (id string, err error)
	GetByID(orgID, id string) (*dbmodels.Application, error)
	GetByCandidate(orgID, jobID, candidateID string) (*dbmodels.Application, error)
	ListByJob(orgID, jobID string) (list []dbmodels.Application, err error)
	Update(orgID, id string, updMap map[string]interface{}) error
	ClearStages(orgID, jobID string) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Application) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(orgID, id string) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.db.
		Model(&dbmodels.Application{}).
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

func (i impl) GetByCandidate(orgID, jobID, candidateID string) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.db.
		Model(&dbmodels.Application{}).
		Where("org_id = ?", orgID).
		Where("job_id = ?", jobID).
		Where("candidate_id = ?", candidateID).
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

func (i impl) ListByJob(orgID, jobID string) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	err = i.db.
		Where("org_id = ?", orgID).
		Where("job_id = ?", jobID).
		Order("applied_at").
		Order("created_at").
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
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		Where("org_id = ?", orgID).
		Updates(updMap).
		Error
}

// ClearStages - все кандидаты вакансии теряют привязку к этапу
func (i impl) ClearStages(orgID, jobID string) (count int64, err error) {
	tx := i.db.
		Model(&dbmodels.Application{}).
		Where("org_id = ?", orgID).
		Where("job_id = ?", jobID).
		Update("current_stage", "")
	return tx.RowsAffected, tx.Error
}
