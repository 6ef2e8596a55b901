package scorecardstore

import (
	dbmodels "hr-pipeline-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.ScorecardTemplate) (id string, err error)
	GetByID(orgID, id string) (*dbmodels.ScorecardTemplate, error)
	GetDefault(orgID string) (*dbmodels.ScorecardTemplate, error)
	List(orgID string) (list []dbmodels.ScorecardTemplate, err error)
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

func (i impl) Create(rec dbmodels.ScorecardTemplate) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(orgID, id string) (*dbmodels.ScorecardTemplate, error) {
	rec := dbmodels.ScorecardTemplate{}
	err := i.db.
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

func (i impl) GetDefault(orgID string) (*dbmodels.ScorecardTemplate, error) {
	rec := dbmodels.ScorecardTemplate{}
	err := i.db.
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

func (i impl) List(orgID string) (list []dbmodels.ScorecardTemplate, err error) {
	list = []dbmodels.ScorecardTemplate{}
	err = i.db.
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

func (i impl) Update(orgID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.ScorecardTemplate{}).
		Where("id = ?", id).
		Where("org_id = ?", orgID).
		Updates(updMap).
		Error
}

func (i impl) ClearDefault(orgID string) error {
	return i.db.
		Model(&dbmodels.ScorecardTemplate{}).
		Where("org_id = ?", orgID).
		Where("is_default = ?", true).
		Update("is_default", false).
		Error
}

func (i impl) Delete(orgID, id string) error {
	delRec := dbmodels.ScorecardTemplate{
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
