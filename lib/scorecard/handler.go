package scorecardhandler

import (
	"hr-pipeline-backend/db"
	jobstore "hr-pipeline-backend/lib/job/store"
	scorecardstore "hr-pipeline-backend/lib/scorecard/store"
	"hr-pipeline-backend/models"
	scorecardapimodels "hr-pipeline-backend/models/api/scorecard"
	dbmodels "hr-pipeline-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	ListTemplates(orgID string) ([]scorecardapimodels.ScorecardView, error)
	GetTemplate(orgID, id string) (scorecardapimodels.ScorecardView, error)
	CreateTemplate(orgID string, data scorecardapimodels.ScorecardData) (id string, err error)
	UpdateTemplate(orgID, id string, data scorecardapimodels.ScorecardUpdate) error
	SetDefaultTemplate(orgID, id string) error
	DeleteTemplate(orgID, id string) error
	JobScorecard(orgID, jobID string) (*dbmodels.ScorecardTemplate, error)
}

var Instance Provider

type TransactionFunc func(fc func(tx *gorm.DB) error) error

func NewHandler() {
	Instance = New(db.DB, db.Transaction, scorecardstore.NewInstance, jobstore.NewInstance(db.DB))
}

func New(conn *gorm.DB, transaction TransactionFunc,
	scorecardStore func(tx *gorm.DB) scorecardstore.Provider, jobStore jobstore.Provider) Provider {
	return impl{
		db:             conn,
		transaction:    transaction,
		scorecardStore: scorecardStore,
		jobStore:       jobStore,
	}
}

type impl struct {
	db             *gorm.DB
	transaction    TransactionFunc
	scorecardStore func(tx *gorm.DB) scorecardstore.Provider
	jobStore       jobstore.Provider
}

func (i impl) ListTemplates(orgID string) ([]scorecardapimodels.ScorecardView, error) {
	list, err := i.scorecardStore(i.db).List(orgID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка карт оценки")
	}
	result := make([]scorecardapimodels.ScorecardView, 0, len(list))
	for _, rec := range list {
		result = append(result, scorecardapimodels.ScorecardConvert(rec))
	}
	return result, nil
}

func (i impl) GetTemplate(orgID, id string) (scorecardapimodels.ScorecardView, error) {
	rec, err := i.getTemplate(i.scorecardStore(i.db), orgID, id)
	if err != nil {
		return scorecardapimodels.ScorecardView{}, err
	}
	return scorecardapimodels.ScorecardConvert(*rec), nil
}

// CreateTemplate - без критериев карта оценки получает стандартный набор
func (i impl) CreateTemplate(orgID string, data scorecardapimodels.ScorecardData) (id string, err error) {
	if err = data.Validate(); err != nil {
		return "", err
	}
	sections := dbmodels.DefaultScorecardSections()
	if data.Sections != nil {
		sections = scorecardapimodels.NormalizeSections(data.Sections)
	}
	rec := dbmodels.ScorecardTemplate{
		BaseOrgModel: dbmodels.BaseOrgModel{OrgID: orgID},
		Name:         strings.TrimSpace(data.Name),
		Description:  data.Description,
		IsDefault:    data.IsDefault,
		Sections:     sections,
	}
	err = i.transaction(func(tx *gorm.DB) error {
		store := i.scorecardStore(tx)
		if rec.IsDefault {
			if err := store.ClearDefault(orgID); err != nil {
				return errors.Wrap(err, "ошибка сброса карты оценки по умолчанию")
			}
		}
		id, err = store.Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания карты оценки")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	i.getLogger(orgID, id).Info("создана карта оценки")
	return id, nil
}

func (i impl) UpdateTemplate(orgID, id string, data scorecardapimodels.ScorecardUpdate) error {
	if err := data.Validate(); err != nil {
		return err
	}
	if _, err := i.getTemplate(i.scorecardStore(i.db), orgID, id); err != nil {
		return err
	}
	updMap := map[string]interface{}{}
	if data.Name != nil {
		updMap["name"] = strings.TrimSpace(*data.Name)
	}
	if data.Description != nil {
		updMap["description"] = *data.Description
	}
	if data.Sections != nil {
		updMap["sections"] = scorecardapimodels.NormalizeSections(*data.Sections)
	}
	if data.IsDefault != nil && !*data.IsDefault {
		updMap["is_default"] = false
	}
	err := i.transaction(func(tx *gorm.DB) error {
		store := i.scorecardStore(tx)
		if data.IsDefault != nil && *data.IsDefault {
			if err := store.ClearDefault(orgID); err != nil {
				return errors.Wrap(err, "ошибка сброса карты оценки по умолчанию")
			}
			updMap["is_default"] = true
		}
		if err := store.Update(orgID, id, updMap); err != nil {
			return errors.Wrap(err, "ошибка изменения карты оценки")
		}
		return nil
	})
	if err != nil {
		return err
	}
	i.getLogger(orgID, id).Info("изменена карта оценки")
	return nil
}

func (i impl) SetDefaultTemplate(orgID, id string) error {
	isDefault := true
	return i.UpdateTemplate(orgID, id, scorecardapimodels.ScorecardUpdate{IsDefault: &isDefault})
}

// DeleteTemplate - удалить можно любую карту оценки, в том числе карту по умолчанию.
// Вакансии с удаленной картой оцениваются по карте по умолчанию.
func (i impl) DeleteTemplate(orgID, id string) error {
	store := i.scorecardStore(i.db)
	if _, err := i.getTemplate(store, orgID, id); err != nil {
		return err
	}
	if err := store.Delete(orgID, id); err != nil {
		return errors.Wrap(err, "ошибка удаления карты оценки")
	}
	i.getLogger(orgID, id).Info("удалена карта оценки")
	return nil
}

// JobScorecard - карта оценки вакансии, иначе карта по умолчанию организации.
// nil означает, что состав критериев не ограничен.
func (i impl) JobScorecard(orgID, jobID string) (*dbmodels.ScorecardTemplate, error) {
	job, err := i.jobStore.GetByID(orgID, jobID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения вакансии")
	}
	if job == nil {
		return nil, models.NewNotFoundError("вакансия", jobID)
	}
	store := i.scorecardStore(i.db)
	if job.ScorecardID() != "" {
		rec, err := store.GetByID(orgID, job.ScorecardID())
		if err != nil {
			return nil, errors.Wrap(err, "ошибка получения карты оценки")
		}
		if rec != nil {
			return rec, nil
		}
		i.getLogger(orgID, job.ScorecardID()).
			WithField("job_id", jobID).
			Warn("карта оценки вакансии не найдена, используется карта по умолчанию")
	}
	rec, err := store.GetDefault(orgID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения карты оценки по умолчанию")
	}
	return rec, nil
}

func (i impl) getTemplate(store scorecardstore.Provider, orgID, id string) (*dbmodels.ScorecardTemplate, error) {
	rec, err := store.GetByID(orgID, id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения карты оценки")
	}
	if rec == nil {
		return nil, models.NewNotFoundError("карта оценки", id)
	}
	return rec, nil
}

func (i impl) getLogger(orgID, scorecardID string) *log.Entry {
	logger := log.WithField("org_id", orgID)
	if scorecardID != "" {
		logger = logger.WithField("scorecard_id", scorecardID)
	}
	return logger
}
