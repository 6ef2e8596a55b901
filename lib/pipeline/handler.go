package pipelinehandler

import (
	"hr-pipeline-backend/db"
	stagestore "hr-pipeline-backend/lib/pipeline/stage-store"
	templatestore "hr-pipeline-backend/lib/pipeline/template-store"
	"hr-pipeline-backend/models"
	pipelineapimodels "hr-pipeline-backend/models/api/pipeline"
	dbmodels "hr-pipeline-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	ListTemplates(orgID string) ([]pipelineapimodels.TemplateView, error)
	GetTemplate(orgID, id string) (pipelineapimodels.TemplateView, error)
	CreateTemplate(orgID string, data pipelineapimodels.TemplateData) (id string, err error)
	UpdateTemplate(orgID, id string, data pipelineapimodels.TemplateUpdate) error
	SetDefaultTemplate(orgID, id string) error
	DeleteTemplate(orgID, id string) error
	DefaultTemplate(orgID string) (*dbmodels.PipelineTemplate, error)
	ListStages(orgID string, filter pipelineapimodels.StageFilter) ([]pipelineapimodels.StageView, error)
	CreateStage(orgID string, data pipelineapimodels.StageData) (id string, err error)
	UpdateStage(orgID, id string, data pipelineapimodels.StageUpdate) error
	DeleteStage(orgID, id string) error
}

var Instance Provider

type TransactionFunc func(fc func(tx *gorm.DB) error) error

func NewHandler() {
	Instance = New(db.DB, db.Transaction, templatestore.NewInstance, stagestore.NewInstance)
}

func New(conn *gorm.DB, transaction TransactionFunc,
	templateStore func(tx *gorm.DB) templatestore.Provider,
	stageStore func(tx *gorm.DB) stagestore.Provider) Provider {
	return impl{
		db:            conn,
		transaction:   transaction,
		templateStore: templateStore,
		stageStore:    stageStore,
	}
}

type impl struct {
	db            *gorm.DB
	transaction   TransactionFunc
	templateStore func(tx *gorm.DB) templatestore.Provider
	stageStore    func(tx *gorm.DB) stagestore.Provider
}

func (i impl) ListTemplates(orgID string) ([]pipelineapimodels.TemplateView, error) {
	if _, err := i.DefaultTemplate(orgID); err != nil {
		return nil, err
	}
	list, err := i.templateStore(i.db).List(orgID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка шаблонов")
	}
	result := make([]pipelineapimodels.TemplateView, 0, len(list))
	for _, rec := range list {
		result = append(result, pipelineapimodels.TemplateConvert(rec))
	}
	return result, nil
}

func (i impl) GetTemplate(orgID, id string) (pipelineapimodels.TemplateView, error) {
	rec, err := i.getTemplate(i.templateStore(i.db), orgID, id)
	if err != nil {
		return pipelineapimodels.TemplateView{}, err
	}
	return pipelineapimodels.TemplateConvert(*rec), nil
}

func (i impl) CreateTemplate(orgID string, data pipelineapimodels.TemplateData) (id string, err error) {
	logger := i.getLogger(orgID, "")
	rec := dbmodels.PipelineTemplate{
		BaseOrgModel: dbmodels.BaseOrgModel{OrgID: orgID},
		Name:         strings.TrimSpace(data.Name),
		Description:  data.Description,
		IsDefault:    data.IsDefault,
	}
	err = i.transaction(func(tx *gorm.DB) error {
		templateStore := i.templateStore(tx)
		if rec.IsDefault {
			if err := templateStore.ClearDefault(orgID); err != nil {
				return errors.Wrap(err, "ошибка сброса шаблона по умолчанию")
			}
		}
		id, err = templateStore.Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания шаблона")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	logger.WithField("template_id", id).Info("создан шаблон этапов")
	return id, nil
}

func (i impl) UpdateTemplate(orgID, id string, data pipelineapimodels.TemplateUpdate) error {
	logger := i.getLogger(orgID, id)
	if _, err := i.getTemplate(i.templateStore(i.db), orgID, id); err != nil {
		return err
	}
	updMap := map[string]interface{}{}
	if data.Name != nil {
		updMap["name"] = strings.TrimSpace(*data.Name)
	}
	if data.Description != nil {
		updMap["description"] = *data.Description
	}
	if data.IsDefault != nil && !*data.IsDefault {
		updMap["is_default"] = false
	}
	err := i.transaction(func(tx *gorm.DB) error {
		templateStore := i.templateStore(tx)
		if data.IsDefault != nil && *data.IsDefault {
			if err := templateStore.ClearDefault(orgID); err != nil {
				return errors.Wrap(err, "ошибка сброса шаблона по умолчанию")
			}
			updMap["is_default"] = true
		}
		if err := templateStore.Update(orgID, id, updMap); err != nil {
			return errors.Wrap(err, "ошибка изменения шаблона")
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("изменен шаблон этапов")
	return nil
}

// SetDefaultTemplate - сброс прежнего и установка нового шаблона по умолчанию в одной транзакции
func (i impl) SetDefaultTemplate(orgID, id string) error {
	isDefault := true
	return i.UpdateTemplate(orgID, id, pipelineapimodels.TemplateUpdate{IsDefault: &isDefault})
}

func (i impl) DeleteTemplate(orgID, id string) error {
	logger := i.getLogger(orgID, id)
	err := i.transaction(func(tx *gorm.DB) error {
		templateStore := i.templateStore(tx)
		rec, err := i.getTemplate(templateStore, orgID, id)
		if err != nil {
			return err
		}
		if rec.IsDefault {
			return models.ProtectedTemplateError{TemplateID: id}
		}
		if err = templateStore.Delete(orgID, id); err != nil {
			return errors.Wrap(err, "ошибка удаления шаблона")
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("удален шаблон этапов")
	return nil
}

// DefaultTemplate - шаблон по умолчанию организации. Организации без шаблонов
// получают шаблон из описания по умолчанию. Если шаблоны есть, но ни один не выбран
// по умолчанию, возвращается nil.
func (i impl) DefaultTemplate(orgID string) (*dbmodels.PipelineTemplate, error) {
	templateStore := i.templateStore(i.db)
	rec, err := templateStore.GetDefault(orgID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения шаблона по умолчанию")
	}
	if rec != nil {
		return rec, nil
	}
	count, err := templateStore.Count(orgID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения количества шаблонов")
	}
	if count > 0 {
		return nil, nil
	}
	if err = i.seedDefaultTemplate(orgID); err != nil {
		// шаблон мог быть создан параллельным запросом
		rec, getErr := templateStore.GetDefault(orgID)
		if getErr == nil && rec != nil {
			return rec, nil
		}
		return nil, err
	}
	rec, err = templateStore.GetDefault(orgID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения шаблона по умолчанию")
	}
	return rec, nil
}

func (i impl) seedDefaultTemplate(orgID string) error {
	rec := db.DefaultTemplate().Build(orgID)
	err := i.transaction(func(tx *gorm.DB) error {
		templateID, err := i.templateStore(tx).Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания шаблона по умолчанию")
		}
		stageStore := i.stageStore(tx)
		for _, stage := range rec.Stages {
			stage.TemplateID = templateID
			if _, err = stageStore.Create(stage); err != nil {
				return errors.Wrapf(err, "ошибка добавления этапа: %v", stage.Name)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	i.getLogger(orgID, "").WithField("name", rec.Name).Info("создан шаблон этапов по умолчанию")
	return nil
}

func (i impl) ListStages(orgID string, filter pipelineapimodels.StageFilter) ([]pipelineapimodels.StageView, error) {
	list, err := i.stageStore(i.db).List(orgID, filter.TemplateID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка этапов")
	}
	result := make([]pipelineapimodels.StageView, 0, len(list))
	for _, rec := range list {
		result = append(result, pipelineapimodels.StageConvert(rec))
	}
	return result, nil
}

// CreateStage - без указания позиции этап добавляется в конец списка,
// с позицией - вставляется на нее, остальные этапы сдвигаются
func (i impl) CreateStage(orgID string, data pipelineapimodels.StageData) (id string, err error) {
	logger := i.getLogger(orgID, data.TemplateID)
	rec := dbmodels.PipelineStage{
		BaseOrgModel: dbmodels.BaseOrgModel{OrgID: orgID},
		TemplateID:   data.TemplateID,
		Name:         strings.TrimSpace(data.Name),
		Color:        data.Color,
		IsDefault:    data.IsDefault,
	}
	if rec.Color == "" {
		rec.Color = models.DefaultStageColor
	}
	err = i.transaction(func(tx *gorm.DB) error {
		template, err := i.templateStore(tx).GetByID(orgID, data.TemplateID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения шаблона")
		}
		if template == nil {
			return models.NewValidationError("template_id", "шаблон не найден")
		}
		stageStore := i.stageStore(tx)
		maxOrder, err := stageStore.MaxOrder(orgID, data.TemplateID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения позиции этапа")
		}
		rec.StageOrder = maxOrder + 1
		id, err = stageStore.Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка добавления этапа")
		}
		if data.Order == nil || *data.Order >= len(template.Stages) {
			return renumber(stageStore, orgID, data.TemplateID, append(stageIDs(template.Stages), id))
		}
		ids := stageIDs(template.Stages)
		ids = append(ids[:*data.Order], append([]string{id}, ids[*data.Order:]...)...)
		return renumber(stageStore, orgID, data.TemplateID, ids)
	})
	if err != nil {
		return "", err
	}
	logger.WithField("stage_id", id).Info("добавлен этап шаблона")
	return id, nil
}

func (i impl) UpdateStage(orgID, id string, data pipelineapimodels.StageUpdate) error {
	rec, err := i.getStage(i.stageStore(i.db), orgID, id)
	if err != nil {
		return err
	}
	logger := i.getLogger(orgID, rec.TemplateID).WithField("stage_id", id)
	updMap := map[string]interface{}{}
	if data.Name != nil {
		updMap["name"] = strings.TrimSpace(*data.Name)
	}
	if data.Color != nil {
		color := *data.Color
		if color == "" {
			color = models.DefaultStageColor
		}
		updMap["color"] = color
	}
	if data.IsDefault != nil {
		updMap["is_default"] = *data.IsDefault
	}
	err = i.transaction(func(tx *gorm.DB) error {
		stageStore := i.stageStore(tx)
		if err := stageStore.Update(orgID, id, updMap); err != nil {
			return errors.Wrap(err, "ошибка изменения этапа")
		}
		if data.Order == nil || *data.Order == rec.StageOrder {
			return nil
		}
		list, err := stageStore.List(orgID, rec.TemplateID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения списка этапов")
		}
		ids := stageIDs(list)
		from := indexOf(ids, id)
		if from < 0 {
			return models.NewNotFoundError("этап", id)
		}
		to := *data.Order
		if to > len(ids)-1 {
			to = len(ids) - 1
		}
		return renumber(stageStore, orgID, rec.TemplateID, dbmodels.MoveItem(ids, from, to))
	})
	if err != nil {
		return err
	}
	logger.Info("изменен этап шаблона")
	return nil
}

// DeleteStage - обязательный этап удалить нельзя. Кандидаты вакансий не изменяются.
func (i impl) DeleteStage(orgID, id string) error {
	rec, err := i.getStage(i.stageStore(i.db), orgID, id)
	if err != nil {
		return err
	}
	if rec.IsDefault {
		return models.ProtectedStageError{StageID: id}
	}
	err = i.transaction(func(tx *gorm.DB) error {
		stageStore := i.stageStore(tx)
		if err := stageStore.Delete(orgID, id); err != nil {
			return errors.Wrap(err, "ошибка удаления этапа")
		}
		list, err := stageStore.List(orgID, rec.TemplateID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения списка этапов")
		}
		return renumber(stageStore, orgID, rec.TemplateID, stageIDs(list))
	})
	if err != nil {
		return err
	}
	i.getLogger(orgID, rec.TemplateID).WithField("stage_id", id).Info("удален этап шаблона")
	return nil
}

func (i impl) getTemplate(store templatestore.Provider, orgID, id string) (*dbmodels.PipelineTemplate, error) {
	rec, err := store.GetByID(orgID, id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения шаблона")
	}
	if rec == nil {
		return nil, models.NewNotFoundError("шаблон", id)
	}
	return rec, nil
}

func (i impl) getStage(store stagestore.Provider, orgID, id string) (*dbmodels.PipelineStage, error) {
	rec, err := store.GetByID(orgID, id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения этапа")
	}
	if rec == nil {
		return nil, models.NewNotFoundError("этап", id)
	}
	return rec, nil
}

func (i impl) getLogger(orgID, templateID string) *log.Entry {
	logger := log.WithField("org_id", orgID)
	if templateID != "" {
		logger = logger.WithField("template_id", templateID)
	}
	return logger
}

func renumber(store stagestore.Provider, orgID, templateID string, ids []string) error {
	if err := store.SetOrder(orgID, templateID, ids); err != nil {
		return errors.Wrap(err, "ошибка сохранения порядка этапов")
	}
	return nil
}

func stageIDs(list []dbmodels.PipelineStage) []string {
	sorted := make([]dbmodels.PipelineStage, len(list))
	copy(sorted, list)
	dbmodels.SortStages(sorted)
	result := make([]string, 0, len(sorted))
	for _, stage := range sorted {
		result = append(result, stage.ID)
	}
	return result
}

func indexOf(list []string, value string) int {
	for k, item := range list {
		if item == value {
			return k
		}
	}
	return -1
}
