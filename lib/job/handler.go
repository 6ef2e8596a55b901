package jobhandler

import (
	"context"
	"fmt"
	"hr-pipeline-backend/db"
	boardevents "hr-pipeline-backend/lib/board-events"
	jobactivityhandler "hr-pipeline-backend/lib/job-activity"
	jobstore "hr-pipeline-backend/lib/job/store"
	"hr-pipeline-backend/lib/metrics"
	pipelinehandler "hr-pipeline-backend/lib/pipeline"
	templatestore "hr-pipeline-backend/lib/pipeline/template-store"
	scorecardstore "hr-pipeline-backend/lib/scorecard/store"
	"hr-pipeline-backend/lib/utils/lock"
	"hr-pipeline-backend/models"
	jobapimodels "hr-pipeline-backend/models/api/job"
	dbmodels "hr-pipeline-backend/models/db"
	wsmodels "hr-pipeline-backend/models/ws"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	CreateJob(ctx context.Context, orgID, userID string, data jobapimodels.JobData) (jobapimodels.JobView, error)
	GetJob(orgID, id string) (jobapimodels.JobView, error)
	ListJobs(orgID string, filter jobapimodels.JobFilter) ([]jobapimodels.JobView, int64, error)
	UpdateJob(ctx context.Context, orgID, userID, id string, data jobapimodels.JobUpdate) (jobapimodels.JobView, error)
	CloneJob(ctx context.Context, orgID, userID, id string) (jobapimodels.JobView, error)
	DeleteJob(orgID, id string) error
	ListActivity(orgID, id string, filter jobapimodels.ActivityFilter) ([]jobapimodels.ActivityView, int64, error)
}

var Instance Provider

const defaultLockWait = 5 * time.Second

func NewHandler(lockWait time.Duration) {
	if lockWait <= 0 {
		lockWait = defaultLockWait
	}
	Instance = New(jobstore.NewInstance(db.DB), templatestore.NewInstance(db.DB), scorecardstore.NewInstance(db.DB),
		pipelinehandler.Instance, jobactivityhandler.Instance, boardevents.Instance, lock.Default(), lockWait)
}

func New(jobStore jobstore.Provider, templateStore templatestore.Provider, scorecardStore scorecardstore.Provider,
	pipelines pipelinehandler.Provider, activity jobactivityhandler.Provider, events boardevents.Provider,
	locker *lock.KeyLock, lockWait time.Duration) Provider {
	return impl{
		jobStore:       jobStore,
		templateStore:  templateStore,
		scorecardStore: scorecardStore,
		pipelines:      pipelines,
		activity:       activity,
		events:         events,
		locker:         locker,
		lockWait:       lockWait,
	}
}

type impl struct {
	jobStore       jobstore.Provider
	templateStore  templatestore.Provider
	scorecardStore scorecardstore.Provider
	pipelines      pipelinehandler.Provider
	activity       jobactivityhandler.Provider
	events         boardevents.Provider
	locker         *lock.KeyLock
	lockWait       time.Duration
}

// CreateJob - этапы вакансии копируются из указанного шаблона, иначе из шаблона организации по умолчанию.
// Если шаблона по умолчанию нет, используются этапы старой схемы.
func (i impl) CreateJob(ctx context.Context, orgID, userID string, data jobapimodels.JobData) (result jobapimodels.JobView, err error) {
	defer func(start time.Time) { metrics.Observe("create_job", start, err) }(time.Now())
	if err = data.Validate(); err != nil {
		return result, err
	}
	rec := dbmodels.Job{
		BaseOrgModel: dbmodels.BaseOrgModel{OrgID: orgID},
		Title:        data.Title,
		Status:       models.JobStatusDraft,
		AuthorID:     userID,
	}
	template, err := i.jobTemplate(orgID, data.TemplateID)
	if err != nil {
		return result, err
	}
	if template != nil {
		rec.PipelineTemplateID = &template.ID
		rec.PipelineConfig = template.Snapshot()
	} else {
		rec.PipelineConfig = dbmodels.LegacySnapshot()
	}
	if data.ScorecardTemplateID != nil && *data.ScorecardTemplateID != "" {
		if err = i.checkScorecard(orgID, *data.ScorecardTemplateID); err != nil {
			return result, err
		}
		scorecardID := *data.ScorecardTemplateID
		rec.ScorecardTemplateID = &scorecardID
	}
	id, err := i.jobStore.Create(rec)
	if err != nil {
		return result, errors.Wrap(err, "ошибка создания вакансии")
	}
	i.getLogger(orgID, id, userID).
		WithField("template_id", rec.TemplateID()).
		Info("создана вакансия")
	return i.GetJob(orgID, id)
}

func (i impl) jobTemplate(orgID string, templateID *string) (*dbmodels.PipelineTemplate, error) {
	if templateID == nil || *templateID == "" {
		return i.pipelines.DefaultTemplate(orgID)
	}
	rec, err := i.templateStore.GetByID(orgID, *templateID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения шаблона")
	}
	if rec == nil {
		return nil, models.NewValidationError("template_id", fmt.Sprintf("шаблон %v не найден", *templateID))
	}
	return rec, nil
}

func (i impl) checkScorecard(orgID, id string) error {
	rec, err := i.scorecardStore.GetByID(orgID, id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения карты оценки")
	}
	if rec == nil {
		return models.NewValidationError("scorecard_template_id", fmt.Sprintf("карта оценки %v не найдена", id))
	}
	return nil
}

func (i impl) GetJob(orgID, id string) (jobapimodels.JobView, error) {
	rec, err := i.getJob(orgID, id)
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	return jobapimodels.JobConvert(*rec), nil
}

func (i impl) ListJobs(orgID string, filter jobapimodels.JobFilter) ([]jobapimodels.JobView, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, models.NewValidationError("page", err.Error())
	}
	_, limit := filter.GetPage()
	dbFilter := dbmodels.JobFilter{
		Search:   filter.Search,
		Statuses: filter.Statuses,
	}
	list, rowCount, err := i.jobStore.List(orgID, dbFilter, filter.GetOffset(), limit)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка вакансий")
	}
	result := make([]jobapimodels.JobView, 0, len(list))
	for _, rec := range list {
		result = append(result, jobapimodels.JobConvert(rec))
	}
	return result, rowCount, nil
}

// UpdateJob - при изменении этапов список нормализуется: новым этапам выдаются идентификаторы,
// порядок перенумеровывается, версия этапов увеличивается.
// Этапы сохраняются под блокировкой вакансии с проверкой версии.
func (i impl) UpdateJob(ctx context.Context, orgID, userID, id string, data jobapimodels.JobUpdate) (result jobapimodels.JobView, err error) {
	defer func(start time.Time) { metrics.Observe("update_job", start, err) }(time.Now())
	if err = data.Validate(); err != nil {
		return result, err
	}
	logger := i.getLogger(orgID, id, userID)
	if _, err = i.getJob(orgID, id); err != nil {
		return result, err
	}
	updMap := map[string]interface{}{}
	if data.Title != nil {
		updMap["title"] = *data.Title
	}
	if data.Status != nil {
		updMap["status"] = *data.Status
	}
	if data.ScorecardTemplateID != nil {
		if *data.ScorecardTemplateID == "" {
			updMap["scorecard_template_id"] = nil
		} else {
			if err = i.checkScorecard(orgID, *data.ScorecardTemplateID); err != nil {
				return result, err
			}
			updMap["scorecard_template_id"] = *data.ScorecardTemplateID
		}
	}
	if data.PipelineConfig == nil {
		if len(updMap) > 0 {
			if err = i.jobStore.Update(orgID, id, updMap); err != nil {
				return result, errors.Wrap(err, "ошибка изменения вакансии")
			}
			logger.Info("вакансия изменена")
		}
		return i.GetJob(orgID, id)
	}
	snapshot := data.PipelineConfig.Normalize()
	var before dbmodels.PipelineSnapshot
	err = i.withJobLock(ctx, id, func() error {
		rec, err := i.getJob(orgID, id)
		if err != nil {
			return err
		}
		before = rec.PipelineConfig
		updated, err := i.jobStore.UpdateSnapshot(orgID, id, snapshot, &rec.PipelineVersion, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка изменения этапов вакансии")
		}
		if !updated {
			return models.SyncConflictError{JobID: id}
		}
		return nil
	})
	if err != nil {
		return result, err
	}
	i.activity.Save(orgID, id, "", userID, dbmodels.ActivityPipelineUpdated, dbmodels.EntityChanges{
		Description: "Изменены этапы вакансии",
		Data: []dbmodels.FieldChanges{
			{Field: "pipeline_config", OldValue: before, NewValue: snapshot},
		},
	})
	i.events.Publish(ctx, wsmodels.BoardEvent{JobID: id, Code: wsmodels.EventPipelineChanged})
	logger.Info("этапы вакансии изменены")
	return i.GetJob(orgID, id)
}

// CloneJob - копия вакансии в статусе черновика, этапы копируются по значению, карта оценки сохраняется
func (i impl) CloneJob(ctx context.Context, orgID, userID, id string) (result jobapimodels.JobView, err error) {
	defer func(start time.Time) { metrics.Observe("clone_job", start, err) }(time.Now())
	source, err := i.getJob(orgID, id)
	if err != nil {
		return result, err
	}
	rec := dbmodels.Job{
		BaseOrgModel:   dbmodels.BaseOrgModel{OrgID: orgID},
		Title:          source.Title + " (копия)",
		Status:         models.JobStatusDraft,
		AuthorID:       userID,
		PipelineConfig: source.PipelineConfig.Clone(),
	}
	if source.PipelineTemplateID != nil {
		templateID := *source.PipelineTemplateID
		rec.PipelineTemplateID = &templateID
	}
	if source.ScorecardTemplateID != nil {
		scorecardID := *source.ScorecardTemplateID
		rec.ScorecardTemplateID = &scorecardID
	}
	cloneID, err := i.jobStore.Create(rec)
	if err != nil {
		return result, errors.Wrap(err, "ошибка копирования вакансии")
	}
	i.activity.Save(orgID, cloneID, "", userID, dbmodels.ActivityClonedFrom, dbmodels.EntityChanges{
		Description: fmt.Sprintf("Вакансия скопирована из \"%v\"", source.Title),
		Data: []dbmodels.FieldChanges{
			{Field: "job_id", OldValue: source.ID, NewValue: cloneID},
		},
	})
	i.getLogger(orgID, cloneID, userID).WithField("source_id", id).Info("вакансия скопирована")
	return i.GetJob(orgID, cloneID)
}

func (i impl) DeleteJob(orgID, id string) error {
	if _, err := i.getJob(orgID, id); err != nil {
		return err
	}
	if err := i.jobStore.Delete(orgID, id); err != nil {
		return errors.Wrap(err, "ошибка удаления вакансии")
	}
	i.getLogger(orgID, id, "").Info("вакансия удалена")
	return nil
}

func (i impl) ListActivity(orgID, id string, filter jobapimodels.ActivityFilter) ([]jobapimodels.ActivityView, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, models.NewValidationError("page", err.Error())
	}
	if _, err := i.getJob(orgID, id); err != nil {
		return nil, 0, err
	}
	return i.activity.List(orgID, id, filter)
}

func (i impl) withJobLock(ctx context.Context, jobID string, safeCode func() error) error {
	locked, err := i.locker.WithDelay(ctx, jobstore.LockKey(jobID), i.lockWait, safeCode)
	if !locked {
		return models.SyncConflictError{JobID: jobID, Cause: errors.New("этапы вакансии изменяются другим запросом")}
	}
	return err
}

func (i impl) getJob(orgID, id string) (*dbmodels.Job, error) {
	rec, err := i.jobStore.GetByID(orgID, id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения вакансии")
	}
	if rec == nil {
		return nil, models.NewNotFoundError("вакансия", id)
	}
	return rec, nil
}

func (i impl) getLogger(orgID, jobID, userID string) *log.Entry {
	logger := log.WithField("org_id", orgID)
	if jobID != "" {
		logger = logger.WithField("job_id", jobID)
	}
	if userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}
