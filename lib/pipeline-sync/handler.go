package pipelinesync

import (
	"context"
	"fmt"
	"hr-pipeline-backend/db"
	applicationstore "hr-pipeline-backend/lib/application/store"
	boardevents "hr-pipeline-backend/lib/board-events"
	jobactivityhandler "hr-pipeline-backend/lib/job-activity"
	jobstore "hr-pipeline-backend/lib/job/store"
	"hr-pipeline-backend/lib/metrics"
	stagestore "hr-pipeline-backend/lib/pipeline/stage-store"
	templatestore "hr-pipeline-backend/lib/pipeline/template-store"
	stageresolver "hr-pipeline-backend/lib/stage-resolver"
	"hr-pipeline-backend/lib/utils/lock"
	"hr-pipeline-backend/lib/utils/optimistic"
	"hr-pipeline-backend/models"
	applicationapimodels "hr-pipeline-backend/models/api/application"
	jobapimodels "hr-pipeline-backend/models/api/job"
	dbmodels "hr-pipeline-backend/models/db"
	wsmodels "hr-pipeline-backend/models/ws"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	ReorderJobStages(ctx context.Context, orgID, userID, jobID string, from, to int) (dbmodels.PipelineSnapshot, error)
	ReorderTemplateStages(ctx context.Context, orgID, templateID string, from, to int) ([]string, error)
	MoveApplication(ctx context.Context, orgID, userID, applicationID string, destination models.StageRef) (applicationapimodels.MoveView, error)
	SyncFromTemplate(ctx context.Context, orgID, userID, jobID string) (jobapimodels.JobView, error)
	ChangeTemplate(ctx context.Context, orgID, userID, jobID string, data jobapimodels.ChangeTemplateData) (jobapimodels.JobView, error)
}

var Instance Provider

const defaultLockWait = 5 * time.Second

type TransactionFunc func(fc func(tx *gorm.DB) error) error

type Stores struct {
	Job         func(tx *gorm.DB) jobstore.Provider
	Application func(tx *gorm.DB) applicationstore.Provider
	Template    func(tx *gorm.DB) templatestore.Provider
	Stage       func(tx *gorm.DB) stagestore.Provider
}

// NewHandler - lockWait <= 0 заменяется ожиданием по умолчанию
func NewHandler(lockWait time.Duration) {
	if lockWait <= 0 {
		lockWait = defaultLockWait
	}
	Instance = New(db.DB, db.Transaction, Stores{
		Job:         jobstore.NewInstance,
		Application: applicationstore.NewInstance,
		Template:    templatestore.NewInstance,
		Stage:       stagestore.NewInstance,
	}, jobactivityhandler.Instance, boardevents.Instance, lock.Default(), lockWait)
}

// New - locker должен быть общим со всеми, кто изменяет этапы вакансий
func New(conn *gorm.DB, transaction TransactionFunc, stores Stores,
	activity jobactivityhandler.Provider, events boardevents.Provider, locker *lock.KeyLock, lockWait time.Duration) Provider {
	return impl{
		db:          conn,
		transaction: transaction,
		stores:      stores,
		activity:    activity,
		events:      events,
		locker:      locker,
		lockWait:    lockWait,
	}
}

type impl struct {
	db          *gorm.DB
	transaction TransactionFunc
	stores      Stores
	activity    jobactivityhandler.Provider
	events      boardevents.Provider
	locker      *lock.KeyLock
	lockWait    time.Duration
}

// ReorderJobStages - перенос этапа вакансии под блокировкой вакансии с проверкой версии этапов.
// Между параллельными переносами побеждает последний. Если параллельно изменился состав этапов
// или шаблон, возвращается SyncConflictError. Ошибка сохранения возвращает
// ReorderPersistenceError с подтвержденным порядком.
func (i impl) ReorderJobStages(ctx context.Context, orgID, userID, jobID string, from, to int) (result dbmodels.PipelineSnapshot, err error) {
	defer func(start time.Time) { metrics.Observe("reorder_job", start, err) }(time.Now())
	logger := i.getLogger(orgID, jobID, userID)
	var before dbmodels.PipelineSnapshot
	err = i.withJobLock(ctx, jobID, func() error {
		job, err := i.getJob(i.stores.Job(i.db), orgID, jobID)
		if err != nil {
			return err
		}
		before = job.PipelineConfig
		state := optimistic.New(job.PipelineConfig.Renumber())
		moved, err := state.Confirmed().Move(from, to)
		if err != nil {
			return err
		}
		state.Propose(moved)
		confirmed, err := state.Reconcile(func(value dbmodels.PipelineSnapshot) error {
			return i.saveOrder(orgID, job, value)
		})
		if err != nil {
			var conflictErr models.SyncConflictError
			if errors.As(err, &conflictErr) {
				return err
			}
			logger.WithError(err).Error("ошибка сохранения порядка этапов вакансии")
			return models.ReorderPersistenceError{Confirmed: confirmed.IDs(), Cause: err}
		}
		result = confirmed
		return nil
	})
	if err != nil {
		return nil, err
	}
	i.activity.Save(orgID, jobID, "", userID, dbmodels.ActivityPipelineReordered, dbmodels.EntityChanges{
		Description: "Изменен порядок этапов",
		Data: []dbmodels.FieldChanges{
			{Field: "pipeline_config", OldValue: before.IDs(), NewValue: result.IDs()},
		},
	})
	i.events.Publish(ctx, wsmodels.BoardEvent{JobID: jobID, Code: wsmodels.EventPipelineChanged})
	logger.WithField("from", from).WithField("to", to).Info("изменен порядок этапов вакансии")
	return result, nil
}

// saveOrder - запись порядка с проверкой версии. Если версия изменилась только из-за
// другого переноса, порядок записывается поверх него.
func (i impl) saveOrder(orgID string, job *dbmodels.Job, value dbmodels.PipelineSnapshot) error {
	jobStore := i.stores.Job(i.db)
	expected := job.PipelineVersion
	for attempt := 0; ; attempt++ {
		updated, err := jobStore.UpdateSnapshot(orgID, job.ID, value, &expected, nil)
		if err != nil {
			return err
		}
		if updated {
			return nil
		}
		current, err := i.getJob(jobStore, orgID, job.ID)
		if err != nil {
			return err
		}
		if attempt > 0 || current.TemplateID() != job.TemplateID() || !sameStages(current.PipelineConfig, job.PipelineConfig) {
			return models.SyncConflictError{JobID: job.ID}
		}
		expected = current.PipelineVersion
	}
}

// sameStages - одинаковый набор этапов без учета порядка
func sameStages(a, b dbmodels.PipelineSnapshot) bool {
	if len(a) != len(b) {
		return false
	}
	stages := make(map[string]dbmodels.SnapshotStage, len(a))
	for _, stage := range a {
		stage.Order = 0
		stages[stage.ID] = stage
	}
	for _, stage := range b {
		stage.Order = 0
		if found, ok := stages[stage.ID]; !ok || found != stage {
			return false
		}
	}
	return true
}

// ReorderTemplateStages - перенос этапа шаблона. Позиции всех этапов сохраняются в одной транзакции.
func (i impl) ReorderTemplateStages(ctx context.Context, orgID, templateID string, from, to int) (result []string, err error) {
	defer func(start time.Time) { metrics.Observe("reorder_template", start, err) }(time.Now())
	logger := log.WithField("org_id", orgID).WithField("template_id", templateID)
	template, err := i.getTemplate(i.stores.Template(i.db), orgID, templateID)
	if err != nil {
		return nil, err
	}
	ids := template.Snapshot().IDs()
	if from < 0 || from >= len(ids) {
		return nil, models.NewValidationError("from_index", fmt.Sprintf("позиция этапа вне диапазона: %v", from))
	}
	if to < 0 || to >= len(ids) {
		return nil, models.NewValidationError("to_index", fmt.Sprintf("новая позиция этапа вне диапазона: %v", to))
	}
	state := optimistic.New(ids)
	state.Propose(dbmodels.MoveItem(ids, from, to))
	confirmed, err := state.Reconcile(func(value []string) error {
		return i.transaction(func(tx *gorm.DB) error {
			return i.stores.Stage(tx).SetOrder(orgID, templateID, value)
		})
	})
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения порядка этапов шаблона")
		return nil, models.ReorderPersistenceError{Confirmed: confirmed, Cause: err}
	}
	logger.WithField("from", from).WithField("to", to).Info("изменен порядок этапов шаблона")
	return confirmed, nil
}

// MoveApplication переводит кандидата на этап вакансии. Допустим любой переход.
// Если кандидат уже находится на этапе назначения, ничего не меняется.
func (i impl) MoveApplication(ctx context.Context, orgID, userID, applicationID string, destination models.StageRef) (result applicationapimodels.MoveView, err error) {
	defer func(start time.Time) { metrics.Observe("move_application", start, err) }(time.Now())
	if destination.IsUnset() {
		return result, models.NewValidationError("stage_id", "не указан этап")
	}
	applicationStore := i.stores.Application(i.db)
	application, err := applicationStore.GetByID(orgID, applicationID)
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения отклика")
	}
	if application == nil {
		return result, models.NewNotFoundError("отклик", applicationID)
	}
	logger := i.getLogger(orgID, application.JobID, userID).WithField("application_id", applicationID)
	job, err := i.getJob(i.stores.Job(i.db), orgID, application.JobID)
	if err != nil {
		return result, err
	}
	_, target := job.PipelineConfig.Find(destination)
	if target == nil {
		return result, models.NewValidationError("stage_id", fmt.Sprintf("этап %v не найден в вакансии", destination.String()))
	}
	result = applicationapimodels.MoveView{
		ApplicationID: applicationID,
		ToStageID:     target.ID,
		ToStageName:   target.Name,
	}
	source := stageresolver.Locate(job.PipelineConfig, application.StageRef())
	if !source.Orphaned && source.Index >= 0 {
		result.FromStageID = job.PipelineConfig[source.Index].ID
	}
	if source.Index >= 0 && job.PipelineConfig[source.Index].ID == target.ID {
		return result, nil
	}
	updMap := map[string]interface{}{
		"current_stage": target.ID,
	}
	if err = applicationStore.Update(orgID, applicationID, updMap); err != nil {
		return result, errors.Wrap(err, "ошибка перевода кандидата на этап")
	}
	result.Changed = true
	result.Celebrate = target.Name == models.HiredStageName

	i.activity.Save(orgID, application.JobID, applicationID, userID, dbmodels.ActivityStageChanged, dbmodels.EntityChanges{
		Description: fmt.Sprintf("Кандидат переведен на этап \"%v\"", target.Name),
		Data: []dbmodels.FieldChanges{
			{Field: "current_stage", OldValue: application.CurrentStage, NewValue: target.ID},
		},
	})
	event := wsmodels.BoardEvent{
		JobID:         application.JobID,
		Code:          wsmodels.EventCandidateMoved,
		ApplicationID: applicationID,
		StageID:       target.ID,
		StageName:     target.Name,
	}
	if result.Celebrate {
		event.Code = wsmodels.EventCandidateHired
		metrics.CandidatesHired.Inc()
	}
	i.events.Publish(ctx, event)
	logger.WithField("stage_id", target.ID).Info("кандидат переведен на этап")
	return result, nil
}

// SyncFromTemplate - этапы вакансии заменяются текущими этапами ее шаблона.
// Кандидаты не изменяются: этапы с сохранившимися идентификаторами продолжают совпадать.
func (i impl) SyncFromTemplate(ctx context.Context, orgID, userID, jobID string) (result jobapimodels.JobView, err error) {
	defer func(start time.Time) { metrics.Observe("sync", start, err) }(time.Now())
	logger := i.getLogger(orgID, jobID, userID)
	var before, after dbmodels.PipelineSnapshot
	err = i.withJobLock(ctx, jobID, func() error {
		jobStore := i.stores.Job(i.db)
		job, err := i.getJob(jobStore, orgID, jobID)
		if err != nil {
			return err
		}
		if job.TemplateID() == "" {
			return models.NewValidationError("template_id", "вакансия не привязана к шаблону")
		}
		template, err := i.getTemplate(i.stores.Template(i.db), orgID, job.TemplateID())
		if err != nil {
			return err
		}
		before = job.PipelineConfig
		after = template.Snapshot()
		updated, err := jobStore.UpdateSnapshot(orgID, jobID, after, &job.PipelineVersion, nil)
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения этапов вакансии")
		}
		if !updated {
			return models.SyncConflictError{JobID: jobID}
		}
		return nil
	})
	if err != nil {
		return result, err
	}
	i.activity.Save(orgID, jobID, "", userID, dbmodels.ActivityPipelineSynced, dbmodels.EntityChanges{
		Description: "Этапы вакансии синхронизированы с шаблоном",
		Data: []dbmodels.FieldChanges{
			{Field: "pipeline_config", OldValue: before.IDs(), NewValue: after.IDs()},
		},
	})
	i.events.Publish(ctx, wsmodels.BoardEvent{JobID: jobID, Code: wsmodels.EventPipelineChanged})
	logger.Info("этапы вакансии синхронизированы с шаблоном")
	return i.getJobView(orgID, jobID)
}

// ChangeTemplate переводит вакансию на другой шаблон. Все кандидаты вакансии теряют этап
// и отображаются в первой колонке до перевода вручную.
// Подтверждение требуется только для действительной смены шаблона.
func (i impl) ChangeTemplate(ctx context.Context, orgID, userID, jobID string, data jobapimodels.ChangeTemplateData) (result jobapimodels.JobView, err error) {
	defer func(start time.Time) { metrics.Observe("change_template", start, err) }(time.Now())
	if err = data.Validate(); err != nil {
		return result, err
	}
	logger := i.getLogger(orgID, jobID, userID).WithField("template_id", data.TemplateID)
	var oldTemplateID string
	var cleared int64
	changed := false
	err = i.withJobLock(ctx, jobID, func() error {
		job, err := i.getJob(i.stores.Job(i.db), orgID, jobID)
		if err != nil {
			return err
		}
		oldTemplateID = job.TemplateID()
		if oldTemplateID == data.TemplateID {
			return nil
		}
		if err = data.ValidateConfirmed(); err != nil {
			return err
		}
		template, err := i.getTemplate(i.stores.Template(i.db), orgID, data.TemplateID)
		if err != nil {
			return err
		}
		err = i.transaction(func(tx *gorm.DB) error {
			updMap := map[string]interface{}{
				"pipeline_template_id": data.TemplateID,
			}
			updated, err := i.stores.Job(tx).UpdateSnapshot(orgID, jobID, template.Snapshot(), &job.PipelineVersion, updMap)
			if err != nil {
				return errors.Wrap(err, "ошибка сохранения этапов вакансии")
			}
			if !updated {
				return models.SyncConflictError{JobID: jobID}
			}
			cleared, err = i.stores.Application(tx).ClearStages(orgID, jobID)
			if err != nil {
				return errors.Wrap(err, "ошибка сброса этапов кандидатов")
			}
			return nil
		})
		if err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return result, err
	}
	if changed {
		i.activity.Save(orgID, jobID, "", userID, dbmodels.ActivityTemplateChanged, dbmodels.EntityChanges{
			Description: fmt.Sprintf("Вакансия переведена на другой шаблон, сброшены этапы кандидатов: %v", cleared),
			Data: []dbmodels.FieldChanges{
				{Field: "pipeline_template_id", OldValue: oldTemplateID, NewValue: data.TemplateID},
			},
		})
		i.events.Publish(ctx, wsmodels.BoardEvent{JobID: jobID, Code: wsmodels.EventPipelineChanged})
		logger.WithField("cleared", cleared).Info("вакансия переведена на другой шаблон")
	}
	return i.getJobView(orgID, jobID)
}

func (i impl) withJobLock(ctx context.Context, jobID string, safeCode func() error) error {
	locked, err := i.locker.WithDelay(ctx, jobstore.LockKey(jobID), i.lockWait, safeCode)
	if !locked {
		return models.SyncConflictError{JobID: jobID, Cause: errors.New("этапы вакансии изменяются другим запросом")}
	}
	return err
}

func (i impl) getJob(store jobstore.Provider, orgID, jobID string) (*dbmodels.Job, error) {
	rec, err := store.GetByID(orgID, jobID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения вакансии")
	}
	if rec == nil {
		return nil, models.NewNotFoundError("вакансия", jobID)
	}
	return rec, nil
}

func (i impl) getJobView(orgID, jobID string) (jobapimodels.JobView, error) {
	rec, err := i.getJob(i.stores.Job(i.db), orgID, jobID)
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	return jobapimodels.JobConvert(*rec), nil
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
