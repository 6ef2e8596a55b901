package jobactivityhandler

import (
	"hr-pipeline-backend/db"
	jobactivitystore "hr-pipeline-backend/lib/job-activity/store"
	jobapimodels "hr-pipeline-backend/models/api/job"
	dbmodels "hr-pipeline-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	List(orgID, jobID string, filter jobapimodels.ActivityFilter) ([]jobapimodels.ActivityView, int64, error)
	Save(orgID, jobID, applicationID, userID string, action dbmodels.ActivityType, changes dbmodels.EntityChanges)
}

var Instance Provider

func NewHandler() {
	Instance = New(jobactivitystore.NewInstance(db.DB))
}

func New(store jobactivitystore.Provider) Provider {
	return impl{
		store: store,
	}
}

type impl struct {
	store jobactivitystore.Provider
}

func (i impl) List(orgID, jobID string, filter jobapimodels.ActivityFilter) ([]jobapimodels.ActivityView, int64, error) {
	rowCount, err := i.store.ListCount(orgID, jobID)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения количества действий по вакансии")
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []jobapimodels.ActivityView{}, rowCount, nil
	}
	list, err := i.store.List(orgID, jobID, offset, limit)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка действий по вакансии")
	}
	result := make([]jobapimodels.ActivityView, 0, len(list))
	for _, rec := range list {
		result = append(result, jobapimodels.ActivityConvert(rec))
	}
	return result, rowCount, nil
}

// Save записывает действие в журнал вакансии. Ошибка записи только логируется.
func (i impl) Save(orgID, jobID, applicationID, userID string, action dbmodels.ActivityType, changes dbmodels.EntityChanges) {
	logger := log.WithField("org_id", orgID).
		WithField("job_id", jobID).
		WithField("action", action).
		WithField("description", changes.Description)
	rec := dbmodels.JobActivity{
		BaseOrgModel: dbmodels.BaseOrgModel{
			OrgID: orgID,
		},
		JobID:      jobID,
		ActionType: action,
		Details:    changes,
	}
	if applicationID != "" {
		rec.ApplicationID = &applicationID
		logger = logger.WithField("application_id", applicationID)
	}
	if userID != "" {
		rec.UserID = &userID
	}
	if _, err := i.store.Create(rec); err != nil {
		logger.WithError(err).Error("ошибка сохранения журнала действий по вакансии")
		return
	}
	logger.Debug("действие добавлено в журнал вакансии")
}
