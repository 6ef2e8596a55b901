package applicationhandler

import (
	"bytes"
	"context"
	"fmt"
	"hr-pipeline-backend/db"
	applicationstore "hr-pipeline-backend/lib/application/store"
	pdfexport "hr-pipeline-backend/lib/export/pdf"
	xlsexport "hr-pipeline-backend/lib/export/xls"
	jobstore "hr-pipeline-backend/lib/job/store"
	"hr-pipeline-backend/lib/metrics"
	stageresolver "hr-pipeline-backend/lib/stage-resolver"
	"hr-pipeline-backend/models"
	applicationapimodels "hr-pipeline-backend/models/api/application"
	dbmodels "hr-pipeline-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	CreateApplication(ctx context.Context, orgID, jobID string, data applicationapimodels.ApplicationData) (applicationapimodels.ApplicationView, error)
	GetApplication(orgID, id string) (applicationapimodels.ApplicationView, error)
	ListByJob(orgID, jobID string) ([]applicationapimodels.ApplicationView, error)
	Board(orgID, jobID string) (applicationapimodels.BoardView, error)
	ExportBoard(orgID, jobID string) (*bytes.Buffer, error)
	ScorecardPDF(orgID, id string) ([]byte, error)
}

var Instance Provider

func NewHandler() {
	Instance = New(applicationstore.NewInstance(db.DB), jobstore.NewInstance(db.DB), xlsexport.Instance)
}

func New(store applicationstore.Provider, jobStore jobstore.Provider, xls xlsexport.Provider) Provider {
	return impl{
		store:    store,
		jobStore: jobStore,
		xls:      xls,
	}
}

type impl struct {
	store    applicationstore.Provider
	jobStore jobstore.Provider
	xls      xlsexport.Provider
}

// CreateApplication - кандидат попадает на первый этап вакансии
func (i impl) CreateApplication(ctx context.Context, orgID, jobID string, data applicationapimodels.ApplicationData) (result applicationapimodels.ApplicationView, err error) {
	defer func(start time.Time) { metrics.Observe("create_application", start, err) }(time.Now())
	if err = data.Validate(); err != nil {
		return result, err
	}
	job, err := i.getJob(orgID, jobID)
	if err != nil {
		return result, err
	}
	exist, err := i.store.GetByCandidate(orgID, jobID, data.CandidateID)
	if err != nil {
		return result, errors.Wrap(err, "ошибка проверки отклика кандидата")
	}
	if exist != nil {
		return result, models.NewValidationError("candidate_id", fmt.Sprintf("кандидат уже откликнулся на вакансию: %v", exist.ID))
	}
	rec := dbmodels.Application{
		BaseOrgModel: dbmodels.BaseOrgModel{OrgID: orgID},
		CandidateID:  data.CandidateID,
		JobID:        jobID,
		CurrentStage: job.PipelineConfig.FirstStageID(),
		AppliedAt:    time.Now(),
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return result, errors.Wrap(err, "ошибка создания отклика")
	}
	log.WithField("org_id", orgID).
		WithField("job_id", jobID).
		WithField("application_id", id).
		Info("создан отклик кандидата")
	return i.GetApplication(orgID, id)
}

func (i impl) GetApplication(orgID, id string) (applicationapimodels.ApplicationView, error) {
	rec, err := i.store.GetByID(orgID, id)
	if err != nil {
		return applicationapimodels.ApplicationView{}, errors.Wrap(err, "ошибка получения отклика")
	}
	if rec == nil {
		return applicationapimodels.ApplicationView{}, models.NewNotFoundError("отклик", id)
	}
	return applicationapimodels.ApplicationConvert(*rec), nil
}

func (i impl) ListByJob(orgID, jobID string) ([]applicationapimodels.ApplicationView, error) {
	if _, err := i.getJob(orgID, jobID); err != nil {
		return nil, err
	}
	list, err := i.store.ListByJob(orgID, jobID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка откликов")
	}
	result := make([]applicationapimodels.ApplicationView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.ApplicationConvert(rec))
	}
	return result, nil
}

// Board - канбан-доска вакансии. Кандидаты с неизвестным этапом показываются в первой колонке.
func (i impl) Board(orgID, jobID string) (applicationapimodels.BoardView, error) {
	job, err := i.getJob(orgID, jobID)
	if err != nil {
		return applicationapimodels.BoardView{}, err
	}
	list, err := i.store.ListByJob(orgID, jobID)
	if err != nil {
		return applicationapimodels.BoardView{}, errors.Wrap(err, "ошибка получения списка откликов")
	}
	board := stageresolver.Resolve(job.PipelineConfig, list)
	if orphans := board.OrphanCount(); orphans > 0 {
		metrics.OrphansResolved.Add(float64(orphans))
		log.WithField("org_id", orgID).
			WithField("job_id", jobID).
			WithField("orphans", orphans).
			Debug("кандидаты с неизвестным этапом показаны в первой колонке")
	}
	return BoardConvert(board), nil
}

// ExportBoard - выгрузка доски вакансии в xlsx
func (i impl) ExportBoard(orgID, jobID string) (*bytes.Buffer, error) {
	job, err := i.getJob(orgID, jobID)
	if err != nil {
		return nil, err
	}
	board, err := i.Board(orgID, jobID)
	if err != nil {
		return nil, err
	}
	buf, err := i.xls.ExportBoard(job.Title, board)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования xlsx")
	}
	return buf, nil
}

// ScorecardPDF - сводка оценок кандидата. Этап определяется так же, как на доске вакансии.
func (i impl) ScorecardPDF(orgID, id string) ([]byte, error) {
	rec, err := i.store.GetByID(orgID, id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения отклика")
	}
	if rec == nil {
		return nil, models.NewNotFoundError("отклик", id)
	}
	job, err := i.getJob(orgID, rec.JobID)
	if err != nil {
		return nil, err
	}
	data := pdfexport.ScorecardData{
		JobTitle:       job.Title,
		CandidateID:    rec.CandidateID,
		AppliedAt:      rec.AppliedAt,
		Details:        rec.ScoreDetails,
		OverallScore:   rec.OverallScore,
		Recommendation: rec.Recommendation,
	}
	if placement := stageresolver.Locate(job.PipelineConfig, rec.StageRef()); placement.Index >= 0 {
		data.StageName = job.PipelineConfig[placement.Index].Name
	}
	file, err := pdfexport.GenerateScorecard(data)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования pdf")
	}
	return file, nil
}

func BoardConvert(board stageresolver.Board) applicationapimodels.BoardView {
	result := applicationapimodels.BoardView{
		Columns:    make([]applicationapimodels.ColumnView, 0, len(board.Columns)),
		Unassigned: make([]applicationapimodels.ApplicationView, 0, len(board.Unassigned)),
	}
	for _, column := range board.Columns {
		cards := make([]applicationapimodels.CardView, 0, len(column.Cards))
		for _, card := range column.Cards {
			cards = append(cards, applicationapimodels.CardView{
				ApplicationView: applicationapimodels.ApplicationConvert(card.Application),
				Orphaned:        card.Orphaned,
			})
		}
		result.Columns = append(result.Columns, applicationapimodels.ColumnView{
			Stage:        column.Stage,
			Applications: cards,
		})
	}
	for _, rec := range board.Unassigned {
		result.Unassigned = append(result.Unassigned, applicationapimodels.ApplicationConvert(rec))
	}
	return result
}

func (i impl) getJob(orgID, jobID string) (*dbmodels.Job, error) {
	rec, err := i.jobStore.GetByID(orgID, jobID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения вакансии")
	}
	if rec == nil {
		return nil, models.NewNotFoundError("вакансия", jobID)
	}
	return rec, nil
}
