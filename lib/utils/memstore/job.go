package memstore

import (
	applicationstore "hr-pipeline-backend/lib/application/store"
	jobactivitystore "hr-pipeline-backend/lib/job-activity/store"
	jobstore "hr-pipeline-backend/lib/job/store"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
	"sort"
	"strings"

	"gorm.io/gorm"
)

func (m *Memory) JobStore(_ *gorm.DB) jobstore.Provider {
	return jobStore{m: m}
}

func (m *Memory) ApplicationStore(_ *gorm.DB) applicationstore.Provider {
	return applicationStore{m: m}
}

func (m *Memory) ActivityStore(_ *gorm.DB) jobactivitystore.Provider {
	return activityStore{m: m}
}

type jobStore struct {
	m *Memory
}

func (s jobStore) Create(rec dbmodels.Job) (id string, err error) {
	unlock, err := s.m.enter("job.Create")
	if err != nil {
		return "", err
	}
	defer unlock()
	rec.BaseModel = s.m.newBase(rec.BaseModel)
	rec.PipelineConfig = rec.PipelineConfig.Clone()
	s.m.jobs[rec.ID] = rec
	return rec.ID, nil
}

func (s jobStore) GetByID(orgID, id string) (*dbmodels.Job, error) {
	unlock, err := s.m.enter("job.GetByID")
	if err != nil {
		return nil, err
	}
	defer unlock()
	rec, ok := s.m.jobs[id]
	if !ok || rec.OrgID != orgID {
		return nil, nil
	}
	rec.PipelineConfig = rec.PipelineConfig.Clone()
	return &rec, nil
}

func (s jobStore) List(orgID string, filter dbmodels.JobFilter, offset, limit int) (list []dbmodels.Job, rowCount int64, err error) {
	unlock, err := s.m.enter("job.List")
	if err != nil {
		return nil, 0, err
	}
	defer unlock()
	all := []dbmodels.Job{}
	for _, rec := range s.m.jobs {
		if rec.OrgID != orgID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(rec.Title), strings.ToLower(filter.Search)) {
			continue
		}
		if len(filter.Statuses) != 0 && !containsStatus(filter.Statuses, rec.Status) {
			continue
		}
		all = append(all, rec)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	rowCount = int64(len(all))
	if offset >= len(all) {
		return []dbmodels.Job{}, rowCount, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], rowCount, nil
}

func (s jobStore) Update(orgID, id string, updMap map[string]interface{}) error {
	unlock, err := s.m.enter("job.Update")
	if err != nil {
		return err
	}
	defer unlock()
	rec, ok := s.m.jobs[id]
	if !ok || rec.OrgID != orgID {
		return nil
	}
	s.m.jobs[id] = applyJob(rec, updMap)
	return nil
}

func (s jobStore) UpdateSnapshot(orgID, id string, snapshot dbmodels.PipelineSnapshot, expectedVersion *int, updMap map[string]interface{}) (updated bool, err error) {
	unlock, err := s.m.enter("job.UpdateSnapshot")
	if err != nil {
		return false, err
	}
	defer unlock()
	rec, ok := s.m.jobs[id]
	if !ok || rec.OrgID != orgID {
		return false, nil
	}
	if expectedVersion != nil && rec.PipelineVersion != *expectedVersion {
		return false, nil
	}
	rec = applyJob(rec, updMap)
	rec.PipelineConfig = snapshot.Clone()
	rec.PipelineVersion++
	s.m.jobs[id] = rec
	return true, nil
}

func (s jobStore) Delete(orgID, id string) error {
	unlock, err := s.m.enter("job.Delete")
	if err != nil {
		return err
	}
	defer unlock()
	rec, ok := s.m.jobs[id]
	if !ok || rec.OrgID != orgID {
		return nil
	}
	delete(s.m.jobs, id)
	for appID, application := range s.m.applications {
		if application.JobID == id {
			delete(s.m.applications, appID)
		}
	}
	return nil
}

func applyJob(rec dbmodels.Job, updMap map[string]interface{}) dbmodels.Job {
	for key, value := range updMap {
		switch key {
		case "title":
			rec.Title = value.(string)
		case "status":
			rec.Status = value.(models.JobStatus)
		case "pipeline_template_id":
			switch v := value.(type) {
			case string:
				rec.PipelineTemplateID = &v
			case *string:
				rec.PipelineTemplateID = v
			}
		case "scorecard_template_id":
			switch v := value.(type) {
			case string:
				rec.ScorecardTemplateID = &v
			case *string:
				rec.ScorecardTemplateID = v
			default:
				rec.ScorecardTemplateID = nil
			}
		}
	}
	return rec
}

func containsStatus(list []models.JobStatus, status models.JobStatus) bool {
	for _, item := range list {
		if item == status {
			return true
		}
	}
	return false
}

type applicationStore struct {
	m *Memory
}

func (s applicationStore) Create(rec dbmodels.Application) (id string, err error) {
	unlock, err := s.m.enter("application.Create")
	if err != nil {
		return "", err
	}
	defer unlock()
	rec.BaseModel = s.m.newBase(rec.BaseModel)
	s.m.applications[rec.ID] = rec
	return rec.ID, nil
}

func (s applicationStore) GetByID(orgID, id string) (*dbmodels.Application, error) {
	unlock, err := s.m.enter("application.GetByID")
	if err != nil {
		return nil, err
	}
	defer unlock()
	rec, ok := s.m.applications[id]
	if !ok || rec.OrgID != orgID {
		return nil, nil
	}
	return &rec, nil
}

func (s applicationStore) GetByCandidate(orgID, jobID, candidateID string) (*dbmodels.Application, error) {
	unlock, err := s.m.enter("application.GetByCandidate")
	if err != nil {
		return nil, err
	}
	defer unlock()
	for _, rec := range s.m.applications {
		if rec.OrgID == orgID && rec.JobID == jobID && rec.CandidateID == candidateID {
			return &rec, nil
		}
	}
	return nil, nil
}

func (s applicationStore) ListByJob(orgID, jobID string) (list []dbmodels.Application, err error) {
	unlock, err := s.m.enter("application.ListByJob")
	if err != nil {
		return nil, err
	}
	defer unlock()
	list = []dbmodels.Application{}
	for _, rec := range s.m.applications {
		if rec.OrgID == orgID && rec.JobID == jobID {
			list = append(list, rec)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].AppliedAt.Equal(list[j].AppliedAt) {
			return list[i].AppliedAt.Before(list[j].AppliedAt)
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (s applicationStore) Update(orgID, id string, updMap map[string]interface{}) error {
	unlock, err := s.m.enter("application.Update")
	if err != nil {
		return err
	}
	defer unlock()
	rec, ok := s.m.applications[id]
	if !ok || rec.OrgID != orgID {
		return nil
	}
	for key, value := range updMap {
		switch key {
		case "current_stage":
			rec.CurrentStage = value.(string)
		case "score_details":
			rec.ScoreDetails = value.(dbmodels.ScoreDetails)
		case "overall_score":
			score := value.(float64)
			rec.OverallScore = &score
		case "recommendation":
			rec.Recommendation = value.(models.Recommendation)
		}
	}
	s.m.applications[id] = rec
	return nil
}

func (s applicationStore) ClearStages(orgID, jobID string) (count int64, err error) {
	unlock, err := s.m.enter("application.ClearStages")
	if err != nil {
		return 0, err
	}
	defer unlock()
	for id, rec := range s.m.applications {
		if rec.OrgID == orgID && rec.JobID == jobID {
			rec.CurrentStage = ""
			s.m.applications[id] = rec
			count++
		}
	}
	return count, nil
}

type activityStore struct {
	m *Memory
}

func (s activityStore) Create(rec dbmodels.JobActivity) (id string, err error) {
	unlock, err := s.m.enter("activity.Create")
	if err != nil {
		return "", err
	}
	defer unlock()
	rec.BaseModel = s.m.newBase(rec.BaseModel)
	s.m.activities = append(s.m.activities, rec)
	return rec.ID, nil
}

func (s activityStore) List(orgID, jobID string, offset, limit int) (list []dbmodels.JobActivity, err error) {
	unlock, err := s.m.enter("activity.List")
	if err != nil {
		return nil, err
	}
	defer unlock()
	all := []dbmodels.JobActivity{}
	for k := len(s.m.activities) - 1; k >= 0; k-- {
		rec := s.m.activities[k]
		if rec.OrgID == orgID && rec.JobID == jobID {
			all = append(all, rec)
		}
	}
	if offset >= len(all) {
		return []dbmodels.JobActivity{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s activityStore) ListCount(orgID, jobID string) (count int64, err error) {
	unlock, err := s.m.enter("activity.ListCount")
	if err != nil {
		return 0, err
	}
	defer unlock()
	for _, rec := range s.m.activities {
		if rec.OrgID == orgID && rec.JobID == jobID {
			count++
		}
	}
	return count, nil
}
