package memstore

import (
	stagestore "hr-pipeline-backend/lib/pipeline/stage-store"
	templatestore "hr-pipeline-backend/lib/pipeline/template-store"
	dbmodels "hr-pipeline-backend/models/db"
	"sort"

	"gorm.io/gorm"
)

func (m *Memory) TemplateStore(_ *gorm.DB) templatestore.Provider {
	return templateStore{m: m}
}

func (m *Memory) StageStore(_ *gorm.DB) stagestore.Provider {
	return stageStore{m: m}
}

type templateStore struct {
	m *Memory
}

func (s templateStore) Create(rec dbmodels.PipelineTemplate) (id string, err error) {
	unlock, err := s.m.enter("template.Create")
	if err != nil {
		return "", err
	}
	defer unlock()
	rec.BaseModel = s.m.newBase(rec.BaseModel)
	rec.Stages = nil
	s.m.templates[rec.ID] = rec
	return rec.ID, nil
}

func (s templateStore) GetByID(orgID, id string) (*dbmodels.PipelineTemplate, error) {
	unlock, err := s.m.enter("template.GetByID")
	if err != nil {
		return nil, err
	}
	defer unlock()
	rec, ok := s.m.templates[id]
	if !ok || rec.OrgID != orgID {
		return nil, nil
	}
	rec.Stages = s.m.templateStages(orgID, id)
	return &rec, nil
}

func (s templateStore) GetDefault(orgID string) (*dbmodels.PipelineTemplate, error) {
	unlock, err := s.m.enter("template.GetDefault")
	if err != nil {
		return nil, err
	}
	defer unlock()
	for _, rec := range s.m.templates {
		if rec.OrgID == orgID && rec.IsDefault {
			rec.Stages = s.m.templateStages(orgID, rec.ID)
			return &rec, nil
		}
	}
	return nil, nil
}

func (s templateStore) List(orgID string) (list []dbmodels.PipelineTemplate, err error) {
	unlock, err := s.m.enter("template.List")
	if err != nil {
		return nil, err
	}
	defer unlock()
	list = []dbmodels.PipelineTemplate{}
	for _, rec := range s.m.templates {
		if rec.OrgID == orgID {
			rec.Stages = s.m.templateStages(orgID, rec.ID)
			list = append(list, rec)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].IsDefault != list[j].IsDefault {
			return list[i].IsDefault
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

func (s templateStore) Count(orgID string) (count int64, err error) {
	unlock, err := s.m.enter("template.Count")
	if err != nil {
		return 0, err
	}
	defer unlock()
	for _, rec := range s.m.templates {
		if rec.OrgID == orgID {
			count++
		}
	}
	return count, nil
}

func (s templateStore) Update(orgID, id string, updMap map[string]interface{}) error {
	unlock, err := s.m.enter("template.Update")
	if err != nil {
		return err
	}
	defer unlock()
	rec, ok := s.m.templates[id]
	if !ok || rec.OrgID != orgID {
		return nil
	}
	for key, value := range updMap {
		switch key {
		case "name":
			rec.Name = value.(string)
		case "description":
			rec.Description = value.(string)
		case "is_default":
			rec.IsDefault = value.(bool)
		}
	}
	s.m.templates[id] = rec
	return nil
}

func (s templateStore) ClearDefault(orgID string) error {
	unlock, err := s.m.enter("template.ClearDefault")
	if err != nil {
		return err
	}
	defer unlock()
	for id, rec := range s.m.templates {
		if rec.OrgID == orgID && rec.IsDefault {
			rec.IsDefault = false
			s.m.templates[id] = rec
		}
	}
	return nil
}

func (s templateStore) Delete(orgID, id string) error {
	unlock, err := s.m.enter("template.Delete")
	if err != nil {
		return err
	}
	defer unlock()
	rec, ok := s.m.templates[id]
	if !ok || rec.OrgID != orgID {
		return nil
	}
	delete(s.m.templates, id)
	for stageID, stage := range s.m.stages {
		if stage.TemplateID == id {
			delete(s.m.stages, stageID)
		}
	}
	return nil
}

func (m *Memory) templateStages(orgID, templateID string) []dbmodels.PipelineStage {
	result := []dbmodels.PipelineStage{}
	for _, stage := range m.stages {
		if stage.OrgID == orgID && stage.TemplateID == templateID {
			result = append(result, stage)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].StageOrder != result[j].StageOrder {
			return result[i].StageOrder < result[j].StageOrder
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

type stageStore struct {
	m *Memory
}

func (s stageStore) Create(rec dbmodels.PipelineStage) (id string, err error) {
	unlock, err := s.m.enter("stage.Create")
	if err != nil {
		return "", err
	}
	defer unlock()
	rec.BaseModel = s.m.newBase(rec.BaseModel)
	s.m.stages[rec.ID] = rec
	return rec.ID, nil
}

func (s stageStore) GetByID(orgID, id string) (*dbmodels.PipelineStage, error) {
	unlock, err := s.m.enter("stage.GetByID")
	if err != nil {
		return nil, err
	}
	defer unlock()
	rec, ok := s.m.stages[id]
	if !ok || rec.OrgID != orgID {
		return nil, nil
	}
	return &rec, nil
}

func (s stageStore) List(orgID, templateID string) (list []dbmodels.PipelineStage, err error) {
	unlock, err := s.m.enter("stage.List")
	if err != nil {
		return nil, err
	}
	defer unlock()
	if templateID != "" {
		return s.m.templateStages(orgID, templateID), nil
	}
	list = []dbmodels.PipelineStage{}
	for _, stage := range s.m.stages {
		if stage.OrgID == orgID {
			list = append(list, stage)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].TemplateID != list[j].TemplateID {
			return list[i].TemplateID < list[j].TemplateID
		}
		return list[i].StageOrder < list[j].StageOrder
	})
	return list, nil
}

func (s stageStore) Update(orgID, id string, updMap map[string]interface{}) error {
	unlock, err := s.m.enter("stage.Update")
	if err != nil {
		return err
	}
	defer unlock()
	rec, ok := s.m.stages[id]
	if !ok || rec.OrgID != orgID {
		return nil
	}
	for key, value := range updMap {
		switch key {
		case "name":
			rec.Name = value.(string)
		case "color":
			rec.Color = value.(string)
		case "stage_order":
			rec.StageOrder = value.(int)
		case "is_default":
			rec.IsDefault = value.(bool)
		}
	}
	s.m.stages[id] = rec
	return nil
}

func (s stageStore) SetOrder(orgID, templateID string, ids []string) error {
	unlock, err := s.m.enter("stage.SetOrder")
	if err != nil {
		return err
	}
	defer unlock()
	for order, id := range ids {
		rec, ok := s.m.stages[id]
		if !ok || rec.OrgID != orgID || rec.TemplateID != templateID {
			continue
		}
		rec.StageOrder = order
		s.m.stages[id] = rec
	}
	return nil
}

func (s stageStore) MaxOrder(orgID, templateID string) (order int, err error) {
	unlock, err := s.m.enter("stage.MaxOrder")
	if err != nil {
		return 0, err
	}
	defer unlock()
	order = -1
	for _, stage := range s.m.stages {
		if stage.OrgID == orgID && stage.TemplateID == templateID && stage.StageOrder > order {
			order = stage.StageOrder
		}
	}
	return order, nil
}

func (s stageStore) Delete(orgID, id string) error {
	unlock, err := s.m.enter("stage.Delete")
	if err != nil {
		return err
	}
	defer unlock()
	rec, ok := s.m.stages[id]
	if ok && rec.OrgID == orgID {
		delete(s.m.stages, id)
	}
	return nil
}
