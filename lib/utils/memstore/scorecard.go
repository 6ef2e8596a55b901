package memstore

import (
	scorecardstore "hr-pipeline-backend/lib/scorecard/store"
	dbmodels "hr-pipeline-backend/models/db"
	"sort"

	"gorm.io/gorm"
)

func (m *Memory) ScorecardStore(_ *gorm.DB) scorecardstore.Provider {
	return scorecardStore{m: m}
}

type scorecardStore struct {
	m *Memory
}

func (s scorecardStore) Create(rec dbmodels.ScorecardTemplate) (id string, err error) {
	unlock, err := s.m.enter("scorecard.Create")
	if err != nil {
		return "", err
	}
	defer unlock()
	rec.BaseModel = s.m.newBase(rec.BaseModel)
	rec.Sections = append(dbmodels.ScorecardSections{}, rec.Sections...)
	s.m.scorecards[rec.ID] = rec
	return rec.ID, nil
}

func (s scorecardStore) GetByID(orgID, id string) (*dbmodels.ScorecardTemplate, error) {
	unlock, err := s.m.enter("scorecard.GetByID")
	if err != nil {
		return nil, err
	}
	defer unlock()
	rec, ok := s.m.scorecards[id]
	if !ok || rec.OrgID != orgID {
		return nil, nil
	}
	rec.Sections = append(dbmodels.ScorecardSections{}, rec.Sections...)
	return &rec, nil
}

func (s scorecardStore) GetDefault(orgID string) (*dbmodels.ScorecardTemplate, error) {
	unlock, err := s.m.enter("scorecard.GetDefault")
	if err != nil {
		return nil, err
	}
	defer unlock()
	for _, rec := range s.m.scorecards {
		if rec.OrgID == orgID && rec.IsDefault {
			rec.Sections = append(dbmodels.ScorecardSections{}, rec.Sections...)
			return &rec, nil
		}
	}
	return nil, nil
}

func (s scorecardStore) List(orgID string) (list []dbmodels.ScorecardTemplate, err error) {
	unlock, err := s.m.enter("scorecard.List")
	if err != nil {
		return nil, err
	}
	defer unlock()
	list = []dbmodels.ScorecardTemplate{}
	for _, rec := range s.m.scorecards {
		if rec.OrgID == orgID {
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

func (s scorecardStore) Update(orgID, id string, updMap map[string]interface{}) error {
	unlock, err := s.m.enter("scorecard.Update")
	if err != nil {
		return err
	}
	defer unlock()
	rec, ok := s.m.scorecards[id]
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
		case "sections":
			rec.Sections = append(dbmodels.ScorecardSections{}, value.(dbmodels.ScorecardSections)...)
		}
	}
	s.m.scorecards[id] = rec
	return nil
}

func (s scorecardStore) ClearDefault(orgID string) error {
	unlock, err := s.m.enter("scorecard.ClearDefault")
	if err != nil {
		return err
	}
	defer unlock()
	for id, rec := range s.m.scorecards {
		if rec.OrgID == orgID && rec.IsDefault {
			rec.IsDefault = false
			s.m.scorecards[id] = rec
		}
	}
	return nil
}

func (s scorecardStore) Delete(orgID, id string) error {
	unlock, err := s.m.enter("scorecard.Delete")
	if err != nil {
		return err
	}
	defer unlock()
	rec, ok := s.m.scorecards[id]
	if !ok || rec.OrgID != orgID {
		return nil
	}
	delete(s.m.scorecards, id)
	return nil
}
