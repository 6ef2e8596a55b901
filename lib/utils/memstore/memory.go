// Package memstore - хранилища в памяти с интерфейсами gorm-хранилищ, для тестов обработчиков.
package memstore

import (
	dbmodels "hr-pipeline-backend/models/db"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Memory struct {
	mu           sync.Mutex
	templates    map[string]dbmodels.PipelineTemplate
	stages       map[string]dbmodels.PipelineStage
	jobs         map[string]dbmodels.Job
	applications map[string]dbmodels.Application
	scorecards   map[string]dbmodels.ScorecardTemplate
	activities   []dbmodels.JobActivity
	seq          int
	failures     map[string]error
	hooks        map[string]func()
}

func New() *Memory {
	return &Memory{
		templates:    map[string]dbmodels.PipelineTemplate{},
		stages:       map[string]dbmodels.PipelineStage{},
		jobs:         map[string]dbmodels.Job{},
		applications: map[string]dbmodels.Application{},
		scorecards:   map[string]dbmodels.ScorecardTemplate{},
		failures:     map[string]error{},
		hooks:        map[string]func(){},
	}
}

// Fail - операция op (например "stage.SetOrder") будет возвращать err
func (m *Memory) Fail(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op] = err
}

// Before - hook вызывается перед выполнением операции op, без блокировки хранилища
func (m *Memory) Before(op string, hook func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks[op] = hook
}

// Transaction - при ошибке fc состояние хранилища восстанавливается
func (m *Memory) Transaction(fc func(tx *gorm.DB) error) error {
	m.mu.Lock()
	saved := m.copyState()
	m.mu.Unlock()
	if err := fc(nil); err != nil {
		m.mu.Lock()
		m.restoreState(saved)
		m.mu.Unlock()
		return err
	}
	return nil
}

type state struct {
	templates    map[string]dbmodels.PipelineTemplate
	stages       map[string]dbmodels.PipelineStage
	jobs         map[string]dbmodels.Job
	applications map[string]dbmodels.Application
	scorecards   map[string]dbmodels.ScorecardTemplate
	activities   []dbmodels.JobActivity
}

func (m *Memory) copyState() state {
	result := state{
		templates:    make(map[string]dbmodels.PipelineTemplate, len(m.templates)),
		stages:       make(map[string]dbmodels.PipelineStage, len(m.stages)),
		jobs:         make(map[string]dbmodels.Job, len(m.jobs)),
		applications: make(map[string]dbmodels.Application, len(m.applications)),
		scorecards:   make(map[string]dbmodels.ScorecardTemplate, len(m.scorecards)),
		activities:   append([]dbmodels.JobActivity{}, m.activities...),
	}
	for k, v := range m.templates {
		result.templates[k] = v
	}
	for k, v := range m.stages {
		result.stages[k] = v
	}
	for k, v := range m.jobs {
		v.PipelineConfig = v.PipelineConfig.Clone()
		result.jobs[k] = v
	}
	for k, v := range m.applications {
		result.applications[k] = v
	}
	for k, v := range m.scorecards {
		result.scorecards[k] = v
	}
	return result
}

func (m *Memory) restoreState(s state) {
	m.templates = s.templates
	m.stages = s.stages
	m.jobs = s.jobs
	m.applications = s.applications
	m.scorecards = s.scorecards
	m.activities = s.activities
}

// enter - проверка внедренной ошибки и вызов hook; возвращает функцию снятия блокировки
func (m *Memory) enter(op string) (unlock func(), err error) {
	m.mu.Lock()
	hook := m.hooks[op]
	m.mu.Unlock()
	if hook != nil {
		hook()
	}
	m.mu.Lock()
	if err = m.failures[op]; err != nil {
		m.mu.Unlock()
		return nil, err
	}
	return m.mu.Unlock, nil
}

func (m *Memory) newBase(base dbmodels.BaseModel) dbmodels.BaseModel {
	m.seq++
	if base.ID == "" {
		base.ID = uuid.NewString()
	}
	base.CreatedAt = time.Unix(0, 0).Add(time.Duration(m.seq) * time.Second)
	base.UpdatedAt = base.CreatedAt
	return base
}

// Activities - журнал действий в порядке записи
func (m *Memory) Activities() []dbmodels.JobActivity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dbmodels.JobActivity{}, m.activities...)
}
