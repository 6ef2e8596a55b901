package db

import (
	_ "embed"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed seed/default_pipeline.yml
var defaultPipelineDoc []byte

type SeedTemplate struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Stages      []SeedStage `yaml:"stages"`
}

type SeedStage struct {
	Name      string `yaml:"name"`
	Color     string `yaml:"color"`
	Protected bool   `yaml:"protected"`
}

var defaultTemplate = mustParseSeed(defaultPipelineDoc)

// InitPreload загружает описание шаблона по умолчанию. Пустой seedFile - встроенное описание.
func InitPreload(seedFile string) {
	if seedFile == "" {
		return
	}
	tpl, err := LoadSeedTemplate(seedFile)
	if err != nil {
		log.WithError(err).WithField("file", seedFile).Error("ошибка загрузки шаблона этапов по умолчанию, используется встроенный")
		return
	}
	defaultTemplate = tpl
	log.WithField("file", seedFile).Info("загружен шаблон этапов по умолчанию")
}

func DefaultTemplate() SeedTemplate {
	result := defaultTemplate
	result.Stages = append([]SeedStage{}, defaultTemplate.Stages...)
	return result
}

func LoadSeedTemplate(path string) (SeedTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SeedTemplate{}, errors.Wrap(err, "ошибка чтения файла")
	}
	return ParseSeedTemplate(data)
}

func ParseSeedTemplate(data []byte) (SeedTemplate, error) {
	tpl := SeedTemplate{}
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return SeedTemplate{}, errors.Wrap(err, "ошибка разбора описания шаблона")
	}
	tpl.Name = strings.TrimSpace(tpl.Name)
	if tpl.Name == "" {
		return SeedTemplate{}, errors.New("не указано название шаблона")
	}
	if len(tpl.Stages) == 0 {
		return SeedTemplate{}, errors.New("в шаблоне нет этапов")
	}
	for k, stage := range tpl.Stages {
		if strings.TrimSpace(stage.Name) == "" {
			return SeedTemplate{}, errors.Errorf("не указано название этапа на позиции %v", k)
		}
		if stage.Color == "" {
			tpl.Stages[k].Color = models.DefaultStageColor
		}
	}
	return tpl, nil
}

// Build - шаблон по умолчанию организации с этапами в порядке описания
func (s SeedTemplate) Build(orgID string) dbmodels.PipelineTemplate {
	rec := dbmodels.PipelineTemplate{
		BaseOrgModel: dbmodels.BaseOrgModel{OrgID: orgID},
		Name:         s.Name,
		Description:  s.Description,
		IsDefault:    true,
		Stages:       make([]dbmodels.PipelineStage, 0, len(s.Stages)),
	}
	for k, stage := range s.Stages {
		rec.Stages = append(rec.Stages, dbmodels.PipelineStage{
			BaseOrgModel: dbmodels.BaseOrgModel{OrgID: orgID},
			Name:         strings.TrimSpace(stage.Name),
			Color:        stage.Color,
			StageOrder:   k,
			IsDefault:    stage.Protected,
		})
	}
	return rec
}

func mustParseSeed(data []byte) SeedTemplate {
	tpl, err := ParseSeedTemplate(data)
	if err != nil {
		panic(err)
	}
	return tpl
}
