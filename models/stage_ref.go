package models

import (
	"strings"

	"github.com/google/uuid"
)

type StageRefKind int

const (
	StageRefUnset      StageRefKind = iota // кандидат не привязан к этапу
	StageRefID                             // идентификатор этапа
	StageRefLegacyName                     // старые записи: название этапа или ключ вида "new"
)

// StageRef - ссылка кандидата на этап: идентификатор этапа либо (для старых записей) название
type StageRef struct {
	raw  string
	kind StageRefKind
}

func ParseStageRef(raw string) StageRef {
	value := strings.TrimSpace(raw)
	if value == "" {
		return StageRef{}
	}
	if _, err := uuid.Parse(value); err == nil {
		return StageRef{raw: value, kind: StageRefID}
	}
	return StageRef{raw: value, kind: StageRefLegacyName}
}

func StageRefFromID(id string) StageRef {
	return StageRef{raw: id, kind: StageRefID}
}

func (r StageRef) String() string {
	return r.raw
}

func (r StageRef) Kind() StageRefKind {
	return r.kind
}

func (r StageRef) IsUnset() bool {
	return r.kind == StageRefUnset
}

func (r StageRef) IsLegacy() bool {
	return r.kind == StageRefLegacyName
}

// Matches - ссылка указывает на этап, если совпадает с его идентификатором или названием
func (r StageRef) Matches(stageID, stageName string) bool {
	if r.IsUnset() {
		return false
	}
	return r.raw == stageID || r.raw == stageName
}
