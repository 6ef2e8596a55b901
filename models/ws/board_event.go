package wsmodels

type EventCode string

const (
	EventCandidateHired  EventCode = "candidate_hired"  // кандидат переведен на этап "Hired"
	EventCandidateMoved  EventCode = "candidate_moved"  // кандидат переведен на другой этап
	EventPipelineChanged EventCode = "pipeline_changed" // изменен список этапов вакансии
)

// BoardEvent - событие доски вакансии для подписчиков websocket
type BoardEvent struct {
	JobID         string    `json:"job_id"`
	Code          EventCode `json:"code"`                     // код события
	ApplicationID string    `json:"application_id,omitempty"` // отклик кандидата
	StageID       string    `json:"stage_id,omitempty"`       // этап назначения
	StageName     string    `json:"stage_name,omitempty"`
	Time          string    `json:"time"` // время события
}

const TimeFormat = "02.01.2006 15:04:05"
