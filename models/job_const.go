package models

type JobStatus string

const (
	JobStatusDraft     JobStatus = "Draft"
	JobStatusPublished JobStatus = "Published"
	JobStatusArchived  JobStatus = "Archived"
	JobStatusClosed    JobStatus = "Closed"
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusDraft, JobStatusPublished, JobStatusArchived, JobStatusClosed:
		return true
	}
	return false
}

// HiredStageName - терминальный этап, перевод на который сопровождается событием для UI
const HiredStageName = "Hired"

const DefaultStageColor = "#000000"
