package jobapimodels

import (
	apimodels "hr-pipeline-backend/models/api"
	dbmodels "hr-pipeline-backend/models/db"
	"time"
)

type ActivityFilter struct {
	apimodels.Pagination
}

type ActivityView struct {
	ID            string                 `json:"id"`
	CreatedAt     time.Time              `json:"created_at"`
	ApplicationID string                 `json:"application_id"` // Идентификатор отклика
	UserID        string                 `json:"user_id"`        // Автор изменений
	ActionType    dbmodels.ActivityType  `json:"action_type"`    // Тип действия
	Details       dbmodels.EntityChanges `json:"details"`        // Изменения
}

func ActivityConvert(rec dbmodels.JobActivity) ActivityView {
	result := ActivityView{
		ID:         rec.ID,
		CreatedAt:  rec.CreatedAt,
		ActionType: rec.ActionType,
		Details:    rec.Details,
	}
	if rec.ApplicationID != nil {
		result.ApplicationID = *rec.ApplicationID
	}
	if rec.UserID != nil {
		result.UserID = *rec.UserID
	}
	return result
}
