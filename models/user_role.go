package models

type UserRole string

const (
	UserRoleOwner         UserRole = "OWNER"
	UserRoleHR            UserRole = "HR"
	UserRoleHiringManager UserRole = "HIRING_MANAGER"
	UserRoleInterviewer   UserRole = "INTERVIEWER"
)

var roleHumanName = map[UserRole]string{
	UserRoleOwner:         "Владелец",
	UserRoleHR:            "HR",
	UserRoleHiringManager: "Нанимающий менеджер",
	UserRoleInterviewer:   "Интервьюер",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

// CanManagePipeline - изменение шаблонов и этапов подбора
func (r UserRole) CanManagePipeline() bool {
	return r == UserRoleOwner || r == UserRoleHR
}

// CanManageJobs - изменение вакансий и их этапов
func (r UserRole) CanManageJobs() bool {
	return r == UserRoleOwner || r == UserRoleHR || r == UserRoleHiringManager
}

const SystemUser = "Система"
