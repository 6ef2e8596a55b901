package models

import (
	"fmt"
)

// ProtectedStageError - попытка удалить этап, отмеченный как этап по умолчанию
type ProtectedStageError struct {
	StageID string
}

func (e ProtectedStageError) Error() string {
	return "этап по умолчанию нельзя удалить"
}

// ProtectedTemplateError - попытка удалить шаблон по умолчанию
type ProtectedTemplateError struct {
	TemplateID string
}

func (e ProtectedTemplateError) Error() string {
	return "шаблон по умолчанию нельзя удалить"
}

// ReorderPersistenceError - не удалось сохранить новый порядок этапов.
// Confirmed содержит последний подтвержденный порядок, к которому должен вернуться клиент
type ReorderPersistenceError struct {
	Confirmed []string
	Cause     error
}

func (e ReorderPersistenceError) Error() string {
	if e.Cause == nil {
		return "ошибка сохранения порядка этапов"
	}
	return fmt.Sprintf("ошибка сохранения порядка этапов: %v", e.Cause)
}

func (e ReorderPersistenceError) Unwrap() error {
	return e.Cause
}

// SyncConflictError - шаблон или вакансия изменены параллельно, операцию можно повторить
type SyncConflictError struct {
	JobID string
	Cause error
}

func (e SyncConflictError) Error() string {
	return "этапы вакансии были изменены параллельно, повторите операцию"
}

func (e SyncConflictError) Unwrap() error {
	return e.Cause
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%v не найден(а)", e.Entity)
}

func NewNotFoundError(entity, id string) NotFoundError {
	return NotFoundError{Entity: entity, ID: id}
}
