package models

import (
	"fmt"
	"strings"
)

// ValidationError - конфигурация уровней согласования содержит уровни без ролей,
// сохранение недоступно пока каждый уровень не содержит хотя бы одну роль
type ValidationError struct {
	EmptyLevels []int
}

func (e *ValidationError) Error() string {
	levels := make([]string, 0, len(e.EmptyLevels))
	for _, level := range e.EmptyLevels {
		levels = append(levels, fmt.Sprintf("%v", level))
	}
	return fmt.Sprintf("на уровнях согласования отсутствуют роли: %v", strings.Join(levels, ", "))
}

type DenyReason string

const (
	DenyNoPermission DenyReason = "NO_PERMISSION"
)

// PermissionDeniedError - роль пользователя не дает права действовать
// на текущем уровне согласования плана. Планы вне согласования дают
// InvalidTransitionError, не отказ в доступе
type PermissionDeniedError struct {
	Reason   DenyReason
	RoleCode string
	Level    int
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("роль %v не может согласовывать на уровне %v", e.RoleCode, e.Level)
}

// InvalidTransitionError - действие недопустимо для текущего статуса плана
type InvalidTransitionError struct {
	Status BPStatus
	Action ApprovalActionType
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("действие %v недопустимо в статусе %v", e.Action.ToHuman(), e.Status.ToHuman())
}

// ConcurrencyConflictError - версия плана изменилась во время обработки,
// требуется перечитать план и повторить действие
type ConcurrencyConflictError struct {
	PlanID string
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("план %v был изменен параллельной операцией", e.PlanID)
}

// ConfigurationIntegrityError - план ссылается на уровень, отсутствующий в
// конфигурации организации. Требуется вмешательство администратора
type ConfigurationIntegrityError struct {
	Level int
}

func (e *ConfigurationIntegrityError) Error() string {
	return fmt.Sprintf("уровень согласования %v отсутствует в конфигурации организации", e.Level)
}
