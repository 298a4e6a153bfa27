package approvalresolver

import (
	approvallevelshandler "budget-planner-backend/lib/approval-levels"
	"budget-planner-backend/models"
	dbmodels "budget-planner-backend/models/db"
)

// CanAct решает, может ли пользователь с ролью roleCode действовать по плану
// на его текущем уровне согласования. Возвращает nil, если действие
// разрешено, иначе типизированную ошибку с причиной отказа:
//   - models.InvalidTransitionError - план не на согласовании (черновик,
//     терминальный статус, возвращен на доработку)
//   - models.ConfigurationIntegrityError - текущий уровень плана отсутствует
//     в конфигурации организации, требуется вмешательство администратора
//   - models.PermissionDeniedError - роль не входит в текущий уровень или
//     не имеет права согласования
func CanAct(roleCode string, cfg approvallevelshandler.LevelConfig, plan dbmodels.BudgetPlan) error {
	if !plan.Status.IsActionable() || plan.CurrentApprovalLevel == 0 {
		return &models.InvalidTransitionError{
			Status: plan.Status,
		}
	}
	level := cfg.FindLevel(plan.CurrentApprovalLevel)
	if level == nil {
		return &models.ConfigurationIntegrityError{
			Level: plan.CurrentApprovalLevel,
		}
	}
	for _, role := range level.Roles {
		if role.Code == roleCode {
			if role.CanApprove {
				return nil
			}
			break
		}
	}
	return &models.PermissionDeniedError{
		Reason:   models.DenyNoPermission,
		RoleCode: roleCode,
		Level:    plan.CurrentApprovalLevel,
	}
}

// HasPermission - булева форма для выдачи доступности действий на фронт
func HasPermission(roleCode string, cfg approvallevelshandler.LevelConfig, plan dbmodels.BudgetPlan) bool {
	return CanAct(roleCode, cfg, plan) == nil
}
