package budgetplanhandler

import (
	approvallevelshandler "budget-planner-backend/lib/approval-levels"
	approvalresolver "budget-planner-backend/lib/approval-resolver"
	"budget-planner-backend/models"
	budgetplanapimodels "budget-planner-backend/models/api/budgetplan"
	dbmodels "budget-planner-backend/models/db"
	"time"
)

// TransitionResult - результат перехода плана по машине согласования.
// UpdMap применяется к записи плана через CAS по версии, Audit добавляется
// в журнал согласования той же транзакцией
type TransitionResult struct {
	NewStatus models.BPStatus
	NewLevel  int
	UpdMap    map[string]interface{}
	Audit     dbmodels.ApprovalAction
}

// ComputeTransition - чистая функция машины согласования: проверяет право
// действовать и вычисляет следующий статус и уровень плана. Последовательная
// одноподписная цепочка: одно согласование продвигает план на следующий
// уровень, согласование на последнем уровне завершает план
func ComputeTransition(plan dbmodels.BudgetPlan, cfg approvallevelshandler.LevelConfig, actorUserID, actorRoleCode string, data budgetplanapimodels.ApprovalActionData, now time.Time) (TransitionResult, error) {
	err := approvalresolver.CanAct(actorRoleCode, cfg, plan)
	if err != nil {
		return TransitionResult{}, err
	}

	result := TransitionResult{
		Audit: dbmodels.ApprovalAction{
			BaseOrgModel: dbmodels.BaseOrgModel{
				OrgID: plan.OrgID,
			},
			BudgetPlanID:  plan.ID,
			Action:        data.Action,
			ActorUserID:   actorUserID,
			ActorRoleCode: actorRoleCode,
			LevelActedAt:  plan.CurrentApprovalLevel,
			Comments:      data.Comments,
		},
	}

	switch data.Action {
	case models.AActionApprove:
		lastLevel := len(cfg.Levels)
		if plan.CurrentApprovalLevel < lastLevel {
			result.NewStatus = models.BPStatusPending
			result.NewLevel = plan.CurrentApprovalLevel + 1
			result.UpdMap = map[string]interface{}{
				"Status":               models.BPStatusPending,
				"CurrentApprovalLevel": result.NewLevel,
			}
		} else {
			result.NewStatus = models.BPStatusApproved
			result.NewLevel = plan.CurrentApprovalLevel
			result.UpdMap = map[string]interface{}{
				"Status":     models.BPStatusApproved,
				"ApprovedAt": now,
			}
		}
	case models.AActionReject:
		reason := data.RejectionReason
		if reason == "" {
			reason = models.DefaultRejectionReason
		}
		result.Audit.RejectionReason = reason
		result.NewStatus = models.BPStatusRejected
		result.NewLevel = plan.CurrentApprovalLevel
		result.UpdMap = map[string]interface{}{
			"Status":     models.BPStatusRejected,
			"RejectedAt": now,
		}
	case models.AActionRequestRevision:
		if result.Audit.Comments == "" {
			result.Audit.Comments = models.DefaultRevisionComment
		}
		result.NewStatus = models.BPStatusReturned
		result.NewLevel = 0
		result.UpdMap = map[string]interface{}{
			"Status":               models.BPStatusReturned,
			"CurrentApprovalLevel": 0,
		}
	default:
		return TransitionResult{}, &models.InvalidTransitionError{
			Status: plan.Status,
			Action: data.Action,
		}
	}
	return result, nil
}
