package budgetplanhandler

import (
	"testing"
	"time"

	approvallevelshandler "budget-planner-backend/lib/approval-levels"
	"budget-planner-backend/models"
	budgetplanapimodels "budget-planner-backend/models/api/budgetplan"
	dbmodels "budget-planner-backend/models/db"

	"github.com/stretchr/testify/require"
)

func twoLevelConfig() approvallevelshandler.LevelConfig {
	return approvallevelshandler.BuildConfig([]dbmodels.Role{
		{Code: "ROLE_MANAGER", ApprovalLevel: 1, CanApprove: true},
		{Code: "ROLE_DIRECTOR", ApprovalLevel: 2, CanApprove: true},
	})
}

func pendingPlan(level int) dbmodels.BudgetPlan {
	return dbmodels.BudgetPlan{
		BaseOrgModel: dbmodels.BaseOrgModel{
			BaseModel: dbmodels.BaseModel{ID: "plan-1"},
			OrgID:     "org-1",
		},
		ProjectName:          "Разработка портала",
		Status:               models.BPStatusPending,
		CurrentApprovalLevel: level,
	}
}

func applyTransitionToPlan(plan dbmodels.BudgetPlan, result TransitionResult) dbmodels.BudgetPlan {
	plan.Status = result.NewStatus
	plan.CurrentApprovalLevel = result.NewLevel
	return plan
}

func TestComputeTransition(t *testing.T) {
	cfg := twoLevelConfig()
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

	t.Run(`согласование проходит цепочку уровней до завершения`, func(t *testing.T) {
		plan := pendingPlan(1)
		first, err := ComputeTransition(plan, cfg, "user-1", "ROLE_MANAGER", budgetplanapimodels.ApprovalActionData{Action: models.AActionApprove}, now)
		require.Nil(t, err)
		require.Equal(t, models.BPStatusPending, first.NewStatus)
		require.Equal(t, 2, first.NewLevel)
		require.Equal(t, 1, first.Audit.LevelActedAt)
		require.Equal(t, "ROLE_MANAGER", first.Audit.ActorRoleCode)
		require.Equal(t, "plan-1", first.Audit.BudgetPlanID)
		require.Equal(t, "org-1", first.Audit.OrgID)

		plan = applyTransitionToPlan(plan, first)
		second, err := ComputeTransition(plan, cfg, "user-2", "ROLE_DIRECTOR", budgetplanapimodels.ApprovalActionData{Action: models.AActionApprove}, now)
		require.Nil(t, err)
		require.Equal(t, models.BPStatusApproved, second.NewStatus)
		require.Equal(t, 2, second.Audit.LevelActedAt)
		require.Equal(t, now, second.UpdMap["ApprovedAt"])
	})

	t.Run(`уровень растет только на единицу`, func(t *testing.T) {
		cfgWide := approvallevelshandler.BuildConfig([]dbmodels.Role{
			{Code: "ROLE_MANAGER", ApprovalLevel: 1, CanApprove: true},
			{Code: "ROLE_HEAD", ApprovalLevel: 2, CanApprove: true},
			{Code: "ROLE_DIRECTOR", ApprovalLevel: 3, CanApprove: true},
		})
		result, err := ComputeTransition(pendingPlan(1), cfgWide, "user-1", "ROLE_MANAGER", budgetplanapimodels.ApprovalActionData{Action: models.AActionApprove}, now)
		require.Nil(t, err)
		require.Equal(t, models.BPStatusPending, result.NewStatus)
		require.Equal(t, 2, result.NewLevel)
	})

	t.Run(`отклонение с причиной`, func(t *testing.T) {
		result, err := ComputeTransition(pendingPlan(1), cfg, "user-1", "ROLE_MANAGER", budgetplanapimodels.ApprovalActionData{
			Action:          models.AActionReject,
			RejectionReason: "Превышен бюджет подразделения",
		}, now)
		require.Nil(t, err)
		require.Equal(t, models.BPStatusRejected, result.NewStatus)
		require.Equal(t, "Превышен бюджет подразделения", result.Audit.RejectionReason)
		require.Equal(t, now, result.UpdMap["RejectedAt"])
	})

	t.Run(`отклонение без причины получает причину по умолчанию`, func(t *testing.T) {
		result, err := ComputeTransition(pendingPlan(1), cfg, "user-1", "ROLE_MANAGER", budgetplanapimodels.ApprovalActionData{Action: models.AActionReject}, now)
		require.Nil(t, err)
		require.Equal(t, models.DefaultRejectionReason, result.Audit.RejectionReason)
	})

	t.Run(`возврат на доработку сбрасывает уровень`, func(t *testing.T) {
		result, err := ComputeTransition(pendingPlan(2), cfg, "user-2", "ROLE_DIRECTOR", budgetplanapimodels.ApprovalActionData{Action: models.AActionRequestRevision}, now)
		require.Nil(t, err)
		require.Equal(t, models.BPStatusReturned, result.NewStatus)
		require.Equal(t, 0, result.NewLevel)
		require.Equal(t, 0, result.UpdMap["CurrentApprovalLevel"])
		require.Equal(t, models.DefaultRevisionComment, result.Audit.Comments)
	})

	t.Run(`комментарий при возврате сохраняется`, func(t *testing.T) {
		result, err := ComputeTransition(pendingPlan(1), cfg, "user-1", "ROLE_MANAGER", budgetplanapimodels.ApprovalActionData{
			Action:   models.AActionRequestRevision,
			Comments: "Уточнить строки по второму кварталу",
		}, now)
		require.Nil(t, err)
		require.Equal(t, "Уточнить строки по второму кварталу", result.Audit.Comments)
	})

	t.Run(`действия по отклоненному плану недоступны`, func(t *testing.T) {
		plan := pendingPlan(1)
		rejected, err := ComputeTransition(plan, cfg, "user-1", "ROLE_MANAGER", budgetplanapimodels.ApprovalActionData{Action: models.AActionReject}, now)
		require.Nil(t, err)

		plan = applyTransitionToPlan(plan, rejected)
		_, err = ComputeTransition(plan, cfg, "user-2", "ROLE_DIRECTOR", budgetplanapimodels.ApprovalActionData{Action: models.AActionApprove}, now)
		var transitionErr *models.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
	})

	t.Run(`роль без доступа к уровню не меняет план`, func(t *testing.T) {
		_, err := ComputeTransition(pendingPlan(1), cfg, "user-2", "ROLE_DIRECTOR", budgetplanapimodels.ApprovalActionData{Action: models.AActionApprove}, now)
		var permissionErr *models.PermissionDeniedError
		require.ErrorAs(t, err, &permissionErr)
	})
}
