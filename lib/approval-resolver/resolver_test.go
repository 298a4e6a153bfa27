package approvalresolver

import (
	"testing"

	approvallevelshandler "budget-planner-backend/lib/approval-levels"
	"budget-planner-backend/models"
	dbmodels "budget-planner-backend/models/db"

	"github.com/stretchr/testify/require"
)

func testConfig() approvallevelshandler.LevelConfig {
	return approvallevelshandler.BuildConfig([]dbmodels.Role{
		{Code: "ROLE_MANAGER", ApprovalLevel: 1, CanApprove: true},
		{Code: "ROLE_SPECIALIST", ApprovalLevel: 1, CanApprove: false},
		{Code: "ROLE_DIRECTOR", ApprovalLevel: 2, CanApprove: true},
	})
}

func testPlan(status models.BPStatus, level int) dbmodels.BudgetPlan {
	return dbmodels.BudgetPlan{
		Status:               status,
		CurrentApprovalLevel: level,
	}
}

func TestCanAct(t *testing.T) {
	cfg := testConfig()

	t.Run(`роль уровня с правом согласования действует`, func(t *testing.T) {
		err := CanAct("ROLE_MANAGER", cfg, testPlan(models.BPStatusPending, 1))
		require.Nil(t, err)
		require.True(t, HasPermission("ROLE_MANAGER", cfg, testPlan(models.BPStatusPending, 1)))
	})

	t.Run(`роль другого уровня не действует`, func(t *testing.T) {
		err := CanAct("ROLE_DIRECTOR", cfg, testPlan(models.BPStatusPending, 1))
		var permissionErr *models.PermissionDeniedError
		require.ErrorAs(t, err, &permissionErr)
		require.Equal(t, "ROLE_DIRECTOR", permissionErr.RoleCode)
		require.Equal(t, 1, permissionErr.Level)
		require.False(t, HasPermission("ROLE_DIRECTOR", cfg, testPlan(models.BPStatusPending, 1)))
	})

	t.Run(`роль уровня без права согласования не действует`, func(t *testing.T) {
		err := CanAct("ROLE_SPECIALIST", cfg, testPlan(models.BPStatusPending, 1))
		var permissionErr *models.PermissionDeniedError
		require.ErrorAs(t, err, &permissionErr)
	})

	t.Run(`после продвижения действует роль следующего уровня`, func(t *testing.T) {
		plan := testPlan(models.BPStatusPending, 2)
		require.Nil(t, CanAct("ROLE_DIRECTOR", cfg, plan))
		var permissionErr *models.PermissionDeniedError
		require.ErrorAs(t, CanAct("ROLE_MANAGER", cfg, plan), &permissionErr)
	})

	t.Run(`черновик не на согласовании`, func(t *testing.T) {
		err := CanAct("ROLE_MANAGER", cfg, testPlan(models.BPStatusDraft, 0))
		var transitionErr *models.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
	})

	t.Run(`терминальные статусы недоступны для действий`, func(t *testing.T) {
		for _, status := range []models.BPStatus{models.BPStatusApproved, models.BPStatusRejected, models.BPStatusClosed} {
			err := CanAct("ROLE_MANAGER", cfg, testPlan(status, 1))
			var transitionErr *models.InvalidTransitionError
			require.ErrorAs(t, err, &transitionErr)
		}
	})

	t.Run(`возвращенный на доработку план недоступен для действий`, func(t *testing.T) {
		err := CanAct("ROLE_MANAGER", cfg, testPlan(models.BPStatusReturned, 0))
		var transitionErr *models.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		require.False(t, HasPermission("ROLE_MANAGER", cfg, testPlan(models.BPStatusReturned, 0)))
	})

	t.Run(`уровень плана отсутствует в конфигурации`, func(t *testing.T) {
		err := CanAct("ROLE_MANAGER", cfg, testPlan(models.BPStatusPending, 5))
		var integrityErr *models.ConfigurationIntegrityError
		require.ErrorAs(t, err, &integrityErr)
		require.Equal(t, 5, integrityErr.Level)
	})
}
