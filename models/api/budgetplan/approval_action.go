package budgetplanapimodels

import (
	"budget-planner-backend/models"
	dbmodels "budget-planner-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

type ApprovalActionData struct {
	Action          models.ApprovalActionType `json:"action"`
	Comments        string                    `json:"comments"`
	RejectionReason string                    `json:"rejection_reason"`
}

func (v ApprovalActionData) Validate() error {
	if !v.Action.IsValid() {
		return errors.Errorf("неизвестное действие согласования: %v", v.Action)
	}
	return nil
}

type ActionResultView struct {
	NewStatus models.BPStatus `json:"new_status"`
	NewLevel  int             `json:"new_level"`
}

type PermissionView struct {
	HasPermission bool `json:"has_permission"`
}

type ApprovalActionView struct {
	ID              string                    `json:"id"`
	BudgetPlanID    string                    `json:"budget_plan_id"`
	Action          models.ApprovalActionType `json:"action"`
	ActionName      string                    `json:"action_name"`
	ActorUserID     string                    `json:"actor_user_id"`
	ActorUserName   string                    `json:"actor_user_name"`
	ActorRoleCode   string                    `json:"actor_role_code"`
	LevelActedAt    int                       `json:"level_acted_at"`
	Comments        string                    `json:"comments"`
	RejectionReason string                    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
}

func ApprovalActionConvert(rec dbmodels.ApprovalAction) ApprovalActionView {
	actorName := ""
	if rec.Actor != nil {
		actorName = rec.Actor.GetFullName()
	}
	return ApprovalActionView{
		ID:              rec.ID,
		BudgetPlanID:    rec.BudgetPlanID,
		Action:          rec.Action,
		ActionName:      rec.Action.ToHuman(),
		ActorUserID:     rec.ActorUserID,
		ActorUserName:   actorName,
		ActorRoleCode:   rec.ActorRoleCode,
		LevelActedAt:    rec.LevelActedAt,
		Comments:        rec.Comments,
		RejectionReason: rec.RejectionReason,
		CreatedAt:       rec.CreatedAt,
	}
}
