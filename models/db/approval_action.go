package dbmodels

import (
	"budget-planner-backend/models"
)

// ApprovalAction - запись журнала согласования. Только добавляется,
// записи не редактируются и не удаляются, в том числе при удалении плана
type ApprovalAction struct {
	BaseOrgModel
	BudgetPlanID    string                    `gorm:"type:varchar(36);index"`
	Action          models.ApprovalActionType `gorm:"type:varchar(100)"`
	ActorUserID     string                    `gorm:"type:varchar(36)"`
	Actor           *OrgUser                  `gorm:"foreignKey:ActorUserID"`
	ActorRoleCode   string                    `gorm:"type:varchar(100)"`
	LevelActedAt    int
	Comments        string
	RejectionReason string
}
