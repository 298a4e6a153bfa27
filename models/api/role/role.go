package roleapimodels

import (
	dbmodels "budget-planner-backend/models/db"
	"strings"

	"github.com/pkg/errors"
)

type RoleData struct {
	Code                string `json:"code"`
	Name                string `json:"name"`
	DisplayName         string `json:"display_name"`
	Description         string `json:"description"`
	ApprovalLevel       int    `json:"approval_level"`
	CanCreateBudgetPlan bool   `json:"can_create_budget_plan"`
	CanViewAllPlans     bool   `json:"can_view_all_plans"`
	CanApprove          bool   `json:"can_approve"`
	CanEditQAs          bool   `json:"can_edit_qas"`
}

func (r RoleData) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return errors.New("не указан код роли")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("не указано наименование роли")
	}
	if r.ApprovalLevel <= 0 {
		return errors.New("уровень согласования должен быть положительным числом")
	}
	return nil
}

// редактирование отображаемых полей, для системных ролей доступны только они
type RoleEditData struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

func (r RoleEditData) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("не указано наименование роли")
	}
	return nil
}

type RoleView struct {
	RoleData
	ID          string `json:"id"`
	IsProtected bool   `json:"is_protected"`
}

func RoleConvert(rec dbmodels.Role) RoleView {
	return RoleView{
		RoleData: RoleData{
			Code:                rec.Code,
			Name:                rec.Name,
			DisplayName:         rec.DisplayName,
			Description:         rec.Description,
			ApprovalLevel:       rec.ApprovalLevel,
			CanCreateBudgetPlan: rec.CanCreateBudgetPlan,
			CanViewAllPlans:     rec.CanViewAllPlans,
			CanApprove:          rec.CanApprove,
			CanEditQAs:          rec.CanEditQAs,
		},
		ID:          rec.ID,
		IsProtected: rec.IsProtected,
	}
}
