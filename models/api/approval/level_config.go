package approvalapimodels

import (
	roleapimodels "budget-planner-backend/models/api/role"

	"github.com/pkg/errors"
)

type ApprovalLevelsData struct {
	Levels []ApprovalLevelData `json:"levels"`
}

type ApprovalLevelData struct {
	Level     int      `json:"level"`
	RoleCodes []string `json:"role_codes"`
}

func (v ApprovalLevelsData) Validate() error {
	if len(v.Levels) == 0 {
		return errors.New("не указаны уровни согласования")
	}
	for _, level := range v.Levels {
		if level.Level <= 0 {
			return errors.New("номер уровня согласования должен быть положительным числом")
		}
		for _, code := range level.RoleCodes {
			if code == "" {
				return errors.New("отсутсвует код роли")
			}
		}
	}
	return nil
}

type MoveRoleData struct {
	RoleCode  string `json:"role_code"`
	FromLevel int    `json:"from_level"`
	ToLevel   int    `json:"to_level"`
}

func (v MoveRoleData) Validate() error {
	if v.RoleCode == "" {
		return errors.New("отсутсвует код роли")
	}
	if v.FromLevel <= 0 || v.ToLevel <= 0 {
		return errors.New("номер уровня согласования должен быть положительным числом")
	}
	return nil
}

type ApprovalLevelView struct {
	Level int                      `json:"level"`
	Roles []roleapimodels.RoleView `json:"roles"`
}

type ApprovalLevelsView struct {
	Levels []ApprovalLevelView `json:"levels"`
	// уровни без ролей; конфигурация с такими уровнями не может быть сохранена
	EmptyLevels []int `json:"empty_levels,omitempty"`
}
