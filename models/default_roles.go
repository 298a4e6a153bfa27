package models

// Шаблон системных ролей, которыми заполняется конфигурация уровней
// согласования при создании организации. Передается в обработчик создания
// организации явно, версия фиксирует состав на момент создания
const DefaultRoleTemplateVersion = 1

type RoleTemplate struct {
	Code                string
	Name                string
	DisplayName         string
	Description         string
	ApprovalLevel       int
	CanCreateBudgetPlan bool
	CanViewAllPlans     bool
	CanApprove          bool
	CanEditQAs          bool
}

func DefaultRoleTemplate() []RoleTemplate {
	return []RoleTemplate{
		{
			Code:            "ROLE_ADMIN",
			Name:            "admin",
			DisplayName:     "Администратор",
			Description:     "Управление организацией, ролями и уровнями согласования",
			ApprovalLevel:   1,
			CanViewAllPlans: true,
			CanEditQAs:      true,
		},
		{
			Code:                "ROLE_SPECIALIST",
			Name:                "specialist",
			DisplayName:         "Специалист",
			Description:         "Создание и редактирование бюджетных планов",
			ApprovalLevel:       1,
			CanCreateBudgetPlan: true,
		},
		{
			Code:                "ROLE_MANAGER",
			Name:                "manager",
			DisplayName:         "Руководитель отдела",
			Description:         "Согласование бюджетных планов на первом уровне",
			ApprovalLevel:       1,
			CanCreateBudgetPlan: true,
			CanApprove:          true,
		},
		{
			Code:            "ROLE_DIRECTOR",
			Name:            "director",
			DisplayName:     "Директор",
			Description:     "Итоговое согласование бюджетных планов",
			ApprovalLevel:   2,
			CanViewAllPlans: true,
			CanApprove:      true,
		},
	}
}
