package dbmodels

type Role struct {
	BaseOrgModel
	Code        string `gorm:"type:varchar(100);index"`
	Name        string `gorm:"type:varchar(255)"`
	DisplayName string `gorm:"type:varchar(255)"`
	Description string
	// номер уровня согласования, которому принадлежит роль (1..N)
	ApprovalLevel       int `gorm:"index"`
	CanCreateBudgetPlan bool
	CanViewAllPlans     bool
	CanApprove          bool
	CanEditQAs          bool
	// системная роль: создана из шаблона при регистрации организации,
	// удаление и смена кода/уровня недоступны
	IsProtected bool
}
