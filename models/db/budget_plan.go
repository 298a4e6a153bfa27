package dbmodels

import (
	"budget-planner-backend/models"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BudgetPlan struct {
	BaseOrgModel
	AuthorID    string   `gorm:"type:varchar(36)"`
	Author      *OrgUser `gorm:"foreignKey:AuthorID"`
	ProjectName string   `gorm:"type:varchar(255)"`
	Description string
	Status      models.BPStatus `gorm:"type:varchar(100);index"`
	// уровень, на котором план ожидает решения; 0 до отправки на согласование
	CurrentApprovalLevel int
	// сумма плана, пересчитывается как сумма строк бюджета
	BudgetAmount float64
	// версия записи для оптимистичной блокировки переходов
	Version     int
	SubmittedAt *time.Time
	ApprovedAt  *time.Time
	RejectedAt  *time.Time
	ClosedAt    *time.Time
	LineItems   []BudgetLineItem `gorm:"foreignKey:BudgetPlanID"`
	Actions     []ApprovalAction `gorm:"foreignKey:BudgetPlanID"`
}

type BudgetLineItem struct {
	BaseOrgModel
	BudgetPlanID string `gorm:"type:varchar(36);index"`
	Name         string `gorm:"type:varchar(255)"`
	Amount       float64
	Quarter      int
	Comment      string
}

func (p *BudgetPlan) AfterDelete(tx *gorm.DB) (err error) {
	if p.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("budget_plan_id = ?", p.ID).Delete(&BudgetLineItem{})
	return
}
