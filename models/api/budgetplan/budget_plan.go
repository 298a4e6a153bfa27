package budgetplanapimodels

import (
	"budget-planner-backend/models"
	apimodels "budget-planner-backend/models/api"
	dbmodels "budget-planner-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type BudgetPlanData struct {
	ProjectName string         `json:"project_name"`
	Description string         `json:"description"`
	LineItems   []LineItemData `json:"line_items"`
}

type LineItemData struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Quarter int     `json:"quarter"`
	Comment string  `json:"comment"`
}

func (v BudgetPlanData) Validate() error {
	if strings.TrimSpace(v.ProjectName) == "" {
		return errors.New("не указано наименование проекта")
	}
	for _, item := range v.LineItems {
		if strings.TrimSpace(item.Name) == "" {
			return errors.New("не указано наименование строки бюджета")
		}
		if item.Amount < 0 {
			return errors.New("сумма строки бюджета не может быть отрицательной")
		}
	}
	return nil
}

// сумма плана производная, считается по строкам бюджета
func (v BudgetPlanData) TotalAmount() float64 {
	total := 0.0
	for _, item := range v.LineItems {
		total += item.Amount
	}
	return total
}

type BpFilter struct {
	apimodels.Pagination
	Statuses []models.BPStatus `json:"statuses"`
	AuthorID string            `json:"author_id"`
}

type LineItemView struct {
	LineItemData
	ID string `json:"id"`
}

type BudgetPlanView struct {
	ID                   string          `json:"id"`
	OrgID                string          `json:"org_id"`
	AuthorID             string          `json:"author_id"`
	AuthorName           string          `json:"author_name"`
	ProjectName          string          `json:"project_name"`
	Description          string          `json:"description"`
	Status               models.BPStatus `json:"status"`
	StatusName           string          `json:"status_name"`
	CurrentApprovalLevel int             `json:"current_approval_level"`
	BudgetAmount         float64         `json:"budget_amount"`
	Version              int             `json:"version"`
	SubmittedAt          *time.Time      `json:"submitted_at"`
	ApprovedAt           *time.Time      `json:"approved_at"`
	RejectedAt           *time.Time      `json:"rejected_at"`
	ClosedAt             *time.Time      `json:"closed_at"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	LineItems            []LineItemView  `json:"line_items"`
}

func BudgetPlanConvert(rec dbmodels.BudgetPlan) BudgetPlanView {
	authorName := ""
	if rec.Author != nil {
		authorName = rec.Author.GetFullName()
	}
	items := make([]LineItemView, 0, len(rec.LineItems))
	for _, item := range rec.LineItems {
		items = append(items, LineItemView{
			LineItemData: LineItemData{
				Name:    item.Name,
				Amount:  item.Amount,
				Quarter: item.Quarter,
				Comment: item.Comment,
			},
			ID: item.ID,
		})
	}
	return BudgetPlanView{
		ID:                   rec.ID,
		OrgID:                rec.OrgID,
		AuthorID:             rec.AuthorID,
		AuthorName:           authorName,
		ProjectName:          rec.ProjectName,
		Description:          rec.Description,
		Status:               rec.Status,
		StatusName:           rec.Status.ToHuman(),
		CurrentApprovalLevel: rec.CurrentApprovalLevel,
		BudgetAmount:         rec.BudgetAmount,
		Version:              rec.Version,
		SubmittedAt:          rec.SubmittedAt,
		ApprovedAt:           rec.ApprovedAt,
		RejectedAt:           rec.RejectedAt,
		ClosedAt:             rec.ClosedAt,
		CreatedAt:            rec.CreatedAt,
		UpdatedAt:            rec.UpdatedAt,
		LineItems:            items,
	}
}
