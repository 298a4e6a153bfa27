package budgetplanstore

import (
	"budget-planner-backend/models"
	budgetplanapimodels "budget-planner-backend/models/api/budgetplan"
	dbmodels "budget-planner-backend/models/db"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.BudgetPlan) (id string, err error)
	GetByID(orgID, id string) (rec *dbmodels.BudgetPlan, err error)
	Update(orgID, id string, updMap map[string]interface{}) error
	// UpdateWithVersion применяет изменения только если версия записи не
	// изменилась с момента чтения, иначе models.ConcurrencyConflictError
	UpdateWithVersion(orgID, id string, version int, updMap map[string]interface{}) error
	Delete(orgID, id string) error
	List(orgID string, filter budgetplanapimodels.BpFilter) (list []dbmodels.BudgetPlan, err error)
	ListCount(orgID string, filter budgetplanapimodels.BpFilter) (count int64, err error)
	ReplaceLineItems(orgID, planID string, items []dbmodels.BudgetLineItem) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.BudgetPlan) (id string, err error) {
	err = i.db.
		Omit("Author").
		Omit("Actions").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(orgID, id string) (*dbmodels.BudgetPlan, error) {
	rec := dbmodels.BudgetPlan{}
	err := i.db.
		Where("id = ?", id).
		Where("org_id = ?", orgID).
		Preload("Author").
		Preload("LineItems").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(orgID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.BudgetPlan{}).
		Where("id = ?", id).
		Where("org_id = ?", orgID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) UpdateWithVersion(orgID, id string, version int, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	updMap["Version"] = gorm.Expr("version + 1")
	tx := i.db.
		Model(&dbmodels.BudgetPlan{}).
		Where("id = ?", id).
		Where("org_id = ?", orgID).
		Where("version = ?", version).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return &models.ConcurrencyConflictError{PlanID: id}
	}
	return nil
}

func (i impl) Delete(orgID, id string) error {
	rec := dbmodels.BudgetPlan{
		BaseOrgModel: dbmodels.BaseOrgModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			OrgID:     orgID,
		},
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) listQuery(orgID string, filter budgetplanapimodels.BpFilter) *gorm.DB {
	tx := i.db.
		Model(&dbmodels.BudgetPlan{}).
		Where("org_id = ?", orgID)
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, string(status))
		}
		tx = tx.Where("status = ANY(?)", pq.Array(statuses))
	}
	if filter.AuthorID != "" {
		tx = tx.Where("author_id = ?", filter.AuthorID)
	}
	return tx
}

func (i impl) List(orgID string, filter budgetplanapimodels.BpFilter) (list []dbmodels.BudgetPlan, err error) {
	list = []dbmodels.BudgetPlan{}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	err = i.listQuery(orgID, filter).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Preload("Author").
		Preload("LineItems").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(orgID string, filter budgetplanapimodels.BpFilter) (count int64, err error) {
	err = i.listQuery(orgID, filter).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ReplaceLineItems(orgID, planID string, items []dbmodels.BudgetLineItem) error {
	err := i.db.
		Where("org_id = ?", orgID).
		Where("budget_plan_id = ?", planID).
		Delete(&dbmodels.BudgetLineItem{}).
		Error
	if err != nil {
		return err
	}
	for k := range items {
		items[k].OrgID = orgID
		items[k].BudgetPlanID = planID
	}
	if len(items) == 0 {
		return nil
	}
	return i.db.Create(&items).Error
}
