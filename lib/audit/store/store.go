package auditstore

import (
	dbmodels "budget-planner-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Журнал согласования только пополняется: обновление и удаление записей
// не предусмотрено намеренно
type Provider interface {
	Create(rec dbmodels.ApprovalAction) (id string, err error)
	List(orgID, planID string) (list []dbmodels.ApprovalAction, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApprovalAction) (id string, err error) {
	err = i.db.
		Omit("Actor").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(orgID, planID string) (list []dbmodels.ApprovalAction, err error) {
	list = []dbmodels.ApprovalAction{}
	err = i.db.
		Where("org_id = ?", orgID).
		Where("budget_plan_id = ?", planID).
		Order("created_at ASC").
		Preload("Actor").
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
