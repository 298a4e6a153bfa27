package audithandler

import (
	"budget-planner-backend/db"
	auditstore "budget-planner-backend/lib/audit/store"
	budgetplanapimodels "budget-planner-backend/models/api/budgetplan"
	dbmodels "budget-planner-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Append(rec dbmodels.ApprovalAction) error
	History(orgID, planID string) ([]budgetplanapimodels.ApprovalActionView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: auditstore.NewInstance(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store: auditstore.NewInstance(tx),
	}
}

type impl struct {
	store auditstore.Provider
}

func (i impl) Append(rec dbmodels.ApprovalAction) error {
	_, err := i.store.Create(rec)
	if err != nil {
		return errors.Wrap(err, "ошибка добавления записи в журнал согласования")
	}
	return nil
}

func (i impl) History(orgID, planID string) ([]budgetplanapimodels.ApprovalActionView, error) {
	list, err := i.store.List(orgID, planID)
	if err != nil {
		return nil, err
	}
	result := make([]budgetplanapimodels.ApprovalActionView, 0, len(list))
	for _, rec := range list {
		result = append(result, budgetplanapimodels.ApprovalActionConvert(rec))
	}
	return result, nil
}
