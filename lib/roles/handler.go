package roleshandler

import (
	"budget-planner-backend/db"
	rolestore "budget-planner-backend/lib/roles/store"
	roleapimodels "budget-planner-backend/models/api/role"
	dbmodels "budget-planner-backend/models/db"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	List(orgID string) ([]roleapimodels.RoleView, error)
	Create(orgID string, data roleapimodels.RoleData) (id string, hMsg string, err error)
	Update(orgID, id string, data roleapimodels.RoleEditData) (hMsg string, err error)
	Delete(orgID, id string) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: rolestore.NewInstance(db.DB),
	}
}

type impl struct {
	store rolestore.Provider
}

func (i impl) getLogger(orgID string) *log.Entry {
	return log.WithField("org_id", orgID)
}

func (i impl) List(orgID string) ([]roleapimodels.RoleView, error) {
	list, err := i.store.List(orgID)
	if err != nil {
		i.getLogger(orgID).WithError(err).Error("ошибка получения списка ролей")
		return nil, err
	}
	result := make([]roleapimodels.RoleView, 0, len(list))
	for _, rec := range list {
		result = append(result, roleapimodels.RoleConvert(rec))
	}
	return result, nil
}

func (i impl) Create(orgID string, data roleapimodels.RoleData) (id string, hMsg string, err error) {
	logger := i.getLogger(orgID).WithField("role_code", data.Code)
	exist, err := i.store.GetByCode(orgID, data.Code)
	if err != nil {
		return "", "", err
	}
	if exist != nil {
		return "", fmt.Sprintf("роль с кодом %v уже существует", data.Code), nil
	}
	rec := dbmodels.Role{
		BaseOrgModel: dbmodels.BaseOrgModel{
			OrgID: orgID,
		},
		Code:                data.Code,
		Name:                data.Name,
		DisplayName:         data.DisplayName,
		Description:         data.Description,
		ApprovalLevel:       data.ApprovalLevel,
		CanCreateBudgetPlan: data.CanCreateBudgetPlan,
		CanViewAllPlans:     data.CanViewAllPlans,
		CanApprove:          data.CanApprove,
		CanEditQAs:          data.CanEditQAs,
		IsProtected:         false,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка создания роли")
		return "", "", errors.Wrap(err, "ошибка создания роли")
	}
	logger.WithField("rec_id", id).Info("создана роль")
	return id, "", nil
}

// Update меняет только отображаемые поля. Код и уровень роли меняются
// через конфигурацию уровней согласования, для системных ролей не меняются
func (i impl) Update(orgID, id string, data roleapimodels.RoleEditData) (hMsg string, err error) {
	logger := i.getLogger(orgID).WithField("rec_id", id)
	rec, err := i.store.GetByID(orgID, id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "роль не найдена", nil
	}
	updMap := map[string]interface{}{
		"Name":        data.Name,
		"DisplayName": data.DisplayName,
		"Description": data.Description,
	}
	err = i.store.Update(orgID, id, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка обновления роли")
		return "", err
	}
	logger.Info("обновлена роль")
	return "", nil
}

func (i impl) Delete(orgID, id string) (hMsg string, err error) {
	logger := i.getLogger(orgID).WithField("rec_id", id)
	rec, err := i.store.GetByID(orgID, id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "роль не найдена", nil
	}
	if rec.IsProtected {
		return "системная роль не может быть удалена", nil
	}
	list, err := i.store.List(orgID)
	if err != nil {
		return "", err
	}
	// удаление последней роли уровня оставит уровень пустым
	levelRoles := 0
	for _, role := range list {
		if role.ApprovalLevel == rec.ApprovalLevel {
			levelRoles++
		}
	}
	if levelRoles <= 1 {
		return fmt.Sprintf("роль единственная на уровне %v, сначала перенесите на уровень другую роль", rec.ApprovalLevel), nil
	}
	err = i.store.Delete(orgID, id)
	if err != nil {
		logger.WithError(err).Error("ошибка удаления роли")
		return "", err
	}
	logger.Info("удалена роль")
	return "", nil
}
