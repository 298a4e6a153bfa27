package budgetplanhandler

import (
	"budget-planner-backend/db"
	approvallevelshandler "budget-planner-backend/lib/approval-levels"
	approvalresolver "budget-planner-backend/lib/approval-resolver"
	audithandler "budget-planner-backend/lib/audit"
	budgetplanstore "budget-planner-backend/lib/budget-plan/store"
	orgusersstore "budget-planner-backend/lib/org/users/store"
	rolestore "budget-planner-backend/lib/roles/store"
	"budget-planner-backend/lib/smtp"
	"budget-planner-backend/models"
	budgetplanapimodels "budget-planner-backend/models/api/budgetplan"
	dbmodels "budget-planner-backend/models/db"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(orgID, userID, roleCode string, data budgetplanapimodels.BudgetPlanData) (id string, hMsg string, err error)
	Update(orgID, id string, data budgetplanapimodels.BudgetPlanData) (hMsg string, err error)
	GetByID(orgID, id string) (budgetplanapimodels.BudgetPlanView, error)
	List(orgID, userID, roleCode string, filter budgetplanapimodels.BpFilter) (list []budgetplanapimodels.BudgetPlanView, rowCount int64, err error)
	Delete(orgID, id string) (hMsg string, err error)
	Submit(orgID, id, userID string) (hMsg string, err error)
	Act(orgID, id, userID, roleCode string, data budgetplanapimodels.ApprovalActionData) (budgetplanapimodels.ActionResultView, error)
	CheckPermission(orgID, id, roleCode string) (budgetplanapimodels.PermissionView, error)
	History(orgID, id string) ([]budgetplanapimodels.ApprovalActionView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         budgetplanstore.NewInstance(db.DB),
		roleStore:     rolestore.NewInstance(db.DB),
		userStore:     orgusersstore.NewInstance(db.DB),
		levelsHandler: approvallevelshandler.Instance,
		auditHandler:  audithandler.Instance,
	}
}

type impl struct {
	store         budgetplanstore.Provider
	roleStore     rolestore.Provider
	userStore     orgusersstore.Provider
	levelsHandler approvallevelshandler.Provider
	auditHandler  audithandler.Provider
}

func (i impl) getLogger(orgID, id string) *log.Entry {
	return log.
		WithField("org_id", orgID).
		WithField("rec_id", id)
}

func (i impl) Create(orgID, userID, roleCode string, data budgetplanapimodels.BudgetPlanData) (id string, hMsg string, err error) {
	logger := log.WithField("org_id", orgID)
	role, err := i.roleStore.GetByCode(orgID, roleCode)
	if err != nil {
		return "", "", err
	}
	if role == nil || !role.CanCreateBudgetPlan {
		return "", "роль не дает права создавать бюджетные планы", nil
	}
	items := lineItemsConvert(data.LineItems)
	for k := range items {
		items[k].OrgID = orgID
	}
	rec := dbmodels.BudgetPlan{
		BaseOrgModel: dbmodels.BaseOrgModel{
			OrgID: orgID,
		},
		AuthorID:     userID,
		ProjectName:  data.ProjectName,
		Description:  data.Description,
		Status:       models.BPStatusDraft,
		BudgetAmount: data.TotalAmount(),
		LineItems:    items,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.
			WithField("request", fmt.Sprintf("%+v", data)).
			WithError(err).
			Error("Ошибка создания бюджетного плана")
		return "", "", err
	}
	logger.
		WithField("rec_id", id).
		Info("Создан бюджетный план")
	return id, "", nil
}

func (i impl) Update(orgID, id string, data budgetplanapimodels.BudgetPlanData) (hMsg string, err error) {
	logger := i.getLogger(orgID, id)
	rec, err := i.getRec(orgID, id)
	if err != nil {
		return "", err
	}
	if !rec.Status.AllowEdit() {
		return fmt.Sprintf("редактирование недоступно в статусе: %v", rec.Status.ToHuman()), nil
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := budgetplanstore.NewInstance(tx)
		if err := store.ReplaceLineItems(orgID, id, lineItemsConvert(data.LineItems)); err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"ProjectName":  data.ProjectName,
			"Description":  data.Description,
			"BudgetAmount": data.TotalAmount(),
		}
		return store.Update(orgID, id, updMap)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка обновления бюджетного плана")
		return "", err
	}
	logger.Info("обновлен бюджетный план")
	return "", nil
}

func (i impl) GetByID(orgID, id string) (budgetplanapimodels.BudgetPlanView, error) {
	rec, err := i.getRec(orgID, id)
	if err != nil {
		return budgetplanapimodels.BudgetPlanView{}, err
	}
	return budgetplanapimodels.BudgetPlanConvert(*rec), nil
}

// List показывает все планы организации только ролям с правом просмотра,
// остальным - собственные планы
func (i impl) List(orgID, userID, roleCode string, filter budgetplanapimodels.BpFilter) (list []budgetplanapimodels.BudgetPlanView, rowCount int64, err error) {
	logger := log.WithField("org_id", orgID)
	role, err := i.roleStore.GetByCode(orgID, roleCode)
	if err != nil {
		return nil, 0, err
	}
	if role == nil || !role.CanViewAllPlans {
		filter.AuthorID = userID
	}
	rowCount, err = i.store.ListCount(orgID, filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []budgetplanapimodels.BudgetPlanView{}, rowCount, nil
	}
	recList, err := i.store.List(orgID, filter)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка бюджетных планов")
		return nil, 0, err
	}
	result := make([]budgetplanapimodels.BudgetPlanView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, budgetplanapimodels.BudgetPlanConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) Delete(orgID, id string) (hMsg string, err error) {
	logger := i.getLogger(orgID, id)
	rec, err := i.getRec(orgID, id)
	if err != nil {
		return "", err
	}
	if rec.Status != models.BPStatusDraft {
		return "удаление доступно только для черновика", nil
	}
	err = i.store.Delete(orgID, id)
	if err != nil {
		logger.WithError(err).Error("ошибка удаления бюджетного плана")
		return "", err
	}
	logger.Info("удален бюджетный план")
	return "", nil
}

// Submit отправляет план на согласование: статус PENDING_APPROVAL, уровень 1.
// Повторная отправка после возврата на доработку идет тем же путем
func (i impl) Submit(orgID, id, userID string) (hMsg string, err error) {
	logger := i.getLogger(orgID, id).WithField("user_id", userID)
	rec, err := i.getRec(orgID, id)
	if err != nil {
		return "", err
	}
	if !rec.Status.AllowSubmit() {
		return fmt.Sprintf("отправка на согласование недоступна в статусе: %v", rec.Status.ToHuman()), nil
	}
	cfg, err := i.levelsHandler.GetConfig(orgID)
	if err != nil {
		return "", err
	}
	if len(cfg.Levels) == 0 {
		return "в организации не настроены уровни согласования", nil
	}
	if !cfg.Validate().IsValid() {
		return "конфигурация уровней согласования содержит пустые уровни", nil
	}
	now := time.Now()
	updMap := map[string]interface{}{
		"Status":               models.BPStatusPending,
		"CurrentApprovalLevel": 1,
		"SubmittedAt":          now,
	}
	err = i.store.UpdateWithVersion(orgID, id, rec.Version, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки плана на согласование")
		return "", err
	}
	logger.Info("план отправлен на согласование")
	go i.notifyLevel(orgID, *rec, cfg, 1)
	return "", nil
}

// Act - одно действие согласования. Проверка права, переход и запись в
// журнал выполняются атомарно относительно записи плана: CAS по версии
// не дает двум параллельным действиям продвинуть план дважды
func (i impl) Act(orgID, id, userID, roleCode string, data budgetplanapimodels.ApprovalActionData) (budgetplanapimodels.ActionResultView, error) {
	logger := i.getLogger(orgID, id).
		WithField("user_id", userID).
		WithField("action", data.Action)
	rec, err := i.getRec(orgID, id)
	if err != nil {
		return budgetplanapimodels.ActionResultView{}, err
	}
	cfg, err := i.levelsHandler.GetConfig(orgID)
	if err != nil {
		return budgetplanapimodels.ActionResultView{}, err
	}
	result, err := ComputeTransition(*rec, cfg, userID, roleCode, data, time.Now())
	if err != nil {
		return budgetplanapimodels.ActionResultView{}, err
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return applyTransition(budgetplanstore.NewInstance(tx), audithandler.NewHandlerWithTx(tx), orgID, id, rec.Version, result)
	})
	if err != nil {
		conflictErr := &models.ConcurrencyConflictError{}
		if errors.As(err, &conflictErr) {
			logger.Warn("конфликт версий при действии согласования")
			return budgetplanapimodels.ActionResultView{}, err
		}
		logger.WithError(err).Error("ошибка выполнения действия согласования")
		return budgetplanapimodels.ActionResultView{}, err
	}
	logger.
		WithField("new_status", result.NewStatus).
		WithField("new_level", result.NewLevel).
		Info("выполнено действие согласования")
	if result.NewStatus == models.BPStatusPending && result.NewLevel > rec.CurrentApprovalLevel {
		go i.notifyLevel(orgID, *rec, cfg, result.NewLevel)
	}
	return budgetplanapimodels.ActionResultView{
		NewStatus: result.NewStatus,
		NewLevel:  result.NewLevel,
	}, nil
}

func (i impl) CheckPermission(orgID, id, roleCode string) (budgetplanapimodels.PermissionView, error) {
	rec, err := i.getRec(orgID, id)
	if err != nil {
		return budgetplanapimodels.PermissionView{}, err
	}
	cfg, err := i.levelsHandler.GetConfig(orgID)
	if err != nil {
		return budgetplanapimodels.PermissionView{}, err
	}
	return budgetplanapimodels.PermissionView{
		HasPermission: approvalresolver.HasPermission(roleCode, cfg, *rec),
	}, nil
}

func (i impl) History(orgID, id string) ([]budgetplanapimodels.ApprovalActionView, error) {
	rec, err := i.getRec(orgID, id)
	if err != nil {
		return nil, err
	}
	return i.auditHandler.History(orgID, rec.ID)
}

// applyTransition применяет переход к записи плана и дополняет журнал
// согласования. CAS по версии и запись журнала проходят только вместе
func applyTransition(store budgetplanstore.Provider, audit audithandler.Provider, orgID, id string, version int, result TransitionResult) error {
	if err := store.UpdateWithVersion(orgID, id, version, result.UpdMap); err != nil {
		return err
	}
	return audit.Append(result.Audit)
}

func (i impl) getRec(orgID, id string) (*dbmodels.BudgetPlan, error) {
	logger := i.getLogger(orgID, id)
	rec, err := i.store.GetByID(orgID, id)
	if err != nil {
		logger.WithError(err).Error("ошибка получения бюджетного плана")
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("бюджетный план не найден")
	}
	return rec, nil
}

// notifyLevel отправляет письма пользователям с согласующими ролями уровня.
// Уведомление необязательное, переход не откатывается при ошибке отправки
func (i impl) notifyLevel(orgID string, plan dbmodels.BudgetPlan, cfg approvallevelshandler.LevelConfig, levelNum int) {
	logger := i.getLogger(orgID, plan.ID).WithField("level", levelNum)
	level := cfg.FindLevel(levelNum)
	if level == nil {
		return
	}
	subject := "План ожидает согласования"
	message := fmt.Sprintf("Бюджетный план \"%v\" ожидает согласования на уровне %v", plan.ProjectName, levelNum)
	for _, role := range level.Roles {
		if !role.CanApprove {
			continue
		}
		users, err := i.userStore.ListByRole(orgID, role.Code)
		if err != nil {
			logger.WithError(err).Error("ошибка получения согласующих для уведомления")
			continue
		}
		for _, user := range users {
			if user.Email == "" {
				continue
			}
			if err := smtp.Instance.SendEMail(user.Email, subject, message); err != nil {
				logger.WithError(err).Error("ошибка отправки уведомления согласующему")
			}
		}
	}
}

func lineItemsConvert(items []budgetplanapimodels.LineItemData) []dbmodels.BudgetLineItem {
	result := make([]dbmodels.BudgetLineItem, 0, len(items))
	for _, item := range items {
		result = append(result, dbmodels.BudgetLineItem{
			Name:    item.Name,
			Amount:  item.Amount,
			Quarter: item.Quarter,
			Comment: item.Comment,
		})
	}
	return result
}
