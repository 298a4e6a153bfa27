package budgetplanhandler

import (
	"testing"

	approvallevelshandler "budget-planner-backend/lib/approval-levels"
	"budget-planner-backend/models"
	approvalapimodels "budget-planner-backend/models/api/approval"
	budgetplanapimodels "budget-planner-backend/models/api/budgetplan"
	dbmodels "budget-planner-backend/models/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePlanStore struct {
	plan       *dbmodels.BudgetPlan
	conflict   bool
	updates    []map[string]interface{}
	lastFilter budgetplanapimodels.BpFilter
}

func (f *fakePlanStore) Create(rec dbmodels.BudgetPlan) (string, error) {
	return "plan-1", nil
}

func (f *fakePlanStore) GetByID(orgID, id string) (*dbmodels.BudgetPlan, error) {
	return f.plan, nil
}

func (f *fakePlanStore) Update(orgID, id string, updMap map[string]interface{}) error {
	return nil
}

func (f *fakePlanStore) UpdateWithVersion(orgID, id string, version int, updMap map[string]interface{}) error {
	if f.conflict {
		return &models.ConcurrencyConflictError{PlanID: id}
	}
	f.updates = append(f.updates, updMap)
	return nil
}

func (f *fakePlanStore) Delete(orgID, id string) error {
	return nil
}

func (f *fakePlanStore) List(orgID string, filter budgetplanapimodels.BpFilter) ([]dbmodels.BudgetPlan, error) {
	f.lastFilter = filter
	return []dbmodels.BudgetPlan{}, nil
}

func (f *fakePlanStore) ListCount(orgID string, filter budgetplanapimodels.BpFilter) (int64, error) {
	f.lastFilter = filter
	return 0, nil
}

func (f *fakePlanStore) ReplaceLineItems(orgID, planID string, items []dbmodels.BudgetLineItem) error {
	return nil
}

type fakeAudit struct {
	appended []dbmodels.ApprovalAction
}

func (f *fakeAudit) Append(rec dbmodels.ApprovalAction) error {
	f.appended = append(f.appended, rec)
	return nil
}

func (f *fakeAudit) History(orgID, planID string) ([]budgetplanapimodels.ApprovalActionView, error) {
	return nil, nil
}

type fakeLevels struct {
	cfg approvallevelshandler.LevelConfig
}

func (f *fakeLevels) Get(orgID string) (approvalapimodels.ApprovalLevelsView, error) {
	return approvalapimodels.ApprovalLevelsView{}, nil
}

func (f *fakeLevels) GetConfig(orgID string) (approvallevelshandler.LevelConfig, error) {
	return f.cfg, nil
}

func (f *fakeLevels) Save(orgID string, data approvalapimodels.ApprovalLevelsData) (string, error) {
	return "", nil
}

func (f *fakeLevels) MoveRole(orgID string, data approvalapimodels.MoveRoleData) (approvalapimodels.ApprovalLevelsView, string, error) {
	return approvalapimodels.ApprovalLevelsView{}, "", nil
}

func (f *fakeLevels) SeedDefaults(tx *gorm.DB, orgID string, template []models.RoleTemplate) error {
	return nil
}

type fakeRoleStore struct {
	roles []dbmodels.Role
}

func (f *fakeRoleStore) Create(rec dbmodels.Role) (string, error) {
	return rec.ID, nil
}

func (f *fakeRoleStore) GetByID(orgID, id string) (*dbmodels.Role, error) {
	return nil, nil
}

func (f *fakeRoleStore) GetByCode(orgID, code string) (*dbmodels.Role, error) {
	for k := range f.roles {
		if f.roles[k].Code == code {
			return &f.roles[k], nil
		}
	}
	return nil, nil
}

func (f *fakeRoleStore) Update(orgID, id string, updMap map[string]interface{}) error {
	return nil
}

func (f *fakeRoleStore) Delete(orgID, id string) error {
	return nil
}

func (f *fakeRoleStore) List(orgID string) ([]dbmodels.Role, error) {
	return f.roles, nil
}

type fakeUserStore struct{}

func (f *fakeUserStore) Create(rec dbmodels.OrgUser) (string, error) {
	return rec.ID, nil
}

func (f *fakeUserStore) GetByID(id string) (*dbmodels.OrgUser, error) {
	return nil, nil
}

func (f *fakeUserStore) GetByEmail(email string) (*dbmodels.OrgUser, error) {
	return nil, nil
}

func (f *fakeUserStore) ListByRole(orgID, roleCode string) ([]dbmodels.OrgUser, error) {
	return []dbmodels.OrgUser{}, nil
}

func testHandler(store *fakePlanStore, roleStore *fakeRoleStore, levels *fakeLevels, audit *fakeAudit) impl {
	return impl{
		store:         store,
		roleStore:     roleStore,
		userStore:     &fakeUserStore{},
		levelsHandler: levels,
		auditHandler:  audit,
	}
}

func draftPlan(version int) *dbmodels.BudgetPlan {
	return &dbmodels.BudgetPlan{
		BaseOrgModel: dbmodels.BaseOrgModel{
			BaseModel: dbmodels.BaseModel{ID: "plan-1"},
			OrgID:     "org-1",
		},
		Status:  models.BPStatusDraft,
		Version: version,
	}
}

func TestSubmit(t *testing.T) {
	levels := &fakeLevels{
		cfg: approvallevelshandler.BuildConfig([]dbmodels.Role{
			{Code: "ROLE_MANAGER", ApprovalLevel: 1, CanApprove: true},
		}),
	}

	t.Run(`параллельное изменение дает конфликт версий`, func(t *testing.T) {
		store := &fakePlanStore{plan: draftPlan(3), conflict: true}
		handler := testHandler(store, &fakeRoleStore{}, levels, &fakeAudit{})
		hMsg, err := handler.Submit("org-1", "plan-1", "user-1")
		require.Empty(t, hMsg)
		var conflictErr *models.ConcurrencyConflictError
		require.ErrorAs(t, err, &conflictErr)
		require.Equal(t, "plan-1", conflictErr.PlanID)
		require.Empty(t, store.updates)
	})

	t.Run(`без уровней согласования отправка недоступна`, func(t *testing.T) {
		store := &fakePlanStore{plan: draftPlan(1)}
		handler := testHandler(store, &fakeRoleStore{}, &fakeLevels{}, &fakeAudit{})
		hMsg, err := handler.Submit("org-1", "plan-1", "user-1")
		require.Nil(t, err)
		require.NotEmpty(t, hMsg)
		require.Empty(t, store.updates)
	})
}

func TestApplyTransition(t *testing.T) {
	result := TransitionResult{
		NewStatus: models.BPStatusPending,
		NewLevel:  2,
		UpdMap: map[string]interface{}{
			"Status":               models.BPStatusPending,
			"CurrentApprovalLevel": 2,
		},
		Audit: dbmodels.ApprovalAction{
			BudgetPlanID: "plan-1",
			Action:       models.AActionApprove,
			LevelActedAt: 1,
		},
	}

	t.Run(`переход и запись журнала проходят вместе`, func(t *testing.T) {
		store := &fakePlanStore{}
		audit := &fakeAudit{}
		err := applyTransition(store, audit, "org-1", "plan-1", 3, result)
		require.Nil(t, err)
		require.Len(t, store.updates, 1)
		require.Len(t, audit.appended, 1)
		require.Equal(t, models.AActionApprove, audit.appended[0].Action)
	})

	t.Run(`конфликт версий не дополняет журнал`, func(t *testing.T) {
		store := &fakePlanStore{conflict: true}
		audit := &fakeAudit{}
		err := applyTransition(store, audit, "org-1", "plan-1", 3, result)
		var conflictErr *models.ConcurrencyConflictError
		require.ErrorAs(t, err, &conflictErr)
		require.Empty(t, audit.appended)
	})
}

func TestListScope(t *testing.T) {
	t.Run(`роль без права просмотра видит только свои планы`, func(t *testing.T) {
		store := &fakePlanStore{}
		roleStore := &fakeRoleStore{
			roles: []dbmodels.Role{
				{Code: "ROLE_SPECIALIST", CanViewAllPlans: false},
			},
		}
		handler := testHandler(store, roleStore, &fakeLevels{}, &fakeAudit{})
		_, _, err := handler.List("org-1", "user-1", "ROLE_SPECIALIST", budgetplanapimodels.BpFilter{})
		require.Nil(t, err)
		require.Equal(t, "user-1", store.lastFilter.AuthorID)
	})

	t.Run(`фильтр по чужому автору сводится к своим планам`, func(t *testing.T) {
		store := &fakePlanStore{}
		roleStore := &fakeRoleStore{
			roles: []dbmodels.Role{
				{Code: "ROLE_SPECIALIST", CanViewAllPlans: false},
			},
		}
		handler := testHandler(store, roleStore, &fakeLevels{}, &fakeAudit{})
		_, _, err := handler.List("org-1", "user-1", "ROLE_SPECIALIST", budgetplanapimodels.BpFilter{AuthorID: "user-2"})
		require.Nil(t, err)
		require.Equal(t, "user-1", store.lastFilter.AuthorID)
	})

	t.Run(`роль с правом просмотра видит планы организации`, func(t *testing.T) {
		store := &fakePlanStore{}
		roleStore := &fakeRoleStore{
			roles: []dbmodels.Role{
				{Code: "ROLE_DIRECTOR", CanViewAllPlans: true},
			},
		}
		handler := testHandler(store, roleStore, &fakeLevels{}, &fakeAudit{})
		_, _, err := handler.List("org-1", "user-1", "ROLE_DIRECTOR", budgetplanapimodels.BpFilter{})
		require.Nil(t, err)
		require.Empty(t, store.lastFilter.AuthorID)
	})
}
