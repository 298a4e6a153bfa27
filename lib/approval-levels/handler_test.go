package approvallevelshandler

import (
	"testing"

	"budget-planner-backend/models"
	approvalapimodels "budget-planner-backend/models/api/approval"
	dbmodels "budget-planner-backend/models/db"

	"github.com/stretchr/testify/require"
)

type fakeRoleStore struct {
	roles   []dbmodels.Role
	updates int
}

func (f *fakeRoleStore) Create(rec dbmodels.Role) (string, error) {
	f.roles = append(f.roles, rec)
	return rec.ID, nil
}

func (f *fakeRoleStore) GetByID(orgID, id string) (*dbmodels.Role, error) {
	for k := range f.roles {
		if f.roles[k].ID == id {
			return &f.roles[k], nil
		}
	}
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
	f.updates++
	return nil
}

func (f *fakeRoleStore) Delete(orgID, id string) error {
	return nil
}

func (f *fakeRoleStore) List(orgID string) ([]dbmodels.Role, error) {
	return f.roles, nil
}

func TestBuildDesired(t *testing.T) {
	roles := []dbmodels.Role{
		testRole("ROLE_ADMIN", 1, true),
		testRole("ROLE_MANAGER", 1, false),
		testRole("ROLE_DIRECTOR", 2, false),
	}
	current := BuildConfig(roles)
	handler := impl{}

	t.Run(`корректная конфигурация принимается целиком`, func(t *testing.T) {
		data := approvalapimodels.ApprovalLevelsData{
			Levels: []approvalapimodels.ApprovalLevelData{
				{Level: 1, RoleCodes: []string{"ROLE_ADMIN"}},
				{Level: 2, RoleCodes: []string{"ROLE_DIRECTOR", "ROLE_MANAGER"}},
			},
		}
		hMsg, desired := handler.buildDesired(current, roles, data)
		require.Empty(t, hMsg)
		require.Len(t, desired.Levels, 2)
		require.Equal(t, 2, desired.RoleCodes()["ROLE_MANAGER"])
		require.True(t, desired.Validate().IsValid())
	})

	t.Run(`уровень указан дважды`, func(t *testing.T) {
		data := approvalapimodels.ApprovalLevelsData{
			Levels: []approvalapimodels.ApprovalLevelData{
				{Level: 1, RoleCodes: []string{"ROLE_ADMIN", "ROLE_MANAGER"}},
				{Level: 1, RoleCodes: []string{"ROLE_DIRECTOR"}},
			},
		}
		hMsg, _ := handler.buildDesired(current, roles, data)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`неизвестная роль`, func(t *testing.T) {
		data := approvalapimodels.ApprovalLevelsData{
			Levels: []approvalapimodels.ApprovalLevelData{
				{Level: 1, RoleCodes: []string{"ROLE_ADMIN", "ROLE_MANAGER", "ROLE_UNKNOWN"}},
				{Level: 2, RoleCodes: []string{"ROLE_DIRECTOR"}},
			},
		}
		hMsg, _ := handler.buildDesired(current, roles, data)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`роль на двух уровнях`, func(t *testing.T) {
		data := approvalapimodels.ApprovalLevelsData{
			Levels: []approvalapimodels.ApprovalLevelData{
				{Level: 1, RoleCodes: []string{"ROLE_ADMIN", "ROLE_MANAGER"}},
				{Level: 2, RoleCodes: []string{"ROLE_DIRECTOR", "ROLE_MANAGER"}},
			},
		}
		hMsg, _ := handler.buildDesired(current, roles, data)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`системная роль на чужом уровне`, func(t *testing.T) {
		data := approvalapimodels.ApprovalLevelsData{
			Levels: []approvalapimodels.ApprovalLevelData{
				{Level: 1, RoleCodes: []string{"ROLE_MANAGER"}},
				{Level: 2, RoleCodes: []string{"ROLE_DIRECTOR", "ROLE_ADMIN"}},
			},
		}
		hMsg, _ := handler.buildDesired(current, roles, data)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`пропущенный уровень`, func(t *testing.T) {
		data := approvalapimodels.ApprovalLevelsData{
			Levels: []approvalapimodels.ApprovalLevelData{
				{Level: 1, RoleCodes: []string{"ROLE_ADMIN", "ROLE_MANAGER"}},
				{Level: 3, RoleCodes: []string{"ROLE_DIRECTOR"}},
			},
		}
		hMsg, _ := handler.buildDesired(current, roles, data)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`объявленный пустой уровень блокирует фиксацию`, func(t *testing.T) {
		data := approvalapimodels.ApprovalLevelsData{
			Levels: []approvalapimodels.ApprovalLevelData{
				{Level: 1, RoleCodes: []string{"ROLE_ADMIN", "ROLE_MANAGER"}},
				{Level: 2, RoleCodes: []string{}},
				{Level: 3, RoleCodes: []string{"ROLE_DIRECTOR"}},
			},
		}
		hMsg, desired := handler.buildDesired(current, roles, data)
		require.Empty(t, hMsg)
		validation := desired.Validate()
		require.False(t, validation.IsValid())
		require.Equal(t, []int{2}, validation.EmptyLevels)
	})

	t.Run(`роль не указана ни на одном уровне`, func(t *testing.T) {
		data := approvalapimodels.ApprovalLevelsData{
			Levels: []approvalapimodels.ApprovalLevelData{
				{Level: 1, RoleCodes: []string{"ROLE_ADMIN", "ROLE_MANAGER"}},
				{Level: 2, RoleCodes: []string{}},
			},
		}
		hMsg, _ := handler.buildDesired(current, roles, data)
		require.NotEmpty(t, hMsg)
	})
}

func TestMoveRoleHandler(t *testing.T) {
	t.Run(`перенос, опустошающий уровень, не фиксируется`, func(t *testing.T) {
		store := &fakeRoleStore{
			roles: []dbmodels.Role{
				testRole("ROLE_MANAGER", 1, false),
				testRole("ROLE_DIRECTOR", 2, false),
			},
		}
		handler := impl{store: store}
		_, hMsg, err := handler.MoveRole("org-1", approvalapimodels.MoveRoleData{
			RoleCode:  "ROLE_MANAGER",
			FromLevel: 1,
			ToLevel:   2,
		})
		require.Empty(t, hMsg)
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, []int{1}, validationErr.EmptyLevels)
		require.Equal(t, 0, store.updates)
	})

	t.Run(`перенос с непустым остатком уровня фиксируется`, func(t *testing.T) {
		store := &fakeRoleStore{
			roles: []dbmodels.Role{
				testRole("ROLE_ADMIN", 1, true),
				testRole("ROLE_MANAGER", 1, false),
				testRole("ROLE_DIRECTOR", 2, false),
			},
		}
		handler := impl{store: store}
		view, hMsg, err := handler.MoveRole("org-1", approvalapimodels.MoveRoleData{
			RoleCode:  "ROLE_MANAGER",
			FromLevel: 1,
			ToLevel:   2,
		})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, 1, store.updates)
		require.Empty(t, view.EmptyLevels)
		require.Len(t, view.Levels[1].Roles, 2)
	})
}

func TestSave(t *testing.T) {
	t.Run(`конфигурация с пустым уровнем не фиксируется`, func(t *testing.T) {
		store := &fakeRoleStore{
			roles: []dbmodels.Role{
				testRole("ROLE_ADMIN", 1, true),
				testRole("ROLE_MANAGER", 1, false),
				testRole("ROLE_DIRECTOR", 2, false),
			},
		}
		handler := impl{store: store}
		data := approvalapimodels.ApprovalLevelsData{
			Levels: []approvalapimodels.ApprovalLevelData{
				{Level: 1, RoleCodes: []string{"ROLE_ADMIN", "ROLE_MANAGER"}},
				{Level: 2, RoleCodes: []string{}},
				{Level: 3, RoleCodes: []string{"ROLE_DIRECTOR"}},
			},
		}
		hMsg, err := handler.Save("org-1", data)
		require.Empty(t, hMsg)
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, []int{2}, validationErr.EmptyLevels)
		require.Equal(t, 0, store.updates)
	})

	t.Run(`конфигурация без изменений не пишется`, func(t *testing.T) {
		store := &fakeRoleStore{
			roles: []dbmodels.Role{
				testRole("ROLE_ADMIN", 1, true),
				testRole("ROLE_DIRECTOR", 2, false),
			},
		}
		handler := impl{store: store}
		data := approvalapimodels.ApprovalLevelsData{
			Levels: []approvalapimodels.ApprovalLevelData{
				{Level: 1, RoleCodes: []string{"ROLE_ADMIN"}},
				{Level: 2, RoleCodes: []string{"ROLE_DIRECTOR"}},
			},
		}
		hMsg, err := handler.Save("org-1", data)
		require.Empty(t, hMsg)
		require.Nil(t, err)
		require.Equal(t, 0, store.updates)
	})
}
