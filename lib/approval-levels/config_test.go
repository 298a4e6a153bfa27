package approvallevelshandler

import (
	"testing"

	dbmodels "budget-planner-backend/models/db"

	"github.com/stretchr/testify/require"
)

func testRole(code string, level int, protected bool) dbmodels.Role {
	return dbmodels.Role{
		Code:          code,
		Name:          code,
		ApprovalLevel: level,
		CanApprove:    true,
		IsProtected:   protected,
	}
}

func TestBuildConfig(t *testing.T) {
	t.Run(`уровни идут подряд, роли отсортированы по коду`, func(t *testing.T) {
		roles := []dbmodels.Role{
			testRole("ROLE_DIRECTOR", 2, true),
			testRole("ROLE_MANAGER", 1, true),
			testRole("ROLE_ADMIN", 1, true),
		}
		cfg := BuildConfig(roles)
		require.Len(t, cfg.Levels, 2)
		require.Equal(t, 1, cfg.Levels[0].Level)
		require.Equal(t, 2, cfg.Levels[1].Level)
		require.Len(t, cfg.Levels[0].Roles, 2)
		require.Equal(t, "ROLE_ADMIN", cfg.Levels[0].Roles[0].Code)
		require.Equal(t, "ROLE_MANAGER", cfg.Levels[0].Roles[1].Code)
		require.Equal(t, "ROLE_DIRECTOR", cfg.Levels[1].Roles[0].Code)
	})

	t.Run(`пропущенный уровень включается пустым`, func(t *testing.T) {
		roles := []dbmodels.Role{
			testRole("ROLE_ADMIN", 1, true),
			testRole("ROLE_DIRECTOR", 3, false),
		}
		cfg := BuildConfig(roles)
		require.Len(t, cfg.Levels, 3)
		require.Empty(t, cfg.Levels[1].Roles)
		validation := cfg.Validate()
		require.False(t, validation.IsValid())
		require.Equal(t, []int{2}, validation.EmptyLevels)
	})

	t.Run(`без ролей конфигурация пустая`, func(t *testing.T) {
		cfg := BuildConfig(nil)
		require.Empty(t, cfg.Levels)
		require.True(t, cfg.Validate().IsValid())
	})
}

func TestMoveRole(t *testing.T) {
	baseConfig := func() LevelConfig {
		return BuildConfig([]dbmodels.Role{
			testRole("ROLE_ADMIN", 1, true),
			testRole("ROLE_MANAGER", 1, false),
			testRole("ROLE_DIRECTOR", 2, false),
		})
	}

	t.Run(`перенос на тот же уровень не меняет конфигурацию`, func(t *testing.T) {
		cfg := baseConfig()
		moved, hMsg := cfg.MoveRole("ROLE_MANAGER", 1, 1)
		require.Empty(t, hMsg)
		require.True(t, moved.Equal(cfg))
	})

	t.Run(`роль переносится и присутствует ровно на одном уровне`, func(t *testing.T) {
		cfg := baseConfig()
		moved, hMsg := cfg.MoveRole("ROLE_MANAGER", 1, 2)
		require.Empty(t, hMsg)

		assignment := moved.RoleCodes()
		require.Equal(t, 2, assignment["ROLE_MANAGER"])
		require.Len(t, moved.FindLevel(1).Roles, 1)
		require.Len(t, moved.FindLevel(2).Roles, 2)

		levelNum, role := moved.FindRole("ROLE_MANAGER")
		require.Equal(t, 2, levelNum)
		require.Equal(t, 2, role.ApprovalLevel)

		// исходная конфигурация не затронута
		require.Equal(t, 1, cfg.RoleCodes()["ROLE_MANAGER"])
		require.Len(t, cfg.FindLevel(1).Roles, 2)
	})

	t.Run(`повторный перенос возвращает отказ без дублирования`, func(t *testing.T) {
		cfg := baseConfig()
		moved, hMsg := cfg.MoveRole("ROLE_MANAGER", 1, 2)
		require.Empty(t, hMsg)
		again, hMsg := moved.MoveRole("ROLE_MANAGER", 1, 2)
		require.NotEmpty(t, hMsg)
		require.True(t, again.Equal(moved))
		require.Len(t, moved.FindLevel(2).Roles, 2)
	})

	t.Run(`неизвестные уровни отклоняются`, func(t *testing.T) {
		cfg := baseConfig()
		_, hMsg := cfg.MoveRole("ROLE_MANAGER", 5, 2)
		require.NotEmpty(t, hMsg)
		_, hMsg = cfg.MoveRole("ROLE_MANAGER", 1, 5)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`роль отсутствует на исходном уровне`, func(t *testing.T) {
		cfg := baseConfig()
		_, hMsg := cfg.MoveRole("ROLE_DIRECTOR", 1, 2)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`системная роль закреплена за своим уровнем`, func(t *testing.T) {
		cfg := baseConfig()
		moved, hMsg := cfg.MoveRole("ROLE_ADMIN", 1, 2)
		require.NotEmpty(t, hMsg)
		require.True(t, moved.Equal(cfg))
	})
}

func TestConfigEqual(t *testing.T) {
	first := BuildConfig([]dbmodels.Role{
		testRole("ROLE_ADMIN", 1, true),
		testRole("ROLE_DIRECTOR", 2, false),
	})
	second := BuildConfig([]dbmodels.Role{
		testRole("ROLE_DIRECTOR", 2, false),
		testRole("ROLE_ADMIN", 1, true),
	})
	require.True(t, first.Equal(second))

	third := BuildConfig([]dbmodels.Role{
		testRole("ROLE_ADMIN", 1, true),
		testRole("ROLE_DIRECTOR", 1, false),
	})
	require.False(t, first.Equal(third))
}
