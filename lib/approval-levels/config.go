package approvallevelshandler

import (
	dbmodels "budget-planner-backend/models/db"
	"fmt"
	"sort"
)

// LevelConfig - конфигурация уровней согласования организации как значение.
// Все преобразования (перенос роли, проверка, сравнение) чистые и не
// затрагивают БД; фиксация изменений выполняется обработчиком отдельно
type LevelConfig struct {
	Levels []Level
}

type Level struct {
	Level int
	Roles []dbmodels.Role
}

type ValidationResult struct {
	EmptyLevels []int
}

func (r ValidationResult) IsValid() bool {
	return len(r.EmptyLevels) == 0
}

// BuildConfig собирает конфигурацию из ролей организации. Уровни идут
// подряд от 1 до максимального уровня ролей, пропущенные уровни включаются
// пустыми, роли на уровне упорядочены по коду
func BuildConfig(roles []dbmodels.Role) LevelConfig {
	maxLevel := 0
	for _, role := range roles {
		if role.ApprovalLevel > maxLevel {
			maxLevel = role.ApprovalLevel
		}
	}
	cfg := LevelConfig{
		Levels: make([]Level, 0, maxLevel),
	}
	for levelNum := 1; levelNum <= maxLevel; levelNum++ {
		level := Level{
			Level: levelNum,
			Roles: []dbmodels.Role{},
		}
		for _, role := range roles {
			if role.ApprovalLevel == levelNum {
				level.Roles = append(level.Roles, role)
			}
		}
		sort.Slice(level.Roles, func(i, j int) bool {
			return level.Roles[i].Code < level.Roles[j].Code
		})
		cfg.Levels = append(cfg.Levels, level)
	}
	return cfg
}

func (c LevelConfig) Clone() LevelConfig {
	result := LevelConfig{
		Levels: make([]Level, 0, len(c.Levels)),
	}
	for _, level := range c.Levels {
		roles := make([]dbmodels.Role, len(level.Roles))
		copy(roles, level.Roles)
		result.Levels = append(result.Levels, Level{
			Level: level.Level,
			Roles: roles,
		})
	}
	return result
}

func (c LevelConfig) FindLevel(levelNum int) *Level {
	for k := range c.Levels {
		if c.Levels[k].Level == levelNum {
			return &c.Levels[k]
		}
	}
	return nil
}

// FindRole возвращает уровень, которому принадлежит роль.
// Роль принадлежит ровно одному уровню
func (c LevelConfig) FindRole(roleCode string) (levelNum int, role *dbmodels.Role) {
	for _, level := range c.Levels {
		for k := range level.Roles {
			if level.Roles[k].Code == roleCode {
				return level.Level, &level.Roles[k]
			}
		}
	}
	return 0, nil
}

// MoveRole переносит роль с уровня fromLevel на уровень toLevel.
// Возвращает новую конфигурацию и hMsg с причиной отказа, если перенос
// недопустим. При fromLevel == toLevel конфигурация возвращается без изменений
func (c LevelConfig) MoveRole(roleCode string, fromLevel, toLevel int) (LevelConfig, string) {
	if fromLevel == toLevel {
		return c, ""
	}
	from := c.FindLevel(fromLevel)
	if from == nil {
		return c, fmt.Sprintf("уровень %v отсутствует в конфигурации", fromLevel)
	}
	to := c.FindLevel(toLevel)
	if to == nil {
		return c, fmt.Sprintf("уровень %v отсутствует в конфигурации", toLevel)
	}
	var moved *dbmodels.Role
	for k := range from.Roles {
		if from.Roles[k].Code == roleCode {
			moved = &from.Roles[k]
			break
		}
	}
	if moved == nil {
		return c, fmt.Sprintf("роль %v не найдена на уровне %v", roleCode, fromLevel)
	}
	if moved.IsProtected {
		return c, fmt.Sprintf("системная роль %v закреплена за уровнем %v", roleCode, fromLevel)
	}
	for _, role := range to.Roles {
		if role.Code == roleCode {
			return c, fmt.Sprintf("роль %v уже присутствует на уровне %v", roleCode, toLevel)
		}
	}

	result := c.Clone()
	newFrom := result.FindLevel(fromLevel)
	for k := range newFrom.Roles {
		if newFrom.Roles[k].Code == roleCode {
			newFrom.Roles = append(newFrom.Roles[:k], newFrom.Roles[k+1:]...)
			break
		}
	}
	movedRole := *moved
	movedRole.ApprovalLevel = toLevel
	newTo := result.FindLevel(toLevel)
	newTo.Roles = append(newTo.Roles, movedRole)
	sort.Slice(newTo.Roles, func(i, j int) bool {
		return newTo.Roles[i].Code < newTo.Roles[j].Code
	})
	return result, ""
}

// Validate - конфигурация пригодна к сохранению, только если на каждом
// уровне есть хотя бы одна роль. Пустые уровни допустимы во время
// редактирования, но блокируют фиксацию
func (c LevelConfig) Validate() ValidationResult {
	result := ValidationResult{
		EmptyLevels: []int{},
	}
	for _, level := range c.Levels {
		if len(level.Roles) == 0 {
			result.EmptyLevels = append(result.EmptyLevels, level.Level)
		}
	}
	return result
}

// Equal - структурное сравнение двух конфигураций по уровням и кодам ролей,
// используется для определения наличия несохраненных изменений
func (c LevelConfig) Equal(other LevelConfig) bool {
	if len(c.Levels) != len(other.Levels) {
		return false
	}
	for k, level := range c.Levels {
		otherLevel := other.Levels[k]
		if level.Level != otherLevel.Level {
			return false
		}
		if len(level.Roles) != len(otherLevel.Roles) {
			return false
		}
		for j, role := range level.Roles {
			if role.Code != otherLevel.Roles[j].Code {
				return false
			}
		}
	}
	return true
}

// RoleCodes возвращает назначение код роли -> уровень
func (c LevelConfig) RoleCodes() map[string]int {
	result := map[string]int{}
	for _, level := range c.Levels {
		for _, role := range level.Roles {
			result[role.Code] = level.Level
		}
	}
	return result
}
