package approvallevelshandler

import (
	"budget-planner-backend/db"
	rolestore "budget-planner-backend/lib/roles/store"
	"budget-planner-backend/models"
	approvalapimodels "budget-planner-backend/models/api/approval"
	roleapimodels "budget-planner-backend/models/api/role"
	dbmodels "budget-planner-backend/models/db"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Get(orgID string) (view approvalapimodels.ApprovalLevelsView, err error)
	GetConfig(orgID string) (cfg LevelConfig, err error)
	Save(orgID string, data approvalapimodels.ApprovalLevelsData) (hMsg string, err error)
	MoveRole(orgID string, data approvalapimodels.MoveRoleData) (view approvalapimodels.ApprovalLevelsView, hMsg string, err error)
	SeedDefaults(tx *gorm.DB, orgID string, template []models.RoleTemplate) error
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

func (i impl) Get(orgID string) (approvalapimodels.ApprovalLevelsView, error) {
	cfg, err := i.GetConfig(orgID)
	if err != nil {
		return approvalapimodels.ApprovalLevelsView{}, err
	}
	return configConvert(cfg), nil
}

func (i impl) GetConfig(orgID string) (LevelConfig, error) {
	roles, err := i.store.List(orgID)
	if err != nil {
		i.getLogger(orgID).WithError(err).Error("ошибка получения ролей организации")
		return LevelConfig{}, err
	}
	return BuildConfig(roles), nil
}

// Save - атомарная замена конфигурации уровней. Конфигурация с пустыми
// уровнями не сохраняется (models.ValidationError), частичная запись
// недопустима. При параллельном редактировании выигрывает последняя
// зафиксированная конфигурация целиком
func (i impl) Save(orgID string, data approvalapimodels.ApprovalLevelsData) (hMsg string, err error) {
	logger := i.getLogger(orgID)
	roles, err := i.store.List(orgID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения ролей организации")
		return "", err
	}
	current := BuildConfig(roles)

	hMsg, desired := i.buildDesired(current, roles, data)
	if hMsg != "" {
		return hMsg, nil
	}

	validation := desired.Validate()
	if !validation.IsValid() {
		return "", &models.ValidationError{EmptyLevels: validation.EmptyLevels}
	}

	if desired.Equal(current) {
		return "", nil
	}

	currentAssignment := current.RoleCodes()
	desiredAssignment := desired.RoleCodes()
	roleByCode := map[string]dbmodels.Role{}
	for _, role := range roles {
		roleByCode[role.Code] = role
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := rolestore.NewInstance(tx)
		for code, level := range desiredAssignment {
			if currentAssignment[code] == level {
				continue
			}
			role := roleByCode[code]
			updMap := map[string]interface{}{
				"ApprovalLevel": level,
			}
			if err := store.Update(orgID, role.ID, updMap); err != nil {
				return errors.Wrapf(err, "ошибка переноса роли %v на уровень %v", code, level)
			}
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения конфигурации уровней согласования")
		return "", err
	}
	logger.Info("конфигурация уровней согласования сохранена")
	return "", nil
}

// buildDesired собирает целевую конфигурацию из запроса и проверяет ее
// структуру: уровни подряд с первого, каждая роль ровно на одном уровне,
// системные роли на своих уровнях
func (i impl) buildDesired(current LevelConfig, roles []dbmodels.Role, data approvalapimodels.ApprovalLevelsData) (hMsg string, desired LevelConfig) {
	roleByCode := map[string]dbmodels.Role{}
	for _, role := range roles {
		roleByCode[role.Code] = role
	}
	currentAssignment := current.RoleCodes()

	seenLevels := map[int]bool{}
	maxLevel := 0
	assigned := map[string]int{}
	for _, level := range data.Levels {
		if seenLevels[level.Level] {
			return fmt.Sprintf("уровень %v указан более одного раза", level.Level), LevelConfig{}
		}
		seenLevels[level.Level] = true
		if level.Level > maxLevel {
			maxLevel = level.Level
		}
		for _, code := range level.RoleCodes {
			role, ok := roleByCode[code]
			if !ok {
				return fmt.Sprintf("роль %v не найдена в справочнике ролей организации", code), LevelConfig{}
			}
			if _, dup := assigned[code]; dup {
				return fmt.Sprintf("роль %v указана более чем на одном уровне", code), LevelConfig{}
			}
			if role.IsProtected && currentAssignment[code] != level.Level {
				return fmt.Sprintf("системная роль %v закреплена за уровнем %v", code, currentAssignment[code]), LevelConfig{}
			}
			assigned[code] = level.Level
		}
	}
	for levelNum := 1; levelNum <= maxLevel; levelNum++ {
		if !seenLevels[levelNum] {
			return fmt.Sprintf("уровни согласования должны идти подряд, пропущен уровень %v", levelNum), LevelConfig{}
		}
	}
	for _, role := range roles {
		if _, ok := assigned[role.Code]; !ok {
			return fmt.Sprintf("роль %v не указана ни на одном уровне", role.Code), LevelConfig{}
		}
	}

	desiredRoles := make([]dbmodels.Role, 0, len(roles))
	for code, level := range assigned {
		role := roleByCode[code]
		role.ApprovalLevel = level
		desiredRoles = append(desiredRoles, role)
	}
	return "", BuildConfig(desiredRoles)
}

// MoveRole - перенос одной роли между уровнями без полной замены
// конфигурации, для API без формы редактирования
func (i impl) MoveRole(orgID string, data approvalapimodels.MoveRoleData) (approvalapimodels.ApprovalLevelsView, string, error) {
	logger := i.getLogger(orgID).
		WithField("role_code", data.RoleCode).
		WithField("to_level", data.ToLevel)
	cfg, err := i.GetConfig(orgID)
	if err != nil {
		return approvalapimodels.ApprovalLevelsView{}, "", err
	}
	moved, hMsg := cfg.MoveRole(data.RoleCode, data.FromLevel, data.ToLevel)
	if hMsg != "" {
		return approvalapimodels.ApprovalLevelsView{}, hMsg, nil
	}
	if moved.Equal(cfg) {
		return configConvert(cfg), "", nil
	}
	validation := moved.Validate()
	if !validation.IsValid() {
		return approvalapimodels.ApprovalLevelsView{}, "", &models.ValidationError{EmptyLevels: validation.EmptyLevels}
	}
	_, role := moved.FindRole(data.RoleCode)
	err = i.store.Update(orgID, role.ID, map[string]interface{}{
		"ApprovalLevel": data.ToLevel,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка переноса роли на другой уровень")
		return approvalapimodels.ApprovalLevelsView{}, "", err
	}
	logger.Info("роль перенесена на другой уровень")
	return configConvert(moved), "", nil
}

// SeedDefaults заполняет роли организации из шаблона системных ролей.
// Вызывается в транзакции создания организации
func (i impl) SeedDefaults(tx *gorm.DB, orgID string, template []models.RoleTemplate) error {
	store := rolestore.NewInstance(tx)
	for _, item := range template {
		rec := dbmodels.Role{
			BaseOrgModel: dbmodels.BaseOrgModel{
				BaseModel: dbmodels.BaseModel{ID: uuid.NewString()},
				OrgID:     orgID,
			},
			Code:                item.Code,
			Name:                item.Name,
			DisplayName:         item.DisplayName,
			Description:         item.Description,
			ApprovalLevel:       item.ApprovalLevel,
			CanCreateBudgetPlan: item.CanCreateBudgetPlan,
			CanViewAllPlans:     item.CanViewAllPlans,
			CanApprove:          item.CanApprove,
			CanEditQAs:          item.CanEditQAs,
			IsProtected:         true,
		}
		if _, err := store.Create(rec); err != nil {
			return errors.Wrapf(err, "ошибка создания системной роли %v", item.Code)
		}
	}
	return nil
}

func configConvert(cfg LevelConfig) approvalapimodels.ApprovalLevelsView {
	view := approvalapimodels.ApprovalLevelsView{
		Levels: make([]approvalapimodels.ApprovalLevelView, 0, len(cfg.Levels)),
	}
	for _, level := range cfg.Levels {
		levelView := approvalapimodels.ApprovalLevelView{
			Level: level.Level,
			Roles: make([]roleapimodels.RoleView, 0, len(level.Roles)),
		}
		for _, role := range level.Roles {
			levelView.Roles = append(levelView.Roles, roleapimodels.RoleConvert(role))
		}
		view.Levels = append(view.Levels, levelView)
	}
	validation := cfg.Validate()
	if !validation.IsValid() {
		view.EmptyLevels = validation.EmptyLevels
	}
	return view
}
