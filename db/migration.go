package db

import (
	dbmodels "budget-planner-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Organization{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Organization")
	}
	if err := DB.AutoMigrate(&dbmodels.OrgUser{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры OrgUser")
	}
	if err := DB.AutoMigrate(&dbmodels.Role{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Role")
	}
	if err := DB.AutoMigrate(&dbmodels.BudgetPlan{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры BudgetPlan")
	}
	if err := DB.AutoMigrate(&dbmodels.BudgetLineItem{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры BudgetLineItem")
	}
	if err := DB.AutoMigrate(&dbmodels.ApprovalAction{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ApprovalAction")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
