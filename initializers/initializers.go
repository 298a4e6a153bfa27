package initializers

import (
	"budget-planner-backend/config"
	"budget-planner-backend/fiberlog"
	approvallevelshandler "budget-planner-backend/lib/approval-levels"
	audithandler "budget-planner-backend/lib/audit"
	authhandler "budget-planner-backend/lib/auth"
	budgetplanhandler "budget-planner-backend/lib/budget-plan"
	orghandler "budget-planner-backend/lib/org"
	roleshandler "budget-planner-backend/lib/roles"
	"context"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	authhandler.NewHandler()
	approvallevelshandler.NewHandler()
	roleshandler.NewHandler()
	orghandler.NewHandler()
	audithandler.NewHandler()
	budgetplanhandler.NewHandler()
}
