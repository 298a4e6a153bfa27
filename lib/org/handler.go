package orghandler

import (
	"budget-planner-backend/db"
	approvallevelshandler "budget-planner-backend/lib/approval-levels"
	orgstore "budget-planner-backend/lib/org/store"
	orgusersstore "budget-planner-backend/lib/org/users/store"
	authutils "budget-planner-backend/lib/utils/auth-utils"
	"budget-planner-backend/models"
	orgapimodels "budget-planner-backend/models/api/org"
	dbmodels "budget-planner-backend/models/db"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	CreateOrganization(request orgapimodels.CreateOrganization) (id string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		orgStore:  orgstore.NewInstance(db.DB),
		userStore: orgusersstore.NewInstance(db.DB),
	}
}

type impl struct {
	orgStore  orgstore.Provider
	userStore orgusersstore.Provider
}

// CreateOrganization создает организацию, ее администратора и заполняет
// конфигурацию уровней согласования из шаблона системных ролей.
// Все в одной транзакции: организация без ролей недопустима
func (i impl) CreateOrganization(request orgapimodels.CreateOrganization) (id string, err error) {
	org := dbmodels.Organization{
		Name:                request.OrganizationName,
		FullName:            request.FullName,
		Inn:                 request.Inn,
		Kpp:                 request.Kpp,
		DirectorName:        request.DirectorName,
		IsActive:            true,
		RoleTemplateVersion: models.DefaultRoleTemplateVersion,
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		orgStore := orgstore.NewInstance(tx)
		userStore := orgusersstore.NewInstance(tx)
		id, err = orgStore.Create(org)
		if err != nil {
			return err
		}
		admin := dbmodels.OrgUser{
			BaseOrgModel: dbmodels.BaseOrgModel{
				OrgID: id,
			},
			FirstName:   request.AdminData.FirstName,
			LastName:    request.AdminData.LastName,
			Email:       request.AdminData.Email,
			PhoneNumber: request.AdminData.PhoneNumber,
			Password:    authutils.GetMD5Hash(request.AdminData.Password),
			RoleCode:    "ROLE_ADMIN",
			IsAdmin:     true,
			IsActive:    true,
		}
		if _, err := userStore.Create(admin); err != nil {
			return err
		}
		return approvallevelshandler.Instance.SeedDefaults(tx, id, models.DefaultRoleTemplate())
	})
	if err != nil {
		log.
			WithField("request", fmt.Sprintf("%+v", request)).
			WithError(err).
			Error("Ошибка создания организации")
		return "", err
	}
	log.
		WithField("org_id", id).
		Info("Создана организация")
	return id, nil
}
