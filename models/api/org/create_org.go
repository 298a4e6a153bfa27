package orgapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

type CreateOrganization struct {
	OrganizationName string    `json:"organization_name"`
	FullName         string    `json:"full_name"`
	Inn              string    `json:"inn"`
	Kpp              string    `json:"kpp"`
	DirectorName     string    `json:"director_name"`
	AdminData        AdminData `json:"admin_data"`
}

type AdminData struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

func (r CreateOrganization) Validate() error {
	if strings.TrimSpace(r.OrganizationName) == "" {
		return errors.New("не указано наименование организации")
	}
	if strings.TrimSpace(r.AdminData.Email) == "" {
		return errors.New("не указана почта администратора")
	}
	if r.AdminData.Password == "" {
		return errors.New("не указан пароль администратора")
	}
	return nil
}
