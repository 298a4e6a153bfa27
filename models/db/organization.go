package dbmodels

type Organization struct {
	BaseModel
	Name         string `gorm:"type:varchar(255)"`
	FullName     string `gorm:"type:varchar(255)"`
	Inn          string `gorm:"type:varchar(12)"`
	Kpp          string `gorm:"type:varchar(9)"`
	DirectorName string `gorm:"type:varchar(255)"`
	IsActive     bool
	// версия шаблона системных ролей, по которому организация была заполнена
	RoleTemplateVersion int
}

type OrgUser struct {
	BaseOrgModel
	FirstName   string `gorm:"type:varchar(255)"`
	LastName    string `gorm:"type:varchar(255)"`
	Email       string `gorm:"type:varchar(255);index"`
	PhoneNumber string `gorm:"type:varchar(50)"`
	Password    string `gorm:"type:varchar(255)"`
	RoleCode    string `gorm:"type:varchar(100);index"`
	IsAdmin     bool
	IsActive    bool
}

func (u OrgUser) GetFullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
