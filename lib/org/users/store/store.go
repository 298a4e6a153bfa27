package orgusersstore

import (
	dbmodels "budget-planner-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.OrgUser) (id string, err error)
	GetByID(id string) (rec *dbmodels.OrgUser, err error)
	GetByEmail(email string) (rec *dbmodels.OrgUser, err error)
	ListByRole(orgID, roleCode string) (list []dbmodels.OrgUser, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.OrgUser) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.OrgUser, error) {
	rec := dbmodels.OrgUser{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByEmail(email string) (*dbmodels.OrgUser, error) {
	rec := dbmodels.OrgUser{}
	err := i.db.
		Where("email = ?", email).
		Where("is_active = true").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListByRole(orgID, roleCode string) (list []dbmodels.OrgUser, err error) {
	list = []dbmodels.OrgUser{}
	err = i.db.
		Where("org_id = ?", orgID).
		Where("role_code = ?", roleCode).
		Where("is_active = true").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
