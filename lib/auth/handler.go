package authhandler

import (
	"budget-planner-backend/db"
	orgusersstore "budget-planner-backend/lib/org/users/store"
	authutils "budget-planner-backend/lib/utils/auth-utils"
	authapimodels "budget-planner-backend/models/api/auth"
	dbmodels "budget-planner-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Login(email, password string) (authapimodels.JWTResponse, error)
	RefreshToken(refreshToken string) (authapimodels.JWTResponse, error)
	GetUser(userID string) (authapimodels.UserView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		userStore: orgusersstore.NewInstance(db.DB),
	}
}

type impl struct {
	userStore orgusersstore.Provider
}

func (i impl) Login(email, password string) (authapimodels.JWTResponse, error) {
	logger := log.WithField("email", email)
	user, err := i.userStore.GetByEmail(email)
	if err != nil {
		logger.WithError(err).Error("ошибка получения пользователя")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || user.Password != authutils.GetMD5Hash(password) {
		return authapimodels.JWTResponse{}, errors.New("неверный логин или пароль")
	}
	return i.issueTokens(*user)
}

func (i impl) RefreshToken(refreshToken string) (authapimodels.JWTResponse, error) {
	userID, err := authutils.ParseRefreshToken(refreshToken)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	user, err := i.userStore.GetByID(userID)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || !user.IsActive {
		return authapimodels.JWTResponse{}, errors.New("пользователь не найден")
	}
	return i.issueTokens(*user)
}

func (i impl) GetUser(userID string) (authapimodels.UserView, error) {
	user, err := i.userStore.GetByID(userID)
	if err != nil {
		return authapimodels.UserView{}, err
	}
	if user == nil {
		return authapimodels.UserView{}, errors.New("пользователь не найден")
	}
	return authapimodels.UserView{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		RoleCode:    user.RoleCode,
		IsAdmin:     user.IsAdmin,
	}, nil
}

func (i impl) issueTokens(user dbmodels.OrgUser) (authapimodels.JWTResponse, error) {
	token, err := authutils.GetToken(user.ID, user.GetFullName(), user.OrgID, user.RoleCode, user.IsAdmin)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "ошибка выпуска токена")
	}
	refresh, err := authutils.GetRefreshToken(user.ID)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "ошибка выпуска refresh токена")
	}
	return authapimodels.JWTResponse{
		Token:        token,
		RefreshToken: refresh,
	}, nil
}
