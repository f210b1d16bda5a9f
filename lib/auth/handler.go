package authhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"timetrack-backend/db"
	usersstore "timetrack-backend/lib/users/store"
	authutils "timetrack-backend/lib/utils/auth-utils"
	authapimodels "timetrack-backend/models/api/auth"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Provider interface {
	Login(data authapimodels.LoginData) (view *authapimodels.TokenView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = newImpl(db.DB)
}

func newImpl(DB *gorm.DB) impl {
	return impl{
		usersStore: usersstore.NewInstance(DB),
	}
}

type impl struct {
	usersStore usersstore.Provider
}

func (i impl) Login(data authapimodels.LoginData) (*authapimodels.TokenView, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	logger := log.WithField("email", data.Email)
	user, err := i.usersStore.GetByEmail(data.Email)
	if err != nil {
		logger.WithError(err).Error("user lookup error")
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(data.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	accessToken, err := authutils.GetToken(user.ID, user.GetFullName(), user.CompanyID, user.Role)
	if err != nil {
		logger.WithError(err).Error("access token signing error")
		return nil, err
	}
	refreshToken, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		logger.WithError(err).Error("refresh token signing error")
		return nil, err
	}
	return &authapimodels.TokenView{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
