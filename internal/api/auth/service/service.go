package authService

import (
	"BlogGolang/internal/api/auth"
	authRepository "BlogGolang/internal/api/auth/repository"
	"BlogGolang/pkg/bcrypt"
	"BlogGolang/pkg/google"
	"BlogGolang/pkg/utils"
	"context"
	"github.com/sirupsen/logrus"
	"net/url"
)

type IAuthService interface {
	Register(ctx context.Context, req auth.RegisterUserRequest) (*auth.RegisteredUser, error)
	Token(ctx context.Context, req auth.TokenRequest) (*auth.TokenResponse, error)
	RefreshToken(ctx context.Context, refresh string) (*auth.RefreshTokenResponse, error)
	GoogleLoginURL() (*url.URL, error)
	GoogleLogin(ctx context.Context, email string) (*auth.TokenResponse, error)
}

type authService struct {
	log            *logrus.Logger
	authRepo       authRepository.Repository
	googleProvider google.ItfGoogle
	bcryptUtils    bcrypt.IBcrypt
	utils          utils.IUtils
}

func New(
	log *logrus.Logger,
	authRepo authRepository.Repository,
	googleProvider google.ItfGoogle,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
) IAuthService {
	return &authService{
		log:            log,
		authRepo:       authRepo,
		googleProvider: googleProvider,
		bcryptUtils:    bcryptUtils,
		utils:          utils,
	}
}
