package authService

import (
	"BlogGolang/internal/api/auth"
	"BlogGolang/internal/entity"
	contextPkg "BlogGolang/pkg/context"
	jwtPkg "BlogGolang/pkg/jwt"
	"errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

func (s *authService) Token(ctx context.Context, req auth.TokenRequest) (*auth.TokenResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	user, err := repo.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("Token request for unknown username")
			return nil, auth.ErrInvalidUsernameOrPassword
		}
		return nil, err
	}

	if err := s.bcryptUtils.ComparePassword(user.Password, req.Password); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("Password comparison failed")
		return nil, auth.ErrInvalidUsernameOrPassword
	}

	return s.issueTokenPair(requestID, user)
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (*auth.RefreshTokenResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	claims, err := jwtPkg.Parse(refresh, jwtPkg.RefreshTokenSecretEnv)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Refresh token verification failed")
		return nil, auth.ErrInvalidRefreshToken
	}

	if tokenType, _ := claims["token_type"].(string); tokenType != jwtPkg.TokenTypeRefresh {
		return nil, auth.ErrInvalidRefreshToken
	}

	userID, _ := claims["id"].(string)
	if userID == "" {
		return nil, auth.ErrInvalidRefreshToken
	}

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	user, err := repo.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, auth.ErrInvalidRefreshToken
		}
		return nil, err
	}

	access, _, err := jwtPkg.SignAccessToken(makeUserLoginData(user), accessTokenTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign access token")
		return nil, err
	}

	return &auth.RefreshTokenResponse{Access: access}, nil
}

func (s *authService) GoogleLoginURL() (*url.URL, error) {
	gConfig := s.googleProvider.GetConfig()
	URL, err := url.Parse(gConfig.Endpoint.AuthURL)
	if err != nil {
		return nil, err
	}

	parameters := url.Values{}
	parameters.Add("client_id", gConfig.ClientID)
	parameters.Add("scope", strings.Join(gConfig.Scopes, " "))
	parameters.Add("redirect_uri", gConfig.RedirectURL)
	parameters.Add("response_type", "code")
	parameters.Add("state", os.Getenv("GOOGLE_STATE"))
	URL.RawQuery = parameters.Encode()

	return URL, nil
}

func (s *authService) GoogleLogin(ctx context.Context, email string) (*auth.TokenResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	user, err := repo.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("Google login for unregistered email")
			return nil, auth.ErrGoogleAccountNotLinked
		}
		return nil, err
	}

	return s.issueTokenPair(requestID, user)
}

func (s *authService) issueTokenPair(requestID string, user entity.User) (*auth.TokenResponse, error) {
	access, _, err := jwtPkg.SignAccessToken(makeUserLoginData(user), accessTokenTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign access token")
		return nil, err
	}

	refresh, _, err := jwtPkg.SignRefreshToken(user.ID, refreshTokenTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign refresh token")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
	}).Info("Token pair created")

	return &auth.TokenResponse{
		Access:  access,
		Refresh: refresh,
	}, nil
}

func makeUserLoginData(user entity.User) entity.UserLoginData {
	return entity.UserLoginData{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsStaff:  user.IsStaff,
	}
}
