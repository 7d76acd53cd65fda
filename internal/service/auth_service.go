package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	config "github.com/maheshrc27/cominiti-api/configs"
	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/policy"
	"github.com/maheshrc27/cominiti-api/internal/repository"
	"github.com/maheshrc27/cominiti-api/internal/transfer"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const (
	InitialCredits    = 1
	minPasswordLength = 8
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService interface {
	LoginURL(state string) string
	LoginCallback(ctx context.Context, code string) (string, error)
	SignUp(ctx context.Context, creds *transfer.Credentials) (*models.User, error)
	SignIn(ctx context.Context, creds *transfer.Credentials) (*models.User, error)
}

type authService struct {
	oauth    *oauth2.Config
	users    repository.UserRepository
	profiles repository.ProfileRepository
	userInfo func(ctx context.Context, client *http.Client) (*transfer.GoogleUserInfo, error)
}

func NewAuthService(cfg config.Config, users repository.UserRepository, profiles repository.ProfileRepository) AuthService {
	return &authService{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURI,
			Scopes:       []string{oauth2api.UserinfoEmailScope, oauth2api.UserinfoProfileScope},
			Endpoint:     google.Endpoint,
		},
		users:    users,
		profiles: profiles,
		userInfo: GetGoogleUserInfo,
	}
}

func (s *authService) LoginURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// LoginCallback finishes Google login and returns the local user id, creating
// the user and a free profile on first login.
func (s *authService) LoginCallback(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", invalid("code is empty")
	}
	if s.oauth.ClientID == "" || s.oauth.ClientSecret == "" || s.oauth.RedirectURL == "" {
		return "", errors.New("oauth2 configuration is incomplete")
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		zap.L().Info("google code exchange failed", zap.Error(err))
		return "", err
	}

	info, err := s.userInfo(ctx, s.oauth.Client(ctx, token))
	if err != nil {
		return "", err
	}
	return s.upsertGoogleUser(ctx, info)
}

func (s *authService) upsertGoogleUser(ctx context.Context, info *transfer.GoogleUserInfo) (string, error) {
	user, exists, err := s.users.GetByEmail(ctx, info.Email)
	if err != nil {
		return "", err
	}

	if exists {
		if user.GoogleID == "" {
			user.GoogleID = info.ID
			user.Name = orDefault(user.Name, info.Name)
			user.ProfilePicture = orDefault(user.ProfilePicture, info.Picture)
			if err := s.users.Update(ctx, user); err != nil {
				return "", err
			}
		}
		return user.ID, s.ensureProfile(ctx, user)
	}

	created := &models.User{
		GoogleID:       info.ID,
		Email:          info.Email,
		Name:           info.Name,
		ProfilePicture: info.Picture,
	}
	created.ID, err = s.users.Create(ctx, created)
	if err != nil {
		return "", err
	}
	return created.ID, s.ensureProfile(ctx, created)
}

func (s *authService) SignUp(ctx context.Context, creds *transfer.Credentials) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalid("a valid email is required")
	}
	if len(creds.Password) < minPasswordLength {
		return nil, invalid("password must be at least %d characters", minPasswordLength)
	}

	_, exists, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        email,
		Name:         strings.Split(email, "@")[0],
		PasswordHash: string(hash),
	}
	user.ID, err = s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := s.ensureProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) SignIn(ctx context.Context, creds *transfer.Credentials) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	user, exists, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !exists || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) ensureProfile(ctx context.Context, user *models.User) error {
	return s.profiles.Create(ctx, &models.Profile{
		ID:               user.ID,
		FullName:         user.Name,
		AvatarURL:        user.ProfilePicture,
		SubscriptionTier: policy.TierFree.String(),
		Credits:          InitialCredits,
	})
}

// GetGoogleUserInfo reads the signed-in Google account through the OAuth2 API.
func GetGoogleUserInfo(ctx context.Context, client *http.Client) (*transfer.GoogleUserInfo, error) {
	svc, err := oauth2api.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create oauth2 service: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		zap.L().Info("google user info failed", zap.Error(err))
		return nil, err
	}
	return &transfer.GoogleUserInfo{
		ID:      info.Id,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}
