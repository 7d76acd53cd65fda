package service

import (
	"context"
	"fmt"
	"time"

	config "github.com/maheshrc27/cominiti-api/configs"
	"github.com/maheshrc27/cominiti-api/internal/metrics"
	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/repository"
	"github.com/maheshrc27/cominiti-api/internal/transfer"
	"github.com/maheshrc27/cominiti-api/pkg/utils"
	"go.uber.org/zap"
)

const (
	CorrelationTTL = 10 * time.Minute
	RefreshWindow  = 7 * 24 * time.Hour
	// RefreshInterval is how often expiring tokens are swept.
	RefreshInterval = 6 * time.Hour
	SyncMediaLimit  = 25
)

// CallbackRequest is what the provider hands back on the callback URL.
type CallbackRequest struct {
	Code        string
	Error       string
	State       string
	CookieToken string
	RedirectURI string
}

type InstagramService interface {
	ConnectToken(userID string) (*transfer.ConnectToken, error)
	AuthURL(state, redirectURI string) (string, error)
	Callback(ctx context.Context, req CallbackRequest) (string, error)
	Sync(ctx context.Context, userID string) (*transfer.SyncResult, error)
	RefreshToken(ctx context.Context, account *models.LinkedAccount) error
	ListPosts(ctx context.Context, userID string, includeHidden bool) ([]*models.Post, error)
	SetVisibility(ctx context.Context, userID, postID string, hidden bool) error
}

type instagramService struct {
	cfg      config.Config
	client   InstagramClient
	profiles repository.ProfileRepository
	posts    repository.PostRepository
	now      func() time.Time
}

func NewInstagramService(
	cfg config.Config,
	client InstagramClient,
	profiles repository.ProfileRepository,
	posts repository.PostRepository) InstagramService {
	return &instagramService{
		cfg:      cfg,
		client:   client,
		profiles: profiles,
		posts:    posts,
		now:      time.Now,
	}
}

// ConnectToken mints the correlation token the browser carries through the redirect.
func (s *instagramService) ConnectToken(userID string) (*transfer.ConnectToken, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	token, err := utils.GeneratePurposeToken(s.cfg.SecretKey, userID, utils.PurposeInstagramLink, CorrelationTTL)
	if err != nil {
		return nil, err
	}
	return &transfer.ConnectToken{Token: token, ExpiresAt: s.now().Add(CorrelationTTL)}, nil
}

func (s *instagramService) AuthURL(state, redirectURI string) (string, error) {
	if state == "" {
		return "", invalid("state is required")
	}
	return s.client.AuthorizeURL(redirectURI, state), nil
}

// Callback links the Instagram account and returns the local user id. Each
// step runs once; the first failure ends the flow.
func (s *instagramService) Callback(ctx context.Context, req CallbackRequest) (string, error) {
	if req.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrAuthDenied, req.Error)
	}
	if req.Code == "" {
		return "", ErrMissingCode
	}

	userID, err := s.resolveUser(req.State, req.CookieToken)
	if err != nil {
		return "", err
	}

	short, err := s.client.ExchangeCode(ctx, req.Code, req.RedirectURI)
	if err != nil {
		return userID, fmt.Errorf("%w: %w", ErrTokenExchangeFailed, err)
	}

	long, err := s.client.ExchangeLongLived(ctx, short.AccessToken)
	if err != nil {
		return userID, fmt.Errorf("%w: %w", ErrTokenUpgradeFailed, err)
	}
	expiresAt := GetExpiresAt(s.now(), long.ExpiresIn)

	profile, err := s.client.GetProfile(ctx, long.AccessToken)
	if err != nil {
		return userID, fmt.Errorf("%w: %w", ErrProfileFetchFailed, err)
	}

	encrypted, err := utils.Encrypt([]byte(long.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return userID, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	err = s.profiles.UpsertLinkedAccount(ctx, &models.LinkedAccount{
		UserID:          userID,
		InstagramUserID: profile.ID,
		Username:        profile.Username,
		AccessToken:     encrypted,
		TokenExpiresAt:  expiresAt,
		MediaCount:      profile.MediaCount,
	})
	if err != nil {
		return userID, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	zap.L().Info("instagram account linked", zap.String("user_id", userID), zap.String("username", profile.Username))
	return userID, nil
}

// resolveUser prefers the state parameter and falls back to the cookie.
func (s *instagramService) resolveUser(state, cookie string) (string, error) {
	token := state
	if token == "" {
		token = cookie
	}
	if token == "" {
		return "", ErrMissingCorrelation
	}
	claims, err := utils.ValidatePurposeToken(s.cfg.SecretKey, token, utils.PurposeInstagramLink)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMissingCorrelation, err)
	}
	return claims.UserID, nil
}

func (s *instagramService) Sync(ctx context.Context, userID string) (*transfer.SyncResult, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	account, ok, err := s.profiles.GetLinkedAccount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load linked account: %w", err)
	}
	if !ok || account.AccessToken == "" {
		return nil, ErrNotLinked
	}

	accessToken, err := utils.Decrypt(account.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("decrypt token: %w", err)
	}

	if s.needsRefresh(account.TokenExpiresAt) {
		refreshed, err := s.refresh(ctx, userID, accessToken)
		if refreshed != "" {
			accessToken = refreshed
		}
		if err != nil {
			zap.L().Warn("token refresh incomplete, continuing sync", zap.String("user_id", userID), zap.Error(err))
		}
	}

	profile, err := s.client.GetProfile(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfileFetchFailed, err)
	}

	media, err := s.client.GetMedia(ctx, accessToken, SyncMediaLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch media: %w", err)
	}

	if err := s.profiles.UpdateInstagramStats(ctx, userID, profile.Username, profile.MediaCount); err != nil {
		zap.L().Warn("profile stats update failed", zap.String("user_id", userID), zap.Error(err))
	}

	synced := 0
	for _, item := range media {
		post, err := toPost(userID, item)
		if err == nil {
			err = s.posts.Upsert(ctx, post)
		}
		metrics.SyncedMedia.WithLabelValues(metrics.Outcome(err)).Inc()
		if err != nil {
			zap.L().Warn("media upsert failed", zap.String("instagram_post_id", item.ID), zap.Error(err))
			continue
		}
		synced++
	}

	return &transfer.SyncResult{
		Status:     "success",
		Message:    fmt.Sprintf("Synced %d posts from @%s", synced, profile.Username),
		PostsCount: synced,
		Username:   profile.Username,
	}, nil
}

// RefreshToken renews the stored long-lived token of an account.
func (s *instagramService) RefreshToken(ctx context.Context, account *models.LinkedAccount) error {
	if account == nil || account.AccessToken == "" {
		return ErrNotLinked
	}
	accessToken, err := utils.Decrypt(account.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return fmt.Errorf("decrypt token: %w", err)
	}
	_, err = s.refresh(ctx, account.UserID, accessToken)
	return err
}

// refresh returns the new token even when persisting it fails, so the caller
// can finish its work with it.
func (s *instagramService) refresh(ctx context.Context, userID, accessToken string) (token string, err error) {
	defer func() {
		metrics.TokenRefreshes.WithLabelValues(metrics.Outcome(err)).Inc()
	}()

	refreshed, err := s.client.RefreshToken(ctx, accessToken)
	if err != nil {
		return "", err
	}
	expiresAt := GetExpiresAt(s.now(), refreshed.ExpiresIn)

	encrypted, err := utils.Encrypt([]byte(refreshed.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return "", err
	}
	if err := s.profiles.UpdateToken(ctx, userID, encrypted, expiresAt); err != nil {
		return refreshed.AccessToken, fmt.Errorf("persist refreshed token: %w", err)
	}
	return refreshed.AccessToken, nil
}

func (s *instagramService) needsRefresh(expiresAt time.Time) bool {
	if expiresAt.IsZero() {
		return false
	}
	return expiresAt.Sub(s.now()) < RefreshWindow
}

func (s *instagramService) ListPosts(ctx context.Context, userID string, includeHidden bool) ([]*models.Post, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.posts.ListByUserID(ctx, userID, includeHidden)
}

func (s *instagramService) SetVisibility(ctx context.Context, userID, postID string, hidden bool) error {
	if postID == "" {
		return invalid("post id is required")
	}
	ok, err := s.posts.SetHidden(ctx, userID, postID, hidden)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: post %s", ErrNotFound, postID)
	}
	return nil
}

// toPost maps a media item to its local row. Videos show their thumbnail.
func toPost(userID string, item transfer.InstagramMedia) (*models.Post, error) {
	postedAt, err := parseInstagramTime(item.Timestamp)
	if err != nil {
		return nil, err
	}
	mediaURL := item.MediaURL
	if item.MediaType == models.MediaTypeVideo && item.ThumbnailURL != "" {
		mediaURL = item.ThumbnailURL
	}
	var caption *string
	if item.Caption != "" {
		c := item.Caption
		caption = &c
	}
	return &models.Post{
		UserID:          userID,
		InstagramPostID: item.ID,
		Caption:         caption,
		MediaURL:        mediaURL,
		MediaType:       item.MediaType,
		Permalink:       item.Permalink,
		PostedAt:        postedAt,
	}, nil
}

func parseInstagramTime(ts string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04:05-0700", time.RFC3339} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised media timestamp %q", ts)
}
