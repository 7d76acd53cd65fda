package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"go.uber.org/zap"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.Profile, bool, error)
	Create(ctx context.Context, profile *models.Profile) error
	UpsertLinkedAccount(ctx context.Context, account *models.LinkedAccount) error
	GetLinkedAccount(ctx context.Context, userID string) (*models.LinkedAccount, bool, error)
	UpdateToken(ctx context.Context, userID, accessToken string, expiresAt time.Time) error
	UpdateInstagramStats(ctx context.Context, userID, username string, mediaCount int) error
	ListExpiring(ctx context.Context, before time.Time) ([]*models.LinkedAccount, error)
	IncrementRateEstimatorUsage(ctx context.Context, userID string) (int, error)
	ConsumeCredit(ctx context.Context, userID string) (int, bool, error)
	SetCreatorCard(ctx context.Context, userID, cardType, status string) error
}

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.Profile, bool, error) {
	query := `
		SELECT id, username, full_name, avatar_url, bio, subscription_tier, credits,
			rate_estimator_usage, creator_card_status, creator_card_type, instagram_user_id,
			instagram_access_token, token_expires_at, posts_count, followers_count, rating,
			is_onboarded, created_at, updated_at
		FROM profiles WHERE id = $1
	`
	var p models.Profile
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Username, &p.FullName, &p.AvatarURL, &p.Bio, &p.SubscriptionTier, &p.Credits,
		&p.RateEstimatorUsage, &p.CreatorCardStatus, &p.CreatorCardType, &p.InstagramUserID,
		&p.AccessToken, &p.TokenExpiresAt, &p.PostsCount, &p.FollowersCount, &p.Rating,
		&p.IsOnboarded, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		zap.L().Info("profile lookup failed", zap.Error(err))
		return nil, false, err
	}
	return &p, true, nil
}

// Create inserts a profile unless one already exists for the id.
func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, username, full_name, avatar_url, subscription_tier, credits)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, profile.ID, profile.Username, profile.FullName, profile.AvatarURL, profile.SubscriptionTier, profile.Credits)
	if err != nil {
		zap.L().Info("profile insert failed", zap.Error(err))
		return err
	}
	return nil
}

func (r *profileRepository) UpsertLinkedAccount(ctx context.Context, account *models.LinkedAccount) error {
	query := `
		INSERT INTO profiles (id, username, instagram_user_id, instagram_access_token, token_expires_at, posts_count, is_onboarded)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		ON CONFLICT (id) DO UPDATE
		SET username = EXCLUDED.username,
			instagram_user_id = EXCLUDED.instagram_user_id,
			instagram_access_token = EXCLUDED.instagram_access_token,
			token_expires_at = EXCLUDED.token_expires_at,
			posts_count = EXCLUDED.posts_count,
			is_onboarded = TRUE,
			updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, account.UserID, account.Username, account.InstagramUserID, account.AccessToken, account.TokenExpiresAt, account.MediaCount)
	if err != nil {
		zap.L().Info("linked account upsert failed", zap.Error(err))
		return err
	}
	return nil
}

func (r *profileRepository) GetLinkedAccount(ctx context.Context, userID string) (*models.LinkedAccount, bool, error) {
	query := `
		SELECT id, instagram_user_id, username, instagram_access_token, token_expires_at, posts_count
		FROM profiles WHERE id = $1
	`
	var account models.LinkedAccount
	var expiresAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&account.UserID, &account.InstagramUserID, &account.Username, &account.AccessToken, &expiresAt, &account.MediaCount)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		zap.L().Info("linked account lookup failed", zap.Error(err))
		return nil, false, err
	}
	if expiresAt.Valid {
		account.TokenExpiresAt = expiresAt.Time
	}
	return &account, true, nil
}

func (r *profileRepository) UpdateToken(ctx context.Context, userID, accessToken string, expiresAt time.Time) error {
	query := `
		UPDATE profiles
		SET instagram_access_token = $1,
			token_expires_at = $2,
			updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, accessToken, expiresAt, userID)
	if err != nil {
		zap.L().Info("token update failed", zap.Error(err))
		return err
	}
	return nil
}

func (r *profileRepository) UpdateInstagramStats(ctx context.Context, userID, username string, mediaCount int) error {
	query := `
		UPDATE profiles
		SET username = $1,
			posts_count = $2,
			is_onboarded = TRUE,
			updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, username, mediaCount, userID)
	if err != nil {
		zap.L().Info("profile stats update failed", zap.Error(err))
		return err
	}
	return nil
}

// ListExpiring returns linked accounts whose token expires before the given time.
func (r *profileRepository) ListExpiring(ctx context.Context, before time.Time) ([]*models.LinkedAccount, error) {
	query := `
		SELECT id, instagram_user_id, username, instagram_access_token, token_expires_at, posts_count
		FROM profiles
		WHERE instagram_access_token <> '' AND token_expires_at IS NOT NULL AND token_expires_at < $1
	`
	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		zap.L().Info("expiring accounts query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.LinkedAccount
	for rows.Next() {
		var account models.LinkedAccount
		if err := rows.Scan(&account.UserID, &account.InstagramUserID, &account.Username, &account.AccessToken, &account.TokenExpiresAt, &account.MediaCount); err != nil {
			zap.L().Info("expiring accounts scan failed", zap.Error(err))
			return nil, err
		}
		accounts = append(accounts, &account)
	}
	return accounts, rows.Err()
}

func (r *profileRepository) IncrementRateEstimatorUsage(ctx context.Context, userID string) (int, error) {
	query := `
		UPDATE profiles
		SET rate_estimator_usage = rate_estimator_usage + 1,
			updated_at = NOW()
		WHERE id = $1
		RETURNING rate_estimator_usage
	`
	var usage int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&usage)
	if err != nil {
		zap.L().Info("usage increment failed", zap.Error(err))
		return 0, err
	}
	return usage, nil
}

// ConsumeCredit takes one credit when the balance allows it and reports the
// remaining balance. ok is false when there was nothing to take.
func (r *profileRepository) ConsumeCredit(ctx context.Context, userID string) (int, bool, error) {
	query := `
		UPDATE profiles
		SET credits = credits - 1,
			updated_at = NOW()
		WHERE id = $1 AND credits > 0
		RETURNING credits
	`
	var remaining int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&remaining)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		zap.L().Info("credit deduction failed", zap.Error(err))
		return 0, false, err
	}
	return remaining, true, nil
}

func (r *profileRepository) SetCreatorCard(ctx context.Context, userID, cardType, status string) error {
	query := `
		UPDATE profiles
		SET creator_card_type = $1,
			creator_card_status = $2,
			updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, cardType, status, userID)
	if err != nil {
		zap.L().Info("creator card update failed", zap.Error(err))
		return err
	}
	return nil
}
