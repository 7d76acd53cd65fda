package models

import "time"

const (
	CardStatusNone    = ""
	CardStatusOrdered = "ordered"
	CardStatusShipped = "shipped"
)

// Profile is the creator-facing row keyed by the user id. The instagram_*
// columns hold the linked account.
type Profile struct {
	ID                 string     `db:"id" json:"id"`
	Username           string     `db:"username" json:"username"`
	FullName           string     `db:"full_name" json:"full_name"`
	AvatarURL          string     `db:"avatar_url" json:"avatar_url"`
	Bio                string     `db:"bio" json:"bio"`
	SubscriptionTier   string     `db:"subscription_tier" json:"subscription_tier"`
	Credits            int        `db:"credits" json:"credits"`
	RateEstimatorUsage int        `db:"rate_estimator_usage" json:"rate_estimator_usage"`
	CreatorCardStatus  string     `db:"creator_card_status" json:"creator_card_status"`
	CreatorCardType    string     `db:"creator_card_type" json:"creator_card_type"`
	InstagramUserID    string     `db:"instagram_user_id" json:"instagram_user_id"`
	AccessToken        string     `db:"instagram_access_token" json:"-"`
	TokenExpiresAt     *time.Time `db:"token_expires_at" json:"token_expires_at"`
	PostsCount         int        `db:"posts_count" json:"posts_count"`
	FollowersCount     int        `db:"followers_count" json:"followers_count"`
	Rating             float64    `db:"rating" json:"rating"`
	IsOnboarded        bool       `db:"is_onboarded" json:"is_onboarded"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// LinkedAccount is the slice of a profile written by the Instagram linker.
// AccessToken is stored encrypted.
type LinkedAccount struct {
	UserID          string    `json:"user_id"`
	InstagramUserID string    `json:"instagram_user_id"`
	Username        string    `json:"username"`
	AccessToken     string    `json:"-"`
	TokenExpiresAt  time.Time `json:"token_expires_at"`
	MediaCount      int       `json:"posts_count"`
}
