package models

import "time"

const (
	MediaTypeImage    = "IMAGE"
	MediaTypeVideo    = "VIDEO"
	MediaTypeCarousel = "CAROUSEL_ALBUM"
)

// Post is a local copy of an Instagram media item, unique on InstagramPostID.
type Post struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	InstagramPostID string    `db:"instagram_post_id" json:"instagram_post_id"`
	Caption         *string   `db:"caption" json:"caption"`
	MediaURL        string    `db:"media_url" json:"media_url"`
	MediaType       string    `db:"media_type" json:"media_type"`
	Permalink       string    `db:"permalink" json:"permalink"`
	PostedAt        time.Time `db:"posted_at" json:"posted_at"`
	IsHidden        bool      `db:"is_hidden" json:"is_hidden"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
