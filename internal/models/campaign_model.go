package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

const (
	CampaignStatusDraft     = "draft"
	CampaignStatusLive      = "live"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"

	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"

	DefaultMaxCreators = 10
)

func ValidCampaignStatus(s string) bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusLive, CampaignStatusPaused, CampaignStatusCompleted, CampaignStatusCancelled:
		return true
	}
	return false
}

// Requirements is the free-form jsonb requirements column.
type Requirements map[string]any

func (r Requirements) Value() (driver.Value, error) {
	if r == nil {
		return "{}", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *Requirements) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*r = Requirements{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("requirements: unsupported source type")
	}
	out := Requirements{}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*r = out
	return nil
}

// Niche returns requirements.niche when it is a string.
func (r Requirements) Niche() string {
	n, _ := r["niche"].(string)
	return n
}

type Campaign struct {
	ID                string        `db:"id" json:"id"`
	BrandID           string        `db:"brand_id" json:"brand_id"`
	Title             string        `db:"title" json:"title"`
	Description       string        `db:"description" json:"description"`
	BudgetMin         int           `db:"budget_min" json:"budget_min"`
	BudgetMax         int           `db:"budget_max" json:"budget_max"`
	Requirements      Requirements  `db:"requirements" json:"requirements"`
	Deadline          *time.Time    `db:"deadline" json:"deadline"`
	MaxCreators       int           `db:"max_creators" json:"max_creators"`
	Status            string        `db:"status" json:"status"`
	ApplicationsCount int           `db:"-" json:"applications_count"`
	Brand             *BrandSummary `db:"-" json:"brand,omitempty"`
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at" json:"updated_at"`
}

// CampaignUpdate carries a partial update; nil fields are left unchanged.
type CampaignUpdate struct {
	Title        *string       `json:"title"`
	Description  *string       `json:"description"`
	BudgetMin    *int          `json:"budget_min"`
	BudgetMax    *int          `json:"budget_max"`
	Requirements *Requirements `json:"requirements"`
	Deadline     *time.Time    `json:"deadline"`
	MaxCreators  *int          `json:"max_creators"`
	Status       *string       `json:"status"`
}

type CampaignApplication struct {
	ID           string    `db:"id" json:"id"`
	CampaignID   string    `db:"campaign_id" json:"campaign_id"`
	CreatorID    string    `db:"creator_id" json:"creator_id"`
	Pitch        string    `db:"pitch" json:"pitch"`
	ProposedRate int       `db:"proposed_rate" json:"proposed_rate"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// CreatorSummary is the creator data attached to applications shown to brands.
type CreatorSummary struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	FullName       string  `json:"full_name"`
	AvatarURL      string  `json:"avatar_url"`
	FollowersCount int     `json:"followers_count"`
	Rating         float64 `json:"rating"`
}

type ApplicationWithCreator struct {
	CampaignApplication
	Creator CreatorSummary `json:"creator"`
}

// CampaignRef is the campaign data attached to a creator's applications.
type CampaignRef struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	BudgetMin int          `json:"budget_min"`
	BudgetMax int          `json:"budget_max"`
	Deadline  *time.Time   `json:"deadline"`
	Brand     BrandSummary `json:"brand"`
}

type ApplicationWithCampaign struct {
	CampaignApplication
	Campaign CampaignRef `json:"campaign"`
}

type CampaignDetail struct {
	Campaign
	Applications []*ApplicationWithCreator `json:"applications"`
}
