package models

import "time"

type BrandAccount struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	CompanyName    string    `db:"company_name" json:"company_name"`
	CompanyEmail   string    `db:"company_email" json:"company_email"`
	CompanyWebsite string    `db:"company_website" json:"company_website"`
	Industry       string    `db:"industry" json:"industry"`
	Description    string    `db:"description" json:"description"`
	LogoURL        string    `db:"logo_url" json:"logo_url"`
	Tier           string    `db:"tier" json:"tier"`
	IsVerified     bool      `db:"is_verified" json:"is_verified"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// BrandSummary is the brand data embedded in campaign listings.
type BrandSummary struct {
	UserID      string `json:"user_id,omitempty"`
	CompanyName string `json:"company_name"`
	LogoURL     string `json:"logo_url"`
	IsVerified  bool   `json:"is_verified"`
}
