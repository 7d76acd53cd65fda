package repository

import (
	"context"
	"database/sql"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"go.uber.org/zap"
)

type BrandRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.BrandAccount, bool, error)
	Create(ctx context.Context, brand *models.BrandAccount) (*models.BrandAccount, error)
	SetLogo(ctx context.Context, brandID, logoURL string) error
}

type brandRepository struct {
	db *sql.DB
}

func NewBrandRepository(db *sql.DB) BrandRepository {
	return &brandRepository{db: db}
}

const brandColumns = "id, user_id, company_name, company_email, company_website, industry, description, logo_url, tier, is_verified, created_at, updated_at"

func scanBrand(row rowScanner) (*models.BrandAccount, error) {
	var b models.BrandAccount
	err := row.Scan(&b.ID, &b.UserID, &b.CompanyName, &b.CompanyEmail, &b.CompanyWebsite, &b.Industry, &b.Description, &b.LogoURL, &b.Tier, &b.IsVerified, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *brandRepository) GetByUserID(ctx context.Context, userID string) (*models.BrandAccount, bool, error) {
	query := "SELECT " + brandColumns + " FROM brand_accounts WHERE user_id = $1"
	brand, err := scanBrand(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		zap.L().Info("brand lookup failed", zap.Error(err))
		return nil, false, err
	}
	return brand, true, nil
}

func (r *brandRepository) Create(ctx context.Context, brand *models.BrandAccount) (*models.BrandAccount, error) {
	query := `
		INSERT INTO brand_accounts (user_id, company_name, company_email, company_website, industry, description, logo_url, tier)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + brandColumns
	created, err := scanBrand(r.db.QueryRowContext(ctx, query, brand.UserID, brand.CompanyName, brand.CompanyEmail, brand.CompanyWebsite, brand.Industry, brand.Description, brand.LogoURL, brand.Tier))
	if err != nil {
		zap.L().Info("brand insert failed", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *brandRepository) SetLogo(ctx context.Context, brandID, logoURL string) error {
	query := `UPDATE brand_accounts SET logo_url = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, logoURL, brandID)
	if err != nil {
		zap.L().Info("brand logo update failed", zap.Error(err))
		return err
	}
	return nil
}
