package repository

import (
	"context"
	"database/sql"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"go.uber.org/zap"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error)
	GetByID(ctx context.Context, id string) (*models.Campaign, bool, error)
	ListByBrand(ctx context.Context, brandID string) ([]*models.Campaign, error)
	CountByBrand(ctx context.Context, brandID string) (int, error)
	ListLive(ctx context.Context, budgetMin *int) ([]*models.Campaign, error)
	Update(ctx context.Context, id string, update *models.CampaignUpdate) (*models.Campaign, error)
}

type campaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

const campaignColumns = "c.id, c.brand_id, c.title, c.description, c.budget_min, c.budget_max, c.requirements, c.deadline, c.max_creators, c.status, c.created_at, c.updated_at"

func campaignDest(c *models.Campaign) []any {
	return []any{&c.ID, &c.BrandID, &c.Title, &c.Description, &c.BudgetMin, &c.BudgetMax, &c.Requirements, &c.Deadline, &c.MaxCreators, &c.Status, &c.CreatedAt, &c.UpdatedAt}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	query := `
		INSERT INTO campaigns AS c (brand_id, title, description, budget_min, budget_max, requirements, deadline, max_creators, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + campaignColumns
	var created models.Campaign
	err := r.db.QueryRowContext(ctx, query,
		campaign.BrandID, campaign.Title, campaign.Description, campaign.BudgetMin, campaign.BudgetMax,
		campaign.Requirements, campaign.Deadline, campaign.MaxCreators, campaign.Status,
	).Scan(campaignDest(&created)...)
	if err != nil {
		zap.L().Info("campaign insert failed", zap.Error(err))
		return nil, err
	}
	return &created, nil
}

// GetByID loads a campaign with the owning brand's summary.
func (r *campaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, bool, error) {
	query := `
		SELECT ` + campaignColumns + `, b.user_id, b.company_name, b.logo_url, b.is_verified
		FROM campaigns c
		JOIN brand_accounts b ON b.id = c.brand_id
		WHERE c.id = $1
	`
	var c models.Campaign
	var brand models.BrandSummary
	dest := append(campaignDest(&c), &brand.UserID, &brand.CompanyName, &brand.LogoURL, &brand.IsVerified)
	err := r.db.QueryRowContext(ctx, query, id).Scan(dest...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		zap.L().Info("campaign lookup failed", zap.Error(err))
		return nil, false, err
	}
	c.Brand = &brand
	return &c, true, nil
}

func (r *campaignRepository) ListByBrand(ctx context.Context, brandID string) ([]*models.Campaign, error) {
	query := `
		SELECT ` + campaignColumns + `, COUNT(a.id)
		FROM campaigns c
		LEFT JOIN campaign_applications a ON a.campaign_id = c.id
		WHERE c.brand_id = $1
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, brandID)
	if err != nil {
		zap.L().Info("campaign list failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	campaigns := []*models.Campaign{}
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(append(campaignDest(&c), &c.ApplicationsCount)...); err != nil {
			zap.L().Info("campaign scan failed", zap.Error(err))
			return nil, err
		}
		campaigns = append(campaigns, &c)
	}
	return campaigns, rows.Err()
}

func (r *campaignRepository) CountByBrand(ctx context.Context, brandID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM campaigns WHERE brand_id = $1", brandID).Scan(&count)
	if err != nil {
		zap.L().Info("campaign count failed", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// ListLive returns live campaigns, newest first. A non-nil budgetMin keeps
// campaigns whose budget_max reaches it.
func (r *campaignRepository) ListLive(ctx context.Context, budgetMin *int) ([]*models.Campaign, error) {
	query := `
		SELECT ` + campaignColumns + `, b.company_name, b.logo_url, b.is_verified
		FROM campaigns c
		JOIN brand_accounts b ON b.id = c.brand_id
		WHERE c.status = $1`
	args := []any{models.CampaignStatusLive}
	if budgetMin != nil {
		query += " AND c.budget_max >= $2"
		args = append(args, *budgetMin)
	}
	query += " ORDER BY c.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		zap.L().Info("live campaign list failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	campaigns := []*models.Campaign{}
	for rows.Next() {
		var c models.Campaign
		var brand models.BrandSummary
		if err := rows.Scan(append(campaignDest(&c), &brand.CompanyName, &brand.LogoURL, &brand.IsVerified)...); err != nil {
			zap.L().Info("live campaign scan failed", zap.Error(err))
			return nil, err
		}
		c.Brand = &brand
		campaigns = append(campaigns, &c)
	}
	return campaigns, rows.Err()
}

func (r *campaignRepository) Update(ctx context.Context, id string, u *models.CampaignUpdate) (*models.Campaign, error) {
	query := `
		UPDATE campaigns AS c
		SET title = COALESCE($2, c.title),
			description = COALESCE($3, c.description),
			budget_min = COALESCE($4, c.budget_min),
			budget_max = COALESCE($5, c.budget_max),
			requirements = COALESCE($6, c.requirements),
			deadline = COALESCE($7, c.deadline),
			max_creators = COALESCE($8, c.max_creators),
			status = COALESCE($9, c.status),
			updated_at = NOW()
		WHERE c.id = $1
		RETURNING ` + campaignColumns
	var requirements any
	if u.Requirements != nil {
		requirements = *u.Requirements
	}
	var updated models.Campaign
	err := r.db.QueryRowContext(ctx, query, id, u.Title, u.Description, u.BudgetMin, u.BudgetMax, requirements, u.Deadline, u.MaxCreators, u.Status).Scan(campaignDest(&updated)...)
	if err != nil {
		zap.L().Info("campaign update failed", zap.Error(err))
		return nil, err
	}
	return &updated, nil
}
