package repository

import (
	"context"
	"database/sql"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"go.uber.org/zap"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.CampaignApplication) (*models.CampaignApplication, error)
	GetByID(ctx context.Context, id string) (*models.CampaignApplication, bool, error)
	Exists(ctx context.Context, campaignID, creatorID string) (bool, error)
	CountByStatus(ctx context.Context, campaignID, status string) (int, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.CampaignApplication, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]*models.ApplicationWithCreator, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*models.ApplicationWithCampaign, error)
}

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = "a.id, a.campaign_id, a.creator_id, a.pitch, a.proposed_rate, a.status, a.created_at, a.updated_at"

func applicationDest(a *models.CampaignApplication) []any {
	return []any{&a.ID, &a.CampaignID, &a.CreatorID, &a.Pitch, &a.ProposedRate, &a.Status, &a.CreatedAt, &a.UpdatedAt}
}

func (r *applicationRepository) Create(ctx context.Context, app *models.CampaignApplication) (*models.CampaignApplication, error) {
	query := `
		INSERT INTO campaign_applications AS a (campaign_id, creator_id, pitch, proposed_rate, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + applicationColumns
	var created models.CampaignApplication
	err := r.db.QueryRowContext(ctx, query, app.CampaignID, app.CreatorID, app.Pitch, app.ProposedRate, app.Status).Scan(applicationDest(&created)...)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		zap.L().Info("application insert failed", zap.Error(err))
		return nil, err
	}
	return &created, nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*models.CampaignApplication, bool, error) {
	query := "SELECT " + applicationColumns + " FROM campaign_applications a WHERE a.id = $1"
	var app models.CampaignApplication
	err := r.db.QueryRowContext(ctx, query, id).Scan(applicationDest(&app)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		zap.L().Info("application lookup failed", zap.Error(err))
		return nil, false, err
	}
	return &app, true, nil
}

func (r *applicationRepository) Exists(ctx context.Context, campaignID, creatorID string) (bool, error) {
	query := "SELECT 1 FROM campaign_applications WHERE campaign_id = $1 AND creator_id = $2"
	var result int
	err := r.db.QueryRowContext(ctx, query, campaignID, creatorID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		zap.L().Info("application existence check failed", zap.Error(err))
		return false, err
	}
	return result == 1, nil
}

func (r *applicationRepository) CountByStatus(ctx context.Context, campaignID, status string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM campaign_applications WHERE campaign_id = $1 AND status = $2"
	if err := r.db.QueryRowContext(ctx, query, campaignID, status).Scan(&count); err != nil {
		zap.L().Info("application count failed", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id, status string) (*models.CampaignApplication, error) {
	query := `
		UPDATE campaign_applications AS a
		SET status = $1, updated_at = NOW()
		WHERE a.id = $2
		RETURNING ` + applicationColumns
	var updated models.CampaignApplication
	err := r.db.QueryRowContext(ctx, query, status, id).Scan(applicationDest(&updated)...)
	if err != nil {
		zap.L().Info("application status update failed", zap.Error(err))
		return nil, err
	}
	return &updated, nil
}

func (r *applicationRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*models.ApplicationWithCreator, error) {
	query := `
		SELECT ` + applicationColumns + `, p.id, p.username, p.full_name, p.avatar_url, p.followers_count, p.rating
		FROM campaign_applications a
		JOIN profiles p ON p.id = a.creator_id
		WHERE a.campaign_id = $1
		ORDER BY a.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, campaignID)
	if err != nil {
		zap.L().Info("application list failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	apps := []*models.ApplicationWithCreator{}
	for rows.Next() {
		var app models.ApplicationWithCreator
		cr := &app.Creator
		dest := append(applicationDest(&app.CampaignApplication), &cr.ID, &cr.Username, &cr.FullName, &cr.AvatarURL, &cr.FollowersCount, &cr.Rating)
		if err := rows.Scan(dest...); err != nil {
			zap.L().Info("application scan failed", zap.Error(err))
			return nil, err
		}
		apps = append(apps, &app)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) ListByCreator(ctx context.Context, creatorID string) ([]*models.ApplicationWithCampaign, error) {
	query := `
		SELECT ` + applicationColumns + `, c.id, c.title, c.budget_min, c.budget_max, c.deadline, b.company_name, b.logo_url, b.is_verified
		FROM campaign_applications a
		JOIN campaigns c ON c.id = a.campaign_id
		JOIN brand_accounts b ON b.id = c.brand_id
		WHERE a.creator_id = $1
		ORDER BY a.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		zap.L().Info("creator application list failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	apps := []*models.ApplicationWithCampaign{}
	for rows.Next() {
		var app models.ApplicationWithCampaign
		c := &app.Campaign
		dest := append(applicationDest(&app.CampaignApplication), &c.ID, &c.Title, &c.BudgetMin, &c.BudgetMax, &c.Deadline, &c.Brand.CompanyName, &c.Brand.LogoURL, &c.Brand.IsVerified)
		if err := rows.Scan(dest...); err != nil {
			zap.L().Info("creator application scan failed", zap.Error(err))
			return nil, err
		}
		apps = append(apps, &app)
	}
	return apps, rows.Err()
}
