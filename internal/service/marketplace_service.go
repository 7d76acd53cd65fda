package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/maheshrc27/cominiti-api/internal/metrics"
	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/policy"
	"github.com/maheshrc27/cominiti-api/internal/repository"
	"github.com/maheshrc27/cominiti-api/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const featureCampaigns policy.Feature = "campaigns"

var allowedLogoTypes = map[string]struct{}{
	"png": {}, "jpg": {}, "webp": {},
}

type MarketplaceService interface {
	RegisterBrand(ctx context.Context, userID string, req *transfer.BrandRegistration) (*models.BrandAccount, error)
	GetBrand(ctx context.Context, userID string) (*models.BrandAccount, error)
	UploadLogo(ctx context.Context, userID string, file []byte) (string, error)

	ListCampaigns(ctx context.Context, userID string) ([]*models.Campaign, error)
	CreateCampaign(ctx context.Context, userID string, req *transfer.CampaignCreation) (*models.Campaign, error)
	GetCampaign(ctx context.Context, userID, campaignID string) (*models.CampaignDetail, error)
	UpdateCampaign(ctx context.Context, userID, campaignID string, update *models.CampaignUpdate) (*models.Campaign, error)
	DecideApplication(ctx context.Context, userID, applicationID, status string) (*models.CampaignApplication, error)

	Apply(ctx context.Context, userID string, req *transfer.ApplicationSubmission) (*models.CampaignApplication, error)
	ListApplications(ctx context.Context, userID string) ([]*models.ApplicationWithCampaign, error)
	BrowseCampaigns(ctx context.Context, userID string, filter transfer.CampaignFilter) ([]*models.Campaign, error)
}

type marketplaceService struct {
	users        repository.UserRepository
	profiles     repository.ProfileRepository
	brands       repository.BrandRepository
	campaigns    repository.CampaignRepository
	applications repository.ApplicationRepository
	storage      ObjectStorage
}

func NewMarketplaceService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	brands repository.BrandRepository,
	campaigns repository.CampaignRepository,
	applications repository.ApplicationRepository,
	storage ObjectStorage,
) MarketplaceService {
	return &marketplaceService{
		users:        users,
		profiles:     profiles,
		brands:       brands,
		campaigns:    campaigns,
		applications: applications,
		storage:      storage,
	}
}

func (s *marketplaceService) RegisterBrand(ctx context.Context, userID string, req *transfer.BrandRegistration) (*models.BrandAccount, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	_, ok, err := s.brands.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, invalid("Brand account already exists")
	}
	if strings.TrimSpace(req.CompanyName) == "" {
		return nil, invalid("Company name is required")
	}

	email := req.CompanyEmail
	if email == "" {
		user, found, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if found {
			email = user.Email
		}
	}

	brand, err := s.brands.Create(ctx, &models.BrandAccount{
		UserID:         userID,
		CompanyName:    strings.TrimSpace(req.CompanyName),
		CompanyEmail:   email,
		CompanyWebsite: req.CompanyWebsite,
		Industry:       req.Industry,
		Description:    req.Description,
		LogoURL:        req.LogoURL,
		Tier:           policy.BrandTierFree.String(),
	})
	if err != nil {
		return nil, failed("Failed to register brand", err)
	}
	zap.L().Info("brand registered", zap.String("user_id", userID), zap.String("brand_id", brand.ID))
	return brand, nil
}

// GetBrand returns nil without error when the user has no brand account.
func (s *marketplaceService) GetBrand(ctx context.Context, userID string) (*models.BrandAccount, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	brand, ok, err := s.brands.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return brand, nil
}

func (s *marketplaceService) UploadLogo(ctx context.Context, userID string, file []byte) (string, error) {
	brand, err := s.requireBrand(ctx, userID)
	if err != nil {
		return "", err
	}

	kind, err := filetype.Match(file)
	if err != nil || kind == types.Unknown {
		return "", invalid("Unsupported file type")
	}
	if _, ok := allowedLogoTypes[kind.Extension]; !ok {
		return "", invalid("File type %s is not allowed", kind.Extension)
	}

	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("logos/%s.%s", id, kind.Extension)
	url, err := s.storage.Upload(ctx, key, file, kind.MIME.Value)
	if err != nil {
		return "", failed("Failed to upload logo", err)
	}
	if err := s.brands.SetLogo(ctx, brand.ID, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *marketplaceService) ListCampaigns(ctx context.Context, userID string) ([]*models.Campaign, error) {
	brand, err := s.requireBrand(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.campaigns.ListByBrand(ctx, brand.ID)
}

func (s *marketplaceService) CreateCampaign(ctx context.Context, userID string, req *transfer.CampaignCreation) (*models.Campaign, error) {
	brand, err := s.requireBrand(ctx, userID)
	if err != nil {
		return nil, err
	}
	tier, err := policy.ParseBrandTier(brand.Tier)
	if err != nil {
		return nil, err
	}

	if ceiling := policy.CampaignCeiling(tier); ceiling != policy.Unlimited {
		count, err := s.campaigns.CountByBrand(ctx, brand.ID)
		if err != nil {
			return nil, err
		}
		if count >= ceiling {
			metrics.PolicyDenials.WithLabelValues(string(featureCampaigns)).Inc()
			return nil, upgradeRequired("Free tier limited to 1 campaign. Upgrade to Pro for unlimited.")
		}
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, invalid("Campaign title is required")
	}
	requirements := req.Requirements
	if requirements == nil {
		requirements = models.Requirements{}
	}
	maxCreators := req.MaxCreators
	if maxCreators <= 0 {
		maxCreators = models.DefaultMaxCreators
	}

	campaign, err := s.campaigns.Create(ctx, &models.Campaign{
		BrandID:      brand.ID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		BudgetMin:    req.BudgetMin,
		BudgetMax:    req.BudgetMax,
		Requirements: requirements,
		Deadline:     req.Deadline,
		MaxCreators:  maxCreators,
		Status:       models.CampaignStatusDraft,
	})
	if err != nil {
		return nil, failed("Failed to create campaign", err)
	}
	return campaign, nil
}

func (s *marketplaceService) GetCampaign(ctx context.Context, userID, campaignID string) (*models.CampaignDetail, error) {
	campaign, err := s.ownedCampaign(ctx, userID, campaignID)
	if err != nil {
		return nil, err
	}
	applications, err := s.applications.ListByCampaign(ctx, campaign.ID)
	if err != nil {
		return nil, err
	}
	campaign.ApplicationsCount = len(applications)
	return &models.CampaignDetail{Campaign: *campaign, Applications: applications}, nil
}

func (s *marketplaceService) UpdateCampaign(ctx context.Context, userID, campaignID string, update *models.CampaignUpdate) (*models.Campaign, error) {
	if _, err := s.ownedCampaign(ctx, userID, campaignID); err != nil {
		return nil, err
	}
	if update.Status != nil && !models.ValidCampaignStatus(*update.Status) {
		return nil, invalid("Invalid status")
	}
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return nil, invalid("Campaign title is required")
	}
	if update.MaxCreators != nil && *update.MaxCreators <= 0 {
		return nil, invalid("Max creators must be positive")
	}
	campaign, err := s.campaigns.Update(ctx, campaignID, update)
	if err != nil {
		return nil, failed("Failed to update campaign", err)
	}
	return campaign, nil
}

func (s *marketplaceService) DecideApplication(ctx context.Context, userID, applicationID, status string) (*models.CampaignApplication, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	app, ok, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: Application not found", ErrNotFound)
	}
	if _, err := s.ownedCampaign(ctx, userID, app.CampaignID); err != nil {
		return nil, err
	}
	if status != models.ApplicationStatusAccepted && status != models.ApplicationStatusRejected {
		return nil, invalid("Invalid status")
	}

	updated, err := s.applications.UpdateStatus(ctx, app.ID, status)
	if err != nil {
		return nil, failed("Failed to update application", err)
	}
	zap.L().Info("application decided", zap.String("application_id", app.ID), zap.String("status", status))
	return updated, nil
}

func (s *marketplaceService) Apply(ctx context.Context, userID string, req *transfer.ApplicationSubmission) (*models.CampaignApplication, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	_, ok, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: Creator profile not found", ErrNotFound)
	}
	if req.CampaignID == "" {
		return nil, invalid("Campaign ID is required")
	}

	campaign, ok, err := s.campaigns.GetByID(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	if !ok || campaign.Status != models.CampaignStatusLive {
		return nil, invalid("Campaign not available")
	}

	applied, err := s.applications.Exists(ctx, campaign.ID, userID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, invalid("Already applied to this campaign")
	}

	accepted, err := s.applications.CountByStatus(ctx, campaign.ID, models.ApplicationStatusAccepted)
	if err != nil {
		return nil, err
	}
	if accepted >= campaign.MaxCreators {
		return nil, invalid("Campaign is full")
	}

	app, err := s.applications.Create(ctx, &models.CampaignApplication{
		CampaignID:   campaign.ID,
		CreatorID:    userID,
		Pitch:        req.Pitch,
		ProposedRate: req.ProposedRate,
		Status:       models.ApplicationStatusPending,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, invalid("Already applied to this campaign")
	}
	if err != nil {
		return nil, failed("Failed to submit application", err)
	}
	return app, nil
}

func (s *marketplaceService) ListApplications(ctx context.Context, userID string) ([]*models.ApplicationWithCampaign, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.applications.ListByCreator(ctx, userID)
}

func (s *marketplaceService) BrowseCampaigns(ctx context.Context, userID string, filter transfer.CampaignFilter) ([]*models.Campaign, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	campaigns, err := s.campaigns.ListLive(ctx, filter.BudgetMin)
	if err != nil {
		return nil, err
	}
	if filter.Niche == "" {
		return campaigns, nil
	}

	niche := strings.ToLower(filter.Niche)
	filtered := make([]*models.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if strings.Contains(strings.ToLower(c.Requirements.Niche()), niche) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (s *marketplaceService) requireBrand(ctx context.Context, userID string) (*models.BrandAccount, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	brand, ok, err := s.brands.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: Brand account not found", ErrNotFound)
	}
	return brand, nil
}

// ownedCampaign loads a campaign and checks it belongs to the caller's brand.
func (s *marketplaceService) ownedCampaign(ctx context.Context, userID, campaignID string) (*models.Campaign, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	campaign, ok, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: Campaign not found", ErrNotFound)
	}
	if campaign.Brand == nil || campaign.Brand.UserID != userID {
		return nil, &DeniedError{Reason: "Unauthorized"}
	}
	return campaign, nil
}
