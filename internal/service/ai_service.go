package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/maheshrc27/cominiti-api/internal/metrics"
	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/policy"
	"github.com/maheshrc27/cominiti-api/internal/repository"
	"github.com/maheshrc27/cominiti-api/internal/transfer"
	"go.uber.org/zap"
)

const (
	portfolioCost = 1

	featurePortfolio policy.Feature = "portfolio"
)

type AIService interface {
	GenerateContract(ctx context.Context, userID string, req *transfer.ContractRequest) (*transfer.Contract, error)
	GenerateEmail(ctx context.Context, userID string, req *transfer.EmailRequest) (*transfer.Email, error)
	EstimateRate(ctx context.Context, userID string, req *transfer.RateRequest) (*transfer.RateResult, error)
	GeneratePortfolio(ctx context.Context, userID string, req *transfer.PortfolioRequest) (*transfer.PortfolioResult, error)
}

type aiService struct {
	gen      TextGenerator
	profiles repository.ProfileRepository
}

func NewAIService(gen TextGenerator, profiles repository.ProfileRepository) AIService {
	return &aiService{gen: gen, profiles: profiles}
}

func (s *aiService) GenerateContract(ctx context.Context, userID string, req *transfer.ContractRequest) (*transfer.Contract, error) {
	_, tier, err := loadProfile(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}
	if d := policy.Check(policy.FeatureContractGenerator, tier, 0); !d.Allowed {
		metrics.PolicyDenials.WithLabelValues(string(policy.FeatureContractGenerator)).Inc()
		return nil, upgradeRequired("Elite tier required")
	}

	prompt := fmt.Sprintf(`You are an entertainment lawyer who drafts influencer contracts.
Write a short, enforceable brand collaboration agreement with these terms:

Creator: [User Name]
Brand/Sponsor: %s
Deliverables: %s
Payment Terms: %s
Exclusivity: %s
Jurisdiction: %s

Respond with a JSON object only:
{"title": "COLLABORATION AGREEMENT", "content": "the full contract in markdown, sections as ##"}`,
		req.SponsorName, req.Deliverables, req.PaymentTerms,
		orDefault(req.Exclusivity, "Non-exclusive"), orDefault(req.Jurisdiction, "General"))

	var contract transfer.Contract
	if err := s.generate(ctx, policy.FeatureContractGenerator, prompt, &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

func (s *aiService) GenerateEmail(ctx context.Context, userID string, req *transfer.EmailRequest) (*transfer.Email, error) {
	_, tier, err := loadProfile(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}

	if req.Type == "template" || !policy.Check(policy.FeatureSmartEmail, tier, 0).Allowed {
		return templateEmail(req.Context), nil
	}

	details := string(req.Details)
	if details == "" {
		details = "null"
	}
	prompt := fmt.Sprintf(`You are a talent manager writing an email on behalf of a creator.
Write a professional email from these details:

Type: %s
Recipient: %s
Tone: %s
Context/Details: %s

Respond with a JSON object only:
{"subject": "subject line", "body": "email body, \n for line breaks"}`,
		req.Context, req.Recipient, req.Tone, details)

	var email transfer.Email
	if err := s.generate(ctx, policy.FeatureSmartEmail, prompt, &email); err != nil {
		return nil, err
	}
	email.IsTemplate = false
	return &email, nil
}

func (s *aiService) EstimateRate(ctx context.Context, userID string, req *transfer.RateRequest) (*transfer.RateResult, error) {
	profile, tier, err := loadProfile(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}
	decision := policy.Check(policy.FeatureRateEstimator, tier, profile.RateEstimatorUsage)
	if !decision.Allowed {
		metrics.PolicyDenials.WithLabelValues(string(policy.FeatureRateEstimator)).Inc()
		return nil, upgradeRequired("Free limit reached")
	}

	prompt := fmt.Sprintf(`You are an influencer marketing strategist.
Estimate fair market rates for a creator with these stats:

Niche: %s
Followers: %d
Engagement Rate: %g%%
Deliverables Requested: %s

Give a realistic USD price range and a brief justification.
Respond with a JSON object only:
{"minRate": number, "maxRate": number, "currency": "USD", "justification": "why this range fits market standards"}`,
		req.Niche, req.Followers, req.Engagement, req.Deliverables)

	var estimate transfer.RateEstimate
	if err := s.generate(ctx, policy.FeatureRateEstimator, prompt, &estimate); err != nil {
		return nil, err
	}

	result := &transfer.RateResult{Estimate: &estimate}
	if decision.Limited {
		usage, err := s.profiles.IncrementRateEstimatorUsage(ctx, userID)
		if err != nil {
			zap.L().Warn("rate estimator usage not recorded", zap.String("user_id", userID), zap.Error(err))
			usage = profile.RateEstimatorUsage + 1
		}
		result.Usage = &usage
	}
	return result, nil
}

func (s *aiService) GeneratePortfolio(ctx context.Context, userID string, req *transfer.PortfolioRequest) (*transfer.PortfolioResult, error) {
	profile, _, err := loadProfile(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}
	if profile.Credits < portfolioCost {
		return nil, insufficientCredits(profile.Credits)
	}

	prompt := fmt.Sprintf(`You are a design consultant for content creators.
Produce a portfolio design configuration for a creator with this context:
Bio: %q
Additional Context: %q

Respond with a JSON object only, no markdown:
{"theme": "one of Minimal, Bold, Pastel, Dark, Neon", "colorPalette": ["hex1", "hex2", "hex3", "hex4"], "typography": "font family", "layout": "Grid, Magazine or Masonry", "tagline": "short tagline drawn from the bio"}`,
		orDefault(profile.Bio, "New content creator"), req.Message)

	var design transfer.PortfolioDesign
	if err := s.generate(ctx, featurePortfolio, prompt, &design); err != nil {
		return nil, err
	}

	remaining, ok, err := s.profiles.ConsumeCredit(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("deduct credit: %w", err)
	}
	if !ok {
		return nil, insufficientCredits(0)
	}
	return &transfer.PortfolioResult{Design: &design, RemainingCredits: remaining}, nil
}

func (s *aiService) generate(ctx context.Context, feature policy.Feature, prompt string, out any) (err error) {
	defer func() {
		metrics.AIGenerations.WithLabelValues(string(feature), metrics.Outcome(err)).Inc()
	}()
	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		zap.L().Error("text generation failed", zap.String("feature", string(feature)), zap.Error(err))
		return err
	}
	return decodeModelJSON(text, out)
}

func insufficientCredits(credits int) error {
	return &DeniedError{
		Reason:  "Insufficient credits",
		Details: map[string]any{"credits": credits, "required": portfolioCost},
	}
}

// loadProfile fetches the caller's profile and parses its tier.
func loadProfile(ctx context.Context, profiles repository.ProfileRepository, userID string) (*models.Profile, policy.Tier, error) {
	if userID == "" {
		return nil, policy.TierFree, ErrNotAuthenticated
	}
	profile, ok, err := profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, policy.TierFree, err
	}
	if !ok {
		return nil, policy.TierFree, fmt.Errorf("%w: Profile not found", ErrNotFound)
	}
	tier, err := policy.ParseTier(profile.SubscriptionTier)
	if err != nil {
		return nil, policy.TierFree, err
	}
	return profile, tier, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
