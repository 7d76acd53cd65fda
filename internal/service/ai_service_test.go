package service

import (
	"context"
	"errors"
	"testing"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

func newTestAIService(t *testing.T, reply string) (AIService, *fakeGenerator, testRepos) {
	t.Helper()
	repos := newTestRepos(t)
	gen := &fakeGenerator{reply: reply}
	return NewAIService(gen, repos.profiles), gen, repos
}

func TestGenerateContract_EliteOnly(t *testing.T) {
	svc, gen, repos := newTestAIService(t, "```json\n{\"title\":\"COLLABORATION AGREEMENT\",\"content\":\"## Terms\"}\n```")
	seedProfile(t, repos, "growth", "growth_pro", nil)
	seedProfile(t, repos, "elite", "elite", nil)

	_, err := svc.GenerateContract(context.Background(), "growth", &transfer.ContractRequest{SponsorName: "Acme"})
	var denied *DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, "Elite tier required", denied.Reason)
	assert.ErrorIs(t, err, ErrUpgradeRequired)
	assert.Empty(t, gen.prompts)

	contract, err := svc.GenerateContract(context.Background(), "elite", &transfer.ContractRequest{SponsorName: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "COLLABORATION AGREEMENT", contract.Title)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Acme")
	assert.Contains(t, gen.prompts[0], "Non-exclusive")
}

func TestGenerateContract_MissingProfile(t *testing.T) {
	svc, _, _ := newTestAIService(t, "")

	_, err := svc.GenerateContract(context.Background(), "nobody", &transfer.ContractRequest{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GenerateContract(context.Background(), "", &transfer.ContractRequest{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestGenerateContract_UnknownTier(t *testing.T) {
	svc, _, repos := newTestAIService(t, "")
	seedProfile(t, repos, "u1", "platinum", nil)

	_, err := svc.GenerateContract(context.Background(), "u1", &transfer.ContractRequest{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpgradeRequired)
}

func TestGenerateEmail_TemplateModes(t *testing.T) {
	svc, gen, repos := newTestAIService(t, `{"subject":"Hi","body":"Let's work"}`)
	seedProfile(t, repos, "free", "free", nil)
	seedProfile(t, repos, "plus", "creator_plus", nil)

	email, err := svc.GenerateEmail(context.Background(), "free", &transfer.EmailRequest{Type: "smart", Context: "rate_inquiry"})
	require.NoError(t, err)
	assert.True(t, email.IsTemplate)
	assert.Equal(t, "Rate Card & Media Kit Request", email.Subject)

	email, err = svc.GenerateEmail(context.Background(), "plus", &transfer.EmailRequest{Type: "template", Context: "unknown"})
	require.NoError(t, err)
	assert.True(t, email.IsTemplate)
	assert.Equal(t, "Partnership Opportunity: [Brand Name] x [Your Name]", email.Subject)
	assert.NotContains(t, email.Body, "Subject:")
	assert.Empty(t, gen.prompts)

	email, err = svc.GenerateEmail(context.Background(), "plus", &transfer.EmailRequest{Type: "smart", Context: "brand_pitch", Tone: "friendly"})
	require.NoError(t, err)
	assert.False(t, email.IsTemplate)
	assert.Equal(t, "Hi", email.Subject)
	assert.Len(t, gen.prompts, 1)
}

func TestEstimateRate_FreeUsageCeiling(t *testing.T) {
	svc, gen, repos := newTestAIService(t, `{"minRate":100,"maxRate":250,"currency":"USD","justification":"solid engagement"}`)
	seedProfile(t, repos, "free", "free", nil)

	res, err := svc.EstimateRate(context.Background(), "free", &transfer.RateRequest{Niche: "fitness", Followers: 12000})
	require.NoError(t, err)
	assert.Equal(t, float64(250), res.Estimate.MaxRate)
	require.NotNil(t, res.Usage)
	assert.Equal(t, 1, *res.Usage)

	_, err = svc.EstimateRate(context.Background(), "free", &transfer.RateRequest{Niche: "fitness"})
	var denied *DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, "Free limit reached", denied.Reason)
	assert.True(t, denied.Upgrade)
	assert.Len(t, gen.prompts, 1)
}

func TestEstimateRate_FailureDoesNotCountUsage(t *testing.T) {
	svc, gen, repos := newTestAIService(t, "not json")
	seedProfile(t, repos, "free", "free", nil)

	_, err := svc.EstimateRate(context.Background(), "free", &transfer.RateRequest{})
	var failure *FailedError
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "Invalid AI response format", failure.Message)

	gen.reply = `{"minRate":1,"maxRate":2,"currency":"USD"}`
	res, err := svc.EstimateRate(context.Background(), "free", &transfer.RateRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, *res.Usage)
}

func TestEstimateRate_PaidTiersUnlimited(t *testing.T) {
	svc, _, repos := newTestAIService(t, `{"minRate":1,"maxRate":2,"currency":"USD"}`)
	seedProfile(t, repos, "pro", "growth_pro", func(p *models.Profile) { p.RateEstimatorUsage = 40 })

	res, err := svc.EstimateRate(context.Background(), "pro", &transfer.RateRequest{})
	require.NoError(t, err)
	assert.Nil(t, res.Usage)

	profile, _, err := repos.profiles.GetByID(context.Background(), "pro")
	require.NoError(t, err)
	assert.Equal(t, 40, profile.RateEstimatorUsage)
}

func TestGeneratePortfolio_ConsumesCredit(t *testing.T) {
	svc, gen, repos := newTestAIService(t, `{"theme":"Minimal","colorPalette":["#fff","#000","#eee","#111"],"typography":"Inter","layout":"Grid","tagline":"Made simple"}`)
	seedProfile(t, repos, "u1", "free", nil)

	res, err := svc.GeneratePortfolio(context.Background(), "u1", &transfer.PortfolioRequest{Message: "clean"})
	require.NoError(t, err)
	assert.Equal(t, "Minimal", res.Design.Theme)
	assert.Equal(t, 0, res.RemainingCredits)

	_, err = svc.GeneratePortfolio(context.Background(), "u1", &transfer.PortfolioRequest{})
	var denied *DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, "Insufficient credits", denied.Reason)
	assert.False(t, denied.Upgrade)
	assert.Equal(t, 0, denied.Details["credits"])
	assert.Equal(t, 1, denied.Details["required"])
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, gen.prompts, 1)
}

func TestGeneratePortfolio_GenerationFailureKeepsCredit(t *testing.T) {
	svc, gen, repos := newTestAIService(t, "")
	gen.err = errors.New("model offline")
	seedProfile(t, repos, "u1", "free", nil)

	_, err := svc.GeneratePortfolio(context.Background(), "u1", &transfer.PortfolioRequest{})
	require.Error(t, err)

	profile, _, err := repos.profiles.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.Credits)
}

func TestDecodeModelJSON(t *testing.T) {
	var out transfer.Contract
	require.NoError(t, decodeModelJSON("```json\n{\"title\":\"T\"}\n```", &out))
	assert.Equal(t, "T", out.Title)

	err := decodeModelJSON("Sure! Here you go", &out)
	var failure *FailedError
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "Invalid AI response format", failure.Message)
}

func TestDisabledGenerator(t *testing.T) {
	gen, err := NewGeminiGenerator(context.Background(), "", "gemini-pro")
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrGeneratorDisabled)
}
