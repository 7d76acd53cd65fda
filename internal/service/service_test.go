package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	config "github.com/maheshrc27/cominiti-api/configs"
	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/repository"
	"github.com/maheshrc27/cominiti-api/internal/repository/localdb"
	"github.com/maheshrc27/cominiti-api/internal/transfer"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

type testRepos struct {
	users        repository.UserRepository
	profiles     repository.ProfileRepository
	posts        repository.PostRepository
	keys         repository.ApiKeyRepository
	brands       repository.BrandRepository
	campaigns    repository.CampaignRepository
	applications repository.ApplicationRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	store := localdb.New(filepath.Join(t.TempDir(), "database.json"))
	return testRepos{
		users:        localdb.NewUserRepository(store),
		profiles:     localdb.NewProfileRepository(store),
		posts:        localdb.NewPostRepository(store),
		keys:         localdb.NewApiKeyRepository(store),
		brands:       localdb.NewBrandRepository(store),
		campaigns:    localdb.NewCampaignRepository(store),
		applications: localdb.NewApplicationRepository(store),
	}
}

func testConfig() config.Config {
	return config.Config{
		SecretKey:            testSecret,
		FrontendURL:          "https://app.example.com",
		InstagramRedirectURI: "https://api.example.com/auth/instagram/callback",
	}
}

func seedProfile(t *testing.T, repos testRepos, id, tier string, mutate func(p *models.Profile)) {
	t.Helper()
	p := &models.Profile{ID: id, SubscriptionTier: tier, Credits: 1}
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, repos.profiles.Create(context.Background(), p))
}

var errFake = errors.New("fake provider failure")

// fakeInstagram records the order of provider calls.
type fakeInstagram struct {
	calls    []string
	failOn   map[string]bool
	profile  transfer.InstagramProfile
	media    []transfer.InstagramMedia
	longLife int64
	tokens   []string
}

func newFakeInstagram() *fakeInstagram {
	return &fakeInstagram{
		failOn:   map[string]bool{},
		profile:  transfer.InstagramProfile{ID: "17841400000", Username: "creator", MediaCount: 2},
		longLife: 60 * 24 * 3600,
	}
}

func (f *fakeInstagram) record(op string) error {
	f.calls = append(f.calls, op)
	if f.failOn[op] {
		return errFake
	}
	return nil
}

func (f *fakeInstagram) AuthorizeURL(redirectURI, state string) string {
	return NewInstagramClient(config.Config{InstagramClientID: "client"}, nil).AuthorizeURL(redirectURI, state)
}

func (f *fakeInstagram) ExchangeCode(ctx context.Context, code, redirectURI string) (*transfer.InstagramShortLivedToken, error) {
	if err := f.record("exchange_code"); err != nil {
		return nil, err
	}
	return &transfer.InstagramShortLivedToken{AccessToken: "short-" + code}, nil
}

func (f *fakeInstagram) ExchangeLongLived(ctx context.Context, shortLivedToken string) (*transfer.InstagramLongLivedToken, error) {
	if err := f.record("exchange_long_lived"); err != nil {
		return nil, err
	}
	return &transfer.InstagramLongLivedToken{AccessToken: "long-token", ExpiresIn: f.longLife}, nil
}

func (f *fakeInstagram) RefreshToken(ctx context.Context, accessToken string) (*transfer.InstagramLongLivedToken, error) {
	if err := f.record("refresh_token"); err != nil {
		return nil, err
	}
	return &transfer.InstagramLongLivedToken{AccessToken: "refreshed-token", ExpiresIn: f.longLife}, nil
}

func (f *fakeInstagram) GetProfile(ctx context.Context, accessToken string) (*transfer.InstagramProfile, error) {
	f.tokens = append(f.tokens, accessToken)
	if err := f.record("profile"); err != nil {
		return nil, err
	}
	p := f.profile
	return &p, nil
}

func (f *fakeInstagram) GetMedia(ctx context.Context, accessToken string, limit int) ([]transfer.InstagramMedia, error) {
	f.tokens = append(f.tokens, accessToken)
	if err := f.record("media"); err != nil {
		return nil, err
	}
	return f.media, nil
}
