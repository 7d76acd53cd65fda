package service

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/maheshrc27/cominiti-api/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) (*authService, testRepos) {
	t.Helper()
	repos := newTestRepos(t)
	cfg := testConfig()
	cfg.GoogleClientID = "google-client"
	cfg.GoogleClientSecret = "google-secret"
	cfg.GoogleRedirectURI = "https://api.example.com/login/callback"
	return NewAuthService(cfg, repos.users, repos.profiles).(*authService), repos
}

func TestLoginURL(t *testing.T) {
	svc, _ := newTestAuthService(t)

	u, err := url.Parse(svc.LoginURL("random-state"))
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "random-state", q.Get("state"))
	assert.Equal(t, "google-client", q.Get("client_id"))
	assert.Equal(t, "https://api.example.com/login/callback", q.Get("redirect_uri"))
	assert.Contains(t, q.Get("scope"), "userinfo.email")
}

func TestLoginCallback_EmptyCode(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.LoginCallback(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestUpsertGoogleUser_CreatesUserAndProfileOnce(t *testing.T) {
	svc, repos := newTestAuthService(t)
	svc.userInfo = func(ctx context.Context, client *http.Client) (*transfer.GoogleUserInfo, error) {
		return &transfer.GoogleUserInfo{ID: "g-1", Email: "ana@example.com", Name: "Ana"}, nil
	}
	info := &transfer.GoogleUserInfo{ID: "g-1", Email: "ana@example.com", Name: "Ana"}

	id, err := svc.upsertGoogleUser(context.Background(), info)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	again, err := svc.upsertGoogleUser(context.Background(), info)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	profile, ok, err := repos.profiles.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "free", profile.SubscriptionTier)
	assert.Equal(t, InitialCredits, profile.Credits)
	assert.Equal(t, "Ana", profile.FullName)
}

func TestSignUpSignIn(t *testing.T) {
	svc, repos := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, &transfer.Credentials{Email: " Ana@Example.com ", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "ana", user.Name)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	_, ok, err := repos.profiles.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.SignUp(ctx, &transfer.Credentials{Email: "ana@example.com", Password: "another-pass"})
	assert.ErrorIs(t, err, ErrConflict)

	signedIn, err := svc.SignIn(ctx, &transfer.Credentials{Email: "ANA@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.ID)

	_, err = svc.SignIn(ctx, &transfer.Credentials{Email: "ana@example.com", Password: "wrong-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, &transfer.Credentials{Email: "bob@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUp_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.SignUp(context.Background(), &transfer.Credentials{Email: "not-an-email", Password: "longenough"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.SignUp(context.Background(), &transfer.Credentials{Email: "ana@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSignIn_GoogleOnlyAccount(t *testing.T) {
	svc, _ := newTestAuthService(t)
	_, err := svc.upsertGoogleUser(context.Background(), &transfer.GoogleUserInfo{ID: "g-1", Email: "ana@example.com"})
	require.NoError(t, err)

	_, err = svc.SignIn(context.Background(), &transfer.Credentials{Email: "ana@example.com", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
