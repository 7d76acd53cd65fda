package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/repository"
	"github.com/maheshrc27/cominiti-api/internal/transfer"
	"github.com/maheshrc27/cominiti-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestInstagramService(t *testing.T) (*instagramService, *fakeInstagram, testRepos) {
	t.Helper()
	repos := newTestRepos(t)
	client := newFakeInstagram()
	svc := NewInstagramService(testConfig(), client, repos.profiles, repos.posts).(*instagramService)
	svc.now = func() time.Time { return testNow }
	return svc, client, repos
}

func connectToken(t *testing.T, svc *instagramService, userID string) string {
	t.Helper()
	token, err := svc.ConnectToken(userID)
	require.NoError(t, err)
	return token.Token
}

func linkAccount(t *testing.T, svc *instagramService, userID string, expiresAt time.Time) {
	t.Helper()
	encrypted, err := utils.Encrypt([]byte("stored-token"), []byte(testSecret))
	require.NoError(t, err)
	require.NoError(t, svc.profiles.UpsertLinkedAccount(context.Background(), &models.LinkedAccount{
		UserID:          userID,
		InstagramUserID: "17841400000",
		Username:        "creator",
		AccessToken:     encrypted,
		TokenExpiresAt:  expiresAt,
	}))
}

func TestAuthURL_CarriesStateAndScope(t *testing.T) {
	svc, _, _ := newTestInstagramService(t)

	raw, err := svc.AuthURL("tok-123", "https://api.example.com/cb")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "tok-123", q.Get("state"))
	assert.Equal(t, "instagram_business_basic", q.Get("scope"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "https://api.example.com/cb", q.Get("redirect_uri"))

	_, err = svc.AuthURL("", "https://api.example.com/cb")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCallback_ProviderErrorMakesNoCalls(t *testing.T) {
	svc, client, _ := newTestInstagramService(t)

	_, err := svc.Callback(context.Background(), CallbackRequest{Error: "access_denied", Code: "abc", State: "x"})

	assert.ErrorIs(t, err, ErrAuthDenied)
	assert.Equal(t, CodeAuthDenied, CallbackCode(err))
	assert.Empty(t, client.calls)
}

func TestCallback_MissingCode(t *testing.T) {
	svc, client, _ := newTestInstagramService(t)

	_, err := svc.Callback(context.Background(), CallbackRequest{State: connectToken(t, svc, "u1")})

	assert.Equal(t, CodeNoCode, CallbackCode(err))
	assert.Empty(t, client.calls)
}

func TestCallback_MissingCorrelationSkipsExchange(t *testing.T) {
	svc, client, _ := newTestInstagramService(t)

	_, err := svc.Callback(context.Background(), CallbackRequest{Code: "abc"})
	assert.Equal(t, CodeNoUserID, CallbackCode(err))

	_, err = svc.Callback(context.Background(), CallbackRequest{Code: "abc", State: "not-a-token"})
	assert.Equal(t, CodeNoUserID, CallbackCode(err))

	session, err := utils.GenerateToken(testSecret, "u1", time.Hour)
	require.NoError(t, err)
	_, err = svc.Callback(context.Background(), CallbackRequest{Code: "abc", State: session})
	assert.Equal(t, CodeNoUserID, CallbackCode(err), "session tokens are not correlation tokens")

	assert.Empty(t, client.calls)
}

func TestCallback_LinksAccount(t *testing.T) {
	svc, client, repos := newTestInstagramService(t)

	userID, err := svc.Callback(context.Background(), CallbackRequest{
		Code:        "abc",
		CookieToken: connectToken(t, svc, "u1"),
		RedirectURI: "https://api.example.com/cb",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, CodeConnected, CallbackCode(err))
	assert.Equal(t, []string{"exchange_code", "exchange_long_lived", "profile"}, client.calls)

	account, ok, err := repos.profiles.GetLinkedAccount(context.Background(), "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "creator", account.Username)
	assert.WithinDuration(t, testNow.Add(time.Duration(client.longLife)*time.Second), account.TokenExpiresAt, time.Second)

	plain, err := utils.Decrypt(account.AccessToken, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "long-token", plain)

	profile, _, err := repos.profiles.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, profile.IsOnboarded)
}

func TestCallback_StatePrecedesCookie(t *testing.T) {
	svc, _, _ := newTestInstagramService(t)

	userID, err := svc.Callback(context.Background(), CallbackRequest{
		Code:        "abc",
		State:       connectToken(t, svc, "from-state"),
		CookieToken: connectToken(t, svc, "from-cookie"),
	})
	require.NoError(t, err)
	assert.Equal(t, "from-state", userID)
}

func TestCallback_StepFailures(t *testing.T) {
	tests := []struct {
		failOn string
		want   error
		calls  int
	}{
		{"exchange_code", ErrTokenExchangeFailed, 1},
		{"exchange_long_lived", ErrTokenUpgradeFailed, 2},
		{"profile", ErrProfileFetchFailed, 3},
	}
	for _, tt := range tests {
		t.Run(tt.failOn, func(t *testing.T) {
			svc, client, repos := newTestInstagramService(t)
			client.failOn[tt.failOn] = true

			_, err := svc.Callback(context.Background(), CallbackRequest{Code: "abc", State: connectToken(t, svc, "u1")})

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, CodeAuthFailed, CallbackCode(err))
			assert.Len(t, client.calls, tt.calls)
			_, ok, err := repos.profiles.GetLinkedAccount(context.Background(), "u1")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSync_NotLinked(t *testing.T) {
	svc, client, _ := newTestInstagramService(t)

	_, err := svc.Sync(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNotLinked)

	_, err = svc.Sync(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, client.calls)
}

func TestSync_RefreshWindow(t *testing.T) {
	tests := []struct {
		name        string
		expiresIn   time.Duration
		wantRefresh bool
	}{
		{"three days out", 3 * 24 * time.Hour, true},
		{"thirty days out", 30 * 24 * time.Hour, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, client, repos := newTestInstagramService(t)
			linkAccount(t, svc, "u1", testNow.Add(tt.expiresIn))

			_, err := svc.Sync(context.Background(), "u1")
			require.NoError(t, err)

			account, _, err := repos.profiles.GetLinkedAccount(context.Background(), "u1")
			require.NoError(t, err)
			plain, err := utils.Decrypt(account.AccessToken, []byte(testSecret))
			require.NoError(t, err)

			if tt.wantRefresh {
				assert.Equal(t, []string{"refresh_token", "profile", "media"}, client.calls)
				assert.Equal(t, "refreshed-token", plain)
				assert.WithinDuration(t, testNow.Add(time.Duration(client.longLife)*time.Second), account.TokenExpiresAt, time.Second)
			} else {
				assert.Equal(t, []string{"profile", "media"}, client.calls)
				assert.Equal(t, "stored-token", plain)
			}
		})
	}
}

func TestSync_RefreshFailureContinues(t *testing.T) {
	svc, client, _ := newTestInstagramService(t)
	linkAccount(t, svc, "u1", testNow.Add(24*time.Hour))
	client.failOn["refresh_token"] = true

	res, err := svc.Sync(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "success", res.Status)
	assert.Equal(t, []string{"refresh_token", "profile", "media"}, client.calls)
}

type failingTokenStore struct {
	repository.ProfileRepository
}

func (failingTokenStore) UpdateToken(ctx context.Context, userID, accessToken string, expiresAt time.Time) error {
	return errors.New("disk full")
}

func TestSync_UsesRefreshedTokenWhenPersistFails(t *testing.T) {
	svc, client, repos := newTestInstagramService(t)
	linkAccount(t, svc, "u1", testNow.Add(24*time.Hour))
	svc.profiles = failingTokenStore{repos.profiles}

	res, err := svc.Sync(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "success", res.Status)
	assert.Equal(t, []string{"refreshed-token", "refreshed-token"}, client.tokens)

	account, _, err := repos.profiles.GetLinkedAccount(context.Background(), "u1")
	require.NoError(t, err)
	plain, err := utils.Decrypt(account.AccessToken, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "stored-token", plain)
}

func TestSync_UpsertsMediaIdempotently(t *testing.T) {
	svc, client, repos := newTestInstagramService(t)
	linkAccount(t, svc, "u1", testNow.Add(30*24*time.Hour))
	client.media = []transfer.InstagramMedia{
		{ID: "m1", Caption: "hello", MediaType: models.MediaTypeImage, MediaURL: "https://cdn/m1.jpg", Permalink: "https://ig/p/m1", Timestamp: "2025-02-01T10:00:00+0000"},
		{ID: "m2", MediaType: models.MediaTypeVideo, ThumbnailURL: "https://cdn/m2-thumb.jpg", Permalink: "https://ig/p/m2", Timestamp: "2025-02-02T10:00:00+0000"},
		{ID: "bad", MediaType: models.MediaTypeImage, Timestamp: "yesterday"},
	}

	res, err := svc.Sync(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.PostsCount)
	assert.Equal(t, "Synced 2 posts from @creator", res.Message)

	first, err := repos.posts.ListByUserID(context.Background(), "u1", true)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "m2", first[0].InstagramPostID, "newest first")
	assert.Equal(t, "https://cdn/m2-thumb.jpg", first[0].MediaURL)
	assert.Nil(t, first[0].Caption)
	assert.Equal(t, "https://cdn/m1.jpg", first[1].MediaURL)
	assert.False(t, first[1].IsHidden)

	require.NoError(t, svc.SetVisibility(context.Background(), "u1", first[1].ID, true))

	_, err = svc.Sync(context.Background(), "u1")
	require.NoError(t, err)

	second, err := repos.posts.ListByUserID(context.Background(), "u1", true)
	require.NoError(t, err)
	require.Len(t, second, 2)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].InstagramPostID, second[i].InstagramPostID)
	}
	assert.True(t, second[1].IsHidden, "sync keeps the visibility flag")

	visible, err := svc.ListPosts(context.Background(), "u1", false)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	profile, _, err := repos.profiles.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, profile.PostsCount)
}

func TestSetVisibility_UnknownPost(t *testing.T) {
	svc, _, _ := newTestInstagramService(t)

	err := svc.SetVisibility(context.Background(), "u1", "missing", true)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.SetVisibility(context.Background(), "u1", "", true)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestToPost_TimestampLayouts(t *testing.T) {
	for _, ts := range []string{"2025-02-01T10:00:00+0000", "2025-02-01T10:00:00Z"} {
		post, err := toPost("u1", transfer.InstagramMedia{ID: "m", MediaType: models.MediaTypeImage, Timestamp: ts})
		require.NoError(t, err, ts)
		assert.True(t, post.PostedAt.Equal(time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)))
	}
}
