package job

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/repository"
	"github.com/maheshrc27/cominiti-api/internal/repository/localdb"
	"github.com/maheshrc27/cominiti-api/internal/service"
	"github.com/maheshrc27/cominiti-api/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	users []string
	fail  map[string]bool
}

func (r *recorder) record(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, userID)
	if r.fail[userID] {
		return errors.New("boom")
	}
	return nil
}

func (r *recorder) sorted() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]string(nil), r.users...)
	sort.Strings(out)
	return out
}

type fakeInstagram struct {
	service.InstagramService
	rec *recorder
}

func (f fakeInstagram) RefreshToken(ctx context.Context, account *models.LinkedAccount) error {
	return f.rec.record(account.UserID)
}

func (f fakeInstagram) Sync(ctx context.Context, userID string) (*transfer.SyncResult, error) {
	return nil, errors.New("not expected")
}

type fakeEnqueuer struct{ rec *recorder }

func (f fakeEnqueuer) EnqueueSync(ctx context.Context, userID string) error {
	return f.rec.record(userID)
}

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func seedAccounts(t *testing.T) repository.ProfileRepository {
	t.Helper()
	profiles := localdb.NewProfileRepository(localdb.New(filepath.Join(t.TempDir(), "db.json")))
	ctx := context.Background()

	expiries := map[string]time.Duration{
		"soon":    2 * 24 * time.Hour,
		"edge":    6 * 24 * time.Hour,
		"later":   30 * 24 * time.Hour,
		"expired": -time.Hour,
	}
	for id, in := range expiries {
		require.NoError(t, profiles.Create(ctx, &models.Profile{ID: id, SubscriptionTier: "free"}))
		require.NoError(t, profiles.UpsertLinkedAccount(ctx, &models.LinkedAccount{
			UserID:          id,
			InstagramUserID: "ig-" + id,
			Username:        id,
			AccessToken:     "enc-" + id,
			TokenExpiresAt:  testNow.Add(in),
		}))
	}
	require.NoError(t, profiles.Create(ctx, &models.Profile{ID: "unlinked", SubscriptionTier: "free"}))
	return profiles
}

func TestRefreshTokens_Inline(t *testing.T) {
	rec := &recorder{fail: map[string]bool{"edge": true}}
	job := NewTokenRefreshJob(seedAccounts(t), fakeInstagram{rec: rec}, nil)
	job.now = func() time.Time { return testNow }

	succeeded := job.RefreshTokens(context.Background())

	assert.Equal(t, []string{"edge", "expired", "soon"}, rec.sorted())
	assert.Equal(t, 2, succeeded)
}

func TestRefreshTokens_Enqueues(t *testing.T) {
	refreshed := &recorder{}
	enqueued := &recorder{}
	job := NewTokenRefreshJob(seedAccounts(t), fakeInstagram{rec: refreshed}, fakeEnqueuer{rec: enqueued})
	job.now = func() time.Time { return testNow }

	succeeded := job.RefreshTokens(context.Background())

	assert.Equal(t, []string{"edge", "expired", "soon"}, enqueued.sorted())
	assert.Empty(t, refreshed.sorted())
	assert.Equal(t, 3, succeeded)
}

func TestRefreshTokens_NothingDue(t *testing.T) {
	rec := &recorder{}
	job := NewTokenRefreshJob(seedAccounts(t), fakeInstagram{rec: rec}, nil)
	job.now = func() time.Time { return testNow.Add(-60 * 24 * time.Hour) }

	assert.Equal(t, 0, job.RefreshTokens(context.Background()))
	assert.Empty(t, rec.sorted())
}
