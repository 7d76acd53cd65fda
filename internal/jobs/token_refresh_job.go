package job

import (
	"context"
	"sync"
	"time"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/repository"
	"github.com/maheshrc27/cominiti-api/internal/service"
	"go.uber.org/zap"
)

const concurrencyLimit = 10

// SyncEnqueuer hands a user's sync to the task queue.
type SyncEnqueuer interface {
	EnqueueSync(ctx context.Context, userID string) error
}

type TokenRefreshJob struct {
	profiles repository.ProfileRepository
	ig       service.InstagramService
	enqueuer SyncEnqueuer
	now      func() time.Time
}

// NewTokenRefreshJob builds the job. A nil enqueuer makes the job refresh
// tokens inline instead of scheduling syncs.
func NewTokenRefreshJob(
	profiles repository.ProfileRepository,
	ig service.InstagramService,
	enqueuer SyncEnqueuer) *TokenRefreshJob {
	return &TokenRefreshJob{
		profiles: profiles,
		ig:       ig,
		enqueuer: enqueuer,
		now:      time.Now,
	}
}

// Run satisfies cron.Job.
func (j *TokenRefreshJob) Run() {
	j.RefreshTokens(context.Background())
}

// RefreshTokens processes every account whose token expires within the
// refresh window and returns how many were handled successfully.
func (j *TokenRefreshJob) RefreshTokens(ctx context.Context) int {
	accounts, err := j.profiles.ListExpiring(ctx, j.now().Add(service.RefreshWindow))
	if err != nil {
		zap.L().Error("list expiring instagram tokens", zap.Error(err))
		return 0
	}
	if len(accounts) == 0 {
		return 0
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, acc := range accounts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *models.LinkedAccount) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if err := j.process(ctx, acc); err != nil {
				zap.L().Warn("instagram token refresh failed", zap.String("user_id", acc.UserID), zap.Error(err))
				return
			}
			mu.Lock()
			succeeded++
			mu.Unlock()
		}(acc)
	}
	wg.Wait()

	zap.L().Info("instagram token refresh finished",
		zap.Int("accounts", len(accounts)),
		zap.Int("succeeded", succeeded))
	return succeeded
}

func (j *TokenRefreshJob) process(ctx context.Context, acc *models.LinkedAccount) error {
	if j.enqueuer != nil {
		return j.enqueuer.EnqueueSync(ctx, acc.UserID)
	}
	return j.ig.RefreshToken(ctx, acc)
}
