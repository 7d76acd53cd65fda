package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/cominiti-api/internal/service"
	"go.uber.org/zap"
)

func (j *Queue) HandleInstagramSyncTask(ctx context.Context, task *asynq.Task) error {
	var payload InstagramSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.UserID == "" {
		return fmt.Errorf("empty user id: %w", asynq.SkipRetry)
	}

	res, err := j.ig.Sync(ctx, payload.UserID)
	if errors.Is(err, service.ErrNotLinked) {
		return fmt.Errorf("sync %s: %w: %w", payload.UserID, err, asynq.SkipRetry)
	}
	if err != nil {
		return fmt.Errorf("sync %s: %w", payload.UserID, err)
	}

	zap.L().Info("queued instagram sync done",
		zap.String("user_id", payload.UserID),
		zap.Int("posts", res.PostsCount))
	return nil
}
