package queue

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/cominiti-api/internal/service"
	"go.uber.org/zap"
)

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Producer schedules sync tasks. *asynq.Client satisfies taskEnqueuer.
type Producer struct {
	client taskEnqueuer
}

func NewProducer(client taskEnqueuer) *Producer {
	return &Producer{client: client}
}

func NewInstagramSyncTask(userID string) (*asynq.Task, error) {
	payload, err := json.Marshal(InstagramSyncPayload{UserID: userID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeInstagramSync, payload), nil
}

// syncUniqueTTL bounds the per-user lock. asynq only releases it when a task
// succeeds, so it must expire before the next refresh sweep.
const syncUniqueTTL = service.RefreshInterval / 2

// EnqueueSync queues at most one sync per user per sweep. A task already
// pending for the user is not an error.
func (p *Producer) EnqueueSync(ctx context.Context, userID string) error {
	task, err := NewInstagramSyncTask(userID)
	if err != nil {
		return err
	}

	info, err := p.client.EnqueueContext(ctx, task,
		asynq.Unique(syncUniqueTTL),
		asynq.MaxRetry(2))
	if errors.Is(err, asynq.ErrDuplicateTask) {
		zap.L().Debug("instagram sync already queued", zap.String("user_id", userID))
		return nil
	}
	if err != nil {
		return err
	}

	zap.L().Info("instagram sync queued", zap.String("user_id", userID), zap.String("task_id", info.ID))
	return nil
}
