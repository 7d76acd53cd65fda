package queue

import (
	"github.com/hibiken/asynq"
	"github.com/maheshrc27/cominiti-api/internal/service"
)

// Queue runs queued Instagram syncs.
type Queue struct {
	ig service.InstagramService
}

func NewQueue(ig service.InstagramService) *Queue {
	return &Queue{ig: ig}
}

const TaskTypeInstagramSync = "instagram:sync"

type InstagramSyncPayload struct {
	UserID string `json:"user_id"`
}

// Mux routes every task type this service consumes to its handler.
func (j *Queue) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeInstagramSync, j.HandleInstagramSyncTask)
	return mux
}
