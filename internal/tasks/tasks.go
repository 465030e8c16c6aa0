package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/mertcaneren0/arkyatirim/internal/storage"
)

// TaskType defines the type of a background task.
const (
	TypeImageCleanup = "image:cleanup"
)

// ImageCleanupPayload lists stored image paths to remove. Used after a
// listing delete and as compensation when a validated upload batch ends up
// unpersisted.
type ImageCleanupPayload struct {
	Paths []string `json:"paths"`
}

// --- Task Client (Enqueuing tasks) ---

func NewClient(rdb *redis.Client) *asynq.Client {
	clientOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}
	return asynq.NewClient(clientOpt)
}

// Enqueuer is the subset of asynq.Client used to queue tasks; handlers depend
// on it so tests can substitute a mock.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewImageCleanupTask builds the cleanup task for a set of stored paths.
func NewImageCleanupTask(paths []string) (*asynq.Task, error) {
	payload, err := json.Marshal(ImageCleanupPayload{Paths: paths})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal image cleanup payload: %w", err)
	}
	return asynq.NewTask(TypeImageCleanup, payload), nil
}

// EnqueueImageCleanup queues best-effort removal of stored image files.
// Enqueue failures are logged only; file reclamation never fails the
// primary operation.
func EnqueueImageCleanup(client Enqueuer, paths []string) {
	if len(paths) == 0 {
		return
	}
	task, err := NewImageCleanupTask(paths)
	if err != nil {
		log.Printf("Image cleanup: %v", err)
		return
	}
	if _, err := client.Enqueue(task, asynq.Queue("cleanup")); err != nil {
		log.Printf("Image cleanup: failed to enqueue task for %d file(s): %v", len(paths), err)
	}
}

// --- Task Server (Processing tasks) ---

// TaskProcessor handles the processing of tasks.
type TaskProcessor struct {
	uploader storage.Uploader
}

// NewTaskProcessor creates a TaskProcessor around the active upload backend.
func NewTaskProcessor(uploader storage.Uploader) *TaskProcessor {
	return &TaskProcessor{uploader: uploader}
}

// HandleImageCleanupTask removes each file named in the payload. File-system
// failures are logged and swallowed: cleanup is best-effort and is never
// retried.
func (p *TaskProcessor) HandleImageCleanupTask(ctx context.Context, t *asynq.Task) error {
	var payload ImageCleanupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal image cleanup payload: %w", err)
	}

	for _, path := range payload.Paths {
		if err := p.uploader.Delete(ctx, path); err != nil {
			log.Printf("Image cleanup: failed to remove %s: %v", path, err)
		}
	}
	return nil
}

// SetupServer configures and returns an Asynq server instance for the
// cleanup worker.
func SetupServer(rdb *redis.Client, processor *TaskProcessor) (*asynq.Server, *asynq.ServeMux) {
	serverOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}

	srv := asynq.NewServer(
		serverOpt,
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"cleanup": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("Task %s failed: %v", task.Type(), err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeImageCleanup, processor.HandleImageCleanupTask)

	return srv, mux
}
