package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUploader struct {
	deleted []string
	failOn  string
}

func (u *recordingUploader) Save(ctx context.Context, storedName string, r io.Reader, contentType string) (string, error) {
	return "/uploads/" + storedName, nil
}

func (u *recordingUploader) Delete(ctx context.Context, publicPath string) error {
	if publicPath == u.failOn {
		return errors.New("remove failed")
	}
	u.deleted = append(u.deleted, publicPath)
	return nil
}

type recordingEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (e *recordingEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func TestNewImageCleanupTask(t *testing.T) {
	task, err := NewImageCleanupTask([]string{"/uploads/a.jpg", "/uploads/b.jpg"})
	require.NoError(t, err)
	assert.Equal(t, TypeImageCleanup, task.Type())

	var payload ImageCleanupPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg"}, payload.Paths)
}

func TestEnqueueImageCleanup(t *testing.T) {
	enq := &recordingEnqueuer{}
	EnqueueImageCleanup(enq, []string{"/uploads/a.jpg"})
	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TypeImageCleanup, enq.tasks[0].Type())

	// An empty batch enqueues nothing
	EnqueueImageCleanup(enq, nil)
	assert.Len(t, enq.tasks, 1)

	// Enqueue failures are swallowed; cleanup never fails the caller
	failing := &recordingEnqueuer{err: errors.New("redis down")}
	EnqueueImageCleanup(failing, []string{"/uploads/a.jpg"})
}

func TestHandleImageCleanupTask(t *testing.T) {
	uploader := &recordingUploader{failOn: "/uploads/stuck.jpg"}
	processor := NewTaskProcessor(uploader)

	task, err := NewImageCleanupTask([]string{"/uploads/a.jpg", "/uploads/stuck.jpg", "/uploads/b.jpg"})
	require.NoError(t, err)

	// Per-file failures are logged and skipped, never retried
	err = processor.HandleImageCleanupTask(context.Background(), task)
	assert.NoError(t, err)
	assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg"}, uploader.deleted)

	// A malformed payload is a hard error
	err = processor.HandleImageCleanupTask(context.Background(), asynq.NewTask(TypeImageCleanup, []byte("not json")))
	assert.Error(t, err)
}
