package importer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/shared"
)

type memGuard struct {
	mu    sync.Mutex
	slots map[uuid.UUID]string
}

func newMemGuard() *memGuard {
	return &memGuard{slots: map[uuid.UUID]string{}}
}

func (g *memGuard) Acquire(_ context.Context, ownerID uuid.UUID, taskID string, _ time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, taken := g.slots[ownerID]; taken {
		return false, nil
	}
	g.slots[ownerID] = taskID
	return true, nil
}

func (g *memGuard) Current(_ context.Context, ownerID uuid.UUID) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if taskID, ok := g.slots[ownerID]; ok {
		return taskID, nil
	}
	return "", shared.ErrNotFound
}

func (g *memGuard) Release(_ context.Context, ownerID uuid.UUID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.slots, ownerID)
	return nil
}

func waitForTask(t *testing.T, scheduler *Scheduler, taskID string) *TaskState {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("task did not finish in time")
		case <-time.After(10 * time.Millisecond):
		}
		state, err := scheduler.Status(taskID)
		require.NoError(t, err)
		if state.Status != TaskStatusPending {
			return state
		}
	}
}

func TestSchedulerRunsImport(t *testing.T) {
	repos := newMemRepos()
	scheduler := NewScheduler(newTestService(repos), newMemGuard(), time.Minute, zap.NewNop())
	ownerID := uuid.New()

	taskID, err := scheduler.Enqueue(context.Background(), ownerID, "owner@example.com", []byte(sampleFeed))
	require.NoError(t, err)
	require.NotEmpty(t, taskID)

	state := waitForTask(t, scheduler, taskID)
	assert.Equal(t, TaskStatusSuccess, state.Status)
	require.NotNil(t, state.Result)
	assert.Equal(t, 2, state.Result.Created)

	_, err = repos.Shops.FindByOwner(context.Background(), ownerID)
	assert.NoError(t, err)
}

func TestSchedulerReportsFailure(t *testing.T) {
	scheduler := NewScheduler(newTestService(newMemRepos()), newMemGuard(), time.Minute, zap.NewNop())

	taskID, err := scheduler.Enqueue(context.Background(), uuid.New(), "owner@example.com", []byte(`{"goods": []}`))
	require.NoError(t, err)

	state := waitForTask(t, scheduler, taskID)
	assert.Equal(t, TaskStatusFailure, state.Status)
	require.NotNil(t, state.Error)
	assert.Equal(t, shared.CodeParseError, state.Error.Code)
}

func TestSchedulerGuardsConcurrentImports(t *testing.T) {
	guard := newMemGuard()
	scheduler := NewScheduler(newTestService(newMemRepos()), guard, time.Minute, zap.NewNop())
	ownerID := uuid.New()

	// hold the slot as if another instance were importing
	acquired, err := guard.Acquire(context.Background(), ownerID, "other-task", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	_, err = scheduler.Enqueue(context.Background(), ownerID, "owner@example.com", []byte(sampleFeed))
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeImportInProgress, domainErr.Code)

	// a different owner is unaffected
	_, err = scheduler.Enqueue(context.Background(), uuid.New(), "other@example.com", []byte(sampleFeed))
	assert.NoError(t, err)
}

func TestSchedulerEvictsFinishedTasks(t *testing.T) {
	scheduler := NewScheduler(newTestService(newMemRepos()), newMemGuard(), time.Minute, zap.NewNop())
	scheduler.retention = 20 * time.Millisecond

	taskID, err := scheduler.Enqueue(context.Background(), uuid.New(), "owner@example.com", []byte(sampleFeed))
	require.NoError(t, err)

	state := waitForTask(t, scheduler, taskID)
	assert.Equal(t, TaskStatusSuccess, state.Status)

	require.Eventually(t, func() bool {
		_, err := scheduler.Status(taskID)
		return errors.Is(err, shared.ErrNotFound)
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSchedulerUnknownTask(t *testing.T) {
	scheduler := NewScheduler(newTestService(newMemRepos()), newMemGuard(), time.Minute, zap.NewNop())
	_, err := scheduler.Status("missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
