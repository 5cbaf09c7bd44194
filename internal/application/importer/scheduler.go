package importer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/shared"
)

// GuardStore serializes imports per owner: at most one feed of a given
// owner may be in flight at a time, even across multiple instances
type GuardStore interface {
	// Acquire claims the owner's slot for the given task. Returns false
	// when another task already holds it.
	Acquire(ctx context.Context, ownerID uuid.UUID, taskID string, ttl time.Duration) (bool, error)
	// Current returns the task id currently holding the owner's slot,
	// or shared.ErrNotFound when the slot is free
	Current(ctx context.Context, ownerID uuid.UUID) (string, error)
	// Release frees the owner's slot
	Release(ctx context.Context, ownerID uuid.UUID) error
}

// TaskStatus is the lifecycle of a background import task
type TaskStatus string

const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusSuccess TaskStatus = "success"
	TaskStatusFailure TaskStatus = "failure"
)

// TaskState is a point-in-time snapshot of a background import
type TaskState struct {
	ID      string              `json:"id"`
	OwnerID uuid.UUID           `json:"owner_id"`
	Status  TaskStatus          `json:"status"`
	Result  *Result             `json:"result,omitempty"`
	Error   *shared.DomainError `json:"error,omitempty"`
}

// taskRetention is how long a finished task stays pollable before it
// is evicted from memory
const taskRetention = time.Hour

// Scheduler runs feed imports in the background, one per owner at a
// time. Task results are held in memory for polling and evicted after
// taskRetention; the cross-instance exclusivity guard lives in the
// GuardStore.
type Scheduler struct {
	service   *Service
	guard     GuardStore
	timeout   time.Duration
	retention time.Duration
	logger    *zap.Logger

	mu    sync.RWMutex
	tasks map[string]*TaskState
}

func NewScheduler(service *Service, guard GuardStore, timeout time.Duration, logger *zap.Logger) *Scheduler {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Scheduler{
		service:   service,
		guard:     guard,
		timeout:   timeout,
		retention: taskRetention,
		logger:    logger,
		tasks:     make(map[string]*TaskState),
	}
}

// Enqueue starts a background import of the raw feed and returns the
// task id to poll. Fails with IMPORT_IN_PROGRESS when the owner already
// has a running import.
func (s *Scheduler) Enqueue(ctx context.Context, ownerID uuid.UUID, ownerEmail string, raw []byte) (string, error) {
	if current, err := s.guard.Current(ctx, ownerID); err == nil {
		return "", shared.NewDomainErrorWithContext(shared.CodeImportInProgress,
			"Previous import is still running",
			map[string]any{"task_id": current})
	} else if !errors.Is(err, shared.ErrNotFound) {
		return "", err
	}

	taskID := uuid.NewString()
	acquired, err := s.guard.Acquire(ctx, ownerID, taskID, s.timeout)
	if err != nil {
		return "", err
	}
	if !acquired {
		return "", shared.NewDomainError(shared.CodeImportInProgress, "Previous import is still running")
	}

	s.mu.Lock()
	s.tasks[taskID] = &TaskState{ID: taskID, OwnerID: ownerID, Status: TaskStatusPending}
	s.mu.Unlock()

	go s.run(taskID, ownerID, ownerEmail, raw)
	return taskID, nil
}

// Status returns a snapshot of the task, or shared.ErrNotFound
func (s *Scheduler) Status(taskID string) (*TaskState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.tasks[taskID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	snapshot := *state
	return &snapshot, nil
}

func (s *Scheduler) run(taskID string, ownerID uuid.UUID, ownerEmail string, raw []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	result, err := s.service.Import(ctx, ownerID, ownerEmail, raw)

	s.mu.Lock()
	state := s.tasks[taskID]
	if err != nil {
		state.Status = TaskStatusFailure
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			state.Error = domainErr
		} else {
			state.Error = shared.NewDomainError("INTERNAL_ERROR", err.Error())
		}
	} else {
		state.Status = TaskStatusSuccess
		state.Result = result
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("catalog import failed",
			zap.String("task_id", taskID),
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
	}

	if releaseErr := s.guard.Release(context.Background(), ownerID); releaseErr != nil {
		s.logger.Error("failed to release import guard",
			zap.String("owner_id", ownerID.String()),
			zap.Error(releaseErr))
	}

	time.AfterFunc(s.retention, func() {
		s.mu.Lock()
		delete(s.tasks, taskID)
		s.mu.Unlock()
	})
}
