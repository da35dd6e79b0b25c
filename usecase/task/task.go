package task

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/planday/backend/domain"
	"github.com/planday/backend/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) GetTask(ctx context.Context, userID, id string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := validate(task); err != nil {
		return nil, err
	}
	if task.Status == "" {
		task.Status = domain.StatusPending
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	return uc.tasks.Create(ctx, task)
}

// UpdateTask applies a partial update: zero-valued fields of patch keep
// the stored value.
func (uc *UseCase) UpdateTask(ctx context.Context, patch *domain.Task) (*domain.Task, error) {
	if patch == nil {
		return nil, domain.ErrInvalidPayload
	}
	current, err := uc.GetTask(ctx, patch.UserID, patch.ID)
	if err != nil {
		return nil, err
	}

	merged := mergeTask(current, patch)
	if err := validate(merged); err != nil {
		return nil, err
	}

	if err := uc.tasks.Update(ctx, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func mergeTask(current, patch *domain.Task) *domain.Task {
	merged := *current
	if patch.Title != "" {
		merged.Title = patch.Title
	}
	if patch.Description != "" {
		merged.Description = patch.Description
	}
	if patch.Priority != "" {
		merged.Priority = patch.Priority
	}
	if patch.Status != "" {
		merged.Status = patch.Status
	}
	if patch.EstimatedDuration != nil {
		merged.EstimatedDuration = patch.EstimatedDuration
	}
	if patch.ActualStart != nil {
		merged.ActualStart = patch.ActualStart
	}
	if patch.ActualEnd != nil {
		merged.ActualEnd = patch.ActualEnd
	}
	if patch.Tags != nil {
		merged.Tags = patch.Tags
	}
	if patch.Metadata != nil {
		merged.Metadata = patch.Metadata
	}
	return &merged
}

func (uc *UseCase) DeleteTask(ctx context.Context, userID, id string) error {
	if _, err := uc.GetTask(ctx, userID, id); err != nil {
		return err
	}
	return uc.tasks.Delete(ctx, id)
}

func validate(task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	if strings.TrimSpace(task.Title) == "" {
		return domain.NewError(domain.ErrCodeInvalid, "task title is required")
	}
	if task.Priority != "" && !task.Priority.Valid() {
		return domain.NewError(domain.ErrCodeInvalid, "unknown priority: "+string(task.Priority))
	}
	if task.Status != "" && !task.Status.Valid() {
		return domain.NewError(domain.ErrCodeInvalid, "unknown status: "+string(task.Status))
	}
	if task.EstimatedDuration != nil && *task.EstimatedDuration <= 0 {
		return domain.NewError(domain.ErrCodeInvalid, "estimated_duration must be positive")
	}
	return nil
}
