package task

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planday/backend/domain"
	"github.com/planday/backend/repository"
)

type fakeTaskRepo struct {
	tasks map[string]*domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if t, ok := f.tasks[id]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (f *fakeTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range f.tasks {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTaskRepo) ListBacklog(ctx context.Context, userID string) ([]domain.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	clone := *task
	f.tasks[task.ID] = &clone
	return task, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	clone := *task
	f.tasks[task.ID] = &clone
	return nil
}

func (f *fakeTaskRepo) SetScheduledWindow(ctx context.Context, id string, start, end *time.Time) error {
	return nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func intPtr(v int) *int { return &v }

func TestCreateTaskDefaults(t *testing.T) {
	uc := New(newFakeTaskRepo(), nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{
		UserID: "u1",
		Title:  "Write report",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, domain.PriorityMedium, created.Priority)
}

func TestCreateTaskValidation(t *testing.T) {
	uc := New(newFakeTaskRepo(), nil)

	tests := []struct {
		name string
		task *domain.Task
	}{
		{"nil task", nil},
		{"blank title", &domain.Task{UserID: "u1", Title: "   "}},
		{"bad priority", &domain.Task{UserID: "u1", Title: "x", Priority: "whenever"}},
		{"bad status", &domain.Task{UserID: "u1", Title: "x", Status: "paused"}},
		{"non-positive estimate", &domain.Task{UserID: "u1", Title: "x", EstimatedDuration: intPtr(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateTask(context.Background(), tt.task)
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
		})
	}
}

func TestUpdateTaskMergesPartialPatch(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{
		UserID:            "u1",
		Title:             "Write report",
		Description:       "quarterly numbers",
		Priority:          domain.PriorityHigh,
		EstimatedDuration: intPtr(90),
	})
	require.NoError(t, err)

	updated, err := uc.UpdateTask(context.Background(), &domain.Task{
		ID:     created.ID,
		UserID: "u1",
		Status: domain.StatusInProgress,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusInProgress, updated.Status)
	assert.Equal(t, "Write report", updated.Title)
	assert.Equal(t, "quarterly numbers", updated.Description)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)
	require.NotNil(t, updated.EstimatedDuration)
	assert.Equal(t, 90, *updated.EstimatedDuration)
}

func TestOwnershipScoping(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{UserID: "u1", Title: "mine"})
	require.NoError(t, err)

	_, err = uc.GetTask(context.Background(), "intruder", created.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))

	err = uc.DeleteTask(context.Background(), "intruder", created.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))

	_, err = uc.UpdateTask(context.Background(), &domain.Task{ID: created.ID, UserID: "intruder", Title: "hijack"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))

	// Owner still sees it.
	got, err := uc.GetTask(context.Background(), "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)
}

func TestDeleteTask(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)

	created, err := uc.CreateTask(context.Background(), &domain.Task{UserID: "u1", Title: "temp"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteTask(context.Background(), "u1", created.ID))

	_, err = uc.GetTask(context.Background(), "u1", created.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}
