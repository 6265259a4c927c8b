package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock Repository
type mockRepo struct {
	createTaskFunc   func(ctx context.Context, t *Task) error
	completeTaskFunc func(ctx context.Context, id uuid.UUID, completedAt time.Time) error
}

func (m *mockRepo) CreateTask(ctx context.Context, t *Task) error {
	if m.createTaskFunc != nil {
		return m.createTaskFunc(ctx, t)
	}

	t.ID = uuid.New()

	return nil
}

func (m *mockRepo) GetTask(ctx context.Context, id uuid.UUID) (*Task, error) { return nil, nil }
func (m *mockRepo) ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error) {
	return nil, nil
}
func (m *mockRepo) UpdateTask(ctx context.Context, t *Task) error { return nil }
func (m *mockRepo) CompleteTask(ctx context.Context, id uuid.UUID, completedAt time.Time) error {
	if m.completeTaskFunc != nil {
		return m.completeTaskFunc(ctx, id, completedAt)
	}

	return nil
}
func (m *mockRepo) DeleteTask(ctx context.Context, id uuid.UUID) error { return nil }

func (m *mockRepo) CreateEvent(ctx context.Context, e *Event) error {
	e.ID = uuid.New()
	return nil
}
func (m *mockRepo) GetEvent(ctx context.Context, id uuid.UUID) (*Event, error) { return nil, nil }
func (m *mockRepo) ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error) {
	return nil, nil
}
func (m *mockRepo) UpdateEvent(ctx context.Context, e *Event) error { return nil }
func (m *mockRepo) DeleteEvent(ctx context.Context, id uuid.UUID) error { return nil }

func TestService_CreateTask_Defaults(t *testing.T) {
	svc := NewService(&mockRepo{})

	task, err := svc.CreateTask(context.Background(), CreateTaskParams{Title: "Call Acme"})
	require.NoError(t, err)
	assert.Equal(t, TaskStatusTodo, task.Status)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.NotEmpty(t, task.ID)
}

func TestService_CompleteTask_StampsTime(t *testing.T) {
	var gotAt time.Time

	repo := &mockRepo{
		completeTaskFunc: func(_ context.Context, _ uuid.UUID, completedAt time.Time) error {
			gotAt = completedAt
			return nil
		},
	}

	svc := NewService(repo)

	require.NoError(t, svc.CompleteTask(context.Background(), uuid.New()))
	assert.WithinDuration(t, time.Now(), gotAt, time.Minute)
}

func TestTask_Overdue(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{name: "PastDueTodo", task: Task{Status: TaskStatusTodo, DueDate: &past}, want: true},
		{name: "PastDueDone", task: Task{Status: TaskStatusDone, DueDate: &past}, want: false},
		{name: "FutureDue", task: Task{Status: TaskStatusTodo, DueDate: &future}, want: false},
		{name: "NoDueDate", task: Task{Status: TaskStatusTodo}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.Overdue(now))
		})
	}
}
