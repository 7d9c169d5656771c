package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aibekov/task-tracker/internal/domain"
	"github.com/aibekov/task-tracker/internal/repository"
	"github.com/aibekov/task-tracker/internal/usecase"
)

type fakeTaskRepo struct {
	create     func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	getByID    func(ctx context.Context, id, userID string) (*domain.Task, error)
	listByUser func(ctx context.Context, userID string) ([]*domain.Task, error)
	update     func(ctx context.Context, id, userID string, fields repository.UpdateTaskFields) (*domain.Task, error)
	delete     func(ctx context.Context, id, userID string) (bool, error)
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return r.create(ctx, task)
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	return r.getByID(ctx, id, userID)
}

func (r *fakeTaskRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Task, error) {
	return r.listByUser(ctx, userID)
}

func (r *fakeTaskRepo) Update(ctx context.Context, id, userID string, fields repository.UpdateTaskFields) (*domain.Task, error) {
	return r.update(ctx, id, userID, fields)
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	return r.delete(ctx, id, userID)
}

type fakeNotifier struct {
	calls []*domain.Task
	err   error
}

func (n *fakeNotifier) TaskCreated(_ context.Context, task *domain.Task, _ *domain.User) error {
	n.calls = append(n.calls, task)
	return n.err
}

func echoCreate(_ context.Context, task *domain.Task) (*domain.Task, error) {
	out := *task
	out.ID = "task-1"
	return &out, nil
}

var taskOwner = &domain.User{ID: "user-1", FullName: "Jane Doe", Email: "jane@example.com"}

func TestCreateTask_DefaultsStatusToPending(t *testing.T) {
	repo := &fakeTaskRepo{create: echoCreate}
	notifier := &fakeNotifier{}

	u := usecase.NewTaskUsecase(repo, notifier, slog.Default())
	task, err := u.Create(context.Background(), taskOwner, usecase.CreateTaskInput{Title: "write report"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != domain.TaskPending {
		t.Errorf("status = %q, want %q", task.Status, domain.TaskPending)
	}
	if task.UserID != taskOwner.ID {
		t.Errorf("owner = %q, want %q", task.UserID, taskOwner.ID)
	}
}

func TestCreateTask_KeepsExplicitStatus(t *testing.T) {
	repo := &fakeTaskRepo{create: echoCreate}

	u := usecase.NewTaskUsecase(repo, &fakeNotifier{}, slog.Default())
	task, err := u.Create(context.Background(), taskOwner, usecase.CreateTaskInput{
		Title:  "write report",
		Status: domain.TaskInProgress,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != domain.TaskInProgress {
		t.Errorf("status = %q, want %q", task.Status, domain.TaskInProgress)
	}
}

func TestCreateTask_DispatchesOnce(t *testing.T) {
	repo := &fakeTaskRepo{create: echoCreate}
	notifier := &fakeNotifier{}

	u := usecase.NewTaskUsecase(repo, notifier, slog.Default())
	created, err := u.Create(context.Background(), taskOwner, usecase.CreateTaskInput{Title: "write report"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(notifier.calls) != 1 {
		t.Fatalf("notifier called %d times, want 1", len(notifier.calls))
	}
	if notifier.calls[0].ID != created.ID {
		t.Errorf("notifier got task %q, want %q", notifier.calls[0].ID, created.ID)
	}
}

func TestCreateTask_DispatchFailureDoesNotFailCreate(t *testing.T) {
	repo := &fakeTaskRepo{create: echoCreate}
	notifier := &fakeNotifier{err: errors.New("publish backend down")}

	u := usecase.NewTaskUsecase(repo, notifier, slog.Default())
	task, err := u.Create(context.Background(), taskOwner, usecase.CreateTaskInput{Title: "write report"})
	if err != nil {
		t.Fatalf("create failed on dispatch error: %v", err)
	}
	if task == nil || task.ID != "task-1" {
		t.Fatalf("task = %+v, want the created task back", task)
	}
}

func TestCreateTask_RepoFailure_NoDispatch(t *testing.T) {
	repo := &fakeTaskRepo{
		create: func(_ context.Context, _ *domain.Task) (*domain.Task, error) {
			return nil, errors.New("insert failed")
		},
	}
	notifier := &fakeNotifier{}

	u := usecase.NewTaskUsecase(repo, notifier, slog.Default())
	if _, err := u.Create(context.Background(), taskOwner, usecase.CreateTaskInput{Title: "write report"}); err == nil {
		t.Fatal("expected error")
	}
	if len(notifier.calls) != 0 {
		t.Errorf("notifier called %d times for a failed create", len(notifier.calls))
	}
}

func TestGetTask_NotFoundPassesThrough(t *testing.T) {
	repo := &fakeTaskRepo{
		getByID: func(_ context.Context, _, _ string) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}

	u := usecase.NewTaskUsecase(repo, &fakeNotifier{}, slog.Default())
	_, err := u.Get(context.Background(), "task-1", "someone-else")
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteTask_ReportsMiss(t *testing.T) {
	repo := &fakeTaskRepo{
		delete: func(_ context.Context, _, _ string) (bool, error) { return false, nil },
	}

	u := usecase.NewTaskUsecase(repo, &fakeNotifier{}, slog.Default())
	removed, err := u.Delete(context.Background(), "task-1", "someone-else")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Error("removed = true for a foreign task")
	}
}

func TestUpdateTask_PassesPartialFields(t *testing.T) {
	var got repository.UpdateTaskFields
	repo := &fakeTaskRepo{
		update: func(_ context.Context, _, _ string, fields repository.UpdateTaskFields) (*domain.Task, error) {
			got = fields
			return &domain.Task{ID: "task-1"}, nil
		},
	}

	title := "updated title"
	u := usecase.NewTaskUsecase(repo, &fakeNotifier{}, slog.Default())
	if _, err := u.Update(context.Background(), "task-1", "user-1", usecase.UpdateTaskInput{Title: &title}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Title == nil || *got.Title != "updated title" {
		t.Errorf("title field = %v, want %q", got.Title, "updated title")
	}
	if got.Description != nil || got.Status != nil {
		t.Error("untouched fields must stay nil")
	}
}
