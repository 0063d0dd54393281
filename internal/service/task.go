package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/taskfile-api/internal/model"
	"github.com/BuzzLyutic/taskfile-api/internal/store"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

// Единственная таблица в хранилище; store разбит по kind на вырост
const kindTasks = "tasks"

type TaskService struct {
	store store.TaskStore
}

func NewTaskService(store store.TaskStore) *TaskService {
	return &TaskService{store: store}
}

func (s *TaskService) Create(ctx context.Context, title, description string) (model.Task, error) {
	if err := s.validate(title, description); err != nil {
		return model.Task{}, err
	}

	now := time.Now().UTC()
	t := model.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CompletedAt: nil,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Insert(kindTasks, t); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// List ищет подстроку search в title ИЛИ description; пустой search
// возвращает все задачи.
func (s *TaskService) List(ctx context.Context, search string) []model.Task {
	return s.store.Select(kindTasks, model.TaskFilter{
		"title":       search,
		"description": search,
	})
}

// Update требует оба поля сразу: запрос отклоняется, если отсутствует
// хотя бы одно из них.
func (s *TaskService) Update(ctx context.Context, id, title, description string) error {
	if err := s.validate(title, description); err != nil {
		return err
	}
	if _, err := s.get(id); err != nil {
		return err
	}

	now := time.Now().UTC()
	return s.store.Update(kindTasks, id, model.TaskPatch{
		Title:       &title,
		Description: &description,
		UpdatedAt:   &now,
	})
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if _, err := s.get(id); err != nil {
		return err
	}
	return s.store.Delete(kindTasks, id)
}

// ToggleComplete переключает completed_at между null и текущим моментом
func (s *TaskService) ToggleComplete(ctx context.Context, id string) error {
	t, err := s.get(id)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	patch := model.TaskPatch{SetCompletedAt: true, UpdatedAt: &now}
	if t.CompletedAt == nil {
		patch.CompletedAt = &now
	}
	return s.store.Update(kindTasks, id, patch)
}

func (s *TaskService) get(id string) (model.Task, error) {
	tasks := s.store.Select(kindTasks, model.TaskFilter{"id": id})
	if len(tasks) == 0 {
		return model.Task{}, ErrNotFound
	}
	return tasks[0], nil
}

func (s *TaskService) validate(title, description string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return ErrValidation
	}
	return nil
}
