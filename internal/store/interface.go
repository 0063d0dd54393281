package store

import (
	"github.com/BuzzLyutic/taskfile-api/internal/model"
)

// TaskStore определяет интерфейс хранилища записей, разбитого по таблицам (kind)
type TaskStore interface {
	Insert(kind string, t model.Task) error
	Select(kind string, filter model.TaskFilter) []model.Task
	Update(kind, id string, patch model.TaskPatch) error
	Delete(kind, id string) error
}
