package model

import (
	"strings"
	"time"
)

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Field возвращает текстовое значение поля по его имени (для фильтрации)
func (t Task) Field(name string) string {
	switch name {
	case "id":
		return t.ID
	case "title":
		return t.Title
	case "description":
		return t.Description
	}
	return ""
}

// TaskFilter - отображение имени поля в искомую подстроку.
// Пустая подстрока не накладывает ограничений.
type TaskFilter map[string]string

// Matches: запись проходит, если хотя бы одна непустая подстрока содержится
// в значении соответствующего поля (с учетом регистра). Фильтр без условий
// пропускает все записи.
func (f TaskFilter) Matches(t Task) bool {
	unconstrained := true
	for field, matcher := range f {
		if matcher == "" {
			continue
		}
		unconstrained = false
		if strings.Contains(t.Field(field), matcher) {
			return true
		}
	}
	return unconstrained
}

// TaskPatch - частичное обновление: nil-поля остаются нетронутыми.
// SetCompletedAt позволяет явно сбросить completed_at в null.
type TaskPatch struct {
	Title          *string
	Description    *string
	CompletedAt    *time.Time
	SetCompletedAt bool
	UpdatedAt      *time.Time
}
