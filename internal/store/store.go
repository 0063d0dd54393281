package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskfile-api/internal/model"
)

// Store держит таблицы в памяти и переписывает полный снапшот на диск
// при каждой мутации. Один мьютекс на все хранилище: chi обрабатывает
// запросы конкурентно, а последовательность "изменить память + записать
// снапшот" должна быть атомарной.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
	tables map[string][]model.Task
}

// Open загружает существующий снапшот. Отсутствующий или битый файл -
// не ошибка: стартуем с пустыми таблицами.
func Open(path string, logger *zap.Logger) *Store {
	s := &Store{
		path:   path,
		logger: logger,
		tables: make(map[string][]model.Task),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("snapshot unreadable, starting empty", zap.String("path", path), zap.Error(err))
		}
		return s
	}

	if err := json.Unmarshal(data, &s.tables); err != nil {
		logger.Warn("snapshot malformed, starting empty", zap.String("path", path), zap.Error(err))
		s.tables = make(map[string][]model.Task)
	}
	return s
}

func (s *Store) Insert(kind string, t model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[kind] = append(s.tables[kind], t)
	if err := s.persist(); err != nil {
		// Откат, чтобы память не разошлась с последним удачным снапшотом
		s.tables[kind] = s.tables[kind][:len(s.tables[kind])-1]
		return err
	}
	return nil
}

// Select возвращает копии записей в порядке вставки. Пустой результат - не ошибка.
func (s *Store) Select(kind string, filter model.TaskFilter) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Task, 0)
	for _, t := range s.tables[kind] {
		if filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Update сливает непустые поля patch в запись по id. Отсутствие id - не
// ошибка: вызывающий обязан проверить существование через Select.
func (s *Store) Update(kind, id string, patch model.TaskPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.tables[kind]
	for i := range recs {
		if recs[i].ID != id {
			continue
		}

		prev := recs[i]
		if patch.Title != nil {
			recs[i].Title = *patch.Title
		}
		if patch.Description != nil {
			recs[i].Description = *patch.Description
		}
		if patch.SetCompletedAt {
			recs[i].CompletedAt = patch.CompletedAt
		}
		if patch.UpdatedAt != nil {
			recs[i].UpdatedAt = *patch.UpdatedAt
		}

		if err := s.persist(); err != nil {
			recs[i] = prev
			return err
		}
		return nil
	}
	return nil
}

// Delete удаляет запись по id. Как и в Update, отсутствие id - не ошибка.
func (s *Store) Delete(kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.tables[kind]
	for i := range recs {
		if recs[i].ID != id {
			continue
		}

		// Емкость среза обрезана, поэтому append выделяет новый массив
		// и recs остается целым на случай отката
		s.tables[kind] = append(recs[:i:i], recs[i+1:]...)
		if err := s.persist(); err != nil {
			s.tables[kind] = recs
			return err
		}
		return nil
	}
	return nil
}

// persist переписывает весь снапшот атомарно (временный файл + rename).
// Вызывается только под мьютексом.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.tables, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
