package tests

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskfile-api/internal/handler"
	"github.com/BuzzLyutic/taskfile-api/internal/importer"
	"github.com/BuzzLyutic/taskfile-api/internal/service"
	"github.com/BuzzLyutic/taskfile-api/internal/store"
)

// TestEnv собирает приложение целиком поверх временных файлов
type TestEnv struct {
	Server       *httptest.Server
	Store        *store.Store
	Service      *service.TaskService
	SnapshotPath string
	ImportPath   string
}

// SetupTestEnv поднимает сервер с тем же роутингом, что и cmd/app
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	dir := t.TempDir()

	snapshotPath := filepath.Join(dir, "tasks.json")
	importPath := filepath.Join(dir, "import.csv")
	logger := zap.NewNop()

	taskStore := store.Open(snapshotPath, logger)
	taskService := service.NewTaskService(taskStore)
	taskImporter := importer.New(importPath, taskService, logger)
	taskHandler := handler.NewTaskHandler(taskService, taskImporter, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Post("/import", taskHandler.Import)
		r.Put("/{id}", taskHandler.Update)
		r.Delete("/{id}", taskHandler.Delete)
		r.Patch("/{id}/complete", taskHandler.ToggleComplete)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &TestEnv{
		Server:       server,
		Store:        taskStore,
		Service:      taskService,
		SnapshotPath: snapshotPath,
		ImportPath:   importPath,
	}
}

// WriteImportFile кладет CSV-контент туда, откуда импорт его читает
func WriteImportFile(t *testing.T, env *TestEnv, content string) {
	t.Helper()
	if err := os.WriteFile(env.ImportPath, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write import file: %v", err)
	}
}
