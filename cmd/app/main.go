package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskfile-api/internal/config"
	"github.com/BuzzLyutic/taskfile-api/internal/handler"
	"github.com/BuzzLyutic/taskfile-api/internal/importer"
	"github.com/BuzzLyutic/taskfile-api/internal/service"
	"github.com/BuzzLyutic/taskfile-api/internal/store"
)

func main() {
	// Подключаем логгер
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err) // Fatal потому что дальнейшая работа теряет смысл
	}

	// Открываем хранилище; битый или отсутствующий снапшот - не фатально
	taskStore := store.Open(cfg.SnapshotPath, logger)
	logger.Info("store opened", zap.String("snapshot", cfg.SnapshotPath))

	taskService := service.NewTaskService(taskStore)
	taskImporter := importer.New(cfg.ImportPath, taskService, logger)
	taskHandler := handler.NewTaskHandler(taskService, taskImporter, logger)

	r := chi.NewRouter() // Создаем роутер
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
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

	c := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete,
		},
		AllowedHeaders: []string{"Content-Type"},
	})

	srv := http.Server{ // Создаем сервер
		Addr:         ":" + cfg.Port,
		Handler:      c.Handler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started at ", zap.String("port", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error: ", zap.Error(err))
	}
	logger.Info("Server stopped succsessfully!")
}
