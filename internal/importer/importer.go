package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskfile-api/internal/service"
)

// Importer читает CSV-файл построчно и создает задачу на каждую строку.
// Файл открывается заново при каждом вызове Run, поэтому импорт можно
// запускать сколько угодно раз за время жизни процесса.
type Importer struct {
	path    string
	service *service.TaskService
	logger  *zap.Logger
}

func New(path string, srv *service.TaskService, logger *zap.Logger) *Importer {
	return &Importer{
		path:    path,
		service: srv,
		logger:  logger,
	}
}

// Run выполняет однопроходный импорт: первая строка - заголовок,
// дальше колонка 0 = title, колонка 1 = description. Первая же строка
// с пустым полем прерывает импорт; уже вставленные строки остаются в
// хранилище - отката нет.
func (i *Importer) Run(ctx context.Context) (int, error) {
	f, err := os.Open(i.path)
	if err != nil {
		return 0, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // валидируем колонки сами, по смыслу

	header := true
	created := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return created, fmt.Errorf("read import row: %w", err)
		}
		if header {
			header = false
			continue
		}

		var title, description string
		if len(row) > 0 {
			title = row[0]
		}
		if len(row) > 1 {
			description = row[1]
		}

		// Каждая строка полностью вставлена и сохранена до чтения следующей
		if _, err := i.service.Create(ctx, title, description); err != nil {
			return created, fmt.Errorf("import row %d: %w", created+2, err)
		}
		created++
	}

	i.logger.Info("import finished", zap.String("path", i.path), zap.Int("tasks", created))
	return created, nil
}
