package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/taskfile-api/internal/model"
)

// Хранилище сериализует конкурентные мутации одним мьютексом; проверяем,
// что при параллельных запросах не теряются ни записи, ни снапшот.
func TestConcurrent_Creates(t *testing.T) {
	env := SetupTestEnv(t)
	ctx := context.Background()

	const goroutines = 10

	var wg sync.WaitGroup
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = env.Service.Create(ctx,
				fmt.Sprintf("Concurrent Task %d", idx),
				fmt.Sprintf("created by goroutine %d", idx))
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "create %d should not error", i)
	}

	tasks := env.Service.List(ctx, "")
	require.Len(t, tasks, goroutines)

	seen := make(map[string]bool, goroutines)
	for _, task := range tasks {
		assert.False(t, seen[task.ID], "id %s reused", task.ID)
		seen[task.ID] = true
	}

	// Снапшот на диске согласован с памятью
	data, err := os.ReadFile(env.SnapshotPath)
	require.NoError(t, err)

	var tables map[string][]model.Task
	require.NoError(t, json.Unmarshal(data, &tables))
	assert.Len(t, tables["tasks"], goroutines)
}

func TestConcurrent_ReadsDuringWrites(t *testing.T) {
	env := SetupTestEnv(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(2)
		go func(idx int) {
			defer wg.Done()
			env.Service.Create(ctx, fmt.Sprintf("Task %d", idx), "payload")
		}(i)
		go func() {
			defer wg.Done()
			env.Service.List(ctx, "Task")
		}()
	}
	wg.Wait()

	assert.Len(t, env.Service.List(ctx, ""), 5)
}
