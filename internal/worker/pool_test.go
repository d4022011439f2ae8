package worker

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolExecute(t *testing.T) {
	var calls atomic.Int32
	pool := NewPool(3, func(ctx context.Context, mod string) (int, error) {
		calls.Add(1)
		if mod == "Broken" {
			return 0, errors.New("unreadable")
		}
		return len(mod), nil
	})

	tasks := pool.Execute(context.Background(), []string{"Alpha", "Broken", "Zed", "Omega"})

	require.Len(t, tasks, 4)
	assert.Equal(t, int32(4), calls.Load())
	assert.Equal(t, "Alpha", tasks[0].Input)
	assert.Equal(t, 5, tasks[0].Result)
	assert.Error(t, tasks[1].Err)
	assert.Equal(t, 3, tasks[2].Result)
	assert.Equal(t, 5, tasks[3].Result)
}

func TestPoolEmptyInput(t *testing.T) {
	pool := NewPool(0, func(ctx context.Context, s string) (string, error) { return strings.ToUpper(s), nil })
	assert.Empty(t, pool.Execute(context.Background(), nil))
}

func TestPoolCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(2, func(ctx context.Context, s string) (string, error) { return s, nil })
	tasks := pool.Execute(ctx, []string{"a", "b", "c"})

	require.Len(t, tasks, 3)
	for _, task := range tasks {
		assert.ErrorIs(t, task.Err, context.Canceled)
	}
}
