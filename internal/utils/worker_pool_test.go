package utils_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zecageo/vali/internal/utils"
)

func TestWorkerPool_RunsEveryTask(t *testing.T) {
	pool := utils.NewWorkerPool(4)

	var done atomic.Int64
	for i := 0; i < 100; i++ {
		pool.Submit(func() { done.Add(1) })
	}
	pool.Shutdown()

	assert.Equal(t, int64(100), done.Load())
}

func TestWorkerPool_ZeroWorkersStillRuns(t *testing.T) {
	pool := utils.NewWorkerPool(0)

	ran := false
	pool.Submit(func() { ran = true })
	pool.Shutdown()

	assert.True(t, ran)
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, utils.Unique([]string{"b", "a", "b", "c", "a"}))
	assert.Empty(t, utils.Unique[string](nil))
}
