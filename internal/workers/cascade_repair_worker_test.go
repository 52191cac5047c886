package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepairer struct {
	calls atomic.Int32
	limit atomic.Int32
	err   error
}

func (f *fakeRepairer) RepairDivergences(ctx context.Context, limit int) (int, int, error) {
	f.calls.Add(1)
	f.limit.Store(int32(limit))
	return 1, 0, f.err
}

func TestCascadeRepairWorker_RunOnce(t *testing.T) {
	repairer := &fakeRepairer{}
	w := NewCascadeRepairWorker(repairer, "", 0)

	w.RunOnce(context.Background())
	assert.Equal(t, int32(1), repairer.calls.Load())
	assert.Equal(t, int32(100), repairer.limit.Load())

	repairer.err = errors.New("db down")
	w.RunOnce(context.Background())
	assert.Equal(t, int32(2), repairer.calls.Load())
}

func TestCascadeRepairWorker_SkipsCancelledContext(t *testing.T) {
	repairer := &fakeRepairer{}
	w := NewCascadeRepairWorker(repairer, "", 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.RunOnce(ctx)
	assert.Equal(t, int32(0), repairer.calls.Load())
}

func TestCascadeRepairWorker_Schedule(t *testing.T) {
	repairer := &fakeRepairer{}
	w := NewCascadeRepairWorker(repairer, "@every 1s", 5)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	assert.Eventually(t, func() bool { return repairer.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	assert.Equal(t, int32(5), repairer.limit.Load())
}

func TestCascadeRepairWorker_InvalidSchedule(t *testing.T) {
	w := NewCascadeRepairWorker(&fakeRepairer{}, "not a schedule", 5)
	assert.Error(t, w.Start(context.Background()))
}
