package workers

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/chaitali929/coremodeling/internal/logger"
)

const cascadeRepairWorker = "cascade_repair"

// Repairer re-runs failed status cascades.
type Repairer interface {
	RepairDivergences(ctx context.Context, limit int) (repaired, failed int, err error)
}

type CascadeRepairWorker struct {
	repairer Repairer
	schedule string
	batch    int
	timeout  time.Duration
	cron     *cron.Cron
}

func NewCascadeRepairWorker(repairer Repairer, schedule string, batch int) *CascadeRepairWorker {
	if schedule == "" {
		schedule = "@every 5m"
	}
	if batch <= 0 {
		batch = 100
	}
	return &CascadeRepairWorker{
		repairer: repairer,
		schedule: schedule,
		batch:    batch,
		timeout:  time.Minute,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start schedules the repair job. It stops when ctx is done.
func (w *CascadeRepairWorker) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc(w.schedule, func() { w.RunOnce(ctx) }); err != nil {
		return err
	}
	w.cron.Start()
	logger.WorkerLog(cascadeRepairWorker, "start", nil, "schedule", w.schedule)

	go func() {
		<-ctx.Done()
		<-w.cron.Stop().Done()
		logger.WorkerLog(cascadeRepairWorker, "stop", nil)
	}()
	return nil
}

// RunOnce repairs one batch of open divergences.
func (w *CascadeRepairWorker) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	repaired, failed, err := w.repairer.RepairDivergences(ctx, w.batch)
	if err != nil {
		logger.WorkerLog(cascadeRepairWorker, "repair", err)
		return
	}
	if repaired > 0 || failed > 0 {
		logger.WorkerLog(cascadeRepairWorker, "repair", nil, "repaired", repaired, "failed", failed)
	}
}
