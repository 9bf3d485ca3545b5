package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
)

// BaseImpl runs a job function periodically until the context is cancelled.
type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
}

func NewInstance(workerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	if runInterval <= 0 {
		runInterval = time.Minute
	}
	return &BaseImpl{
		WorkerName:    workerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	return log.WithField("worker_name", i.WorkerName)
}

// Run blocks; the interval is measured from the end of one pass to the start of the next.
func (i BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context)) {
	logger := i.GetLogger()
	timer := time.NewTimer(i.firstRunDelay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopped")
			return
		case <-timer.C:
			started := time.Now()
			i.runSafe(ctx, jobFunc)
			logger.WithField("duration_ms", time.Since(started).Milliseconds()).Debug("worker pass finished")
			timer.Reset(i.runInterval)
		}
	}
}

func (i BaseImpl) runSafe(ctx context.Context, jobFunc func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			i.GetLogger().
				WithField("panic_stack", string(debug.Stack())).
				Errorf("worker pass panicked: %v", r)
		}
	}()
	jobFunc(ctx)
}
