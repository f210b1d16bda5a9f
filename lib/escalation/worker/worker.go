package escalationworker

import (
	"context"
	"time"

	"timetrack-backend/config"
	escalationhandler "timetrack-backend/lib/escalation"
	baseworker "timetrack-backend/lib/utils/base-worker"
)

// StartWorker runs the periodic escalation sweep over submitted timesheets.
func StartWorker(ctx context.Context) {
	firstRunDelay := time.Duration(config.Conf.Workers.EscalationFirstRunDelayInSec) * time.Second
	runInterval := time.Duration(config.Conf.Workers.EscalationIntervalInSec) * time.Second
	i := &impl{
		BaseImpl: *baseworker.NewInstance("EscalationWorker", firstRunDelay, runInterval),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
}

func (i impl) handle(ctx context.Context) {
	_, err := escalationhandler.Instance.Sweep(ctx)
	if err != nil {
		i.GetLogger().WithError(err).Error("escalation sweep error")
	}
}
