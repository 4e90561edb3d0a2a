package notifier

import (
	"context"

	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/service/deal"
	"tooldeals/pkg/logx"
)

// Target delivers a single glitch alert somewhere.
type Target interface {
	SendGlitch(ctx context.Context, deal entity.Deal) error
}

// Dispatcher fans notifications from the scan pipeline out to every
// configured target. Delivery is best effort: a failed target is logged and
// skipped, the deal stays persisted either way.
type Dispatcher struct {
	targets []Target
}

func NewDispatcher(targets ...Target) *Dispatcher {
	return &Dispatcher{targets: targets}
}

// Run обрабатывает уведомления из канала до его закрытия.
func (d *Dispatcher) Run(ctx context.Context, notifications <-chan deal.Notification) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case notification, ok := <-notifications:
			if !ok {
				return nil
			}

			for _, target := range d.targets {
				if err := target.SendGlitch(ctx, notification.Deal); err != nil {
					logger(ctx).Error(
						"failed to deliver glitch alert",
						logx.Error(err),
					)
				}
			}
		}
	}
}
