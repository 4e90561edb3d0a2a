package deal

import (
	"time"

	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/value"
)

// Sweep selects the deals to transition to expired: active, bot-origin, not
// observed since the cutoff. Manual deals are exempt: the bot does not
// search for them, so it would silently hide hand-entered promotions.
//
// The status guard makes the sweep idempotent: a second pass over an
// unchanged set selects nothing. The sweep never deletes.
func (e *Engine) Sweep(cutoff time.Time, deals []entity.Deal) []string {
	var stale []string

	for _, d := range deals {
		if d.Status != value.StatusActive {
			continue
		}

		if d.IsManual() {
			continue
		}

		if d.LastSeen.Before(cutoff) {
			stale = append(stale, d.ID)
		}
	}

	return stale
}
