package stream

import (
	"context"
	"time"

	"github.com/sprintertech/sprinter-gateway/scanner"
)

type OpportunityScanner interface {
	Scan(ctx context.Context) ([]scanner.Opportunity, error)
}

// Monitor polls the opportunity scanner on a fixed interval and forwards
// every finding to the stream. It emits no terminal event and runs until
// ctx is done.
type Monitor struct {
	scanner  OpportunityScanner
	interval time.Duration
}

func NewMonitor(scanner OpportunityScanner, interval time.Duration) *Monitor {
	return &Monitor{
		scanner:  scanner,
		interval: interval,
	}
}

func (m *Monitor) Run(ctx context.Context, emitter *Emitter) error {
	if err := emitter.Logf("Monitoring opportunities every %s", m.interval); err != nil {
		return err
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		if err := m.poll(ctx, emitter); err != nil {
			return err
		}

		select {
		case <-ticker.C:
			continue
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *Monitor) poll(ctx context.Context, emitter *Emitter) error {
	opportunities, err := m.scanner.Scan(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return emitter.Logf("Scan failed: %s", err)
	}

	for _, o := range opportunities {
		if err := emitter.Emit(Event{Type: OpportunityEvent, Data: o}); err != nil {
			return err
		}
	}
	return nil
}
