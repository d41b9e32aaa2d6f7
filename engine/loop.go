package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/scene"
)

// Run ticks at interval until quit, intents closing, or ctx cancellation
// Intents arriving between ticks are batched into the next tick in arrival order
func (o *Orchestrator) Run(ctx context.Context, intents <-chan input.Intent, r scene.Renderer, interval time.Duration) error {
	if interval <= 0 {
		interval = FrameUpdateInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	pending := make([]input.Intent, 0, 64)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case in, ok := <-intents:
			if !ok {
				return nil
			}
			pending = append(pending, in)

		case <-ticker.C:
			start := time.Now()

			frame, running := o.Tick(pending)
			pending = pending[:0]
			if !running {
				return nil
			}

			if err := r.Render(frame); err != nil {
				return fmt.Errorf("render frame %d: %w", frame.Number, err)
			}
			o.recorder.FrameRendered(time.Since(start))
		}
	}
}
