package lifecycle

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Driver aplica un tick a todas las sesiones activas. Cada sesión es
// independiente: el fallo de una no debe frenar a las demás.
type Driver interface {
	TickActive(ctx context.Context, now time.Time) error
}

// Runner multiplexa todas las sesiones activas sobre un único ticker
// periódico, en lugar de un timer por sesión.
type Runner struct {
	driver   Driver
	interval time.Duration
	logger   *zap.Logger
	done     chan struct{}
}

func NewRunner(driver Driver, interval time.Duration, logger *zap.Logger) *Runner {
	if interval <= 0 {
		interval = time.Second
	}
	return &Runner{
		driver:   driver,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start bloquea ejecutando ticks hasta que el contexto se cancele o se
// llame Stop. Pensado para correr en su propia goroutine.
func (r *Runner) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.done:
			return
		case now := <-ticker.C:
			if err := r.driver.TickActive(ctx, now.UTC()); err != nil {
				r.logger.Warn("lifecycle tick failed", zap.Error(err))
			}
		}
	}
}

// Stop detiene el runner. Es seguro llamarlo una sola vez.
func (r *Runner) Stop() {
	close(r.done)
}
