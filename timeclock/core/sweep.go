package core

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	sg "shiftguard.com/shiftguard/core"
)

// Sweeper drives the periodic re-evaluation tick. Worked hours move without
// new events, so alerts must appear even when no one touches the clock; the
// sweep is advisory and read-only over shifts, so a late run only delays
// alert visibility.
type Sweeper struct {
	Dm         *sg.DatabaseManager
	Controller *Controller
	Interval   time.Duration
	Logger     *zap.Logger

	// Schemas returns the tenant schemas to sweep. When nil, every
	// non-system database in the pool is swept.
	Schemas func(ctx context.Context) ([]string, error)
}

// Run sweeps on every tick until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepAll(ctx, logger)
		}
	}
}

// SweepAll runs one sweep over every tenant schema.
func (s *Sweeper) SweepAll(ctx context.Context, logger *zap.Logger) {
	schemas, err := s.listSchemas(ctx)
	if err != nil {
		logger.Error("sweep: failed to list tenant schemas", zap.Error(err))
		return
	}

	for _, schema := range schemas {
		schema := schema
		err := s.Dm.Exec(ctx, schema, func(db *gorm.DB) error {
			emitted, err := s.Controller.Sweep(db)
			if err != nil {
				return err
			}
			if emitted > 0 {
				logger.Info("sweep: emitted alerts",
					zap.String("schema", schema),
					zap.Int("count", emitted))
			}
			return nil
		})
		if err != nil {
			logger.Error("sweep: schema failed",
				zap.String("schema", schema), zap.Error(err))
		}
	}
}

func (s *Sweeper) listSchemas(ctx context.Context) ([]string, error) {
	if s.Schemas != nil {
		return s.Schemas(ctx)
	}
	return s.Dm.ListDatabases(ctx)
}
