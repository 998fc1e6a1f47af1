package refreshtoken

import (
	"context"
	"sync"
	"time"

	"github.com/foodiehub/foodiehub/services/logging"
	"go.uber.org/zap"
)

// Cleaner periodically removes tokens whose expiry lies more than retention
// in the past.
type Cleaner struct {
	store     Store
	retention time.Duration
	interval  time.Duration
	logger    *logging.Service
	now       func() time.Time

	stop chan struct{}
	done sync.WaitGroup
}

func NewCleaner(store Store, retention, interval time.Duration, logger *logging.Service) *Cleaner {
	return &Cleaner{
		store:     store,
		retention: retention,
		interval:  interval,
		logger:    logger,
		now:       time.Now,
	}
}

// RunOnce performs a single sweep and returns the number of removed rows.
func (c *Cleaner) RunOnce(ctx context.Context) (int64, error) {
	cutoff := c.now().Add(-c.retention)

	deleted, err := c.store.DeleteExpired(ctx, cutoff)
	if err != nil {
		c.logger.Error("refresh token cleanup failed", zap.Error(err))
		return 0, err
	}

	if deleted > 0 {
		c.logger.Info("cleaned up expired refresh tokens", zap.Int64("count", deleted))
	} else {
		c.logger.Debug("no expired refresh tokens found to clean up")
	}
	return deleted, nil
}

// Start launches the background worker. A non-positive interval disables it.
func (c *Cleaner) Start() {
	if c.interval <= 0 || c.stop != nil {
		return
	}
	c.stop = make(chan struct{})
	c.done.Add(1)

	go func() {
		defer c.done.Done()
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.RunOnce(context.Background())
			case <-c.stop:
				return
			}
		}
	}()

	c.logger.Info("started refresh token cleanup worker",
		zap.Duration("interval", c.interval),
		zap.Duration("retention", c.retention))
}

func (c *Cleaner) Stop() {
	if c.stop == nil {
		return
	}
	close(c.stop)
	c.done.Wait()
	c.stop = nil
}
