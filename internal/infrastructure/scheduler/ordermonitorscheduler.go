// Package scheduler runs the background sweep over stale awaiting-payment
// orders. Webhooks get lost and checkout pages get closed; the sweep is the
// safety net that still completes those orders from chain state.
package scheduler

import (
	"context"
	"sync"
	"time"

	"lldgw/internal/application/gateway/usecases"
	vo "lldgw/internal/domain/order/valueobjects"
	"lldgw/internal/shared/biztime"
	"lldgw/internal/shared/goroutine"
	"lldgw/internal/shared/logger"
)

const (
	defaultSweepInterval = 2 * time.Minute
	// Orders younger than this are still being actively polled by their
	// checkout page; the sweep only picks up abandoned ones.
	defaultMinAge = 10 * time.Minute
	sweepBatch    = 50
)

// StaleOrderSource lists orders parked awaiting payment whose request is
// older than the given cutoff.
type StaleOrderSource interface {
	ListAwaitingPayment(ctx context.Context, olderThan time.Time, limit int) ([]uint, error)
}

// OrderMonitorScheduler periodically re-verifies stale on-hold orders
// through the same pipeline the poll endpoint uses. A sweep hit is
// indistinguishable from a poll hit, including the at-most-once guarantees.
type OrderMonitorScheduler struct {
	orders   StaleOrderSource
	verifyUC *usecases.VerifyOrderPaymentUseCase
	logger   logger.Interface

	interval time.Duration
	minAge   time.Duration

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

func NewOrderMonitorScheduler(
	orders StaleOrderSource,
	verifyUC *usecases.VerifyOrderPaymentUseCase,
	log logger.Interface,
) *OrderMonitorScheduler {
	return &OrderMonitorScheduler{
		orders:   orders,
		verifyUC: verifyUC,
		logger:   log,
		interval: defaultSweepInterval,
		minAge:   defaultMinAge,
		stopChan: make(chan struct{}),
	}
}

// Start launches the sweep loop.
func (s *OrderMonitorScheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	goroutine.SafeGo(s.logger, "order-monitor", func() {
		defer s.wg.Done()
		s.run()
	})

	s.logger.Infow("order monitor started",
		"interval", s.interval.String(),
		"min_age", s.minAge.String(),
	)
}

// Stop signals the loop to exit and waits for the in-flight sweep.
func (s *OrderMonitorScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	s.logger.Infow("order monitor stopped")
}

func (s *OrderMonitorScheduler) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *OrderMonitorScheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	cutoff := biztime.NowUTC().Add(-s.minAge)

	ids, err := s.orders.ListAwaitingPayment(ctx, cutoff, sweepBatch)
	if err != nil {
		s.logger.Errorw("failed to list stale orders", "error", err)
		return
	}
	if len(ids) == 0 {
		return
	}

	s.logger.Debugw("sweeping stale orders", "count", len(ids))

	completed := 0
	for _, id := range ids {
		select {
		case <-s.stopChan:
			return
		default:
		}

		result, err := s.verifyUC.Execute(ctx, id, vo.ConfirmationPolling)
		if err != nil {
			s.logger.Warnw("sweep verification failed", "order_id", id, "error", err)
			continue
		}
		if result.Verified && !result.AlreadyPaid {
			completed++
		}
	}

	if completed > 0 {
		s.logger.Infow("sweep completed stale orders", "completed", completed, "checked", len(ids))
	}
}
