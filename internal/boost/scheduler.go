package boost

import (
	"context"
	"sync"
	"time"

	"github.com/go-logr/logr"
)

// Func definitions for unit testing
var (
	timeNow  = time.Now
	sleepFor = sleepInterruptible
)

func sleepInterruptible(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// boostWriter writes boost values to the active scheduler-tunable endpoint.
// Satisfied by *sysfs.Handle.
type boostWriter interface {
	Write(value string) error
}

// deboostScheduler guarantees that a schedtune boost is reverted exactly once
// after a trailing quiet period. Repeated boost requests extend the deadline
// without issuing redundant boost writes; the background loop re-checks the
// deadline after every sleep so an extension during the sleep never causes a
// premature deboost.
type deboostScheduler struct {
	mu     *sync.Mutex
	cfg    Config
	writer boostWriter
	stats  *counters
	log    logr.Logger

	// deadline is the time the deboost write becomes due. Zero means no
	// boost window is armed. Guarded by mu.
	deadline time.Time

	// wake remembers at most one pending wakeup for the run loop.
	wake chan struct{}

	cancelFunc func()
	waitGroup  sync.WaitGroup
}

func newDeboostScheduler(mu *sync.Mutex, writer boostWriter, cfg Config, stats *counters, log logr.Logger) *deboostScheduler {
	ctx, cancelFunc := context.WithCancel(context.Background())

	s := &deboostScheduler{
		mu:         mu,
		cfg:        cfg,
		writer:     writer,
		stats:      stats,
		log:        log,
		wake:       make(chan struct{}, 1),
		cancelFunc: cancelFunc,
	}

	s.waitGroup.Add(1)
	go s.runLoop(ctx)

	return s
}

// requestBoost arms or extends the deboost window. The boost write and the
// run loop wakeup happen only on the disarmed-to-armed transition, so a
// burst of requests produces a single boost write. The deadline only moves
// forward; a request carrying an older timestamp never retracts it. Caller
// must hold mu.
func (s *deboostScheduler) requestBoost(now time.Time) {
	if s.deadline.IsZero() {
		if err := s.writer.Write(s.cfg.BoostedValue); err != nil {
			s.log.Error(err, "boost write failed")
		}
		s.stats.boosts.Add(1)
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
	if deadline := now.Add(s.cfg.HoldDuration); deadline.After(s.deadline) {
		s.deadline = deadline
	}
}

// armed reports whether a boost window is currently open. Caller must hold mu.
func (s *deboostScheduler) armed() bool {
	return !s.deadline.IsZero()
}

func (s *deboostScheduler) stop() {
	s.cancelFunc()
	s.waitGroup.Wait()
}

func (s *deboostScheduler) runLoop(ctx context.Context) {
	defer s.waitGroup.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.wake:
		}
		s.holdUntilDeadline(ctx)
	}
}

// holdUntilDeadline sleeps until the armed deadline passes, then issues the
// deboost write and disarms. The deadline is re-read after every sleep
// because requestBoost may have extended it while the lock was released.
func (s *deboostScheduler) holdUntilDeadline(ctx context.Context) {
	for {
		s.mu.Lock()
		if s.deadline.IsZero() {
			// Spurious wake; the window was already closed.
			s.mu.Unlock()
			return
		}

		now := timeNow()
		if s.deadline.After(now) {
			wait := s.deadline.Sub(now)
			s.mu.Unlock()
			sleepFor(ctx, wait)
			if ctx.Err() != nil {
				return
			}
			continue
		}

		if err := s.writer.Write(s.cfg.NormalValue); err != nil {
			s.log.Error(err, "deboost write failed")
		}
		s.stats.deboosts.Add(1)
		s.deadline = time.Time{}
		s.mu.Unlock()
		return
	}
}
