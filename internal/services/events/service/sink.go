package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	perr "landingrouter/internal/platform/errors"
	"landingrouter/internal/platform/logger"
	dom "landingrouter/internal/services/events/domain"
)

// SinkConfig controls background event writes
type SinkConfig struct {
	// MaxInFlight caps concurrent writes, events past the cap are dropped
	MaxInFlight int
	// Timeout bounds a single write
	Timeout time.Duration
}

// SinkStats is a point in time view of the sink counters
type SinkStats struct {
	Written  int64 `json:"written"`
	Failed   int64 `json:"failed"`
	Dropped  int64 `json:"dropped"`
	InFlight int   `json:"in_flight"`
}

// Sink implements domain.SinkPort with fire and forget writes
// failures are logged and counted, never returned to the caller
type Sink struct {
	w   dom.WriterPort
	cfg SinkConfig
	log *logger.Logger

	sem chan struct{}

	// mu orders wg.Add in Emit against wg.Wait in Close
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	written atomic.Int64
	failed  atomic.Int64
	dropped atomic.Int64
}

// NewSink constructs a sink over w
func NewSink(w dom.WriterPort, cfg SinkConfig) *Sink {
	if w == nil {
		panic("events.Sink requires a non nil writer")
	}
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = 64
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Sink{
		w:   w,
		cfg: cfg,
		log: logger.Named("events"),
		sem: make(chan struct{}, cfg.MaxInFlight),
	}
}

// Emit implements domain.SinkPort
func (s *Sink) Emit(ev dom.RoutingEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.dropped.Add(1)
		return
	}
	select {
	case s.sem <- struct{}{}:
	default:
		s.dropped.Add(1)
		return
	}
	s.wg.Add(1)
	go s.write(ev)
}

func (s *Sink) write(ev dom.RoutingEvent) {
	defer func() {
		<-s.sem
		s.wg.Done()
	}()
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()

	if err := s.w.WriteBatch(ctx, []dom.RoutingEvent{ev}); err != nil {
		s.failed.Add(1)
		s.log.Warn().Err(err).Str("host", ev.Host).Str("event_id", ev.ID.String()).Msg("routing event write failed")
		return
	}
	s.written.Add(1)
}

// Stats returns the sink counters
func (s *Sink) Stats() SinkStats {
	return SinkStats{
		Written:  s.written.Load(),
		Failed:   s.failed.Load(),
		Dropped:  s.dropped.Load(),
		InFlight: len(s.sem),
	}
}

// Close stops accepting events and waits for in flight writes until ctx ends
func (s *Sink) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return perr.Wrapf(ctx.Err(), perr.ErrorCodeTimeout, "events sink: %d writes still in flight", len(s.sem))
	}
}
