// Package observer turns status table changes into pipeline runs, once per
// accepted submission.
package observer

import (
	"context"
	"fmt"
	"sync"

	"boj-notion/internal/domain/model"
	"boj-notion/internal/domain/ports"
)

// State is the session gate.
type State int

const (
	Idle State = iota
	Processing
)

func (s State) String() string {
	if s == Processing {
		return "processing"
	}
	return "idle"
}

// Session owns the detection state of one page attachment: the Idle/Processing
// gate and the in-memory set of processed submissions. Notifications that
// arrive while a run is in flight are dropped, not queued.
type Session struct {
	ledger   ports.LedgerStore
	pipeline ports.Pipeline
	logger   ports.Logger

	mu        sync.Mutex
	state     State
	processed *model.ProcessedSet
	inflight  sync.WaitGroup
}

// NewSession loads the durable ledger once and returns an idle session.
func NewSession(ctx context.Context, ledger ports.LedgerStore, pipeline ports.Pipeline, logger ports.Logger) (*Session, error) {
	ids, err := ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	s := &Session{
		ledger:    ledger,
		pipeline:  pipeline,
		logger:    logger,
		processed: model.NewProcessedSet(ids...),
	}
	s.logger.Info(ctx, "processed ledger loaded", "count", s.processed.Len())
	return s, nil
}

// Notify inspects one snapshot of the first status row. It starts the
// pipeline in the background and returns true only when the row is an
// accepted submission that was never handled and no run is in flight.
func (s *Session) Notify(ctx context.Context, row model.RowSnapshot) bool {
	sub := row.Submission()

	s.mu.Lock()
	if s.state == Processing || sub.ID == "" || s.processed.Has(sub.ID) || !sub.IsAccepted() {
		s.mu.Unlock()
		return false
	}
	s.state = Processing
	s.processed.Add(sub.ID)
	s.inflight.Add(1)
	s.mu.Unlock()

	s.logger.Info(ctx, "accepted submission detected", "submission", sub.ID, "problem", sub.ProblemID, "language", sub.Language)

	// A started run is never cancelled.
	go s.process(context.WithoutCancel(ctx), sub)
	return true
}

func (s *Session) process(ctx context.Context, sub model.Submission) {
	defer s.inflight.Done()

	result := s.pipeline.Run(ctx, sub)

	s.mu.Lock()
	defer s.mu.Unlock()

	if result.Success {
		if err := s.ledger.Save(ctx, s.processed.IDs()); err != nil {
			s.logger.Error(ctx, "failed to persist ledger", "submission", sub.ID, "error", err)
		}
	} else {
		// The id stays marked; a retry needs an explicit ledger reset.
		s.logger.Error(ctx, "pipeline run failed", "submission", sub.ID, "message", result.Message)
	}
	s.state = Idle
}

// Consume feeds every event into Notify until the stream closes or ctx ends.
func (s *Session) Consume(ctx context.Context, events <-chan model.RowSnapshot) {
	for {
		select {
		case <-ctx.Done():
			return
		case row, ok := <-events:
			if !ok {
				return
			}
			s.Notify(ctx, row)
		}
	}
}

// Wait blocks until the in-flight run, if any, has completed.
func (s *Session) Wait() {
	s.inflight.Wait()
}

// State returns the current gate state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Processed returns the ids handled so far in this session, sorted.
func (s *Session) Processed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processed.IDs()
}
