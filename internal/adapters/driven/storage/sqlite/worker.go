package sqlite

import (
	"context"
	"log/slog"
	"time"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
	"github.com/esoadamo/sqlitedb/internal/core/ports/driven"
)

// workerState is private to the worker goroutine.
// The stopped state is observable only as the closed done channel.
type workerState int

const (
	stateRunning workerState = iota
	stateExiting
)

// worker owns the Engine and executes one Command at a time.
// All of its fields are touched only by the goroutine running run.
type worker struct {
	open         driven.EngineOpener
	in           <-chan domain.Command
	out          chan<- domain.Response
	done         chan<- struct{}
	autoQuit     AutoQuitFunc
	pollInterval time.Duration
	logger       *slog.Logger
	metrics      *workerMetrics
}

// run opens the engine, reports the outcome on ready, and serves commands until stopped.
func (w *worker) run(ctx context.Context, ready chan<- error) {
	// Shutdown must still commit and close after the owner's ctx is cancelled.
	ctx = context.WithoutCancel(ctx)

	engine, err := w.open(ctx)
	if err != nil {
		close(w.done)
		ready <- err
		return
	}
	close(ready)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	var quit *domain.Response
	state := stateRunning
	for state == stateRunning {
		select {
		case cmd := <-w.in:
			resp, next := w.handle(ctx, engine, cmd)
			state = next
			if state == stateExiting {
				// Quit is acknowledged once the connection is closed.
				quit = &resp
				continue
			}
			w.out <- resp
		case <-ticker.C:
			if w.autoQuit != nil && len(w.in) == 0 && w.autoQuit() {
				w.logger.Debug("worker idle and owner done, exiting")
				state = stateExiting
			}
		}
	}

	w.shutdown(ctx, engine)

	if quit != nil {
		w.out <- *quit
	}
	close(w.done)
}

// handle executes cmd and returns its response and the next state.
func (w *worker) handle(ctx context.Context, engine driven.Engine, cmd domain.Command) (domain.Response, workerState) {
	start := time.Now()
	resp, next := w.dispatch(ctx, engine, cmd)
	w.metrics.record(cmd.Kind, resp.Kind == domain.ResponseError, time.Since(start))
	return resp, next
}

func (w *worker) dispatch(ctx context.Context, engine driven.Engine, cmd domain.Command) (domain.Response, workerState) {
	switch cmd.Kind {
	case domain.CommandQuery:
		rows, err := engine.Execute(ctx, cmd.SQL, cmd.Args...)
		if err != nil {
			w.logger.Debug("query failed", "query", cmd.SQL, "error", err)
			return domain.ErrorResponse(cmd.ID, &domain.EngineError{Query: cmd.SQL, Err: err}), stateRunning
		}
		return domain.RowsResponse(cmd.ID, rows), stateRunning
	case domain.CommandCommit:
		if err := engine.Commit(ctx); err != nil {
			return domain.ErrorResponse(cmd.ID, &domain.EngineError{Query: "COMMIT", Err: err}), stateRunning
		}
		return domain.AckResponse(cmd.ID, true), stateRunning
	case domain.CommandQuit:
		return domain.AckResponse(cmd.ID, true), stateExiting
	default:
		return domain.ErrorResponse(cmd.ID, domain.ErrUnknownCommand), stateRunning
	}
}

// shutdown performs the final commit and closes the engine.
func (w *worker) shutdown(ctx context.Context, engine driven.Engine) {
	if err := engine.Commit(ctx); err != nil {
		w.logger.Error("final commit failed", "error", err)
	}
	if err := engine.Close(); err != nil {
		w.logger.Error("closing connection failed", "error", err)
	}
	w.logger.Debug("worker stopped")
}
