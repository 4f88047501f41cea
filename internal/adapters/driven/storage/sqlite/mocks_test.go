package sqlite

import (
	"context"
	"sync/atomic"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
	"github.com/esoadamo/sqlitedb/internal/core/ports/driven"
)

// fakeEngine is a driven.Engine that counts calls.
// Execute returns one row holding the query text and the call number.
type fakeEngine struct {
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	calls       atomic.Int64
	commits     atomic.Int32
	closes      atomic.Int32

	// gate, when set, blocks Execute until a value is received.
	gate chan struct{}
	err  error
}

var _ driven.Engine = (*fakeEngine)(nil)

func (f *fakeEngine) Execute(_ context.Context, query string, _ ...any) ([]domain.Row, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		current := f.maxInFlight.Load()
		if n <= current || f.maxInFlight.CompareAndSwap(current, n) {
			break
		}
	}

	if f.gate != nil {
		<-f.gate
	}
	call := f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Row{{query, call}}, nil
}

func (f *fakeEngine) Commit(_ context.Context) error {
	f.commits.Add(1)
	return nil
}

func (f *fakeEngine) Close() error {
	f.closes.Add(1)
	return nil
}

// opener returns an EngineOpener handing out f.
func (f *fakeEngine) opener() driven.EngineOpener {
	return func(context.Context) (driven.Engine, error) {
		return f, nil
	}
}
