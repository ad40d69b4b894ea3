package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/platziflix/catalog-backend/internal/data/aggregates"
	"github.com/platziflix/catalog-backend/internal/platform/dbctx"
)

// FaultTxRunner wraps a real runner and injects failures around the body.
// FailCommit runs the body in a real transaction and then forces a rollback.
type FaultTxRunner struct {
	Inner aggregates.TxRunner

	mu sync.Mutex

	FailBegin  error
	FailCommit error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*FaultTxRunner)(nil)

var errNoInner = errors.New("fault tx runner: missing inner runner")

func (r *FaultTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin, failCommit := r.FailBegin, r.FailCommit
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}
	if r.Inner == nil {
		return errNoInner
	}
	err := r.Inner.InTx(ctx, func(dbc dbctx.Context) error {
		if fn != nil {
			if err := fn(dbc); err != nil {
				return err
			}
		}
		return failCommit
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.RollbackCalls++
		return err
	}
	r.CommitCalls++
	return nil
}
