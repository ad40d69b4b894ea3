package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/platziflix/catalog-backend/internal/data/aggregates"
	"github.com/platziflix/catalog-backend/internal/platform/dbctx"
)

type passthroughRunner struct{ calls int }

func (p *passthroughRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	p.calls++
	return fn(dbctx.Context{Ctx: ctx})
}

var _ aggregates.TxRunner = (*passthroughRunner)(nil)

func TestFaultTxRunnerCommitsOnSuccess(t *testing.T) {
	inner := &passthroughRunner{}
	r := &FaultTxRunner{Inner: inner}
	called := false
	if err := r.InTx(context.Background(), func(_ dbctx.Context) error {
		called = true
		return nil
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !called || inner.calls != 1 {
		t.Fatalf("expected callback through inner runner, called=%v inner=%d", called, inner.calls)
	}
	if r.BeginCalls != 1 || r.CommitCalls != 1 || r.RollbackCalls != 0 {
		t.Fatalf("unexpected counters begin=%d commit=%d rollback=%d", r.BeginCalls, r.CommitCalls, r.RollbackCalls)
	}
}

func TestFaultTxRunnerRollbackOnBodyError(t *testing.T) {
	r := &FaultTxRunner{Inner: &passthroughRunner{}}
	bodyErr := errors.New("boom")
	err := r.InTx(context.Background(), func(_ dbctx.Context) error { return bodyErr })
	if !errors.Is(err, bodyErr) {
		t.Fatalf("expected body err, got %v", err)
	}
	if r.CommitCalls != 0 || r.RollbackCalls != 1 {
		t.Fatalf("unexpected counters commit=%d rollback=%d", r.CommitCalls, r.RollbackCalls)
	}
}

func TestFaultTxRunnerFailCommitRunsBodyThenRollsBack(t *testing.T) {
	commitErr := errors.New("commit failed")
	r := &FaultTxRunner{Inner: &passthroughRunner{}, FailCommit: commitErr}
	called := false
	err := r.InTx(context.Background(), func(_ dbctx.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, commitErr) || !called {
		t.Fatalf("expected commit err after body, got err=%v called=%v", err, called)
	}
	if r.RollbackCalls != 1 {
		t.Fatalf("expected rollback, got %d", r.RollbackCalls)
	}
}

func TestFaultTxRunnerFailBeginSkipsBody(t *testing.T) {
	beginErr := errors.New("begin failed")
	inner := &passthroughRunner{}
	r := &FaultTxRunner{Inner: inner, FailBegin: beginErr}
	err := r.InTx(context.Background(), func(_ dbctx.Context) error {
		t.Fatalf("body must not run")
		return nil
	})
	if !errors.Is(err, beginErr) || inner.calls != 0 {
		t.Fatalf("expected begin err without inner call, got err=%v inner=%d", err, inner.calls)
	}
}
