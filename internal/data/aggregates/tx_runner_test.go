package aggregates

import (
	"context"
	"errors"
	"testing"

	"github.com/platziflix/catalog-backend/internal/data/repos/testutil"
	"github.com/platziflix/catalog-backend/internal/domain/catalog"
	domainagg "github.com/platziflix/catalog-backend/internal/domain/aggregates"
	"github.com/platziflix/catalog-backend/internal/platform/dbctx"
)

func TestGormTxRunnerCommits(t *testing.T) {
	db := testutil.DB(t)
	runner := NewGormTxRunner(db)

	err := runner.InTx(context.Background(), func(dbc dbctx.Context) error {
		if dbc.Tx == nil {
			t.Fatalf("expected tx in dbctx")
		}
		return dbc.Tx.Create(&catalog.Teacher{Name: "Juan", Email: "juan@example.com"}).Error
	})
	if err != nil {
		t.Fatalf("InTx: %v", err)
	}
	var n int64
	db.Model(&catalog.Teacher{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected committed row, got %d", n)
	}
}

func TestGormTxRunnerRollsBackOnError(t *testing.T) {
	db := testutil.DB(t)
	runner := NewGormTxRunner(db)
	boom := errors.New("boom")

	err := runner.InTx(context.Background(), func(dbc dbctx.Context) error {
		if err := dbc.Tx.Create(&catalog.Teacher{Name: "Maria", Email: "maria@example.com"}).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	var n int64
	db.Model(&catalog.Teacher{}).Count(&n)
	if n != 0 {
		t.Fatalf("expected rollback, got %d rows", n)
	}
}

func TestGormTxRunnerNilDB(t *testing.T) {
	err := NewGormTxRunner(nil).InTx(context.Background(), func(dbctx.Context) error { return nil })
	if !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("expected internal code, got %v", err)
	}
}
