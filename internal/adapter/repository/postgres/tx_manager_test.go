package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type stubPool struct {
	tx       *fakeTx
	beginErr error
}

func (p *stubPool) Begin(ctx context.Context) (pgx.Tx, error) {
	if p.beginErr != nil {
		return nil, p.beginErr
	}
	return p.tx, nil
}

func TestTxManager_BeginCommit(t *testing.T) {
	inner := &fakeTx{}
	manager := newTxManagerWithPool(&stubPool{tx: inner})

	tx, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := tx.Commit(context.Background()); err != nil {
		t.Fatalf("unexpected commit error: %v", err)
	}
	if !inner.committed {
		t.Error("expected underlying transaction to be committed")
	}
}

func TestTxManager_BeginRollback(t *testing.T) {
	inner := &fakeTx{}
	manager := newTxManagerWithPool(&stubPool{tx: inner})

	tx, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := tx.Rollback(context.Background()); err != nil {
		t.Fatalf("unexpected rollback error: %v", err)
	}
	if !inner.rolledBack {
		t.Error("expected underlying transaction to be rolled back")
	}
}

func TestTxManager_BeginError(t *testing.T) {
	wantErr := errors.New("connection refused")
	manager := newTxManagerWithPool(&stubPool{beginErr: wantErr})

	_, err := manager.Begin(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected begin error, got %v", err)
	}
}

func TestTxManager_CommitError(t *testing.T) {
	wantErr := errors.New("deadlock detected")
	manager := newTxManagerWithPool(&stubPool{tx: &fakeTx{commitErr: wantErr}})

	tx, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := tx.Commit(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected commit error, got %v", err)
	}
}

func TestQuerierFor(t *testing.T) {
	inner := &fakeTx{}

	q := querierFor(&Tx{tx: inner}, nil)
	if q != pgx.Tx(inner) {
		t.Error("expected querier to resolve to the transaction")
	}

	if got := querierFor(nil, nil); got == nil {
		// a nil *pgxpool.Pool still yields a non-nil querier interface
		t.Error("expected pool-backed querier")
	}
}
