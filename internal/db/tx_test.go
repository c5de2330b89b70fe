package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec(`CREATE TABLE timings (name TEXT PRIMARY KEY, seconds INTEGER NOT NULL)`); err != nil {
		conn.Close()
		t.Fatalf("failed to create table: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func countRows(t *testing.T, conn *sql.DB) int {
	t.Helper()
	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM timings`).Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}

func TestWithTx_Commits(t *testing.T) {
	conn := openMemory(t)

	err := WithTx(t.Context(), conn, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO timings VALUES ('class', 5400)`); err != nil {
			return err
		}
		_, err := tx.Exec(`INSERT INTO timings VALUES ('rest', 1200)`)
		return err
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}

	if n := countRows(t, conn); n != 2 {
		t.Errorf("rows = %d, want 2", n)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	conn := openMemory(t)
	failure := errors.New("abort")

	err := WithTx(t.Context(), conn, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO timings VALUES ('class', 5400)`); err != nil {
			return err
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("WithTx error = %v, want %v", err, failure)
	}

	if n := countRows(t, conn); n != 0 {
		t.Errorf("rows = %d, want 0 (rolled back)", n)
	}
}

func TestWithTx_RollsBackOnStatementError(t *testing.T) {
	conn := openMemory(t)

	err := WithTx(t.Context(), conn, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO timings VALUES ('class', 5400)`); err != nil {
			return err
		}
		// Duplicate primary key.
		_, err := tx.Exec(`INSERT INTO timings VALUES ('class', 60)`)
		return err
	})
	if err == nil {
		t.Fatal("WithTx should return the constraint error")
	}

	if n := countRows(t, conn); n != 0 {
		t.Errorf("rows = %d, want 0 (rolled back)", n)
	}
}

func TestWithTx_CanceledContext(t *testing.T) {
	conn := openMemory(t)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	called := false
	err := WithTx(ctx, conn, func(*sql.Tx) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("WithTx error = %v, want context.Canceled", err)
	}
	if called {
		t.Error("fn ran without a transaction")
	}
}
