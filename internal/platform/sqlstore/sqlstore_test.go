package sqlstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"paymind/internal/platform/sqlstore"
)

func openTemp(t *testing.T) *sqlstore.DB {
	t.Helper()
	db, err := sqlstore.OpenSQLite(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.Migrate(context.Background(), []string{`CREATE TABLE kv (k TEXT PRIMARY KEY, v INTEGER NOT NULL)`}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func count(t *testing.T, db *sqlstore.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow(context.Background(), `SELECT COUNT(*) FROM kv`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestWithinCommitsAndRollsBack(t *testing.T) {
	t.Parallel()
	db := openTemp(t)
	ctx := context.Background()

	err := db.Within(ctx, func(ctx context.Context) error {
		if _, err := db.Exec(ctx, `INSERT INTO kv (k, v) VALUES (?, ?)`, "a", 1); err != nil {
			return err
		}
		return db.Within(ctx, func(ctx context.Context) error {
			_, err := db.Exec(ctx, `INSERT INTO kv (k, v) VALUES (?, ?)`, "b", 2)
			return err
		})
	})
	if err != nil {
		t.Fatalf("commit path: %v", err)
	}
	if n := count(t, db); n != 2 {
		t.Fatalf("expected 2 committed rows, got %d", n)
	}

	boom := errors.New("boom")
	err = db.Within(ctx, func(ctx context.Context) error {
		if _, err := db.Exec(ctx, `INSERT INTO kv (k, v) VALUES (?, ?)`, "c", 3); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if n := count(t, db); n != 2 {
		t.Fatalf("rollback should discard insert, got %d rows", n)
	}
}

func TestRebindOnlyTouchesPostgres(t *testing.T) {
	t.Parallel()
	db := openTemp(t)
	q := `SELECT * FROM kv WHERE k = ? AND v > ?`
	if got := db.Rebind(q); got != q {
		t.Fatalf("sqlite must keep placeholders, got %s", got)
	}
	if got := sqlstore.Rebind(sqlstore.Postgres, q); got != `SELECT * FROM kv WHERE k = $1 AND v > $2` {
		t.Fatalf("unexpected postgres rebind: %s", got)
	}
	if db.Dialect() != sqlstore.SQLite || db.Dialect().String() != "sqlite" {
		t.Fatalf("unexpected dialect %v", db.Dialect())
	}
	if _, err := sqlstore.Open("oracle", "", ""); err == nil {
		t.Fatalf("unknown driver should fail")
	}
	if _, err := sqlstore.OpenPostgres(""); err == nil {
		t.Fatalf("empty dsn should fail")
	}
}

func TestTimeRoundTrip(t *testing.T) {
	t.Parallel()
	at := time.Date(2025, 3, 9, 21, 15, 4, 123000000, time.FixedZone("IST", 19800))
	text := sqlstore.FormatTime(at)
	if text != "2025-03-09T15:45:04.123Z" {
		t.Fatalf("unexpected text %s", text)
	}
	back, err := sqlstore.ParseTime(text)
	if err != nil || !back.Equal(at) {
		t.Fatalf("round trip = %v, %v", back, err)
	}
	if zero, err := sqlstore.ParseTime(""); err != nil || !zero.IsZero() {
		t.Fatalf("empty text should give zero time, got %v %v", zero, err)
	}
}
