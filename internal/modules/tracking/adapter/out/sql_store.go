package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"paymind/internal/modules/tracking/domain"
	valuation "paymind/internal/modules/valuation/domain"
	"paymind/internal/platform/calendar"
	apperrors "paymind/internal/platform/errors"
	"paymind/internal/platform/sqlstore"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS screen_time_entries (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  app_name TEXT NOT NULL,
  hours DOUBLE PRECISION NOT NULL,
  date TEXT NOT NULL,
  est_value_lost DOUBLE PRECISION NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  UNIQUE (user_id, date, app_name)
)`,
	`CREATE TABLE IF NOT EXISTS distraction_logs (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  date TEXT NOT NULL,
  pickup_count INTEGER NOT NULL DEFAULT 0,
  notification_count INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  UNIQUE (user_id, date)
)`,
	`CREATE TABLE IF NOT EXISTS focus_activities (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  type TEXT NOT NULL,
  hours DOUBLE PRECISION NOT NULL,
  points INTEGER NOT NULL,
  date TEXT NOT NULL,
  created_at TEXT NOT NULL,
  UNIQUE (user_id, date, type)
)`,
	`CREATE TABLE IF NOT EXISTS subscriptions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  name TEXT NOT NULL,
  cost DOUBLE PRECISION NOT NULL,
  usage_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS subscriptions_user_idx ON subscriptions (user_id)`,
}

// SQLStore persists tracking records. Dates are stored as YYYY-MM-DD text so range filters
// compare lexically on both backends.
type SQLStore struct {
	db *sqlstore.DB
}

func NewSQLStore(ctx context.Context, db *sqlstore.DB) (*SQLStore, error) {
	if err := db.Migrate(ctx, schema); err != nil {
		return nil, fmt.Errorf("migrate tracking schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) ReplaceDay(ctx context.Context, userID string, day time.Time, entries []domain.UsageEntry) error {
	return s.db.Within(ctx, func(ctx context.Context) error {
		if _, err := s.db.Exec(ctx, `DELETE FROM screen_time_entries WHERE user_id = ? AND date = ?`, userID, calendar.Format(day)); err != nil {
			return fmt.Errorf("clear usage day: %w", err)
		}
		const stmt = `INSERT INTO screen_time_entries (id, user_id, app_name, hours, date, est_value_lost, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
		for _, e := range entries {
			if _, err := s.db.Exec(ctx, stmt, e.ID, userID, e.AppName, e.Hours, calendar.Format(day), e.EstValueLost, sqlstore.FormatTime(e.CreatedAt)); err != nil {
				return fmt.Errorf("insert usage %s: %w", e.AppName, err)
			}
		}
		return nil
	})
}

func (s *SQLStore) ListUsage(ctx context.Context, userID string, r calendar.Range) ([]domain.UsageEntry, error) {
	const q = `SELECT id, user_id, app_name, hours, date, est_value_lost, created_at
FROM screen_time_entries WHERE user_id = ? AND date >= ? AND date <= ?
ORDER BY date DESC, created_at, app_name`
	rows, err := s.db.Query(ctx, q, userID, calendar.Format(r.From), calendar.Format(r.To))
	if err != nil {
		return nil, fmt.Errorf("list usage: %w", err)
	}
	defer rows.Close()
	var out []domain.UsageEntry
	for rows.Next() {
		var (
			e             domain.UsageEntry
			date, created string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.AppName, &e.Hours, &date, &e.EstValueLost, &created); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		if e.Date, e.CreatedAt, err = parseStamps(date, created); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list usage: %w", err)
	}
	return out, nil
}

func (s *SQLStore) UpsertDistraction(ctx context.Context, l domain.DistractionLog) (domain.DistractionLog, error) {
	const stmt = `INSERT INTO distraction_logs (id, user_id, date, pickup_count, notification_count, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, date) DO UPDATE SET
  pickup_count = excluded.pickup_count,
  notification_count = excluded.notification_count`
	if _, err := s.db.Exec(ctx, stmt, l.ID, l.UserID, calendar.Format(l.Date), l.PickupCount, l.NotificationCount, sqlstore.FormatTime(l.CreatedAt)); err != nil {
		return domain.DistractionLog{}, fmt.Errorf("upsert distraction log: %w", err)
	}
	logs, err := s.ListDistractions(ctx, l.UserID, calendar.SingleDay(l.Date))
	if err != nil {
		return domain.DistractionLog{}, err
	}
	if len(logs) == 0 {
		return domain.DistractionLog{}, fmt.Errorf("distraction log %s: %w", calendar.Format(l.Date), apperrors.ErrNotFound)
	}
	return logs[0], nil
}

func (s *SQLStore) ListDistractions(ctx context.Context, userID string, r calendar.Range) ([]domain.DistractionLog, error) {
	const q = `SELECT id, user_id, date, pickup_count, notification_count, created_at
FROM distraction_logs WHERE user_id = ? AND date >= ? AND date <= ?
ORDER BY date DESC`
	rows, err := s.db.Query(ctx, q, userID, calendar.Format(r.From), calendar.Format(r.To))
	if err != nil {
		return nil, fmt.Errorf("list distraction logs: %w", err)
	}
	defer rows.Close()
	var out []domain.DistractionLog
	for rows.Next() {
		var (
			l             domain.DistractionLog
			date, created string
		)
		if err := rows.Scan(&l.ID, &l.UserID, &date, &l.PickupCount, &l.NotificationCount, &created); err != nil {
			return nil, fmt.Errorf("scan distraction log: %w", err)
		}
		if l.Date, l.CreatedAt, err = parseStamps(date, created); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list distraction logs: %w", err)
	}
	return out, nil
}

const focusColumns = `id, user_id, type, hours, points, date, created_at`

func (s *SQLStore) FindFocus(ctx context.Context, userID string, day time.Time, activityType string) (domain.FocusActivity, error) {
	row := s.db.QueryRow(ctx, `SELECT `+focusColumns+` FROM focus_activities WHERE user_id = ? AND date = ? AND type = ?`,
		userID, calendar.Format(day), activityType)
	a, err := scanFocus(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.FocusActivity{}, fmt.Errorf("focus %s on %s: %w", activityType, calendar.Format(day), apperrors.ErrNotFound)
	}
	return a, err
}

func (s *SQLStore) UpsertFocus(ctx context.Context, a domain.FocusActivity) (domain.FocusActivity, error) {
	const stmt = `INSERT INTO focus_activities (id, user_id, type, hours, points, date, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, date, type) DO UPDATE SET
  hours = excluded.hours,
  points = excluded.points`
	if _, err := s.db.Exec(ctx, stmt, a.ID, a.UserID, string(a.Type), a.Hours, a.Points, calendar.Format(a.Date), sqlstore.FormatTime(a.CreatedAt)); err != nil {
		return domain.FocusActivity{}, fmt.Errorf("upsert focus activity: %w", err)
	}
	return s.FindFocus(ctx, a.UserID, a.Date, string(a.Type))
}

func (s *SQLStore) ListFocus(ctx context.Context, userID string, r calendar.Range) ([]domain.FocusActivity, error) {
	rows, err := s.db.Query(ctx, `SELECT `+focusColumns+` FROM focus_activities WHERE user_id = ? AND date >= ? AND date <= ?
ORDER BY date DESC, created_at DESC, type`, userID, calendar.Format(r.From), calendar.Format(r.To))
	if err != nil {
		return nil, fmt.Errorf("list focus activities: %w", err)
	}
	defer rows.Close()
	var out []domain.FocusActivity
	for rows.Next() {
		a, err := scanFocus(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list focus activities: %w", err)
	}
	return out, nil
}

func (s *SQLStore) AddSubscription(ctx context.Context, sub domain.Subscription) error {
	const stmt = `INSERT INTO subscriptions (id, user_id, name, cost, usage_hours, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := s.db.Exec(ctx, stmt, sub.ID, sub.UserID, sub.Name, sub.Cost, sub.UsageHours, sqlstore.FormatTime(sub.CreatedAt)); err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (s *SQLStore) ListSubscriptions(ctx context.Context, userID string) ([]domain.Subscription, error) {
	rows, err := s.db.Query(ctx, `SELECT id, user_id, name, cost, usage_hours, created_at FROM subscriptions
WHERE user_id = ? ORDER BY created_at DESC, name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()
	var out []domain.Subscription
	for rows.Next() {
		var (
			sub     domain.Subscription
			created string
		)
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.Cost, &sub.UsageHours, &created); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		if sub.CreatedAt, err = sqlstore.ParseTime(created); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return out, nil
}

func (s *SQLStore) DeleteSubscription(ctx context.Context, userID, id string) error {
	res, err := s.db.Exec(ctx, `DELETE FROM subscriptions WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("subscription %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// ActiveDays lists the distinct days in r with usage, distraction or focus records.
func (s *SQLStore) ActiveDays(ctx context.Context, userID string, r calendar.Range) ([]time.Time, error) {
	const q = `SELECT date FROM screen_time_entries WHERE user_id = ? AND date >= ? AND date <= ?
UNION SELECT date FROM distraction_logs WHERE user_id = ? AND date >= ? AND date <= ?
UNION SELECT date FROM focus_activities WHERE user_id = ? AND date >= ? AND date <= ?
ORDER BY date DESC`
	from, to := calendar.Format(r.From), calendar.Format(r.To)
	rows, err := s.db.Query(ctx, q, userID, from, to, userID, from, to, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list active days: %w", err)
	}
	defer rows.Close()
	var out []time.Time
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scan active day: %w", err)
		}
		d, err := calendar.Parse(date)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active days: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFocus(row scanner) (domain.FocusActivity, error) {
	var (
		a                   domain.FocusActivity
		kind, date, created string
	)
	if err := row.Scan(&a.ID, &a.UserID, &kind, &a.Hours, &a.Points, &date, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.FocusActivity{}, err
		}
		return domain.FocusActivity{}, fmt.Errorf("scan focus activity: %w", err)
	}
	a.Type = valuation.ActivityType(kind)
	var err error
	if a.Date, a.CreatedAt, err = parseStamps(date, created); err != nil {
		return domain.FocusActivity{}, err
	}
	return a, nil
}

func parseStamps(date, created string) (time.Time, time.Time, error) {
	d, err := calendar.Parse(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	c, err := sqlstore.ParseTime(created)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return d, c, nil
}
