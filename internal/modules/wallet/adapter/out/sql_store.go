package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"paymind/internal/modules/wallet/domain"
	apperrors "paymind/internal/platform/errors"
	"paymind/internal/platform/sqlstore"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS attention_wallet (
  user_id TEXT PRIMARY KEY,
  total_saved_time DOUBLE PRECISION NOT NULL DEFAULT 0,
  total_points BIGINT NOT NULL DEFAULT 0,
  money_saved DOUBLE PRECISION NOT NULL DEFAULT 0,
  streak_days INTEGER NOT NULL DEFAULT 0,
  version BIGINT NOT NULL DEFAULT 0,
  updated_at TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS goals (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  title TEXT NOT NULL,
  target_amount DOUBLE PRECISION NOT NULL,
  current_saved DOUBLE PRECISION NOT NULL DEFAULT 0,
  estimated_days_delayed INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS goals_user_idx ON goals (user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS wallet_credits (
  user_id TEXT NOT NULL,
  credit_key TEXT NOT NULL,
  hours DOUBLE PRECISION NOT NULL DEFAULT 0,
  points BIGINT NOT NULL DEFAULT 0,
  updated_at TEXT NOT NULL,
  PRIMARY KEY (user_id, credit_key)
)`,
}

// SQLStore keeps wallets and goals in the shared sql database.
type SQLStore struct {
	db *sqlstore.DB
}

func NewSQLStore(ctx context.Context, db *sqlstore.DB) (*SQLStore, error) {
	if err := db.Migrate(ctx, schema); err != nil {
		return nil, fmt.Errorf("migrate wallet schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) LoadWallet(ctx context.Context, userID string) (domain.Wallet, error) {
	const q = `SELECT user_id, total_saved_time, total_points, money_saved, streak_days, version, updated_at
FROM attention_wallet WHERE user_id = ?`
	var (
		w       domain.Wallet
		updated string
	)
	err := s.db.QueryRow(ctx, q, userID).Scan(&w.UserID, &w.TotalSavedTime, &w.TotalPoints, &w.MoneySaved, &w.StreakDays, &w.Version, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Wallet{}, fmt.Errorf("wallet for %s: %w", userID, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Wallet{}, fmt.Errorf("load wallet: %w", err)
	}
	if w.UpdatedAt, err = sqlstore.ParseTime(updated); err != nil {
		return domain.Wallet{}, err
	}
	return w, nil
}

func (s *SQLStore) CreateWallet(ctx context.Context, w domain.Wallet) error {
	const stmt = `INSERT INTO attention_wallet (user_id, total_saved_time, total_points, money_saved, streak_days, version, updated_at)
VALUES (?, ?, ?, ?, ?, 0, ?)
ON CONFLICT (user_id) DO NOTHING`
	if _, err := s.db.Exec(ctx, stmt, w.UserID, w.TotalSavedTime, w.TotalPoints, w.MoneySaved, w.StreakDays, sqlstore.FormatTime(w.UpdatedAt)); err != nil {
		return fmt.Errorf("create wallet: %w", err)
	}
	return nil
}

func (s *SQLStore) SaveWallet(ctx context.Context, w domain.Wallet) (domain.Wallet, error) {
	const stmt = `UPDATE attention_wallet
SET total_saved_time = ?, total_points = ?, money_saved = ?, streak_days = ?, updated_at = ?, version = version + 1
WHERE user_id = ? AND version = ?`
	res, err := s.db.Exec(ctx, stmt, w.TotalSavedTime, w.TotalPoints, w.MoneySaved, w.StreakDays, sqlstore.FormatTime(w.UpdatedAt), w.UserID, w.Version)
	if err != nil {
		return domain.Wallet{}, fmt.Errorf("save wallet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Wallet{}, fmt.Errorf("save wallet: %w", err)
	}
	if n == 0 {
		return domain.Wallet{}, fmt.Errorf("wallet %s at version %d: %w", w.UserID, w.Version, apperrors.ErrConflict)
	}
	w.Version++
	return w, nil
}

func (s *SQLStore) LoadCredit(ctx context.Context, userID, key string) (domain.Credit, error) {
	const q = `SELECT hours, points, updated_at FROM wallet_credits WHERE user_id = ? AND credit_key = ?`
	c := domain.Credit{UserID: userID, Key: key}
	var updated string
	err := s.db.QueryRow(ctx, q, userID, key).Scan(&c.Hours, &c.Points, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Credit{}, fmt.Errorf("credit %s for %s: %w", key, userID, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Credit{}, fmt.Errorf("load credit: %w", err)
	}
	if c.UpdatedAt, err = sqlstore.ParseTime(updated); err != nil {
		return domain.Credit{}, err
	}
	return c, nil
}

func (s *SQLStore) SaveCredit(ctx context.Context, c domain.Credit) error {
	const stmt = `INSERT INTO wallet_credits (user_id, credit_key, hours, points, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (user_id, credit_key) DO UPDATE SET hours = excluded.hours, points = excluded.points, updated_at = excluded.updated_at`
	if _, err := s.db.Exec(ctx, stmt, c.UserID, c.Key, c.Hours, c.Points, sqlstore.FormatTime(c.UpdatedAt)); err != nil {
		return fmt.Errorf("save credit: %w", err)
	}
	return nil
}

func (s *SQLStore) AddGoal(ctx context.Context, g domain.Goal) error {
	const stmt = `INSERT INTO goals (id, user_id, title, target_amount, current_saved, estimated_days_delayed, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.Exec(ctx, stmt, g.ID, g.UserID, g.Title, g.TargetAmount, g.CurrentSaved, g.EstimatedDaysDelayed, sqlstore.FormatTime(g.CreatedAt)); err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}

const goalColumns = `id, user_id, title, target_amount, current_saved, estimated_days_delayed, created_at`

func (s *SQLStore) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	rows, err := s.db.Query(ctx, `SELECT `+goalColumns+` FROM goals WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()
	var out []domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return out, nil
}

func (s *SQLStore) LoadGoal(ctx context.Context, userID, goalID string) (domain.Goal, error) {
	row := s.db.QueryRow(ctx, `SELECT `+goalColumns+` FROM goals WHERE user_id = ? AND id = ?`, userID, goalID)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Goal{}, fmt.Errorf("goal %s: %w", goalID, apperrors.ErrNotFound)
	}
	return g, err
}

func (s *SQLStore) UpdateGoal(ctx context.Context, g domain.Goal) error {
	const stmt = `UPDATE goals SET current_saved = ?, estimated_days_delayed = ? WHERE user_id = ? AND id = ?`
	res, err := s.db.Exec(ctx, stmt, g.CurrentSaved, g.EstimatedDaysDelayed, g.UserID, g.ID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return requireRow(res, "goal "+g.ID)
}

func (s *SQLStore) DeleteGoal(ctx context.Context, userID, goalID string) error {
	res, err := s.db.Exec(ctx, `DELETE FROM goals WHERE user_id = ? AND id = ?`, userID, goalID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return requireRow(res, "goal "+goalID)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(row scanner) (domain.Goal, error) {
	var (
		g       domain.Goal
		created string
	)
	if err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentSaved, &g.EstimatedDaysDelayed, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Goal{}, err
		}
		return domain.Goal{}, fmt.Errorf("scan goal: %w", err)
	}
	var err error
	if g.CreatedAt, err = sqlstore.ParseTime(created); err != nil {
		return domain.Goal{}, err
	}
	return g, nil
}

func requireRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	return nil
}
