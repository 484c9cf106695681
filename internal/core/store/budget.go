package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wordlens/wordlens/internal/core/dict"
)

// Spend consumes one request from today's paid-API allowance. Once the
// allowance is gone it returns dict.ErrBudgetExhausted and the request
// must not be made.
func (s *Store) Spend(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	limit := s.dailyBudget()
	if limit < 0 {
		return nil
	}

	day := s.now().UTC().Format("2006-01-02")

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin budget update: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck // no-op after commit

	var count int
	row := tx.QueryRowContext(ctx, `SELECT request_count FROM api_budget WHERE day = ?`, day)
	if err := row.Scan(&count); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read budget: %w", err)
	}

	if count >= limit {
		return dict.ErrBudgetExhausted
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO api_budget (day, request_count) VALUES (?, 1)
		ON CONFLICT(day) DO UPDATE SET request_count = request_count + 1
	`, day); err != nil {
		return fmt.Errorf("update budget: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit budget update: %w", err)
	}
	return nil
}

// BudgetUsage reports today's spent requests and the configured limit.
func (s *Store) BudgetUsage(ctx context.Context) (used int, limit int, err error) {
	if s == nil || s.DB == nil {
		return 0, 0, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	day := s.now().UTC().Format("2006-01-02")
	row := s.DB.QueryRowContext(ctx, `SELECT request_count FROM api_budget WHERE day = ?`, day)
	if err := row.Scan(&used); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, 0, fmt.Errorf("read budget: %w", err)
	}
	return used, s.dailyBudget(), nil
}
