package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Beginner là phần của *pgxpool.Pool cần để mở transaction
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

var _ Beginner = (*pgxpool.Pool)(nil)

// WithTx chạy fn trong một transaction.
// fn trả lỗi hoặc panic → rollback, ngược lại commit.
func WithTx[T any](ctx context.Context, db Beginner, fn func(tx pgx.Tx) (T, error)) (result T, err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return result, fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	result, err = fn(tx)
	if err != nil {
		var zero T
		return zero, err
	}

	if err = tx.Commit(ctx); err != nil {
		var zero T
		return zero, fmt.Errorf("commit transaction: %w", err)
	}
	return result, nil
}
