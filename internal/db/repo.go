package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/go-pg/pg/v10"
)

// ErrConflict is returned when a write violates a unique or foreign key constraint.
var ErrConflict = errors.New("constraint violation")

var savepointSeq atomic.Uint64

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// InTransaction runs fn against a repository bound to a single transaction.
// On a plain connection a new transaction is started; inside an existing
// transaction a savepoint is used so fn can be rolled back on its own.
// The transaction is committed when fn returns nil and rolled back otherwise.
func (r *Repository) InTransaction(ctx context.Context, fn func(*Repository) error) error {
	switch conn := r.db.(type) {
	case *pg.DB:
		return conn.RunInTransaction(ctx, func(tx *pg.Tx) error {
			return fn(New(tx))
		})
	case *pg.Tx:
		return inSavepoint(ctx, conn, fn)
	default:
		return fn(r)
	}
}

func inSavepoint(ctx context.Context, tx *pg.Tx, fn func(*Repository) error) error {
	name := "sp_" + strconv.FormatUint(savepointSeq.Add(1), 10)

	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("failed to create savepoint: %w", err)
	}

	if err := fn(New(tx)); err != nil {
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			return fmt.Errorf("failed to rollback to savepoint (%v): %w", rbErr, err)
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return fmt.Errorf("failed to release savepoint: %w", err)
	}

	return nil
}

// mapError turns integrity violations reported by Postgres into ErrConflict.
func mapError(err error) error {
	var pgErr pg.Error
	if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
		return fmt.Errorf("%w: %s", ErrConflict, pgErr.Field('M'))
	}

	return err
}
