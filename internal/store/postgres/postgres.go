// Package postgres implements store.Store on top of sqlx and the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"belakoo-backend-go/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
)

type Store struct {
	db *sqlx.DB
	q  sqlx.ExtContext
	tx *sqlx.Tx
}

var _ store.Store = (*Store)(nil)

func New(db *sqlx.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx store.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&Store{db: s.db, q: tx, tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapError(err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return mapError(sqlx.GetContext(ctx, s.q, dest, query, args...))
}

func (s *Store) selectAll(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return mapError(sqlx.SelectContext(ctx, s.q, dest, query, args...))
}

// namedExec runs an insert. Inside a transaction the statement is fenced by a
// savepoint so a unique violation leaves the transaction usable and callers
// can re-read the winning row.
func (s *Store) namedExec(ctx context.Context, query string, arg interface{}) error {
	if s.tx == nil {
		_, err := sqlx.NamedExecContext(ctx, s.q, query, arg)
		return mapError(err)
	}
	if _, err := s.tx.ExecContext(ctx, `SAVEPOINT store_write`); err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}
	if _, err := sqlx.NamedExecContext(ctx, s.tx, query, arg); err != nil {
		if _, rbErr := s.tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT store_write`); rbErr != nil {
			return fmt.Errorf("%w (rollback to savepoint: %v)", mapError(err), rbErr)
		}
		return mapError(err)
	}
	if _, err := s.tx.ExecContext(ctx, `RELEASE SAVEPOINT store_write`); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}

// mustAffect turns an UPDATE/DELETE that matched nothing into ErrNotFound.
func (s *Store) mustAffect(res sql.Result, err error) error {
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var found bool
	if err := sqlx.GetContext(ctx, s.q, &found, query, args...); err != nil {
		return false, mapError(err)
	}
	return found, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", store.ErrConflict, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", store.ErrNotFound, pgErr.ConstraintName)
		case codeInvalidText:
			// malformed uuid in a lookup
			return store.ErrNotFound
		}
	}
	return err
}

func newID(current string) string {
	if current != "" {
		return current
	}
	return uuid.NewString()
}

func now() time.Time {
	return time.Now().UTC()
}

// excludeID keeps the "exclude-by-id" parameter typed as uuid even when empty.
func excludeID(id string) interface{} {
	if id == "" {
		return nil
	}
	return id
}
