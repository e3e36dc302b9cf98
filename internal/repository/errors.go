package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound indicates an entity was not located.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicateEmail indicates the users.email unique constraint rejected a write.
	ErrDuplicateEmail = errors.New("repository: duplicate email")
)

const (
	pgUniqueViolation   = "23505"
	pgInvalidTextFormat = "22P02"
)

// translate maps driver errors onto repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if pgErr.ConstraintName == "users_email_key" {
				return ErrDuplicateEmail
			}
		case pgInvalidTextFormat:
			return ErrNotFound
		}
	}
	return err
}
