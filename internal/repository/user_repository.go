package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/shopkit/shop-service/internal/domain"
)

// UserRepository defines persistence access for shop users.
type UserRepository interface {
	// Create inserts the user, assigning ID and CreatedAt. It returns
	// ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, firstname, lastname, email, password_hash, role)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at`

	id := uuid.NewString()
	err := r.pool.QueryRow(ctx, query,
		id,
		user.Firstname,
		user.Lastname,
		user.Email,
		user.PasswordHash,
		user.Role,
	).Scan(&user.CreatedAt)
	if err != nil {
		if translated := translate(err); errors.Is(translated, ErrDuplicateEmail) {
			return translated
		}
		return errors.Wrap(err, "insert user")
	}
	user.ID = id
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id::text, firstname, lastname, email, password_hash, role, created_at
        FROM users WHERE id=$1`

	return r.getOne(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id::text, firstname, lastname, email, password_hash, role, created_at
        FROM users WHERE email=$1`

	return r.getOne(ctx, query, email)
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `
        SELECT id::text, firstname, lastname, email, password_hash, role, created_at
        FROM users ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Firstname,
			&user.Lastname,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan user")
		}
		users = append(users, user)
	}
	return users, errors.Wrap(rows.Err(), "iterate users")
}

func (r *userRepository) getOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Firstname,
		&user.Lastname,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	); err != nil {
		if translated := translate(err); errors.Is(translated, ErrNotFound) {
			return nil, translated
		}
		return nil, errors.Wrap(err, "get user")
	}
	return &user, nil
}
