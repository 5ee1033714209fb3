package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/murmurapp/murmur/internal/models"
)

var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a unique index rejects a write: a second
// verified holder of a handle, or a duplicate email.
var ErrConflict = errors.New("conflict")

const userColumns = `id, username, email, password_hash, verify_code, verify_code_expires_at,
	verified, accepting_messages, created_at, updated_at`

type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (username, email, password_hash, verify_code, verify_code_expires_at, verified, accepting_messages)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.VerifyCode,
		user.VerifyCodeExpiresAt,
		user.Verified,
		user.AcceptingMessages,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByUsername returns the most recent holder of a handle. Several
// unverified accounts may share one; the latest signup is the one a
// verification attempt should be judged against.
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1
	          ORDER BY verified DESC, created_at DESC LIMIT 1`
	return r.getOne(ctx, query, username)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *PostgresUserRepository) GetVerifiedByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND verified`
	return r.getOne(ctx, query, username)
}

// ReissueVerification replaces the credential hash and verification code of an
// unverified account when a signup is retried against its email.
func (r *PostgresUserRepository) ReissueVerification(ctx context.Context, id uuid.UUID, passwordHash, code string, expiresAt time.Time) error {
	query := `UPDATE users
	          SET password_hash = $1, verify_code = $2, verify_code_expires_at = $3, updated_at = NOW()
	          WHERE id = $4 AND NOT verified`

	result, err := r.pool.Exec(ctx, query, passwordHash, code, expiresAt, id)
	if err != nil {
		return fmt.Errorf("failed to reissue verification: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkVerified flips the account to verified and clears the code so it cannot
// be replayed. The partial unique index on verified handles rejects the write
// when another account verified the same handle first.
func (r *PostgresUserRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users
	          SET verified = TRUE, verify_code = NULL, verify_code_expires_at = NULL, updated_at = NOW()
	          WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) SetAcceptingMessages(ctx context.Context, id uuid.UUID, accepting bool) error {
	query := `UPDATE users SET accepting_messages = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.pool.Exec(ctx, query, accepting, id)
	if err != nil {
		return fmt.Errorf("failed to update accepting_messages: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)

	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.VerifyCode,
		&user.VerifyCodeExpiresAt,
		&user.Verified,
		&user.AcceptingMessages,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
