package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/cvbuilder/pkg/auth"
	"github.com/artem13815/cvbuilder/pkg/cv"
)

// UserRepository stores users with their CV as a JSONB document. It
// implements auth.UserRepository and cv.Repository.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	repo := &UserRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *UserRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			gender TEXT NOT NULL DEFAULT '',
			cv JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS users_created_at_idx ON users (created_at, id);
	`)
	return err
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	doc, err := json.Marshal(cv.CV{FirstName: user.FirstName, LastName: user.LastName}.Normalize())
	if err != nil {
		return fmt.Errorf("encode cv: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, gender, cv, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`, user.ID, strings.ToLower(user.Email), user.PasswordHash, user.Gender, string(doc), user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return auth.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, gender,
		       COALESCE(cv->>'firstName', ''), COALESCE(cv->>'lastName', ''), created_at
		FROM users WHERE email = $1
	`, strings.ToLower(email))
	var user auth.User
	var createdAt time.Time
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Gender,
		&user.FirstName, &user.LastName, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	user.CreatedAt = createdAt.UTC()
	return user, nil
}

const profileColumns = `id, email, gender, cv, created_at, updated_at`

func scanProfile(row pgx.Row) (cv.Profile, error) {
	var p cv.Profile
	var doc []byte
	if err := row.Scan(&p.ID, &p.Email, &p.Gender, &doc, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return cv.Profile{}, err
	}
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &p.CV); err != nil {
			return cv.Profile{}, fmt.Errorf("decode cv of %s: %w", p.ID, err)
		}
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func (r *UserRepository) GetProfile(ctx context.Context, id uuid.UUID) (cv.Profile, error) {
	p, err := scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return cv.Profile{}, cv.ErrNotFound
	}
	return p, err
}

func (r *UserRepository) ListProfiles(ctx context.Context, limit, offset int) ([]cv.Profile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+profileColumns+`
		FROM users
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cv.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ReplaceCV overwrites the cv document. Concurrent writers are not
// coordinated; the last update wins.
func (r *UserRepository) ReplaceCV(ctx context.Context, id uuid.UUID, c cv.CV) (cv.Profile, error) {
	doc, err := json.Marshal(c.Normalize())
	if err != nil {
		return cv.Profile{}, fmt.Errorf("encode cv: %w", err)
	}
	p, err := scanProfile(r.pool.QueryRow(ctx, `
		UPDATE users SET cv = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+profileColumns, id, string(doc)))
	if errors.Is(err, pgx.ErrNoRows) {
		return cv.Profile{}, cv.ErrNotFound
	}
	return p, err
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return cv.ErrNotFound
	}
	return nil
}
