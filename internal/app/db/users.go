package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// User is a persisted application user, keyed internally by id and externally by
// the Telegram user id that produced it.
type User struct {
	ID            int64
	TelegramID    int64
	FirstName     string
	LastName      string
	Username      string
	PhotoURL      string
	IsWhitelisted bool
	IsAdmin       bool
	CreatedAt     time.Time
	LastLoginAt   *time.Time
}

// FullName joins the first and last name, falling back to the username.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// Store wraps the pgx connection pool with the application's query set.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore constructs a Store over an initialized connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const userColumns = `id, telegram_id, first_name, last_name, username, photo_url,
	is_whitelisted, is_admin, created_at, last_login_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.TelegramID, &u.FirstName, &u.LastName, &u.Username,
		&u.PhotoURL, &u.IsWhitelisted, &u.IsAdmin, &u.CreatedAt, &u.LastLoginAt)
	if err == pgx.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

// GetUserByTelegramID fetches a user by Telegram id. Returns ErrNotFound for unknown ids.
func (s *Store) GetUserByTelegramID(ctx context.Context, telegramID int64) (User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID)
	return scanUser(row)
}

// GetUserByID fetches a user by internal id. Returns ErrNotFound for unknown ids.
func (s *Store) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// UpsertTelegramUserParams carries the profile fields supplied by a Telegram login.
type UpsertTelegramUserParams struct {
	TelegramID int64
	FirstName  string
	LastName   string
	Username   string
	PhotoURL   string
}

// UpsertTelegramUser creates the user on first login (non-whitelisted, non-admin) or
// refreshes the profile fields of an existing row. Empty incoming fields never clobber
// previously stored values. The last_login_at timestamp is stamped on every call.
func (s *Store) UpsertTelegramUser(ctx context.Context, p UpsertTelegramUserParams) (User, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (telegram_id, first_name, last_name, username, photo_url, last_login_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (telegram_id) DO UPDATE SET
			first_name    = CASE WHEN EXCLUDED.first_name = '' THEN users.first_name ELSE EXCLUDED.first_name END,
			last_name     = CASE WHEN EXCLUDED.last_name  = '' THEN users.last_name  ELSE EXCLUDED.last_name  END,
			username      = CASE WHEN EXCLUDED.username   = '' THEN users.username   ELSE EXCLUDED.username   END,
			photo_url     = CASE WHEN EXCLUDED.photo_url  = '' THEN users.photo_url  ELSE EXCLUDED.photo_url  END,
			last_login_at = now()
		RETURNING `+userColumns,
		p.TelegramID, p.FirstName, p.LastName, p.Username, p.PhotoURL)
	return scanUser(row)
}

// UpdateLastLogin stamps last_login_at for the given user.
func (s *Store) UpdateLastLogin(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `UPDATE users SET last_login_at = now() WHERE id = $1`, id)
	return err
}

// ListUsers returns every user ordered by creation time, for the admin panel.
func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SetWhitelisted flips the whitelist flag for a user and returns the updated row.
func (s *Store) SetWhitelisted(ctx context.Context, id int64, whitelisted bool) (User, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE users SET is_whitelisted = $2 WHERE id = $1
		RETURNING `+userColumns,
		id, whitelisted)
	return scanUser(row)
}

// EnsureOwner creates the bot owner row if it does not exist yet. The owner is
// always whitelisted and admin. Called once at startup.
func (s *Store) EnsureOwner(ctx context.Context, telegramID int64) error {
	if telegramID <= 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (telegram_id, first_name, last_name, username, is_whitelisted, is_admin)
		VALUES ($1, 'Bot', 'Owner', 'bot_owner', TRUE, TRUE)
		ON CONFLICT (telegram_id) DO NOTHING`,
		telegramID)
	return err
}
