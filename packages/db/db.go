// Package db persists OAuth access tokens in SQLite so the CLI can keep
// several authorized accounts and pick one per call.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when no token is stored under an account name.
var ErrNotFound = errors.New("token not found")

// Token is an access token pair obtained through oauth/access_token.
type Token struct {
	Account     string
	ConsumerKey string
	Token       string
	TokenSecret string
	UserID      string
	ScreenName  string
	CreatedAt   time.Time
}

// Store is a token store backed by a SQLite database
type Store struct {
	db           *sql.DB
	dataSource   string
	queryTimeout time.Duration
}

const schema = `CREATE TABLE IF NOT EXISTS tokens (
	account      TEXT PRIMARY KEY,
	consumer_key TEXT NOT NULL,
	token        TEXT NOT NULL,
	token_secret TEXT NOT NULL,
	user_id      TEXT NOT NULL DEFAULT '',
	screen_name  TEXT NOT NULL DEFAULT '',
	created_at   INTEGER NOT NULL
)`

// DefaultPath is ~/.twitteroauth/tokens.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".twitteroauth", "tokens.db"), nil
}

// Open opens or creates the store. Accepted forms are sqlite://path,
// sqlite:path and a bare file path.
func Open(connectionString string) (*Store, error) {
	dsn, err := parseConnectionString(connectionString)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(dsn); dir != "." && dsn != ":memory:" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{
		db:           db,
		dataSource:   dsn,
		queryTimeout: 5 * time.Second,
	}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores t under t.Account, replacing any previous token.
func (s *Store) Save(t Token) error {
	if t.Account == "" {
		return fmt.Errorf("account name is required")
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `INSERT INTO tokens
		(account, consumer_key, token, token_secret, user_id, screen_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account) DO UPDATE SET
			consumer_key = excluded.consumer_key,
			token = excluded.token,
			token_secret = excluded.token_secret,
			user_id = excluded.user_id,
			screen_name = excluded.screen_name,
			created_at = excluded.created_at`,
		t.Account, t.ConsumerKey, t.Token, t.TokenSecret, t.UserID, t.ScreenName, t.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *Store) Get(account string) (*Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `SELECT account, consumer_key, token, token_secret,
		user_id, screen_name, created_at FROM tokens WHERE account = ?`, account)

	t, err := scanToken(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, account)
	}
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}
	return t, nil
}

// List returns every stored token ordered by account name.
func (s *Store) List() ([]Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT account, consumer_key, token, token_secret,
		user_id, screen_name, created_at FROM tokens ORDER BY account`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var tokens []Token
	for rows.Next() {
		t, err := scanToken(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		tokens = append(tokens, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return tokens, nil
}

func (s *Store) Delete(account string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM tokens WHERE account = ?`, account)
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, account)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanToken(row scanner) (*Token, error) {
	var t Token
	var created int64
	if err := row.Scan(&t.Account, &t.ConsumerKey, &t.Token, &t.TokenSecret,
		&t.UserID, &t.ScreenName, &created); err != nil {
		return nil, err
	}
	t.CreatedAt = time.Unix(created, 0)
	return &t, nil
}

// parseConnectionString turns a connection string into a SQLite DSN.
// Supported formats:
// - sqlite://path/to/tokens.db
// - sqlite:./tokens.db
// - path/to/tokens.db
func parseConnectionString(connStr string) (string, error) {
	connStr = strings.TrimSpace(connStr)

	switch {
	case connStr == "":
		return "", fmt.Errorf("empty connection string")
	case strings.HasPrefix(connStr, "sqlite://"):
		return strings.TrimPrefix(connStr, "sqlite://"), nil
	case strings.HasPrefix(connStr, "sqlite:"):
		return strings.TrimPrefix(connStr, "sqlite:"), nil
	case strings.Contains(connStr, "://"):
		scheme, _, _ := strings.Cut(connStr, "://")
		return "", fmt.Errorf("unsupported database scheme: %s", scheme)
	default:
		return connStr, nil
	}
}
