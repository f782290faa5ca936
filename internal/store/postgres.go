package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schéma orienté document : ids applicatifs TEXT, ensembles de membres
// et de votes en TEXT[], réactions et snapshots en JSONB. Les migrations
// sont idempotentes et rejouées à chaque démarrage.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT UNIQUE NOT NULL,
	email TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	bio TEXT NOT NULL DEFAULT '',
	interests TEXT[] NOT NULL DEFAULT '{}',
	profile_photo_url TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	streak INT NOT NULL DEFAULT 0,
	total_points INT NOT NULL DEFAULT 0,
	completed_challenges INT NOT NULL DEFAULT 0,
	is_active BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	token TEXT UNIQUE NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS interests (
	id TEXT PRIMARY KEY,
	name TEXT UNIQUE NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	icon TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS groups (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_by TEXT NOT NULL,
	members TEXT[] NOT NULL DEFAULT '{}',
	admins TEXT[] NOT NULL DEFAULT '{}',
	invite_code TEXT UNIQUE NOT NULL,
	group_photo_url TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	max_members INT NOT NULL DEFAULT 15
);

CREATE TABLE IF NOT EXISTS activities (
	id TEXT PRIMARY KEY,
	group_id TEXT NOT NULL,
	created_by TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	emoji TEXT NOT NULL DEFAULT '',
	difficulty TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	selected_for_date TIMESTAMPTZ,
	deadline TIMESTAMPTZ,
	is_completed BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_activities_group ON activities(group_id);
CREATE INDEX IF NOT EXISTS idx_activities_selected ON activities(group_id, selected_for_date);

CREATE TABLE IF NOT EXISTS submissions (
	id TEXT PRIMARY KEY,
	activity_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	photo_url TEXT NOT NULL,
	caption TEXT NOT NULL DEFAULT '',
	location JSONB,
	submitted_at TIMESTAMPTZ NOT NULL,
	votes TEXT[] NOT NULL DEFAULT '{}',
	reactions JSONB NOT NULL DEFAULT '{}',
	is_featured BOOLEAN NOT NULL DEFAULT FALSE,
	UNIQUE (activity_id, user_id)
);
CREATE INDEX IF NOT EXISTS idx_submissions_activity ON submissions(activity_id);
CREATE INDEX IF NOT EXISTS idx_submissions_user ON submissions(user_id);

CREATE TABLE IF NOT EXISTS leaderboard_snapshots (
	id TEXT PRIMARY KEY,
	group_id TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	entries JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_group ON leaderboard_snapshots(group_id, created_at);

CREATE TABLE IF NOT EXISTS notifications (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL,
	message TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	read BOOLEAN NOT NULL DEFAULT FALSE,
	type TEXT NOT NULL,
	link TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, created_at);
`

// ConnectPostgres ouvre le pool, vérifie la connexion et rejoue les
// migrations
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("unable to run migrations: %w", err)
	}

	return pool, nil
}

// PostgresStore implémente Store sur pgx
type PostgresStore struct {
	db *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}
