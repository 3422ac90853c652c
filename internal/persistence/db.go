// Package persistence saves games keyed by country and keeps the scoreboard,
// on SQLite or Postgres.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/younisbosefi/younosomy/internal/state"
)

// ErrNotFound is returned when no row matches the lookup.
var ErrNotFound = errors.New("persistence: not found")

// Dialect selects the database engine.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// DB wraps a database connection for game storage.
type DB struct {
	conn    *sqlx.DB
	dialect Dialect
}

// Open connects to dsn with the given dialect and creates missing tables.
// For SQLite, dsn is a file path.
func Open(dialect Dialect, dsn string) (*DB, error) {
	var (
		conn *sqlx.DB
		err  error
	)
	switch dialect {
	case SQLite:
		conn, err = sqlx.Open("sqlite", dsn+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	case Postgres:
		conn, err = sqlx.Open("pgx", dsn)
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", dialect, err)
	}
	if dialect == SQLite {
		conn.SetMaxOpenConns(1)
	}

	db := &DB{conn: conn, dialect: dialect}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	slog.Info("database opened", "dialect", dialect)
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS saved_games (
			country_id  TEXT PRIMARY KEY,
			game_id     TEXT NOT NULL,
			current_day INTEGER NOT NULL,
			state_json  TEXT NOT NULL,
			saved_at    TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS world_meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scoreboard (
			id               TEXT PRIMARY KEY,
			game_id          TEXT NOT NULL,
			country_id       TEXT NOT NULL,
			country_name     TEXT NOT NULL,
			outcome          TEXT NOT NULL,
			final_score      DOUBLE PRECISION NOT NULL,
			final_day        INTEGER NOT NULL,
			total_days       INTEGER NOT NULL,
			final_gdp        DOUBLE PRECISION NOT NULL,
			final_happiness  DOUBLE PRECISION NOT NULL,
			final_debt_ratio DOUBLE PRECISION NOT NULL,
			recorded_at      TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scoreboard_score ON scoreboard(final_score)`,
	}
	for _, q := range stmts {
		if _, err := db.conn.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveGame stores s under its country, replacing any earlier save.
func (db *DB) SaveGame(s state.WorldState, at time.Time) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", s.GameID, err)
	}
	_, err = db.conn.Exec(db.conn.Rebind(`INSERT INTO saved_games (country_id, game_id, current_day, state_json, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (country_id) DO UPDATE SET
			game_id = excluded.game_id,
			current_day = excluded.current_day,
			state_json = excluded.state_json,
			saved_at = excluded.saved_at`),
		s.Country.ID, s.GameID, s.CurrentDay, string(body), at.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", s.Country.ID, err)
	}
	slog.Info("game saved", "country", s.Country.ID, "game", s.GameID, "day", s.CurrentDay)
	return nil
}

// LoadGame returns the saved game for countryID.
func (db *DB) LoadGame(countryID string) (state.WorldState, error) {
	var body string
	err := db.conn.Get(&body, db.conn.Rebind("SELECT state_json FROM saved_games WHERE country_id = ?"), countryID)
	if errors.Is(err, sql.ErrNoRows) {
		return state.WorldState{}, fmt.Errorf("game for %s: %w", countryID, ErrNotFound)
	}
	if err != nil {
		return state.WorldState{}, fmt.Errorf("load game %s: %w", countryID, err)
	}

	var s state.WorldState
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		return state.WorldState{}, fmt.Errorf("decode game %s: %w", countryID, err)
	}
	slog.Info("game loaded", "country", countryID, "game", s.GameID, "day", s.CurrentDay)
	return s, nil
}

// DeleteGame drops the save for countryID, if any.
func (db *DB) DeleteGame(countryID string) error {
	_, err := db.conn.Exec(db.conn.Rebind("DELETE FROM saved_games WHERE country_id = ?"), countryID)
	return err
}

// Save is a saved game's listing entry.
type Save struct {
	CountryID  string    `db:"country_id"`
	GameID     string    `db:"game_id"`
	CurrentDay int       `db:"current_day"`
	SavedAt    time.Time `db:"saved_at"`
}

// Saves lists saved games, most recent first.
func (db *DB) Saves() ([]Save, error) {
	var out []Save
	err := db.conn.Select(&out,
		"SELECT country_id, game_id, current_day, saved_at FROM saved_games ORDER BY saved_at DESC")
	return out, err
}

// SaveMeta stores a key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(db.conn.Rebind(
		"INSERT INTO world_meta (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value"),
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, db.conn.Rebind("SELECT value FROM world_meta WHERE key = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("meta %q: %w", key, ErrNotFound)
	}
	return value, err
}
