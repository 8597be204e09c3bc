package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite" // driver: sqlite
)

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  expires_at INTEGER NOT NULL DEFAULT 0
);
`

// SQLiteStore implementación de Store sobre un archivo SQLite
type SQLiteStore struct {
	db        *sql.DB
	ctx       context.Context
	namespace string
	now       func() time.Time
}

// NewSQLiteStore abre (o crea) la base de datos y asegura el esquema
func NewSQLiteStore(path, namespace string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite: %w", err)
	}
	// Un único writer evita SQLITE_BUSY con cache compartida
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQLite); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating schema: %w", err)
	}

	log.Printf("✅ Base de datos SQLite lista en %s", path)

	return &SQLiteStore{
		db:        db,
		ctx:       ctx,
		namespace: namespace,
		now:       time.Now,
	}, nil
}

func (s *SQLiteStore) Get(key string, dst any) (bool, error) {
	var (
		value     string
		expiresAt int64
	)
	err := s.db.QueryRowContext(s.ctx,
		`SELECT value, expires_at FROM kv WHERE key = ?`, s.namespace+key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error getting %s: %w", key, err)
	}
	if expiresAt > 0 && s.now().UnixNano() >= expiresAt {
		return false, nil
	}

	if err := json.Unmarshal([]byte(value), dst); err != nil {
		return false, fmt.Errorf("error parsing %s: %w", key, err)
	}
	return true, nil
}

func (s *SQLiteStore) Set(key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error serializing %s: %w", key, err)
	}

	var expiresAt int64
	if ttl > 0 {
		expiresAt = s.now().Add(ttl).UnixNano()
	}

	_, err = s.db.ExecContext(s.ctx,
		`INSERT INTO kv (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		s.namespace+key, string(data), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("error saving %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.ExecContext(s.ctx, `DELETE FROM kv WHERE key = ?`, s.namespace+key); err != nil {
		return fmt.Errorf("error deleting %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Ping() error {
	if err := s.db.PingContext(s.ctx); err != nil {
		return fmt.Errorf("sqlite health check failed: %w", err)
	}
	return nil
}

// Close cierra la conexión con la base de datos
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
