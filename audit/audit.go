// Package audit is an optional append-only join/kick event sink backed by
// MySQL. Grounded on meesudzu-jx2-paysys's internal/database package: same
// driver (github.com/go-sql-driver/mysql), same sql.Open/Ping-on-connect
// shape, same DSN assembly — adapted from that package's account-login
// lookups to a write-only event log, since this server never owns account
// data (non-goal). A nil *Sink is valid and every method on it is a no-op,
// so callers that never configure a DSN don't need a separate code path.
package audit

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Config names the MySQL connection spec.md's operator-facing config may
// optionally supply to enable audit logging.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// DSN assembles the driver's data source name from cfg.
func (cfg Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
}

// Sink writes join/kick events to a `connection_events` table. The caller
// is expected to have created that table; Sink never issues DDL.
type Sink struct {
	db *sql.DB
}

// Open connects to cfg's database and pings it once to fail fast on a bad
// DSN, the way jx2-paysys's database.NewConnection does.
func Open(cfg Config) (*Sink, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("audit: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: ping database: %w", err)
	}
	return &Sink{db: db}, nil
}

// Close releases the underlying connection pool. Safe to call on a nil
// Sink.
func (s *Sink) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// LogJoin records a successful login. A nil Sink silently does nothing,
// so callers never need to guard every call site with an Sink != nil
// check.
func (s *Sink) LogJoin(username, uuid, remoteAddr string) error {
	if s == nil {
		return nil
	}
	_, err := s.db.Exec(
		"INSERT INTO connection_events (username, uuid, remote_addr, event, at) VALUES (?, ?, ?, 'join', ?)",
		username, uuid, remoteAddr, time.Now(),
	)
	return err
}

// LogKick records a disconnect, with an optional reason (empty for a
// clean client-initiated close).
func (s *Sink) LogKick(username, uuid, reason string) error {
	if s == nil {
		return nil
	}
	_, err := s.db.Exec(
		"INSERT INTO connection_events (username, uuid, remote_addr, event, reason, at) VALUES (?, ?, '', 'kick', ?, ?)",
		username, uuid, reason, time.Now(),
	)
	return err
}
