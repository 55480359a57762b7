package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Driver names double as database/sql driver names.
type Driver string

const (
	Postgres Driver = "postgres"
	SQLite   Driver = "sqlite"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Storage owns the pooled connection. The pool is opened on first use, or by
// an explicit Connect; repeated Connect calls reuse the open pool.
type Storage struct {
	DB *sql.DB

	driver Driver
	dsn    string
	mu     sync.Mutex
	now    func() time.Time
}

// New returns an unconnected storage for driver and dsn.
func New(driver Driver, dsn string) (*Storage, error) {
	switch driver {
	case Postgres, SQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if dsn == "" {
		return nil, errors.New("database dsn is required")
	}
	return &Storage{driver: driver, dsn: dsn, now: time.Now}, nil
}

// Connect opens the pool, checks it and applies pending migrations.
// It is a no-op when the storage is already connected.
func (s *Storage) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DB != nil {
		return nil
	}

	conn, err := sql.Open(string(s.driver), s.dsn)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.driver, err)
	}
	if s.driver == SQLite {
		// sqlite allows a single writer, and every connection to ":memory:"
		// is a separate database.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(20)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(time.Hour)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("ping %s: %w", s.driver, err)
	}

	if err := runMigrations(conn, s.driver, s.dsn); err != nil {
		conn.Close()
		return err
	}

	s.DB = conn
	return nil
}

// Connected reports whether the pool has been opened.
func (s *Storage) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.DB != nil
}

func (s *Storage) Driver() Driver {
	return s.driver
}

// Ping checks the pool, connecting first if needed.
func (s *Storage) Ping(ctx context.Context) error {
	conn, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return conn.PingContext(ctx)
}

func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DB == nil {
		return nil
	}
	err := s.DB.Close()
	s.DB = nil
	return err
}

func (s *Storage) conn(ctx context.Context) (*sql.DB, error) {
	if err := s.Connect(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DB == nil {
		return nil, errors.New("storage closed")
	}
	return s.DB, nil
}

// rebind rewrites ? placeholders into the driver's syntax.
func (s *Storage) rebind(query string) string {
	if s.driver != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Storage) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	return conn.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Storage) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	return conn.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Storage) queryRow(ctx context.Context, query string, args ...any) (*sql.Row, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	return conn.QueryRowContext(ctx, s.rebind(query), args...), nil
}

func (s *Storage) timestamp() time.Time {
	return s.now().UTC()
}

// translate maps driver errors onto ErrNotFound and ErrDuplicate.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}
