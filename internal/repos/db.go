package repos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"eshopadmin/internal/domain"
)

type Options struct {
	Driver       string // sqlite | pgx
	DSN          string
	MaxOpenConns int
	ConnLifetime time.Duration
	EnsureSchema bool
}

// OpenDB opens the store once for the whole process. Every failure here is a
// *domain.ConnectionError: the caller cannot continue without a store.
func OpenDB(opts Options) (*Gateway, error) {
	driver := opts.Driver
	if driver == "" {
		driver = "sqlite"
	}
	db, err := sqlx.Open(driver, opts.DSN)
	if err != nil {
		return nil, &domain.ConnectionError{Driver: driver, Err: err}
	}
	maxOpen := opts.MaxOpenConns
	if driver == "sqlite" || maxOpen <= 0 {
		// one connection: sqlite has a single writer and :memory: is per-connection
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	if driver != "sqlite" {
		db.SetConnMaxLifetime(opts.ConnLifetime)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, &domain.ConnectionError{Driver: driver, Err: err}
	}
	if opts.EnsureSchema {
		if err := ensureSchema(db, driver); err != nil {
			_ = db.Close()
			return nil, &domain.ConnectionError{Driver: driver, Err: fmt.Errorf("schema: %w", err)}
		}
	}
	return NewGateway(db), nil
}

func ensureSchema(db *sqlx.DB, driver string) error {
	if driver != "sqlite" {
		for _, stmt := range strings.Split(postgresSchema, ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := db.Exec(stmt); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := db.Exec(sqliteSchema)
	return err
}

// customer_id on orders deliberately carries no FK: a missing customer
// resolves to "Unknown" instead of blocking writes.
const sqliteSchema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
  stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
  description TEXT NOT NULL DEFAULT '',
  featured INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

CREATE TABLE IF NOT EXISTS customers(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '{}',
  registration_date TEXT DEFAULT CURRENT_TIMESTAMP,
  newsletter_opt_in INTEGER NOT NULL DEFAULT 0,
  subscription_status TEXT
);

CREATE TABLE IF NOT EXISTS orders(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  customer_id INTEGER,
  status TEXT NOT NULL DEFAULT '',
  total_amount NUMERIC NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);

CREATE TABLE IF NOT EXISTS order_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL REFERENCES orders(id),
  product_id INTEGER NOT NULL REFERENCES products(id),
  quantity INTEGER NOT NULL CHECK (quantity > 0),
  price NUMERIC NOT NULL CHECK (price > 0)
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS products(
  id SERIAL PRIMARY KEY,
  name VARCHAR NOT NULL,
  category VARCHAR,
  price DECIMAL NOT NULL CHECK (price >= 0),
  stock_quantity INTEGER DEFAULT 0 CHECK (stock_quantity >= 0),
  description TEXT,
  featured BOOLEAN NOT NULL DEFAULT FALSE,
  created_at TIMESTAMP DEFAULT now()
);
CREATE TABLE IF NOT EXISTS customers(
  id SERIAL PRIMARY KEY,
  name VARCHAR NOT NULL,
  email VARCHAR UNIQUE NOT NULL,
  phone VARCHAR,
  address JSONB,
  registration_date TIMESTAMP DEFAULT now(),
  newsletter_opt_in BOOLEAN DEFAULT FALSE,
  subscription_status VARCHAR
);
CREATE TABLE IF NOT EXISTS orders(
  id SERIAL PRIMARY KEY,
  customer_id INTEGER,
  status VARCHAR,
  total_amount DECIMAL NOT NULL,
  created_at TIMESTAMP DEFAULT now()
);
CREATE TABLE IF NOT EXISTS order_items(
  id SERIAL PRIMARY KEY,
  order_id INTEGER NOT NULL REFERENCES orders(id),
  product_id INTEGER NOT NULL REFERENCES products(id),
  quantity INTEGER NOT NULL CHECK (quantity > 0),
  price DECIMAL NOT NULL CHECK (price > 0)
)
`

// Gateway is the single storage handle shared by every repository. Calls are
// serialized with a mutex so controllers in different sessions never
// interleave statements on the shared connection.
type Gateway struct {
	db     *sqlx.DB
	driver string
	mu     sync.Mutex
}

func NewGateway(db *sqlx.DB) *Gateway { return &Gateway{db: db, driver: db.DriverName()} }

func (g *Gateway) DB() *sqlx.DB { return g.db }

func (g *Gateway) Close() error { return g.db.Close() }

// Exec runs one auto-committed statement.
func (g *Gateway) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	res, err := g.db.ExecContext(ctx, g.db.Rebind(query), args...)
	if err != nil {
		return nil, storageErr(query, err)
	}
	return res, nil
}

// Select fills dest with every matching row. No rows is a nil error and an
// empty slice; only a failed read returns an error.
func (g *Gateway) Select(ctx context.Context, dest any, query string, args ...any) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.db.SelectContext(ctx, dest, g.db.Rebind(query), args...); err != nil {
		return storageErr(query, err)
	}
	return nil
}

// Get reads exactly one row. A missing row surfaces as domain.ErrNotFound.
func (g *Gateway) Get(ctx context.Context, dest any, query string, args ...any) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.db.GetContext(ctx, dest, g.db.Rebind(query), args...); err != nil {
		return storageErr(query, err)
	}
	return nil
}

// InTx runs fn inside one transaction: begin, fn, commit. Any error from fn
// or from commit rolls everything back.
func (g *Gateway) InTx(ctx context.Context, fn func(tx *Tx) error) (err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sqltx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageErr("begin", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = sqltx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = sqltx.Rollback()
		}
	}()

	if err = fn(&Tx{tx: sqltx}); err != nil {
		return err
	}
	if cerr := sqltx.Commit(); cerr != nil {
		return storageErr("commit", cerr)
	}
	return nil
}

// Tx is a statement runner bound to an open transaction.
type Tx struct{ tx *sqlx.Tx }

func (t *Tx) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := t.tx.ExecContext(ctx, t.tx.Rebind(query), args...)
	if err != nil {
		return nil, storageErr(query, err)
	}
	return res, nil
}

func storageErr(query string, err error) error {
	if err == sql.ErrNoRows {
		return domain.ErrNotFound
	}
	return &domain.StorageError{Op: opOf(query), Err: err}
}

func opOf(query string) string {
	f := strings.Fields(query)
	if len(f) == 0 {
		return "exec"
	}
	return strings.ToLower(f[0])
}
