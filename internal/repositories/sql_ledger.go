package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// ledgerColumns mirrors the positional ledger row; index i stores row[i].
var ledgerColumns = []string{
	"submitted_at",
	"name",
	"email",
	"phone",
	"address",
	"beds",
	"baths",
	"sqft",
	"property_condition",
	"timeline",
	"mortgage_payoff",
	"concessions",
	"low_sale",
	"high_sale",
	"net_low",
	"net_high",
}

// LedgerEntry is one stored row, read back for reporting and tests.
type LedgerEntry struct {
	ID             int64   `db:"id"`
	SubmittedAt    string  `db:"submitted_at"`
	Name           string  `db:"name"`
	Email          string  `db:"email"`
	Phone          string  `db:"phone"`
	Address        string  `db:"address"`
	Beds           string  `db:"beds"`
	Baths          string  `db:"baths"`
	SquareFeet     float64 `db:"sqft"`
	Condition      string  `db:"property_condition"`
	Timeline       string  `db:"timeline"`
	MortgagePayoff float64 `db:"mortgage_payoff"`
	Concessions    string  `db:"concessions"`
	LowSale        int64   `db:"low_sale"`
	HighSale       int64   `db:"high_sale"`
	NetLow         int64   `db:"net_low"`
	NetHigh        int64   `db:"net_high"`
}

// SQLLedger is an append-only lead table on Postgres or SQLite.
type SQLLedger struct {
	db     *sqlx.DB
	insert string
}

// NewSQLLedger opens driver ("postgres" or "sqlite") and ensures the table exists.
func NewSQLLedger(ctx context.Context, driver, dsn string) (*SQLLedger, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("ledger: empty %s dsn", driver)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// one connection so ":memory:" stays a single database
		db.SetMaxOpenConns(1)
	}
	l, err := NewSQLLedgerFromDB(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return l, nil
}

func NewSQLLedgerFromDB(ctx context.Context, db *sqlx.DB) (*SQLLedger, error) {
	if err := migrateLedger(ctx, db); err != nil {
		return nil, fmt.Errorf("ledger: migrate: %w", err)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ledgerColumns)), ", ")
	insert := db.Rebind(fmt.Sprintf("INSERT INTO lead_ledger (%s) VALUES (%s)",
		strings.Join(ledgerColumns, ", "), placeholders))
	return &SQLLedger{db: db, insert: insert}, nil
}

func migrateLedger(ctx context.Context, db *sqlx.DB) error {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		idColumn = "id BIGSERIAL PRIMARY KEY"
	}
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS lead_ledger (
    `+idColumn+`,
    submitted_at TEXT NOT NULL,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    address TEXT NOT NULL DEFAULT '',
    beds TEXT NOT NULL DEFAULT '',
    baths TEXT NOT NULL DEFAULT '',
    sqft DOUBLE PRECISION NOT NULL,
    property_condition TEXT NOT NULL DEFAULT '',
    timeline TEXT NOT NULL DEFAULT '',
    mortgage_payoff DOUBLE PRECISION NOT NULL DEFAULT 0,
    concessions TEXT NOT NULL,
    low_sale BIGINT NOT NULL,
    high_sale BIGINT NOT NULL,
    net_low BIGINT NOT NULL,
    net_high BIGINT NOT NULL
)`)
	return err
}

// Append inserts row, which must have one value per ledger column.
func (l *SQLLedger) Append(ctx context.Context, row []any) error {
	if len(row) != len(ledgerColumns) {
		return fmt.Errorf("ledger: row has %d values, want %d", len(row), len(ledgerColumns))
	}
	if _, err := l.db.ExecContext(ctx, l.insert, row...); err != nil {
		return fmt.Errorf("ledger: insert: %w", err)
	}
	return nil
}

// Recent returns the newest entries first.
func (l *SQLLedger) Recent(ctx context.Context, limit int) ([]LedgerEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []LedgerEntry
	q := l.db.Rebind(`SELECT * FROM lead_ledger ORDER BY id DESC LIMIT ?`)
	if err := l.db.SelectContext(ctx, &out, q, limit); err != nil {
		return nil, fmt.Errorf("ledger: select: %w", err)
	}
	return out, nil
}

func (l *SQLLedger) Close() error {
	return l.db.Close()
}
