package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/promolens/backend/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS product_records (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	retailer     TEXT NOT NULL,
	product_name TEXT NOT NULL,
	category     TEXT NOT NULL,
	base_price   REAL NOT NULL,
	final_price  REAL NOT NULL,
	discount_pct INTEGER NOT NULL,
	is_promo     INTEGER NOT NULL,
	source_file  TEXT NOT NULL,
	parsed_date  TEXT NOT NULL
)`

// SQLiteStore persists records in a local SQLite database using the pure-Go
// driver, so parsed flyers survive restarts without a database server.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Append inserts a flyer batch inside one transaction.
func (s *SQLiteStore) Append(ctx context.Context, records []domain.ProductRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO product_records
			(retailer, product_name, category, base_price, final_price, discount_pct, is_promo, source_file, parsed_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.Retailer, r.ProductName, r.Category, r.BasePrice, r.FinalPrice,
			r.DiscountPct, boolToInt(r.IsPromo), r.SourceFile, r.ParsedDate.Format(time.RFC3339Nano),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert record: %w", err)
		}
	}

	return tx.Commit()
}

// All returns every stored record in insertion order.
func (s *SQLiteStore) All(ctx context.Context) ([]domain.ProductRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT retailer, product_name, category, base_price, final_price, discount_pct, is_promo, source_file, parsed_date
		FROM product_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM product_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

// Clear removes all records.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM product_records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// scanRecords reads rows produced by the shared column set.
func scanRecords(rows *sql.Rows) ([]domain.ProductRecord, error) {
	var records []domain.ProductRecord
	for rows.Next() {
		var r domain.ProductRecord
		var isPromo int
		var parsedDate string
		if err := rows.Scan(&r.Retailer, &r.ProductName, &r.Category, &r.BasePrice,
			&r.FinalPrice, &r.DiscountPct, &isPromo, &r.SourceFile, &parsedDate); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.IsPromo = isPromo != 0
		if t, err := time.Parse(time.RFC3339Nano, parsedDate); err == nil {
			r.ParsedDate = t
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
