package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/promolens/backend/internal/domain"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS product_records (
	id           SERIAL PRIMARY KEY,
	retailer     VARCHAR(50)   NOT NULL,
	product_name TEXT          NOT NULL,
	category     TEXT          NOT NULL,
	base_price   NUMERIC(10,2) NOT NULL,
	final_price  NUMERIC(10,2) NOT NULL,
	discount_pct INTEGER       NOT NULL,
	is_promo     BOOLEAN       NOT NULL,
	source_file  TEXT          NOT NULL,
	parsed_date  TIMESTAMPTZ   NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_product_records_retailer ON product_records (retailer);
CREATE INDEX IF NOT EXISTS idx_product_records_category ON product_records (category);
`

// PostgresStore persists records in PostgreSQL for deployments where parsed
// flyers are shared between instances.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to the database, pings it, and ensures the
// schema exists.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres store: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres store: %w", err)
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create postgres schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Append inserts a flyer batch inside one transaction.
func (s *PostgresStore) Append(ctx context.Context, records []domain.ProductRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO product_records
			(retailer, product_name, category, base_price, final_price, discount_pct, is_promo, source_file, parsed_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.Retailer, r.ProductName, r.Category, r.BasePrice, r.FinalPrice,
			r.DiscountPct, r.IsPromo, r.SourceFile, r.ParsedDate,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert record: %w", err)
		}
	}

	return tx.Commit()
}

// All returns every stored record in insertion order.
func (s *PostgresStore) All(ctx context.Context) ([]domain.ProductRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT retailer, product_name, category, base_price, final_price, discount_pct, is_promo, source_file, parsed_date
		FROM product_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []domain.ProductRecord
	for rows.Next() {
		var r domain.ProductRecord
		if err := rows.Scan(&r.Retailer, &r.ProductName, &r.Category, &r.BasePrice,
			&r.FinalPrice, &r.DiscountPct, &r.IsPromo, &r.SourceFile, &r.ParsedDate); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Count returns the number of stored records.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM product_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

// Clear removes all records.
func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM product_records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
