package domain

import "context"

// RecordStore is the aggregate collection of parsed product records.
// It is append-only: a flyer-parse run appends its deduplicated batch and
// records are never updated in place.
type RecordStore interface {
	Append(ctx context.Context, records []ProductRecord) error
	All(ctx context.Context) ([]ProductRecord, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}
