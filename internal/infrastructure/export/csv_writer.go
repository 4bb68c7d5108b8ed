package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/promolens/backend/internal/domain"
)

// csvHeader is the full record column set; exports are lossless against it.
var csvHeader = []string{
	"retailer", "product_name", "category", "base_price",
	"final_price", "discount_pct", "is_promo", "source_file", "parsed_date",
}

// CSVWriter renders product records as CSV with 2-decimal currency and
// integer percent columns. It writes to any io.Writer, so the HTTP layer
// can stream exports and tools can write files.
type CSVWriter struct{}

// NewCSVWriter creates a CSV exporter.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// Write renders the records to w, header first.
func (c *CSVWriter) Write(w io.Writer, records []domain.ProductRecord) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Retailer,
			r.ProductName,
			r.Category,
			fmt.Sprintf("%.2f", r.BasePrice),
			fmt.Sprintf("%.2f", r.FinalPrice),
			strconv.Itoa(r.DiscountPct),
			strconv.FormatBool(r.IsPromo),
			r.SourceFile,
			r.ParsedDate.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row for %q: %w", r.ProductName, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
