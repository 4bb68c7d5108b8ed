package usecase

import (
	"math"
	"strings"
	"time"

	"github.com/promolens/backend/internal/domain"
)

// nameTokenLimit is how many leading context tokens form the product name.
const nameTokenLimit = 5

// RecordBuilder turns associated extraction pairs into deduplicated
// ProductRecords for one flyer batch.
type RecordBuilder struct {
	categorizer *Categorizer
	now         func() time.Time
}

// NewRecordBuilder creates a record builder using the given categorizer.
func NewRecordBuilder(categorizer *Categorizer) *RecordBuilder {
	return &RecordBuilder{categorizer: categorizer, now: time.Now}
}

// Build produces the record batch for one flyer: each price pair is
// associated with a discount, categorized, named, priced, and the batch is
// deduplicated by (product name, final price) keeping the first occurrence.
// Dedup scope is this batch only; records from other flyers or retailers
// are never compared.
func (b *RecordBuilder) Build(retailer, sourceFile string, prices []PricePair, discounts []DiscountPair) []domain.ProductRecord {
	records := make([]domain.ProductRecord, 0, len(prices))
	parsedAt := b.now()

	for _, pair := range prices {
		discountPct := AssociateDiscount(pair.Context, discounts)
		basePrice, finalPrice := derivePrices(pair.Price, discountPct)

		records = append(records, domain.ProductRecord{
			Retailer:    retailer,
			ProductName: deriveName(pair.Context),
			Category:    b.categorizer.Categorize(pair.Context),
			BasePrice:   basePrice,
			FinalPrice:  finalPrice,
			DiscountPct: discountPct,
			IsPromo:     discountPct > 0,
			SourceFile:  sourceFile,
			ParsedDate:  parsedAt,
		})
	}

	return dedupeRecords(records)
}

// deriveName joins the first five whitespace tokens of the context, falling
// back to a placeholder when the context has no tokens.
func deriveName(context string) string {
	tokens := strings.Fields(context)
	if len(tokens) == 0 {
		return domain.PlaceholderName
	}
	if len(tokens) > nameTokenLimit {
		tokens = tokens[:nameTokenLimit]
	}
	return strings.Join(tokens, " ")
}

// derivePrices computes base and final prices from the matched price and the
// associated discount. A 100% discount would divide by zero in the base-price
// back-calculation, so it is treated as price-already-final: the base price
// equals the final price and the promo flag stands.
func derivePrices(price float64, discountPct int) (basePrice, finalPrice float64) {
	if discountPct <= 0 || discountPct >= 100 {
		return price, price
	}
	base := round2(price / (1 - float64(discountPct)/100))
	return base, price
}

// round2 rounds to two decimals, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type dedupeKey struct {
	name       string
	finalPrice float64
}

// dedupeRecords keeps the first record for each distinct (name, final price)
// pair. The operation is idempotent.
func dedupeRecords(records []domain.ProductRecord) []domain.ProductRecord {
	seen := make(map[dedupeKey]bool, len(records))
	result := records[:0:0]

	for _, r := range records {
		key := dedupeKey{name: r.ProductName, finalPrice: r.FinalPrice}
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, r)
	}

	return result
}
