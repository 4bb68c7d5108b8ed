package usecase

import (
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/promolens/backend/internal/domain"
)

// contextRadius is the number of characters kept on each side of a match.
const contextRadius = 50

// maxDiscountPct bounds a sane discount capture; larger values are treated
// as malformed and skipped.
const maxDiscountPct = 100

// PricePair couples a matched price in euros with its surrounding context.
type PricePair struct {
	Context string
	Price   float64
}

// DiscountPair couples a matched discount percentage with its context.
type DiscountPair struct {
	Context  string
	Discount int
}

// Extractor scans raw flyer text for price and discount occurrences using
// the pattern library's ordered notation lists.
type Extractor struct {
	lib                *domain.PatternLibrary
	enableDebugLogging bool
}

// NewExtractor creates an extractor over the given pattern library.
func NewExtractor(lib *domain.PatternLibrary, enableDebugLogging bool) *Extractor {
	return &Extractor{lib: lib, enableDebugLogging: enableDebugLogging}
}

// ExtractPrices returns (context, price) pairs in pattern-list order, then
// left-to-right within each pattern. Patterns are applied independently, so
// the same span can match under more than one notation; the duplicates are
// left for the batch dedup step in the record builder. Malformed numeric
// captures are skipped and extraction continues.
func (e *Extractor) ExtractPrices(text string) []PricePair {
	var pairs []PricePair

	for _, pattern := range e.lib.PricePatterns {
		for _, m := range pattern.Regexp.FindAllStringSubmatchIndex(text, -1) {
			price, ok := parsePriceMatch(text, m, pattern.Cents)
			if !ok {
				continue
			}
			pairs = append(pairs, PricePair{
				Context: contextWindow(text, m[0], m[1]),
				Price:   price,
			})
		}
	}

	if e.enableDebugLogging {
		log.Printf("[EXTRACT] found %d price pairs", len(pairs))
	}

	return pairs
}

// ExtractDiscounts mirrors ExtractPrices over the discount-pattern list,
// yielding (context, integer-percent) pairs. Captures above 100% are treated
// as malformed and dropped.
func (e *Extractor) ExtractDiscounts(text string) []DiscountPair {
	var pairs []DiscountPair

	for _, pattern := range e.lib.DiscountPatterns {
		for _, m := range pattern.FindAllStringSubmatchIndex(text, -1) {
			if m[2] < 0 {
				continue
			}
			pct, err := strconv.Atoi(text[m[2]:m[3]])
			if err != nil || pct > maxDiscountPct {
				continue
			}
			pairs = append(pairs, DiscountPair{
				Context:  contextWindow(text, m[0], m[1]),
				Discount: pct,
			})
		}
	}

	if e.enableDebugLogging {
		log.Printf("[EXTRACT] found %d discount pairs", len(pairs))
	}

	return pairs
}

// parsePriceMatch converts one submatch-index set into a price in euros.
// Cent-only notations divide the single group by 100; euro notations join
// the integer and fractional groups as a decimal string before parsing.
func parsePriceMatch(text string, m []int, cents bool) (float64, bool) {
	if m[2] < 0 {
		return 0, false
	}
	first := text[m[2]:m[3]]

	if cents {
		n, err := strconv.Atoi(first)
		if err != nil {
			return 0, false
		}
		return float64(n) / 100, true
	}

	fraction := "00"
	if len(m) > 4 && m[4] >= 0 {
		fraction = text[m[4]:m[5]]
	}
	price, err := strconv.ParseFloat(first+"."+fraction, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// contextWindow returns the text surrounding [start, end) byte offsets,
// widened by contextRadius characters on each side, clipped to the text
// bounds and trimmed.
func contextWindow(text string, start, end int) string {
	lo := start
	for i := 0; i < contextRadius && lo > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:lo])
		lo -= size
	}

	hi := end
	for i := 0; i < contextRadius && hi < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[hi:])
		hi += size
	}

	return strings.TrimSpace(text[lo:hi])
}
