package usecase

import "strings"

// associationTokenLimit caps how many leading tokens of a discount context
// are tested against a price context.
const associationTokenLimit = 5

// AssociateDiscount pairs a price context with a discount. It walks the
// discount pairs in order and returns the first whose leading five
// lower-cased tokens contain at least one substring of the lower-cased
// price context. No character offsets are consulted, so a discount from an
// unrelated but textually similar context elsewhere in the flyer can win;
// that is a known limitation of the keyword-overlap heuristic. No match
// returns 0.
func AssociateDiscount(priceContext string, discounts []DiscountPair) int {
	ctxLower := strings.ToLower(priceContext)

	for _, d := range discounts {
		tokens := strings.Fields(strings.ToLower(d.Context))
		if len(tokens) > associationTokenLimit {
			tokens = tokens[:associationTokenLimit]
		}
		for _, token := range tokens {
			if strings.Contains(ctxLower, token) {
				return d.Discount
			}
		}
	}

	return 0
}
