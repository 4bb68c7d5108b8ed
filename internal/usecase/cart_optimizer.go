package usecase

import (
	"log"
	"sort"

	"github.com/promolens/backend/internal/domain"
)

// promoTieBreak nudges promo items ahead of non-promo items at equal price
// when selecting the cheapest candidates per category.
const promoTieBreak = 0.01

// CartOptimizer assembles a cart greedily from category requirements under
// an optional budget. It deliberately does not solve the exact knapsack
// problem; the per-item budget skip below can under-fill a category.
type CartOptimizer struct {
	enableDebugLogging bool
}

// NewCartOptimizer creates a cart optimizer.
func NewCartOptimizer(enableDebugLogging bool) *CartOptimizer {
	return &CartOptimizer{enableDebugLogging: enableDebugLogging}
}

// Optimize processes the requirements in slice order. For each requirement
// it picks the requested quantity of cheapest candidates in the category
// (promos win price ties), then adds them one by one: when a budget is set
// and an item would push the running total past it, that single item is
// skipped and selection continues. A budget of zero or less means
// unconstrained.
func (o *CartOptimizer) Optimize(records []domain.ProductRecord, reqs []domain.CartRequirement, budget float64) domain.CartResult {
	result := domain.CartResult{
		Items:     []domain.CartItem{},
		Retailers: []string{},
	}
	hasBudget := budget > 0

	var totalCost, totalSavings float64
	seenRetailers := make(map[string]bool)

	for _, req := range reqs {
		for _, r := range selectCheapest(records, req.Category, req.Quantity) {
			if hasBudget && totalCost+r.FinalPrice > budget {
				if o.enableDebugLogging {
					log.Printf("[CART] skipping %q at %.2f: budget %.2f exceeded", r.ProductName, r.FinalPrice, budget)
				}
				continue
			}

			result.Items = append(result.Items, domain.CartItem{
				Retailer:      r.Retailer,
				Product:       r.ProductName,
				Category:      req.Category,
				Price:         r.FinalPrice,
				OriginalPrice: r.BasePrice,
				DiscountPct:   r.DiscountPct,
				IsPromo:       r.IsPromo,
			})
			totalCost += r.FinalPrice
			totalSavings += r.Savings()

			if !seenRetailers[r.Retailer] {
				seenRetailers[r.Retailer] = true
				result.Retailers = append(result.Retailers, r.Retailer)
			}
		}
	}

	result.TotalCost = round2(totalCost)
	result.TotalSavings = round2(totalSavings)
	result.ItemCount = len(result.Items)
	return result
}

// selectCheapest returns up to qty records of the category with the
// smallest sort key final_price − 0.01·is_promo. The sort is stable, so
// equal keys keep encounter order.
func selectCheapest(records []domain.ProductRecord, category string, qty int) []domain.ProductRecord {
	candidates := make([]domain.ProductRecord, 0)
	for _, r := range records {
		if r.Category == category {
			candidates = append(candidates, r)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return cartSortKey(candidates[i]) < cartSortKey(candidates[j])
	})

	if len(candidates) > qty {
		candidates = candidates[:qty]
	}
	return candidates
}

func cartSortKey(r domain.ProductRecord) float64 {
	key := r.FinalPrice
	if r.IsPromo {
		key -= promoTieBreak
	}
	return key
}
