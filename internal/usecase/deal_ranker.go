package usecase

import (
	"sort"

	"github.com/promolens/backend/internal/domain"
)

// Deal score blends the discount percentage with the relative savings.
const (
	discountScoreWeight = 0.7
	savingsScoreWeight  = 0.3
	defaultTopDeals     = 10
)

// TopDeals restricts the records to promos (and to one category when given),
// scores each deal, and returns the n highest-scoring records. The sort is
// stable, so records with equal scores keep their encounter order. Empty
// candidate input yields an empty result; the caller owns the no-data error.
func TopDeals(records []domain.ProductRecord, category string, n int) []domain.Deal {
	if n <= 0 {
		n = defaultTopDeals
	}

	deals := make([]domain.Deal, 0, len(records))
	for _, r := range records {
		if !r.IsPromo {
			continue
		}
		if category != "" && r.Category != category {
			continue
		}
		deals = append(deals, domain.Deal{
			ProductRecord: r,
			SavingsAmount: r.Savings(),
			DealScore:     dealScore(r),
		})
	}

	sort.SliceStable(deals, func(i, j int) bool {
		return deals[i].DealScore > deals[j].DealScore
	})

	if len(deals) > n {
		deals = deals[:n]
	}
	return deals
}

// dealScore is discount_pct weighted at 70% plus relative savings (as a
// percentage of the base price) weighted at 30%.
func dealScore(r domain.ProductRecord) float64 {
	relativeSavings := 0.0
	if r.BasePrice > 0 {
		relativeSavings = r.Savings() / r.BasePrice * 100
	}
	return float64(r.DiscountPct)*discountScoreWeight + relativeSavings*savingsScoreWeight
}
