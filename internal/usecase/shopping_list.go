package usecase

import (
	"sort"

	"github.com/promolens/backend/internal/domain"
)

// earlyStopFraction halts the list walk once the running total reaches this
// share of the budget. It is an early-stop threshold, not an overshoot
// guard: the walk can end before every affordable candidate is visited.
const earlyStopFraction = 0.95

// varietyPerCategory caps how many items the variety strategy keeps per
// category.
const varietyPerCategory = 2

// BuildShoppingList assembles a budget-bound list of promo records using
// the chosen strategy's candidate ordering. Each candidate is appended only
// while it fits the budget, and the walk stops as soon as the running total
// reaches 95% of the budget. Empty candidate input yields an empty list.
func BuildShoppingList(records []domain.ProductRecord, budget float64, strategy domain.ShoppingStrategy) ([]domain.ProductRecord, error) {
	promos := make([]domain.ProductRecord, 0, len(records))
	for _, r := range records {
		if r.IsPromo {
			promos = append(promos, r)
		}
	}

	candidates, err := orderCandidates(promos, strategy)
	if err != nil {
		return nil, err
	}

	list := []domain.ProductRecord{}
	var total float64

	for _, r := range candidates {
		if total+r.FinalPrice <= budget {
			list = append(list, r)
			total += r.FinalPrice
		}
		if total >= budget*earlyStopFraction {
			break
		}
	}

	return list, nil
}

// orderCandidates applies the strategy's ordering to the promo records.
func orderCandidates(promos []domain.ProductRecord, strategy domain.ShoppingStrategy) ([]domain.ProductRecord, error) {
	switch strategy {
	case domain.StrategySavings:
		ordered := append([]domain.ProductRecord(nil), promos...)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].DiscountPct > ordered[j].DiscountPct
		})
		return ordered, nil

	case domain.StrategyVariety:
		return varietyCandidates(promos), nil

	case domain.StrategySingleRetailer:
		return singleRetailerCandidates(promos), nil
	}

	return nil, domain.ErrUnknownStrategy
}

// varietyCandidates keeps the two cheapest promos per category, emitted in
// category name order then price order within each category.
func varietyCandidates(promos []domain.ProductRecord) []domain.ProductRecord {
	byCategory := make(map[string][]domain.ProductRecord)
	var categories []string
	for _, r := range promos {
		if _, ok := byCategory[r.Category]; !ok {
			categories = append(categories, r.Category)
		}
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}
	sort.Strings(categories)

	var ordered []domain.ProductRecord
	for _, cat := range categories {
		group := byCategory[cat]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].FinalPrice < group[j].FinalPrice
		})
		if len(group) > varietyPerCategory {
			group = group[:varietyPerCategory]
		}
		ordered = append(ordered, group...)
	}
	return ordered
}

// singleRetailerCandidates restricts the promos to the retailer carrying the
// most of them. Ties resolve to the retailer encountered first.
func singleRetailerCandidates(promos []domain.ProductRecord) []domain.ProductRecord {
	counts := make(map[string]int)
	var order []string
	for _, r := range promos {
		if _, ok := counts[r.Retailer]; !ok {
			order = append(order, r.Retailer)
		}
		counts[r.Retailer]++
	}

	best := ""
	for _, retailer := range order {
		if best == "" || counts[retailer] > counts[best] {
			best = retailer
		}
	}

	var ordered []domain.ProductRecord
	for _, r := range promos {
		if r.Retailer == best {
			ordered = append(ordered, r)
		}
	}
	return ordered
}
