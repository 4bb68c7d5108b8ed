package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/promolens/backend/internal/domain"
)

// AnalyzerConfig holds configuration for the analyzer service.
type AnalyzerConfig struct {
	EnableDebugLogging bool
}

// AnalyzerService owns the aggregate record collection: it runs the
// extraction pipeline over incoming flyer text, appends the resulting batch
// to the store, and serves analysis and optimization over the stored
// records. All analysis entry points fail with ErrNoData when nothing has
// been parsed yet.
type AnalyzerService struct {
	store              domain.RecordStore
	lib                *domain.PatternLibrary
	extractor          *Extractor
	builder            *RecordBuilder
	cartOptimizer      *CartOptimizer
	enableDebugLogging bool
}

// NewAnalyzerService creates the analyzer with its pipeline dependencies.
func NewAnalyzerService(store domain.RecordStore, lib *domain.PatternLibrary, config AnalyzerConfig) *AnalyzerService {
	return &AnalyzerService{
		store:              store,
		lib:                lib,
		extractor:          NewExtractor(lib, config.EnableDebugLogging),
		builder:            NewRecordBuilder(NewCategorizer(lib)),
		cartOptimizer:      NewCartOptimizer(config.EnableDebugLogging),
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// ParseFlyer runs the full extraction pipeline over one flyer's text and
// appends the deduplicated batch to the store. Text with no extractable
// matches is not an error: the batch is simply empty. The retailer must be
// in the configured registry.
func (s *AnalyzerService) ParseFlyer(ctx context.Context, retailer, sourceFile, text string) ([]domain.ProductRecord, error) {
	if retailer == "" {
		return nil, domain.ErrInvalidRequest
	}
	if !s.lib.KnownRetailer(retailer) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownRetailer, retailer)
	}

	prices := s.extractor.ExtractPrices(text)
	discounts := s.extractor.ExtractDiscounts(text)

	records := s.builder.Build(retailer, sourceFile, prices, discounts)
	if s.enableDebugLogging {
		log.Printf("[PARSE] %s/%s: %d prices, %d discounts, %d unique records",
			retailer, sourceFile, len(prices), len(discounts), len(records))
	}

	if len(records) > 0 {
		if err := s.store.Append(ctx, records); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
		}
	}

	return records, nil
}

// Records returns every stored record.
func (s *AnalyzerService) Records(ctx context.Context) ([]domain.ProductRecord, error) {
	return s.store.All(ctx)
}

// ClearRecords drops the aggregate collection.
func (s *AnalyzerService) ClearRecords(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Summary aggregates stored records per retailer, sorted by promo count
// descending. The discount average runs over all of a retailer's records,
// promos and non-promos alike.
func (s *AnalyzerService) Summary(ctx context.Context) ([]domain.RetailerSummary, error) {
	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}

	byRetailer := make(map[string][]domain.ProductRecord)
	for _, r := range records {
		byRetailer[r.Retailer] = append(byRetailer[r.Retailer], r)
	}

	retailers := make([]string, 0, len(byRetailer))
	for name := range byRetailer {
		retailers = append(retailers, name)
	}
	sort.Strings(retailers)

	summaries := make([]domain.RetailerSummary, 0, len(retailers))
	for _, name := range retailers {
		group := byRetailer[name]

		summary := domain.RetailerSummary{
			Retailer:      name,
			TotalProducts: len(group),
			MinPrice:      group[0].FinalPrice,
			MaxPrice:      group[0].FinalPrice,
		}
		var priceSum, discountSum float64
		for _, r := range group {
			priceSum += r.FinalPrice
			discountSum += float64(r.DiscountPct)
			if r.FinalPrice < summary.MinPrice {
				summary.MinPrice = r.FinalPrice
			}
			if r.FinalPrice > summary.MaxPrice {
				summary.MaxPrice = r.FinalPrice
			}
			if r.IsPromo {
				summary.PromoCount++
			}
		}
		summary.AvgPrice = round2(priceSum / float64(len(group)))
		summary.AvgDiscount = round2(discountSum / float64(len(group)))

		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].PromoCount > summaries[j].PromoCount
	})

	return summaries, nil
}

// ComparePrices returns the stored records whose product name contains the
// search term (case-insensitive), cheapest first.
func (s *AnalyzerService) ComparePrices(ctx context.Context, term string) ([]domain.ProductRecord, error) {
	if strings.TrimSpace(term) == "" {
		return nil, domain.ErrInvalidRequest
	}

	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}

	termLower := strings.ToLower(term)
	matches := []domain.ProductRecord{}
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.ProductName), termLower) {
			matches = append(matches, r)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].FinalPrice < matches[j].FinalPrice
	})

	return matches, nil
}

// TopDeals returns the n best-scoring promo deals, optionally restricted to
// one category.
func (s *AnalyzerService) TopDeals(ctx context.Context, category string, n int) ([]domain.Deal, error) {
	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	return TopDeals(records, category, n), nil
}

// OptimizeCart assembles a cart from the stored records for the given
// requirements under an optional budget (zero or less means unconstrained).
func (s *AnalyzerService) OptimizeCart(ctx context.Context, reqs []domain.CartRequirement, budget float64) (*domain.CartResult, error) {
	if len(reqs) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}

	result := s.cartOptimizer.Optimize(records, reqs, budget)
	if s.enableDebugLogging {
		log.Printf("[CART] %d items, cost %.2f, savings %.2f", result.ItemCount, result.TotalCost, result.TotalSavings)
	}
	return &result, nil
}

// BuildShoppingList assembles a strategy-ordered promo list under the
// budget.
func (s *AnalyzerService) BuildShoppingList(ctx context.Context, budget float64, strategy domain.ShoppingStrategy) ([]domain.ProductRecord, error) {
	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	return BuildShoppingList(records, budget, strategy)
}

// loadRecords reads the aggregate collection, translating emptiness into
// the no-data failure every analysis operation shares.
func (s *AnalyzerService) loadRecords(ctx context.Context) ([]domain.ProductRecord, error) {
	records, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	if len(records) == 0 {
		return nil, domain.ErrNoData
	}
	return records, nil
}
