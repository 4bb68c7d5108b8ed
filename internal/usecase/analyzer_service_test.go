package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/promolens/backend/internal/domain"
	"github.com/promolens/backend/internal/infrastructure/store"
)

func newTestAnalyzer() *AnalyzerService {
	return NewAnalyzerService(store.NewMemoryStore(), domain.DefaultPatternLibrary(), AnalyzerConfig{})
}

func TestParseFlyer(t *testing.T) {
	ctx := context.Background()

	t.Run("parses a promo line end to end", func(t *testing.T) {
		s := newTestAnalyzer()
		records, err := s.ParseFlyer(ctx, "Maxima", "maxima_01.pdf", "Pienas 2,5% 1,99 € -20% nuolaida")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("len(records) = %d, want 1", len(records))
		}

		r := records[0]
		if r.FinalPrice != 1.99 || r.BasePrice != 2.49 || r.DiscountPct != 20 || !r.IsPromo {
			t.Errorf("record = %+v, want 1.99 final, 2.49 base, 20%% promo", r)
		}
		if r.Category != "Pieno produktai" {
			t.Errorf("Category = %q, want Pieno produktai", r.Category)
		}

		stored, err := s.Records(ctx)
		if err != nil {
			t.Fatalf("Records: %v", err)
		}
		if len(stored) != 1 {
			t.Errorf("stored = %d records, want 1", len(stored))
		}
	})

	t.Run("rejects empty retailer", func(t *testing.T) {
		s := newTestAnalyzer()
		if _, err := s.ParseFlyer(ctx, "", "f.pdf", "Pienas 1,99 €"); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("rejects unknown retailer", func(t *testing.T) {
		s := newTestAnalyzer()
		if _, err := s.ParseFlyer(ctx, "Tesco", "f.pdf", "Pienas 1,99 €"); !errors.Is(err, domain.ErrUnknownRetailer) {
			t.Errorf("error = %v, want ErrUnknownRetailer", err)
		}
	})

	t.Run("text without matches adds nothing", func(t *testing.T) {
		s := newTestAnalyzer()
		records, err := s.ParseFlyer(ctx, "Rimi", "rimi.pdf", "jokios kainos čia nėra")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("len(records) = %d, want 0", len(records))
		}
		if _, err := s.TopDeals(ctx, "", 10); !errors.Is(err, domain.ErrNoData) {
			t.Errorf("TopDeals error = %v, want ErrNoData", err)
		}
	})

	t.Run("deduplication is scoped to a single flyer", func(t *testing.T) {
		s := newTestAnalyzer()
		if _, err := s.ParseFlyer(ctx, "Maxima", "week1.pdf", "Duona 0,99 €"); err != nil {
			t.Fatalf("first parse: %v", err)
		}
		if _, err := s.ParseFlyer(ctx, "Maxima", "week2.pdf", "Duona 0,99 €"); err != nil {
			t.Fatalf("second parse: %v", err)
		}

		stored, err := s.Records(ctx)
		if err != nil {
			t.Fatalf("Records: %v", err)
		}
		if len(stored) != 2 {
			t.Errorf("stored = %d records, want 2 (no cross-flyer dedup)", len(stored))
		}
	})
}

func TestSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates per retailer sorted by promo count", func(t *testing.T) {
		s := newTestAnalyzer()
		if _, err := s.ParseFlyer(ctx, "Rimi", "rimi.pdf", "Duona 1,00 €. Pienas 2,00 €"); err != nil {
			t.Fatalf("parse: %v", err)
		}
		if _, err := s.ParseFlyer(ctx, "Maxima", "maxima.pdf", "Sultys 1,50 € -50% nuolaida"); err != nil {
			t.Fatalf("parse: %v", err)
		}

		summaries, err := s.Summary(ctx)
		if err != nil {
			t.Fatalf("Summary: %v", err)
		}
		if len(summaries) != 2 {
			t.Fatalf("len(summaries) = %d, want 2", len(summaries))
		}

		// Maxima has the promo, so it leads.
		if summaries[0].Retailer != "Maxima" {
			t.Errorf("summaries[0] = %q, want Maxima", summaries[0].Retailer)
		}
		if summaries[0].PromoCount != 1 {
			t.Errorf("Maxima PromoCount = %d, want 1", summaries[0].PromoCount)
		}

		rimi := summaries[1]
		if rimi.TotalProducts != 2 {
			t.Errorf("Rimi TotalProducts = %d, want 2", rimi.TotalProducts)
		}
		if rimi.AvgPrice != 1.50 {
			t.Errorf("Rimi AvgPrice = %v, want 1.50", rimi.AvgPrice)
		}
		if rimi.MinPrice != 1.00 || rimi.MaxPrice != 2.00 {
			t.Errorf("Rimi price range = [%v, %v], want [1.00, 2.00]", rimi.MinPrice, rimi.MaxPrice)
		}
		if rimi.AvgDiscount != 0 {
			t.Errorf("Rimi AvgDiscount = %v, want 0", rimi.AvgDiscount)
		}
	})

	t.Run("averages discount over all records", func(t *testing.T) {
		s := newTestAnalyzer()
		if _, err := s.ParseFlyer(ctx, "Lidl", "lidl_1.pdf", "Sultys 1,50 € -50% akcija"); err != nil {
			t.Fatalf("parse: %v", err)
		}
		if _, err := s.ParseFlyer(ctx, "Lidl", "lidl_2.pdf", "Kava 4,99 €"); err != nil {
			t.Fatalf("parse: %v", err)
		}

		summaries, err := s.Summary(ctx)
		if err != nil {
			t.Fatalf("Summary: %v", err)
		}
		// (50 + 0) / 2: the non-promo record drags the average down.
		if summaries[0].AvgDiscount != 25 {
			t.Errorf("AvgDiscount = %v, want 25", summaries[0].AvgDiscount)
		}
	})

	t.Run("fails when nothing is stored", func(t *testing.T) {
		s := newTestAnalyzer()
		if _, err := s.Summary(ctx); !errors.Is(err, domain.ErrNoData) {
			t.Errorf("error = %v, want ErrNoData", err)
		}
	})
}

func TestComparePrices(t *testing.T) {
	ctx := context.Background()

	t.Run("matches case-insensitively sorted by final price", func(t *testing.T) {
		s := newTestAnalyzer()
		if _, err := s.ParseFlyer(ctx, "Maxima", "m.pdf", "Pienas rinktinis 2,20 €"); err != nil {
			t.Fatalf("parse: %v", err)
		}
		if _, err := s.ParseFlyer(ctx, "Rimi", "r.pdf", "Pienas pigus 1,80 €"); err != nil {
			t.Fatalf("parse: %v", err)
		}
		if _, err := s.ParseFlyer(ctx, "Lidl", "l.pdf", "Duona 0,99 €"); err != nil {
			t.Fatalf("parse: %v", err)
		}

		matches, err := s.ComparePrices(ctx, "PIENAS")
		if err != nil {
			t.Fatalf("ComparePrices: %v", err)
		}
		if len(matches) != 2 {
			t.Fatalf("len(matches) = %d, want 2", len(matches))
		}
		if matches[0].Retailer != "Rimi" || matches[1].Retailer != "Maxima" {
			t.Errorf("order = %q, %q; want Rimi then Maxima", matches[0].Retailer, matches[1].Retailer)
		}
	})

	t.Run("rejects blank term", func(t *testing.T) {
		s := newTestAnalyzer()
		if _, err := s.ComparePrices(ctx, "   "); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		s := newTestAnalyzer()
		if _, err := s.ParseFlyer(ctx, "Maxima", "m.pdf", "Duona 0,99 €"); err != nil {
			t.Fatalf("parse: %v", err)
		}
		matches, err := s.ComparePrices(ctx, "šampūnas")
		if err != nil {
			t.Fatalf("ComparePrices: %v", err)
		}
		if matches == nil || len(matches) != 0 {
			t.Errorf("matches = %v, want empty non-nil slice", matches)
		}
	})
}

func TestOptimizeCartService(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty requirements", func(t *testing.T) {
		s := newTestAnalyzer()
		if _, err := s.OptimizeCart(ctx, nil, 10); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("fails with no data", func(t *testing.T) {
		s := newTestAnalyzer()
		reqs := []domain.CartRequirement{{Category: "Gėrimai", Quantity: 1}}
		if _, err := s.OptimizeCart(ctx, reqs, 10); !errors.Is(err, domain.ErrNoData) {
			t.Errorf("error = %v, want ErrNoData", err)
		}
	})

	t.Run("optimizes over stored records", func(t *testing.T) {
		s := newTestAnalyzer()
		if _, err := s.ParseFlyer(ctx, "Maxima", "m.pdf", "Sultys 1,50 €. Kava 5,00 €"); err != nil {
			t.Fatalf("parse: %v", err)
		}

		result, err := s.OptimizeCart(ctx, []domain.CartRequirement{{Category: "Gėrimai", Quantity: 1}}, 3.00)
		if err != nil {
			t.Fatalf("OptimizeCart: %v", err)
		}
		if result.ItemCount != 1 {
			t.Fatalf("ItemCount = %d, want 1", result.ItemCount)
		}
		if result.Items[0].Price != 1.50 {
			t.Errorf("Items[0].Price = %v, want 1.50", result.Items[0].Price)
		}
	})
}

func TestBuildShoppingListService(t *testing.T) {
	ctx := context.Background()

	t.Run("fails with no data", func(t *testing.T) {
		s := newTestAnalyzer()
		if _, err := s.BuildShoppingList(ctx, 10, domain.StrategySavings); !errors.Is(err, domain.ErrNoData) {
			t.Errorf("error = %v, want ErrNoData", err)
		}
	})

	t.Run("rejects unknown strategy", func(t *testing.T) {
		s := newTestAnalyzer()
		if _, err := s.ParseFlyer(ctx, "Maxima", "m.pdf", "Sultys 1,50 € -50% akcija"); err != nil {
			t.Fatalf("parse: %v", err)
		}
		if _, err := s.BuildShoppingList(ctx, 10, domain.ShoppingStrategy("random")); !errors.Is(err, domain.ErrUnknownStrategy) {
			t.Errorf("error = %v, want ErrUnknownStrategy", err)
		}
	})

	t.Run("builds a savings list from stored promos", func(t *testing.T) {
		s := newTestAnalyzer()
		if _, err := s.ParseFlyer(ctx, "Maxima", "m_1.pdf", "Sultys 1,50 € -50% akcija"); err != nil {
			t.Fatalf("parse: %v", err)
		}
		if _, err := s.ParseFlyer(ctx, "Maxima", "m_2.pdf", "Kava 4,99 €"); err != nil {
			t.Fatalf("parse: %v", err)
		}

		list, err := s.BuildShoppingList(ctx, 10, domain.StrategySavings)
		if err != nil {
			t.Fatalf("BuildShoppingList: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("len(list) = %d, want 1 (only the promo)", len(list))
		}
		if list[0].DiscountPct != 50 {
			t.Errorf("DiscountPct = %d, want 50", list[0].DiscountPct)
		}
	})
}

func TestClearRecords(t *testing.T) {
	ctx := context.Background()
	s := newTestAnalyzer()

	if _, err := s.ParseFlyer(ctx, "Maxima", "m.pdf", "Duona 0,99 €"); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := s.ClearRecords(ctx); err != nil {
		t.Fatalf("ClearRecords: %v", err)
	}
	if _, err := s.Summary(ctx); !errors.Is(err, domain.ErrNoData) {
		t.Errorf("Summary after clear = %v, want ErrNoData", err)
	}
}
