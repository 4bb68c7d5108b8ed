package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/promolens/backend/internal/domain"
	"github.com/promolens/backend/internal/usecase"
)

const (
	guideOverallDeals     = 15
	guidePerCategoryDeals = 5
	guideWidth            = 70
)

// GuideWriter renders a plain-text shopping guide: the best deals overall
// followed by the best deals per category.
type GuideWriter struct {
	now func() time.Time
}

// NewGuideWriter creates a guide exporter.
func NewGuideWriter() *GuideWriter {
	return &GuideWriter{now: time.Now}
}

// Write renders the guide for the given records to w.
func (g *GuideWriter) Write(w io.Writer, records []domain.ProductRecord) error {
	border := strings.Repeat("=", guideWidth)
	thin := strings.Repeat("-", guideWidth)

	var b strings.Builder
	b.WriteString(border + "\n")
	b.WriteString("LIETUVOS MAISTO PREKYBOS APSIPIRKIMO VADOVAS\n")
	b.WriteString(border + "\n\n")
	fmt.Fprintf(&b, "Sugeneruota: %s\n\n", g.now().Format("2006-01-02 15:04"))

	b.WriteString("GERIAUSI PASIŪLYMAI:\n")
	b.WriteString(thin + "\n")
	for i, deal := range usecase.TopDeals(records, "", guideOverallDeals) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, deal.ProductName)
		fmt.Fprintf(&b, "   %s | %.2f€ (buvo %.2f€)\n", deal.Retailer, deal.FinalPrice, deal.BasePrice)
		fmt.Fprintf(&b, "   Nuolaida: %d%% | Sutaupoma: %.2f€\n\n", deal.DiscountPct, deal.SavingsAmount)
	}

	b.WriteString("\n" + border + "\n")
	b.WriteString("GERIAUSI PASIŪLYMAI PAGAL KATEGORIJAS:\n")
	b.WriteString(border + "\n\n")

	for _, category := range sortedCategories(records) {
		if category == domain.FallbackCategory {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", category)
		b.WriteString(thin + "\n")
		for _, deal := range usecase.TopDeals(records, category, guidePerCategoryDeals) {
			fmt.Fprintf(&b, "• %s\n", deal.ProductName)
			fmt.Fprintf(&b, "  %s: %.2f€ (-%d%%)\n", deal.Retailer, deal.FinalPrice, deal.DiscountPct)
		}
	}

	b.WriteString("\n" + border + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// sortedCategories returns the distinct categories present in the records.
func sortedCategories(records []domain.ProductRecord) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, r := range records {
		if !seen[r.Category] {
			seen[r.Category] = true
			categories = append(categories, r.Category)
		}
	}
	sort.Strings(categories)
	return categories
}
