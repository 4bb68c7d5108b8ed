package usecase

import (
	"strings"

	"github.com/promolens/backend/internal/domain"
)

// Categorizer assigns category labels to product contexts using the
// library's keyword stems.
type Categorizer struct {
	lib *domain.PatternLibrary
}

// NewCategorizer creates a categorizer over the given pattern library.
func NewCategorizer(lib *domain.PatternLibrary) *Categorizer {
	return &Categorizer{lib: lib}
}

// Categorize returns the first category whose keyword list contains a stem
// appearing as a substring of the lower-cased context. Categories are tried
// in canonical configured order, so ties always resolve to the
// earlier-declared category. Substring containment is deliberate: the
// keyword stems ("jogurt", "kumpi") must match every Lithuanian inflection.
// No match returns the fallback label.
func (c *Categorizer) Categorize(context string) string {
	ctxLower := strings.ToLower(context)

	for _, rule := range c.lib.Categories {
		for _, keyword := range rule.Keywords {
			if strings.Contains(ctxLower, keyword) {
				return rule.Name
			}
		}
	}

	return domain.FallbackCategory
}
