package domain

import "regexp"

// FallbackCategory is assigned when no configured keyword matches a context.
const FallbackCategory = "Kita"

// PlaceholderName is used when a context yields no tokens for a product name.
const PlaceholderName = "Nežinomas produktas"

// PricePattern matches one currency notation. Cents marks notations that
// express whole cents, which are divided by 100 during extraction.
type PricePattern struct {
	Regexp *regexp.Regexp
	Cents  bool
}

// CategoryRule maps a category label to its keyword stems. Keywords are
// matched as substrings of the lower-cased context, so stems like "jogurt"
// cover the full Lithuanian inflection set.
type CategoryRule struct {
	Name     string
	Keywords []string
}

// RetailerInfo describes one registered retailer.
type RetailerInfo struct {
	Category  string
	ChainSize string
}

// PatternLibrary is the immutable parsing configuration: ordered price and
// discount patterns, category rules in canonical order, and the retailer
// registry. Construct it once at startup and pass it explicitly; nothing in
// the pipeline mutates it.
type PatternLibrary struct {
	PricePatterns    []PricePattern
	DiscountPatterns []*regexp.Regexp
	Categories       []CategoryRule
	Retailers        map[string]RetailerInfo
}

// KnownRetailer reports whether the retailer is in the registry.
func (lib *PatternLibrary) KnownRetailer(name string) bool {
	_, ok := lib.Retailers[name]
	return ok
}

// CategoryNames returns the category labels in canonical order.
func (lib *PatternLibrary) CategoryNames() []string {
	names := make([]string, 0, len(lib.Categories))
	for _, c := range lib.Categories {
		names = append(names, c.Name)
	}
	return names
}

// DefaultPatternLibrary builds the library for Lithuanian retail flyers.
func DefaultPatternLibrary() *PatternLibrary {
	return &PatternLibrary{
		PricePatterns: []PricePattern{
			{Regexp: regexp.MustCompile(`(?i)(\d+)[,.](\d{2})\s*€`)},   // 2,99 € or 2.99 €
			{Regexp: regexp.MustCompile(`(?i)(\d+)[,.](\d{2})\s*EUR`)}, // 2,99 EUR
			{Regexp: regexp.MustCompile(`(?i)€\s*(\d+)[,.](\d{2})`)},   // € 2,99
			{Regexp: regexp.MustCompile(`(?i)(\d+)\s*ct`), Cents: true},
		},
		DiscountPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)-(\d+)%`),              // -30%
			regexp.MustCompile(`(?i)(\d+)%\s*nuolaida`),    // 30% nuolaida
			regexp.MustCompile(`(?i)taupyk.*?(\d+)%`),      // taupyk iki 30%
			regexp.MustCompile(`(?i)iki\s*-(\d+)%`),        // iki -30%
		},
		Categories: []CategoryRule{
			{Name: "Pieno produktai", Keywords: []string{"pienas", "jogurt", "grietinė", "varškė", "sūris", "sviestas"}},
			{Name: "Mėsa ir mėsos gaminiai", Keywords: []string{"mėsa", "dešra", "kumpi", "filė", "šonin", "dešrel"}},
			{Name: "Duona ir konditerija", Keywords: []string{"duona", "batonas", "bandel", "pyraga", "kepalin"}},
			{Name: "Vaisiai ir daržovės", Keywords: []string{"obuol", "banan", "pomidor", "agurk", "moliūg", "kopūst"}},
			{Name: "Gėrimai", Keywords: []string{"sultys", "vanduo", "gėrim", "limonadas", "arbata", "kava"}},
			{Name: "Konservai", Keywords: []string{"konserv", "marinet", "grybai", "žuvies"}},
			{Name: "Užšaldyti produktai", Keywords: []string{"užšaldyt", "ledai", "pizza"}},
			{Name: "Sausainiai ir saldumynai", Keywords: []string{"sausain", "šokolad", "saldain", "vafliai"}},
			{Name: "Makaronai ir kruopos", Keywords: []string{"makaron", "kruopos", "ryžiai", "grikiai"}},
			{Name: "Kosmetika ir higiena", Keywords: []string{"šampūnas", "muilas", "pasta", "dušo želė"}},
		},
		Retailers: map[string]RetailerInfo{
			"Maxima":  {Category: "Supermarket", ChainSize: "Large"},
			"Rimi":    {Category: "Supermarket", ChainSize: "Large"},
			"IKI":     {Category: "Supermarket", ChainSize: "Large"},
			"Lidl":    {Category: "Discount", ChainSize: "Large"},
			"Norfa":   {Category: "Supermarket", ChainSize: "Medium"},
			"Barbora": {Category: "Online", ChainSize: "Large"},
		},
	}
}
