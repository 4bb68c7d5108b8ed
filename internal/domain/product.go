package domain

import "time"

// ProductRecord is a single product offer extracted from one flyer.
// Records are built atomically during extraction and never mutated afterwards.
type ProductRecord struct {
	Retailer    string    `json:"retailer"`
	ProductName string    `json:"productName"`
	Category    string    `json:"category"`
	BasePrice   float64   `json:"basePrice"`
	FinalPrice  float64   `json:"finalPrice"`
	DiscountPct int       `json:"discountPct"`
	IsPromo     bool      `json:"isPromo"`
	SourceFile  string    `json:"sourceFile"`
	ParsedDate  time.Time `json:"parsedDate"`
}

// Savings is the absolute amount saved versus the base price.
func (r ProductRecord) Savings() float64 {
	return r.BasePrice - r.FinalPrice
}

// Deal is a promo record annotated with its composite ranking score.
type Deal struct {
	ProductRecord
	SavingsAmount float64 `json:"savings"`
	DealScore     float64 `json:"dealScore"`
}

// CartRequirement asks for a quantity of items from one category.
// Requirements are processed in slice order, so callers control which
// categories get first claim on the budget.
type CartRequirement struct {
	Category string `json:"category" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// CartItem is one selected product in an optimized cart.
type CartItem struct {
	Retailer      string  `json:"retailer"`
	Product       string  `json:"product"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	DiscountPct   int     `json:"discountPct"`
	IsPromo       bool    `json:"isPromo"`
}

// CartResult is the outcome of a cart optimization run.
type CartResult struct {
	Items        []CartItem `json:"items"`
	TotalCost    float64    `json:"totalCost"`
	TotalSavings float64    `json:"totalSavings"`
	ItemCount    int        `json:"itemCount"`
	Retailers    []string   `json:"retailers"`
}

// ShoppingStrategy selects how a shopping list is assembled.
type ShoppingStrategy string

const (
	StrategySavings        ShoppingStrategy = "savings"
	StrategyVariety        ShoppingStrategy = "variety"
	StrategySingleRetailer ShoppingStrategy = "single_retailer"
)

// Valid reports whether the strategy is one of the recognized values.
func (s ShoppingStrategy) Valid() bool {
	switch s {
	case StrategySavings, StrategyVariety, StrategySingleRetailer:
		return true
	}
	return false
}

// RetailerSummary aggregates the records of one retailer.
type RetailerSummary struct {
	Retailer      string  `json:"retailer"`
	TotalProducts int     `json:"totalProducts"`
	AvgDiscount   float64 `json:"avgDiscount"`
	AvgPrice      float64 `json:"avgPrice"`
	MinPrice      float64 `json:"minPrice"`
	MaxPrice      float64 `json:"maxPrice"`
	PromoCount    int     `json:"promoCount"`
}
