package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/promolens/backend/internal/domain"
	"github.com/promolens/backend/internal/infrastructure/export"
	"github.com/promolens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analyzer     *usecase.AnalyzerService
	csvWriter    *export.CSVWriter
	guideWriter  *export.GuideWriter
	maxTextBytes int
}

// NewHandler creates a new HTTP handler
func NewHandler(analyzer *usecase.AnalyzerService, maxTextBytes int) *Handler {
	return &Handler{
		analyzer:     analyzer,
		csvWriter:    export.NewCSVWriter(),
		guideWriter:  export.NewGuideWriter(),
		maxTextBytes: maxTextBytes,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "promolens-backend",
		"version": "1.0.0",
	})
}

// parseFlyerRequest carries one flyer's decoded text. Text is optional:
// a flyer with no extractable text yields an empty batch, not an error.
type parseFlyerRequest struct {
	Retailer   string `json:"retailer" binding:"required"`
	SourceFile string `json:"sourceFile"`
	Text       string `json:"text"`
}

// ParseFlyer runs the extraction pipeline over one flyer's text
func (h *Handler) ParseFlyer(c *gin.Context) {
	var req parseFlyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Text) > h.maxTextBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "flyer text too large"})
		return
	}

	records, err := h.analyzer.ParseFlyer(c.Request.Context(), req.Retailer, req.SourceFile, req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recordsAdded": len(records),
		"records":      records,
	})
}

// ListRecords returns every stored product record
func (h *Handler) ListRecords(c *gin.Context) {
	records, err := h.analyzer.Records(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if records == nil {
		records = []domain.ProductRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(records), "records": records})
}

// ClearRecords drops the aggregate record collection
func (h *Handler) ClearRecords(c *gin.Context) {
	if err := h.analyzer.ClearRecords(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Summary returns per-retailer aggregates
func (h *Handler) Summary(c *gin.Context) {
	summaries, err := h.analyzer.Summary(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"retailers": summaries})
}

// TopDeals returns the best-scoring promo deals
func (h *Handler) TopDeals(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	deals, err := h.analyzer.TopDeals(c.Request.Context(), c.Query("category"), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deals": deals})
}

// ComparePrices returns records matching a product search term, cheapest first
func (h *Handler) ComparePrices(c *gin.Context) {
	matches, err := h.analyzer.ComparePrices(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

type optimizeCartRequest struct {
	Requirements []domain.CartRequirement `json:"requirements" binding:"required,dive"`
	Budget       float64                  `json:"budget"`
}

// OptimizeCart assembles a cart for the requested category quantities
func (h *Handler) OptimizeCart(c *gin.Context) {
	var req optimizeCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.analyzer.OptimizeCart(c.Request.Context(), req.Requirements, req.Budget)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type shoppingListRequest struct {
	Budget   float64                 `json:"budget" binding:"required,gt=0"`
	Strategy domain.ShoppingStrategy `json:"strategy" binding:"required"`
}

// ShoppingList assembles a budget-bound promo shopping list
func (h *Handler) ShoppingList(c *gin.Context) {
	var req shoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.analyzer.BuildShoppingList(c.Request.Context(), req.Budget, req.Strategy)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"itemCount": len(list), "items": list})
}

// ExportCSV streams the record table as CSV
func (h *Handler) ExportCSV(c *gin.Context) {
	records, err := h.analyzer.Records(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="promo_records.csv"`)
	if err := h.csvWriter.Write(c.Writer, records); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// ExportGuide streams the plain-text shopping guide
func (h *Handler) ExportGuide(c *gin.Context) {
	records, err := h.analyzer.Records(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if len(records) == 0 {
		h.respondError(c, domain.ErrNoData)
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="shopping_guide.txt"`)
	if err := h.guideWriter.Write(c.Writer, records); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNoData):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrUnknownRetailer),
		errors.Is(err, domain.ErrUnknownStrategy):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
