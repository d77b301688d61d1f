package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

type SaleService interface {
	Record(ctx context.Context, productID int64, qty int, typ domain.SaleType, at time.Time) (*domain.SaleRecord, *domain.Product, error)
	List(ctx context.Context, filter domain.SaleFilter) ([]domain.SaleRecord, error)
}

type SaleHandler struct {
	sales SaleService
}

func NewSaleHandler(sales SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

type saleRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Quantity  int    `json:"qty"`
	Type      string `json:"type"`
	Date      string `json:"date"`
}

type saleResponse struct {
	Sale    *domain.SaleRecord `json:"sale"`
	Product *domain.Product    `json:"product"`
}

// RecordSale handles POST /sales. The response carries the updated product so
// clients can refresh stock without a second request.
func (h *SaleHandler) RecordSale(c *gin.Context) {
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid sale payload", err)
		return
	}
	at, err := parseSaleDate(req.Date)
	if err != nil {
		badRequest(c, "invalid sale date", err)
		return
	}

	rec, product, err := h.sales.Record(c.Request.Context(), req.ProductID, req.Quantity, domain.SaleType(strings.TrimSpace(req.Type)), at)
	if err != nil {
		respondError(c, err, "failed to record sale")
		return
	}
	c.JSON(http.StatusCreated, saleResponse{Sale: rec, Product: product})
}

// ListSales handles GET /sales?product_id=&type=&limit=
func (h *SaleHandler) ListSales(c *gin.Context) {
	filter := domain.SaleFilter{
		Type:  domain.SaleType(strings.TrimSpace(c.Query("type"))),
		Limit: parseNonNegativeInt(c.Query("limit")),
	}
	if raw := strings.TrimSpace(c.Query("product_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			badRequest(c, "invalid product_id", nil)
			return
		}
		filter.ProductID = id
	}

	records, err := h.sales.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "failed to fetch sales")
		return
	}
	c.JSON(http.StatusOK, records)
}

// parseSaleDate accepts a calendar date or an RFC 3339 timestamp. Empty means
// now.
func parseSaleDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD or RFC 3339", raw)
}
