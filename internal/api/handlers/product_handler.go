package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/service"
)

type ProductService interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, in service.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, in service.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type ProductForecaster interface {
	ProductForecast(ctx context.Context, productID int64) (*domain.ProductForecast, error)
}

type ProductHandler struct {
	products  ProductService
	forecasts ProductForecaster
}

func NewProductHandler(products ProductService, forecasts ProductForecaster) *ProductHandler {
	return &ProductHandler{products: products, forecasts: forecasts}
}

// ListProducts handles GET /products?q=&category=
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := domain.ProductFilter{
		Search:   strings.TrimSpace(c.Query("q")),
		Category: strings.TrimSpace(c.Query("category")),
	}
	products, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to fetch product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var in service.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid product payload", err)
		return
	}
	product, err := h.products.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "failed to create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in service.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid product payload", err)
		return
	}
	product, err := h.products.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err, "failed to update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "failed to delete product")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetForecast handles GET /products/:id/forecast. A product without enough
// history still answers 200 with forecast_available=false.
func (h *ProductHandler) GetForecast(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	view, err := h.forecasts.ProductForecast(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to build forecast")
		return
	}
	c.JSON(http.StatusOK, view)
}
