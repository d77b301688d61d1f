package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

type SupplierService interface {
	List(ctx context.Context) ([]domain.Supplier, error)
	Get(ctx context.Context, id int64) (*domain.Supplier, error)
	Create(ctx context.Context, name, contact string) (*domain.Supplier, error)
}

type SupplierHandler struct {
	suppliers SupplierService
}

func NewSupplierHandler(suppliers SupplierService) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

type supplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"`
}

func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.suppliers.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch suppliers")
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	supplier, err := h.suppliers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to fetch supplier")
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid supplier payload", err)
		return
	}
	supplier, err := h.suppliers.Create(c.Request.Context(), req.Name, req.Contact)
	if err != nil {
		respondError(c, err, "failed to create supplier")
		return
	}
	c.JSON(http.StatusCreated, supplier)
}
