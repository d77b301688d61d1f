package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

type CategoryService interface {
	Verify(ctx context.Context) (*domain.CategoryReport, error)
	Fix(ctx context.Context) (*domain.CategoryFixResult, error)
}

type CategoryHandler struct {
	categories CategoryService
}

func NewCategoryHandler(categories CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) Verify(c *gin.Context) {
	report, err := h.categories.Verify(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to verify categories")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *CategoryHandler) Fix(c *gin.Context) {
	result, err := h.categories.Fix(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fix categories")
		return
	}
	c.JSON(http.StatusOK, result)
}
