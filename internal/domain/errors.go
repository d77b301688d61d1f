package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateSKU        = errors.New("duplicate sku")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrInvalidProduct      = errors.New("invalid product")
	ErrInsufficientHistory = errors.New("insufficient sales history")
	ErrCategoryNotFound    = errors.New("category not found")
)
