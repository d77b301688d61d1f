package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

func TestSupplierService(t *testing.T) {
	svc := NewSupplierService(memSuppliers{newMemStore()})
	ctx := context.Background()

	s, err := svc.Create(ctx, "  Global Distributors ", "info@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Global Distributors", s.Name)

	got, err := svc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Contact, got.Contact)

	_, err = svc.Create(ctx, " ", "")
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
