package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/repository"
)

type SupplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) *SupplierService {
	return &SupplierService{repo: repo}
}

func (s *SupplierService) List(ctx context.Context) ([]domain.Supplier, error) {
	return s.repo.List(ctx)
}

func (s *SupplierService) Get(ctx context.Context, id int64) (*domain.Supplier, error) {
	return s.repo.Get(ctx, id)
}

func (s *SupplierService) Create(ctx context.Context, name, contact string) (*domain.Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: supplier name is required", domain.ErrInvalidProduct)
	}
	sup := &domain.Supplier{Name: name, Contact: strings.TrimSpace(contact)}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}
