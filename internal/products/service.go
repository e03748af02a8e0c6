package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sejacapricho/printshop-backend/internal/pricing"
	"github.com/sejacapricho/printshop-backend/pkg/db"
	"github.com/sejacapricho/printshop-backend/pkg/db/models"
	pkgerrors "github.com/sejacapricho/printshop-backend/pkg/errors"
)

// CreateInput carries the fields accepted when registering a product.
type CreateInput struct {
	Name          string
	BaseCost      decimal.Decimal
	EnergyCost    decimal.Decimal
	TransportCost decimal.Decimal
	PackagingCost decimal.Decimal
	UsesDTF       bool
}

// UpdateInput carries the mutable fields; nil pointers leave a field untouched.
type UpdateInput struct {
	Name          *string
	BaseCost      *decimal.Decimal
	EnergyCost    *decimal.Decimal
	TransportCost *decimal.Decimal
	PackagingCost *decimal.Decimal
	UsesDTF       *bool
}

// Service exposes catalog operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetActiveByName(ctx context.Context, name string) (*models.Product, error)
	ListActive(ctx context.Context) ([]models.Product, error)
	CostProfileByName(ctx context.Context, name string) (pricing.CostProfile, error)
}

type service struct {
	repo Repository
}

// NewService builds the catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.BaseCost.IsNegative() || input.EnergyCost.IsNegative() ||
		input.TransportCost.IsNegative() || input.PackagingCost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product costs cannot be negative")
	}

	product := &models.Product{
		Name:          name,
		BaseCost:      input.BaseCost,
		EnergyCost:    input.EnergyCost,
		TransportCost: input.TransportCost,
		PackagingCost: input.PackagingCost,
		UsesDTF:       input.UsesDTF,
		IsActive:      true,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("product %q already exists", name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
		}
		product.Name = name
	}
	for _, pair := range []struct {
		src *decimal.Decimal
		dst *decimal.Decimal
	}{
		{input.BaseCost, &product.BaseCost},
		{input.EnergyCost, &product.EnergyCost},
		{input.TransportCost, &product.TransportCost},
		{input.PackagingCost, &product.PackagingCost},
	} {
		if pair.src == nil {
			continue
		}
		if pair.src.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product costs cannot be negative")
		}
		*pair.dst = *pair.src
	}
	if input.UsesDTF != nil {
		product.UsesDTF = *input.UsesDTF
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("product %q already exists", product.Name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return product, nil
}

// Deactivate soft-deletes a product so existing order items keep resolving.
func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return nil
	}
	product.IsActive = false
	if err := s.repo.Update(ctx, product); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate product")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeProductNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) GetActiveByName(ctx context.Context, name string) (*models.Product, error) {
	product, err := s.repo.FindActiveByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeProductNotFound, fmt.Sprintf("product %q not found", name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) ListActive(ctx context.Context) ([]models.Product, error) {
	list, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return list, nil
}

// CostProfileByName resolves the engine-facing cost slice of a product.
func (s *service) CostProfileByName(ctx context.Context, name string) (pricing.CostProfile, error) {
	product, err := s.GetActiveByName(ctx, name)
	if err != nil {
		return pricing.CostProfile{}, err
	}
	return pricing.CostProfile{
		Name:          product.Name,
		BaseCost:      product.BaseCost,
		EnergyCost:    product.EnergyCost,
		TransportCost: product.TransportCost,
		PackagingCost: product.PackagingCost,
		UsesDTF:       product.UsesDTF,
	}, nil
}
