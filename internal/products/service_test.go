package products

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sejacapricho/printshop-backend/pkg/db/models"
	pkgerrors "github.com/sejacapricho/printshop-backend/pkg/errors"
)

type stubRepo struct {
	byID      map[uuid.UUID]models.Product
	createErr error
	updateErr error
}

func newStubRepo(products ...models.Product) *stubRepo {
	m := map[uuid.UUID]models.Product{}
	for _, p := range products {
		m[p.ID] = p
	}
	return &stubRepo{byID: m}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	product.ID = uuid.New()
	s.byID[product.ID] = *product
	return product, nil
}

func (s *stubRepo) Update(ctx context.Context, product *models.Product) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.byID[product.ID] = *product
	return nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (s *stubRepo) FindActiveByName(ctx context.Context, name string) (*models.Product, error) {
	for _, p := range s.byID {
		if strings.EqualFold(p.Name, name) && p.IsActive {
			out := p
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) ListActive(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.byID {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestCreateProduct(t *testing.T) {
	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	product, err := svc.Create(context.Background(), CreateInput{
		Name:     "  Camiseta Premium  ",
		BaseCost: dec("18.99"),
		UsesDTF:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Camiseta Premium", product.Name)
	assert.True(t, product.IsActive)
	assert.True(t, product.UsesDTF)
}

func TestCreateProductRejectsEmptyName(t *testing.T) {
	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateProductRejectsNegativeCost(t *testing.T) {
	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{Name: "Caneca", BaseCost: dec("-1")})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateProductDuplicateNameConflicts(t *testing.T) {
	repo := newStubRepo()
	repo.createErr = &pgconn.PgError{Code: "23505"}
	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{Name: "Camiseta"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestDeactivateIsIdempotent(t *testing.T) {
	existing := models.Product{ID: uuid.New(), Name: "Camiseta", IsActive: true}
	repo := newStubRepo(existing)
	svc, err := NewService(repo)
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), existing.ID))
	assert.False(t, repo.byID[existing.ID].IsActive)

	require.NoError(t, svc.Deactivate(context.Background(), existing.ID))
}

func TestGetActiveByNameNotFound(t *testing.T) {
	inactive := models.Product{ID: uuid.New(), Name: "Camiseta", IsActive: false}
	svc, err := NewService(newStubRepo(inactive))
	require.NoError(t, err)

	_, err = svc.GetActiveByName(context.Background(), "Camiseta")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeProductNotFound, pkgerrors.As(err).Code())
}

func TestCostProfileByName(t *testing.T) {
	existing := models.Product{
		ID:            uuid.New(),
		Name:          "Camiseta",
		BaseCost:      dec("18.99"),
		EnergyCost:    dec("0.5"),
		TransportCost: dec("1.5"),
		PackagingCost: dec("0.25"),
		UsesDTF:       true,
		IsActive:      true,
	}
	svc, err := NewService(newStubRepo(existing))
	require.NoError(t, err)

	profile, err := svc.CostProfileByName(context.Background(), "camiseta")
	require.NoError(t, err)

	assert.Equal(t, "Camiseta", profile.Name)
	assert.True(t, profile.BaseCost.Equal(dec("18.99")))
	assert.True(t, profile.PackagingCost.Equal(dec("0.25")))
	assert.True(t, profile.UsesDTF)
}

func TestUpdateProductPartial(t *testing.T) {
	existing := models.Product{ID: uuid.New(), Name: "Camiseta", BaseCost: dec("10"), IsActive: true}
	repo := newStubRepo(existing)
	svc, err := NewService(repo)
	require.NoError(t, err)

	newCost := dec("12.5")
	updated, err := svc.Update(context.Background(), existing.ID, UpdateInput{BaseCost: &newCost})
	require.NoError(t, err)

	assert.Equal(t, "Camiseta", updated.Name)
	assert.True(t, updated.BaseCost.Equal(newCost))
}
