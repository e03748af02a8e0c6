package customers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sejacapricho/printshop-backend/pkg/db/models"
	pkgerrors "github.com/sejacapricho/printshop-backend/pkg/errors"
	"github.com/sejacapricho/printshop-backend/pkg/pagination"
)

type stubRepo struct {
	byID    map[uuid.UUID]*models.Customer
	deleted []uuid.UUID
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: map[uuid.UUID]*models.Customer{}}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	s.byID[customer.ID] = customer
	return customer, nil
}

func (s *stubRepo) Update(ctx context.Context, customer *models.Customer) error {
	s.byID[customer.ID] = customer
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *customer
	return &copied, nil
}

func (s *stubRepo) List(ctx context.Context, params pagination.Params, query string) (*List, error) {
	out := &List{}
	for _, customer := range s.byID {
		out.Customers = append(out.Customers, *customer)
	}
	return out, nil
}

func TestCreateTrimsAndRequiresName(t *testing.T) {
	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), Input{Name: "  Dona Rosa  ", UserID: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, "Dona Rosa", created.Name)

	_, err = svc.Create(context.Background(), Input{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateReplacesFields(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), Input{Name: "Dona Rosa", City: "Fortaleza"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, Input{Name: "Rosa Lima", Phone: "85 99999-0000"})
	require.NoError(t, err)
	assert.Equal(t, "Rosa Lima", updated.Name)
	assert.Equal(t, "85 99999-0000", updated.Phone)
	assert.Empty(t, updated.City)
}

func TestGetUnknownCustomer(t *testing.T) {
	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeRecordNotFound, pkgerrors.As(err).Code())
}

func TestDeleteChecksExistence(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), Input{Name: "Dona Rosa"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	err = svc.Delete(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeRecordNotFound, pkgerrors.As(err).Code())
	assert.Len(t, repo.deleted, 1)
}
