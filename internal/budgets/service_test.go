package budgets

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sejacapricho/printshop-backend/internal/pricing"
	"github.com/sejacapricho/printshop-backend/pkg/db/models"
	pkgerrors "github.com/sejacapricho/printshop-backend/pkg/errors"
	"github.com/sejacapricho/printshop-backend/pkg/pagination"
	"github.com/sejacapricho/printshop-backend/pkg/types"
)

type stubRepo struct {
	byID    map[uuid.UUID]models.Budget
	created []models.Budget
}

func newStubRepo(budgets ...models.Budget) *stubRepo {
	m := map[uuid.UUID]models.Budget{}
	for _, b := range budgets {
		m[b.ID] = b
	}
	return &stubRepo{byID: m}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	budget.ID = uuid.New()
	s.byID[budget.ID] = *budget
	s.created = append(s.created, *budget)
	return budget, nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.byID, id)
	return nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Budget, error) {
	b, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (s *stubRepo) FindByNumber(ctx context.Context, number int64) (*models.Budget, error) {
	for _, b := range s.byID {
		if b.Number == number {
			out := b
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) List(ctx context.Context, params pagination.Params, query string) (*List, error) {
	var out []models.Budget
	for _, b := range s.byID {
		out = append(out, b)
	}
	return &List{Budgets: out}, nil
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubQuoter struct {
	lines types.QuoteLines
	err   error
}

func (s *stubQuoter) Quote(ctx context.Context, lines []pricing.LineInput) (types.QuoteLines, decimal.Decimal, error) {
	if s.err != nil {
		return nil, decimal.Zero, s.err
	}
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.LineTotal)
	}
	return s.lines, total, nil
}

func newTestService(t *testing.T, repo *stubRepo, q *stubQuoter) *service {
	t.Helper()
	svc, err := NewService(repo, stubTx{}, q)
	require.NoError(t, err)
	impl := svc.(*service)
	counter := int64(0)
	impl.next = func(ctx context.Context, tx *gorm.DB, name string) (int64, error) {
		counter++
		return counter, nil
	}
	return impl
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestCreateBudgetAssignsSequentialNumbers(t *testing.T) {
	repo := newStubRepo()
	q := &stubQuoter{lines: types.QuoteLines{
		{ProductName: "Camiseta", UnitPrice: dec("15"), Quantity: 2, LineTotal: dec("30")},
	}}
	svc := newTestService(t, repo, q)

	input := CreateInput{ClientName: "Maria", UserID: uuid.New(), Lines: []pricing.LineInput{{ProductName: "Camiseta", Quantity: 2}}}

	first, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Number)
	assert.Equal(t, int64(2), second.Number)
	assert.True(t, first.TotalAmount.Equal(dec("30")))
	require.Len(t, first.Items, 1)
}

func TestCreateBudgetRequiresLines(t *testing.T) {
	svc := newTestService(t, newStubRepo(), &stubQuoter{})

	_, err := svc.Create(context.Background(), CreateInput{ClientName: "Maria", UserID: uuid.New()})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateBudgetRequiresUser(t *testing.T) {
	svc := newTestService(t, newStubRepo(), &stubQuoter{})

	_, err := svc.Create(context.Background(), CreateInput{
		ClientName: "Maria",
		Lines:      []pricing.LineInput{{ProductName: "Camiseta", Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestCreateBudgetSurfacesQuoterError(t *testing.T) {
	q := &stubQuoter{err: pkgerrors.New(pkgerrors.CodeProductNotFound, "product not found")}
	svc := newTestService(t, newStubRepo(), q)

	_, err := svc.Create(context.Background(), CreateInput{
		ClientName: "Maria",
		UserID:     uuid.New(),
		Lines:      []pricing.LineInput{{ProductName: "Inexistente", Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeProductNotFound, pkgerrors.As(err).Code())
}

func TestGetBudgetNotFound(t *testing.T) {
	svc := newTestService(t, newStubRepo(), &stubQuoter{})

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeRecordNotFound, pkgerrors.As(err).Code())
}

func TestDeleteBudget(t *testing.T) {
	existing := models.Budget{ID: uuid.New(), Number: 7}
	repo := newStubRepo(existing)
	svc := newTestService(t, repo, &stubQuoter{})

	require.NoError(t, svc.Delete(context.Background(), existing.ID))

	err := svc.Delete(context.Background(), existing.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeRecordNotFound, pkgerrors.As(err).Code())
}
