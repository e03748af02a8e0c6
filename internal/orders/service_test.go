package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sejacapricho/printshop-backend/internal/pricing"
	"github.com/sejacapricho/printshop-backend/pkg/db/models"
	"github.com/sejacapricho/printshop-backend/pkg/enums"
	pkgerrors "github.com/sejacapricho/printshop-backend/pkg/errors"
	"github.com/sejacapricho/printshop-backend/pkg/pagination"
	"github.com/sejacapricho/printshop-backend/pkg/types"
)

type stubRepo struct {
	byID map[uuid.UUID]models.Order
}

func newStubRepo(orders ...models.Order) *stubRepo {
	m := map[uuid.UUID]models.Order{}
	for _, o := range orders {
		m[o.ID] = o
	}
	return &stubRepo{byID: m}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	s.byID[order.ID] = *order
	return order, nil
}

func (s *stubRepo) Update(ctx context.Context, order *models.Order) error {
	s.byID[order.ID] = *order
	return nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	o, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &o, nil
}

func (s *stubRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.FindByID(ctx, id)
}

func (s *stubRepo) FindByNumber(ctx context.Context, number int64) (*models.Order, error) {
	for _, o := range s.byID {
		if o.Number == number {
			out := o
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) List(ctx context.Context, params pagination.Params, filters Filters) (*List, error) {
	var out []models.Order
	for _, o := range s.byID {
		out = append(out, o)
	}
	return &List{Orders: out}, nil
}

func (s *stubRepo) CountByStatus(ctx context.Context) (*StatusCounts, error) {
	counts := &StatusCounts{PaidRevenue: decimal.Zero}
	for _, o := range s.byID {
		counts.Total++
		if o.PaymentStatus == enums.PaymentStatusPending {
			counts.PendingPayment++
		}
		if o.PaymentStatus == enums.PaymentStatusPaid {
			counts.PaidRevenue = counts.PaidRevenue.Add(o.TotalAmount)
		}
		if o.DeliveryStatus == enums.DeliveryStatusProduction {
			counts.InProduction++
		}
		if o.DeliveryStatus == enums.DeliveryStatusDelivered {
			counts.Delivered++
		}
	}
	return counts, nil
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubQuoter struct {
	lines types.QuoteLines
}

func (s *stubQuoter) Quote(ctx context.Context, lines []pricing.LineInput) (types.QuoteLines, decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.LineTotal)
	}
	return s.lines, total, nil
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func newTestService(t *testing.T, repo *stubRepo) *service {
	t.Helper()
	q := &stubQuoter{lines: types.QuoteLines{
		{ProductName: "Camiseta", UnitPrice: dec("28.485"), Quantity: 3, LineTotal: dec("85.455")},
	}}
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

func createOrder(t *testing.T, svc *service) *models.Order {
	t.Helper()
	order, err := svc.Create(context.Background(), CreateInput{
		UserID:        uuid.New(),
		PaymentMethod: enums.PaymentMethodPix,
		Lines:         []pricing.LineInput{{ProductName: "Camiseta", Quantity: 3}},
	})
	require.NoError(t, err)
	return order
}

func TestCreateOrderStartsPendingInProduction(t *testing.T) {
	svc := newTestService(t, newStubRepo())
	order := createOrder(t, svc)

	assert.Equal(t, int64(1), order.Number)
	assert.Equal(t, enums.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, enums.DeliveryStatusProduction, order.DeliveryStatus)
	assert.Nil(t, order.PaidAt)
	assert.Nil(t, order.DeliveredAt)
	assert.True(t, order.TotalAmount.Equal(dec("85.455")))
}

func TestCreateOrderRejectsUnknownPaymentMethod(t *testing.T) {
	svc := newTestService(t, newStubRepo())

	_, err := svc.Create(context.Background(), CreateInput{
		UserID:        uuid.New(),
		PaymentMethod: enums.PaymentMethod("cheque"),
		Lines:         []pricing.LineInput{{ProductName: "Camiseta", Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestMarkPaidTransitionsOnce(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	order := createOrder(t, svc)

	paid, err := svc.MarkPaid(context.Background(), MarkPaidInput{OrderID: order.ID})
	require.NoError(t, err)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, enums.PaymentStatusPaid, paid.PaymentStatus)

	firstPaidAt := *paid.PaidAt

	_, err = svc.MarkPaid(context.Background(), MarkPaidInput{OrderID: order.ID})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeAlreadyPaid, pkgerrors.As(err).Code())

	// The rejected second call left the original timestamp untouched.
	stored := repo.byID[order.ID]
	require.NotNil(t, stored.PaidAt)
	assert.True(t, stored.PaidAt.Equal(firstPaidAt))
}

func TestMarkDeliveredTransitionsOnce(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	order := createOrder(t, svc)

	delivered, err := svc.MarkDelivered(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, delivered.DeliveredAt)
	assert.Equal(t, enums.DeliveryStatusDelivered, delivered.DeliveryStatus)

	_, err = svc.MarkDelivered(context.Background(), order.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeAlreadyDelivered, pkgerrors.As(err).Code())
}

func TestDeliveredUnpaidOrderShowsDelivered(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	order := createOrder(t, svc)

	_, err := svc.MarkDelivered(context.Background(), order.ID)
	require.NoError(t, err)

	// Age the order past the overdue threshold while still unpaid.
	stored := repo.byID[order.ID]
	stored.CreatedAt = time.Now().Add(-48 * time.Hour)
	repo.byID[order.ID] = stored

	assert.Equal(t, enums.UrgencyDelivered, UrgencyFor(&stored, time.Now()))
}

func TestDeliverThenPayBothSucceed(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	order := createOrder(t, svc)

	_, err := svc.MarkDelivered(context.Background(), order.ID)
	require.NoError(t, err)
	paid, err := svc.MarkPaid(context.Background(), MarkPaidInput{OrderID: order.ID})
	require.NoError(t, err)

	assert.Equal(t, enums.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, enums.DeliveryStatusDelivered, paid.DeliveryStatus)
	assert.Equal(t, enums.UrgencyDelivered, UrgencyFor(paid, time.Now()))
}

func TestMarkPaidUpdatesMethodWhenProvided(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	order := createOrder(t, svc)

	method := enums.PaymentMethodCash
	paid, err := svc.MarkPaid(context.Background(), MarkPaidInput{OrderID: order.ID, Method: &method})
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentMethodCash, paid.PaymentMethod)
}

func TestMarkPaidUnknownOrder(t *testing.T) {
	svc := newTestService(t, newStubRepo())

	_, err := svc.MarkPaid(context.Background(), MarkPaidInput{OrderID: uuid.New()})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeRecordNotFound, pkgerrors.As(err).Code())
}

func TestListAnnotatesUrgency(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	order := createOrder(t, svc)
	_, err := svc.MarkPaid(context.Background(), MarkPaidInput{OrderID: order.ID})
	require.NoError(t, err)

	list, err := svc.List(context.Background(), pagination.Params{}, Filters{})
	require.NoError(t, err)
	require.Len(t, list.Summaries, 1)
	assert.Equal(t, enums.UrgencyPaid, list.Summaries[0].Urgency)
	assert.Equal(t, "#238636", list.Summaries[0].Color)
}

func TestDashboardCounts(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	first := createOrder(t, svc)
	createOrder(t, svc)
	_, err := svc.MarkPaid(context.Background(), MarkPaidInput{OrderID: first.ID})
	require.NoError(t, err)
	_, err = svc.MarkDelivered(context.Background(), first.ID)
	require.NoError(t, err)

	counts, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), counts.Total)
	assert.Equal(t, int64(1), counts.PendingPayment)
	assert.Equal(t, int64(1), counts.InProduction)
	assert.Equal(t, int64(1), counts.Delivered)
	assert.True(t, counts.PaidRevenue.Equal(dec("85.455")))
}
