package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sejacapricho/printshop-backend/internal/pricing"
	"github.com/sejacapricho/printshop-backend/internal/sequence"
	"github.com/sejacapricho/printshop-backend/pkg/db/models"
	"github.com/sejacapricho/printshop-backend/pkg/enums"
	pkgerrors "github.com/sejacapricho/printshop-backend/pkg/errors"
	"github.com/sejacapricho/printshop-backend/pkg/pagination"
	"github.com/sejacapricho/printshop-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type quoter interface {
	Quote(ctx context.Context, lines []pricing.LineInput) (types.QuoteLines, decimal.Decimal, error)
}

type sequencer func(ctx context.Context, tx *gorm.DB, name string) (int64, error)

// CreateInput carries everything needed to register an order.
type CreateInput struct {
	CustomerID       *uuid.UUID
	UserID           uuid.UUID
	DeliveryType     string
	DeliveryDeadline string
	PaymentMethod    enums.PaymentMethod
	Notes            string
	Lines            []pricing.LineInput
}

// MarkPaidInput records a payment. The method is optional; when set it
// replaces whatever the order was created with.
type MarkPaidInput struct {
	OrderID uuid.UUID
	Method  *enums.PaymentMethod
}

// Service exposes order lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByNumber(ctx context.Context, number int64) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*List, error)
	MarkPaid(ctx context.Context, input MarkPaidInput) (*models.Order, error)
	MarkDelivered(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Dashboard(ctx context.Context) (*StatusCounts, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	quoter quoter
	next   sequencer
	clock  func() time.Time
}

// NewService builds the orders service.
func NewService(repo Repository, tx txRunner, q quoter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if q == nil {
		return nil, fmt.Errorf("quoter required")
	}
	return &service{
		repo:   repo,
		tx:     tx,
		quoter: q,
		next:   sequence.Next,
		clock:  time.Now,
	}, nil
}

// Create prices the requested lines, assigns the next order number, and
// stores the order in one transaction. New orders always start unpaid and in
// production.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.Order, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "an order needs at least one item")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}

	lines, total, err := s.quoter.Quote(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerID:       input.CustomerID,
		UserID:           input.UserID,
		TotalAmount:      total,
		Items:            lines,
		DeliveryType:     input.DeliveryType,
		DeliveryDeadline: input.DeliveryDeadline,
		PaymentMethod:    input.PaymentMethod,
		PaymentStatus:    enums.PaymentStatusPending,
		DeliveryStatus:   enums.DeliveryStatusProduction,
		Notes:            input.Notes,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		number, err := s.next(ctx, tx, models.SequenceOrders)
		if err != nil {
			return err
		}
		order.Number = number
		_, err = s.repo.WithTx(tx).Create(ctx, order)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return order, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeRecordNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) GetByNumber(ctx context.Context, number int64) (*models.Order, error) {
	order, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeRecordNotFound, fmt.Sprintf("order %s not found", sequence.Format(number)))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) (*List, error) {
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	now := s.clock()
	list.Summaries = make([]Summary, 0, len(list.Orders))
	for i := range list.Orders {
		urgency := UrgencyFor(&list.Orders[i], now)
		list.Summaries = append(list.Summaries, Summary{
			Order:   list.Orders[i],
			Urgency: urgency,
			Color:   urgency.Color(),
		})
	}
	return list, nil
}

// MarkPaid transitions pending to paid exactly once. The payment timestamp is
// written on the first successful call and never touched again.
func (s *service) MarkPaid(ctx context.Context, input MarkPaidInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.Method != nil && !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown payment method %q", *input.Method))
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByIDForUpdate(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeRecordNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.PaymentStatus == enums.PaymentStatusPaid {
			return pkgerrors.New(pkgerrors.CodeAlreadyPaid, fmt.Sprintf("order %s is already paid", sequence.Format(order.Number)))
		}

		now := s.clock()
		order.PaymentStatus = enums.PaymentStatusPaid
		order.PaidAt = &now
		if input.Method != nil {
			order.PaymentMethod = *input.Method
		}
		if err := repo.Update(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// MarkDelivered transitions production to delivered exactly once. Payment
// state is not consulted; unpaid orders can be delivered.
func (s *service) MarkDelivered(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeRecordNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.DeliveryStatus == enums.DeliveryStatusDelivered {
			return pkgerrors.New(pkgerrors.CodeAlreadyDelivered, fmt.Sprintf("order %s is already delivered", sequence.Format(order.Number)))
		}

		now := s.clock()
		order.DeliveryStatus = enums.DeliveryStatusDelivered
		order.DeliveredAt = &now
		if err := repo.Update(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Dashboard(ctx context.Context) (*StatusCounts, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}
	return counts, nil
}
