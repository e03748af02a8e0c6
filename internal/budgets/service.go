package budgets

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sejacapricho/printshop-backend/internal/pricing"
	"github.com/sejacapricho/printshop-backend/internal/sequence"
	"github.com/sejacapricho/printshop-backend/pkg/db/models"
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

// CreateInput carries everything needed to register a budget.
type CreateInput struct {
	ClientName         string
	Address            string
	DeliveryType       string
	SaleType           string
	ProductionDeadline string
	Notes              string
	UserID             uuid.UUID
	Lines              []pricing.LineInput
}

// Service exposes budget operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Budget, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Budget, error)
	GetByNumber(ctx context.Context, number int64) (*models.Budget, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params pagination.Params, query string) (*List, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	quoter quoter
	next   sequencer
}

// NewService builds the budgets service.
func NewService(repo Repository, tx txRunner, q quoter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("budgets repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if q == nil {
		return nil, fmt.Errorf("quoter required")
	}
	return &service{repo: repo, tx: tx, quoter: q, next: sequence.Next}, nil
}

// Create prices the requested lines, assigns the next budget number, and
// stores the result in one transaction. The stored total is always the sum of
// the priced lines.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.Budget, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a budget needs at least one item")
	}

	lines, total, err := s.quoter.Quote(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{
		ClientName:         input.ClientName,
		Address:            input.Address,
		DeliveryType:       input.DeliveryType,
		SaleType:           input.SaleType,
		ProductionDeadline: input.ProductionDeadline,
		TotalAmount:        total,
		Items:              lines,
		Notes:              input.Notes,
		UserID:             input.UserID,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		number, err := s.next(ctx, tx, models.SequenceBudgets)
		if err != nil {
			return err
		}
		budget.Number = number
		_, err = s.repo.WithTx(tx).Create(ctx, budget)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create budget")
	}
	return budget, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Budget, error) {
	budget, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeRecordNotFound, "budget not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load budget")
	}
	return budget, nil
}

func (s *service) GetByNumber(ctx context.Context, number int64) (*models.Budget, error) {
	budget, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeRecordNotFound, fmt.Sprintf("budget %s not found", sequence.Format(number)))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load budget")
	}
	return budget, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete budget")
	}
	return nil
}

func (s *service) List(ctx context.Context, params pagination.Params, query string) (*List, error) {
	list, err := s.repo.List(ctx, params, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list budgets")
	}
	return list, nil
}
