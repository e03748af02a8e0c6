package budgets

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sejacapricho/printshop-backend/pkg/db/models"
	"github.com/sejacapricho/printshop-backend/pkg/pagination"
)

// Repository defines persistence operations for budgets.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, budget *models.Budget) (*models.Budget, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Budget, error)
	FindByNumber(ctx context.Context, number int64) (*models.Budget, error)
	List(ctx context.Context, params pagination.Params, query string) (*List, error)
}

// List wraps a budget page plus the next cursor.
type List struct {
	Budgets    []models.Budget `json:"budgets"`
	NextCursor string          `json:"next_cursor,omitempty"`
}
