package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sejacapricho/printshop-backend/pkg/db/models"
	"github.com/sejacapricho/printshop-backend/pkg/pagination"
)

// Repository defines persistence operations for orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByNumber(ctx context.Context, number int64) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*List, error)
	CountByStatus(ctx context.Context) (*StatusCounts, error)
}
