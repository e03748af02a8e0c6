package settings

import (
	"context"

	"gorm.io/gorm"

	"github.com/sejacapricho/printshop-backend/pkg/db/models"
)

// Repository defines persistence operations for the system_config table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindAll(ctx context.Context) ([]models.SystemConfig, error)
	FindByKey(ctx context.Context, key string) (*models.SystemConfig, error)
	Upsert(ctx context.Context, entry *models.SystemConfig) error
}
