package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Cost overrides are additive to the shop-wide
// fixed costs; UsesDTF marks whether film consumption is priced for it.
// Products are soft-deleted by clearing IsActive so historical orders keep
// resolving.
type Product struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string          `gorm:"column:name;not null"`
	BaseCost      decimal.Decimal `gorm:"column:base_cost;type:numeric(12,4);not null;default:0"`
	EnergyCost    decimal.Decimal `gorm:"column:energy_cost;type:numeric(12,4);not null;default:0"`
	TransportCost decimal.Decimal `gorm:"column:transport_cost;type:numeric(12,4);not null;default:0"`
	PackagingCost decimal.Decimal `gorm:"column:packaging_cost;type:numeric(12,4);not null;default:0"`
	UsesDTF       bool            `gorm:"column:uses_dtf;not null;default:true"`
	IsActive      bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
