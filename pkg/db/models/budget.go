package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sejacapricho/printshop-backend/pkg/types"
)

// Budget is a quote: a priced item list with no payment or delivery lifecycle.
type Budget struct {
	ID                 uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Number             int64            `gorm:"column:number;not null;uniqueIndex"`
	ClientName         string           `gorm:"column:client_name"`
	Address            string           `gorm:"column:address"`
	DeliveryType       string           `gorm:"column:delivery_type"`
	SaleType           string           `gorm:"column:sale_type"`
	ProductionDeadline string           `gorm:"column:production_deadline"`
	TotalAmount        decimal.Decimal  `gorm:"column:total_amount;type:numeric(14,4);not null;default:0"`
	Items              types.QuoteLines `gorm:"column:items;type:jsonb;serializer:json"`
	Notes              string           `gorm:"column:notes"`
	UserID             uuid.UUID        `gorm:"column:user_id;type:uuid;not null"`
	CreatedAt          time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
