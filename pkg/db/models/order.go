package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sejacapricho/printshop-backend/pkg/enums"
	"github.com/sejacapricho/printshop-backend/pkg/types"
)

// Order is a committed job carrying payment and delivery state. PaidAt is set
// exactly when PaymentStatus is paid, DeliveredAt exactly when DeliveryStatus
// is delivered; neither is ever cleared.
type Order struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Number           int64               `gorm:"column:number;not null;uniqueIndex"`
	CustomerID       *uuid.UUID          `gorm:"column:customer_id;type:uuid"`
	UserID           uuid.UUID           `gorm:"column:user_id;type:uuid;not null"`
	TotalAmount      decimal.Decimal     `gorm:"column:total_amount;type:numeric(14,4);not null;default:0"`
	Items            types.QuoteLines    `gorm:"column:items;type:jsonb;serializer:json"`
	DeliveryType     string              `gorm:"column:delivery_type"`
	DeliveryDeadline string              `gorm:"column:delivery_deadline"`
	PaymentMethod    enums.PaymentMethod `gorm:"column:payment_method;type:text;not null;default:''"`
	PaymentStatus    enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	DeliveryStatus   enums.DeliveryStatus `gorm:"column:delivery_status;type:text;not null;default:'production'"`
	Notes            string              `gorm:"column:notes"`
	PaidAt           *time.Time          `gorm:"column:paid_at"`
	DeliveredAt      *time.Time          `gorm:"column:delivered_at"`
	Customer         *Customer           `gorm:"foreignKey:CustomerID"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
