package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a vendor the shop buys blanks or services from.
type Supplier struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	TradeName    string    `gorm:"column:trade_name"`
	SupplierType string    `gorm:"column:supplier_type"`
	DocumentType string    `gorm:"column:document_type"`
	Document     string    `gorm:"column:document"`
	Address      string    `gorm:"column:address"`
	Phone        string    `gorm:"column:phone"`
	Email        string    `gorm:"column:email"`
	Notes        string    `gorm:"column:notes"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
