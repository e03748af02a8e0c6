package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer holds contact and billing identity for a shop customer.
type Customer struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	DocumentType string    `gorm:"column:document_type"`
	Document     string    `gorm:"column:document"`
	Address      string    `gorm:"column:address"`
	ZipCode      string    `gorm:"column:zip_code"`
	City         string    `gorm:"column:city"`
	State        string    `gorm:"column:state"`
	Phone        string    `gorm:"column:phone"`
	Email        string    `gorm:"column:email"`
	Notes        string    `gorm:"column:notes"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
