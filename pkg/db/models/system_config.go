package models

import (
	"time"

	"github.com/sejacapricho/printshop-backend/pkg/enums"
)

// SystemConfig is one typed key/value row of shop-wide configuration.
type SystemConfig struct {
	Key         string                `gorm:"column:key;primaryKey"`
	Value       string                `gorm:"column:value;not null"`
	ValueType   enums.ConfigValueType `gorm:"column:value_type;type:text;not null;default:'string'"`
	Category    string                `gorm:"column:category"`
	Description string                `gorm:"column:description"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the source system's table name.
func (SystemConfig) TableName() string {
	return "system_config"
}
