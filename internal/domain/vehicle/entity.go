// internal/domain/vehicle/entity.go
package vehicle

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Vehicle represents a vehicle saved by a user for fitment lookups
type Vehicle struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Year      int            `gorm:"not null" json:"year"`
	Make      string         `gorm:"not null;size:100" json:"make"`
	Model     string         `gorm:"not null;size:100" json:"model"`
	Trim      string         `gorm:"size:100" json:"trim,omitempty"`
	TireSize  string         `gorm:"size:50" json:"tire_size,omitempty"`
	IsDefault bool           `gorm:"default:false" json:"is_default"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Vehicle) TableName() string {
	return "user_vehicles"
}

// DisplayName returns a human-readable vehicle label
func (v *Vehicle) DisplayName() string {
	name := ""
	if v.Year > 0 {
		name = strconv.Itoa(v.Year) + " "
	}
	name += v.Make + " " + v.Model
	if v.Trim != "" {
		name += " " + v.Trim
	}
	return name
}
