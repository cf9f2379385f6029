// internal/domain/fleet/entity.go
package fleet

import (
	"time"

	"gorm.io/gorm"
)

// AppointmentStatus represents the fleet appointment status
type AppointmentStatus string

const (
	AppointmentStatusRequested AppointmentStatus = "requested"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// IsValid reports whether the status is a known one
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusRequested, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment represents a fleet service appointment request
type Appointment struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	UserID       uint              `gorm:"not null;index" json:"user_id"`
	CompanyName  string            `gorm:"not null;size:255" json:"company_name"`
	ContactName  string            `gorm:"not null;size:255" json:"contact_name"`
	ContactEmail string            `gorm:"not null;size:255" json:"contact_email"`
	ContactPhone string            `gorm:"size:20" json:"contact_phone"`
	FleetSize    int               `gorm:"default:1" json:"fleet_size"`
	ServiceType  string            `gorm:"not null;size:100" json:"service_type"`
	RequestedAt  time.Time         `gorm:"not null" json:"requested_at"`
	Status       AppointmentStatus `gorm:"not null;default:'requested'" json:"status"`
	Notes        string            `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"-"`

	Attachments []Attachment `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"attachments,omitempty"`
}

// Attachment represents a file attached to an appointment
type Attachment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AppointmentID uint      `gorm:"not null;index" json:"appointment_id"`
	OriginalName  string    `gorm:"not null;size:255" json:"original_name"`
	StoredName    string    `gorm:"not null;size:255" json:"stored_name"`
	FileSize      int64     `gorm:"not null" json:"file_size"`
	MimeType      string    `gorm:"size:100" json:"mime_type"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName overrides
func (Appointment) TableName() string { return "fleet_appointments" }
func (Attachment) TableName() string  { return "fleet_attachments" }
