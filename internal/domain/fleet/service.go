// internal/domain/fleet/service.go
package fleet

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/tireshop-backend/internal/config"
	"github.com/your-org/tireshop-backend/internal/pkg/pagination"
	"gorm.io/gorm"
)

// Service handles fleet appointment business logic
type Service struct {
	db          *gorm.DB
	attachments *AttachmentStore
	config      *config.Config
	logger      *logrus.Logger
}

// NewService creates a new fleet service
func NewService(db *gorm.DB, attachments *AttachmentStore, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		db:          db,
		attachments: attachments,
		config:      cfg,
		logger:      logger,
	}
}

// CreateAppointmentRequest represents a new appointment submission.
// Files arrive alongside the form fields in the same multipart request.
type CreateAppointmentRequest struct {
	CompanyName  string `form:"company_name" binding:"required,max=255"`
	ContactName  string `form:"contact_name" binding:"required,max=255"`
	ContactEmail string `form:"contact_email" binding:"required,email"`
	ContactPhone string `form:"contact_phone" binding:"max=20"`
	FleetSize    int    `form:"fleet_size" binding:"min=1"`
	ServiceType  string `form:"service_type" binding:"required,max=100"`
	RequestedAt  string `form:"requested_at" binding:"required"`
	Notes        string `form:"notes"`

	Files []*multipart.FileHeader `form:"-"`
}

// UpdateAppointmentRequest represents an appointment update
type UpdateAppointmentRequest struct {
	ContactName  *string `form:"contact_name" binding:"omitempty,max=255"`
	ContactEmail *string `form:"contact_email" binding:"omitempty,email"`
	ContactPhone *string `form:"contact_phone" binding:"omitempty,max=20"`
	FleetSize    *int    `form:"fleet_size" binding:"omitempty,min=1"`
	RequestedAt  *string `form:"requested_at"`
	Notes        *string `form:"notes"`

	Files []*multipart.FileHeader `form:"-"`
}

// AppointmentListResponse represents appointments with pagination
type AppointmentListResponse struct {
	Appointments []Appointment         `json:"appointments"`
	Pagination   pagination.Pagination `json:"pagination"`
}

// CreateAppointment validates the request and all attachments, then
// persists the appointment. Nothing is written when validation fails.
func (s *Service) CreateAppointment(ctx context.Context, userID uint, req *CreateAppointmentRequest) (*Appointment, error) {
	requestedAt, err := parseAppointmentTime(req.RequestedAt)
	if err != nil {
		return nil, err
	}
	if requestedAt.Before(time.Now()) {
		return nil, fmt.Errorf("requested time must be in the future")
	}

	for _, header := range req.Files {
		if err := s.attachments.Validate(header); err != nil {
			return nil, err
		}
	}

	appointment := &Appointment{
		UserID:       userID,
		CompanyName:  req.CompanyName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		FleetSize:    req.FleetSize,
		ServiceType:  req.ServiceType,
		RequestedAt:  requestedAt,
		Status:       AppointmentStatusRequested,
		Notes:        req.Notes,
	}

	tx := s.db.Begin()
	if err := tx.Create(appointment).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	var saved []*Attachment
	for _, header := range req.Files {
		att, err := s.attachments.Save(appointment.ID, header)
		if err != nil {
			tx.Rollback()
			for _, a := range saved {
				s.attachments.Remove(a)
			}
			return nil, err
		}
		saved = append(saved, att)
		if err := tx.Create(att).Error; err != nil {
			tx.Rollback()
			for _, a := range saved {
				s.attachments.Remove(a)
			}
			return nil, fmt.Errorf("failed to save attachment: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		for _, a := range saved {
			s.attachments.Remove(a)
		}
		return nil, fmt.Errorf("failed to commit appointment: %w", err)
	}

	return s.GetAppointment(ctx, appointment.ID, &userID)
}

// GetAppointments lists a user's appointments, newest first
func (s *Service) GetAppointments(ctx context.Context, userID uint, page, limit int) (*AppointmentListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = pagination.DefaultPageSize
	}

	var total int64
	query := s.db.Model(&Appointment{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}

	pg := pagination.New(total, page, limit)

	var appointments []Appointment
	if err := query.Preload("Attachments").
		Order("created_at DESC").
		Offset(pg.Offset()).
		Limit(pg.Limit).
		Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to get appointments: %w", err)
	}

	return &AppointmentListResponse{Appointments: appointments, Pagination: pg}, nil
}

// GetAppointment retrieves one appointment. When userID is non-nil the
// appointment must belong to that user.
func (s *Service) GetAppointment(ctx context.Context, id uint, userID *uint) (*Appointment, error) {
	query := s.db.Preload("Attachments")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var appointment Appointment
	if err := query.First(&appointment, id).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

// UpdateAppointment applies partial updates and any new attachments.
// Completed and cancelled appointments cannot be updated.
func (s *Service) UpdateAppointment(ctx context.Context, id, userID uint, req *UpdateAppointmentRequest) (*Appointment, error) {
	appointment, err := s.GetAppointment(ctx, id, &userID)
	if err != nil {
		return nil, err
	}
	if appointment.Status == AppointmentStatusCompleted || appointment.Status == AppointmentStatusCancelled {
		return nil, fmt.Errorf("appointment in status %s cannot be updated", appointment.Status)
	}

	updates := map[string]interface{}{}
	if req.ContactName != nil {
		updates["contact_name"] = *req.ContactName
	}
	if req.ContactEmail != nil {
		updates["contact_email"] = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		updates["contact_phone"] = *req.ContactPhone
	}
	if req.FleetSize != nil {
		updates["fleet_size"] = *req.FleetSize
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.RequestedAt != nil {
		requestedAt, err := parseAppointmentTime(*req.RequestedAt)
		if err != nil {
			return nil, err
		}
		updates["requested_at"] = requestedAt
	}

	for _, header := range req.Files {
		if err := s.attachments.Validate(header); err != nil {
			return nil, err
		}
	}

	tx := s.db.Begin()
	if len(updates) > 0 {
		if err := tx.Model(appointment).Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to update appointment: %w", err)
		}
	}

	var saved []*Attachment
	for _, header := range req.Files {
		att, err := s.attachments.Save(appointment.ID, header)
		if err != nil {
			tx.Rollback()
			for _, a := range saved {
				s.attachments.Remove(a)
			}
			return nil, err
		}
		saved = append(saved, att)
		if err := tx.Create(att).Error; err != nil {
			tx.Rollback()
			for _, a := range saved {
				s.attachments.Remove(a)
			}
			return nil, fmt.Errorf("failed to save attachment: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		for _, a := range saved {
			s.attachments.Remove(a)
		}
		return nil, fmt.Errorf("failed to commit update: %w", err)
	}

	return s.GetAppointment(ctx, id, &userID)
}

// CancelAppointment cancels an appointment that has not completed
func (s *Service) CancelAppointment(ctx context.Context, id, userID uint) error {
	appointment, err := s.GetAppointment(ctx, id, &userID)
	if err != nil {
		return err
	}
	if appointment.Status == AppointmentStatusCompleted {
		return fmt.Errorf("completed appointments cannot be cancelled")
	}
	if appointment.Status == AppointmentStatusCancelled {
		return nil
	}

	return s.db.Model(appointment).Update("status", AppointmentStatusCancelled).Error
}

// UpdateStatus moves an appointment to a new status (admin)
func (s *Service) UpdateStatus(ctx context.Context, id uint, status AppointmentStatus) (*Appointment, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	var appointment Appointment
	if err := s.db.First(&appointment, id).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&appointment).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	appointment.Status = status
	return &appointment, nil
}

// DeleteAttachment removes one attachment from an appointment
func (s *Service) DeleteAttachment(ctx context.Context, appointmentID, attachmentID, userID uint) error {
	if _, err := s.GetAppointment(ctx, appointmentID, &userID); err != nil {
		return err
	}

	var att Attachment
	if err := s.db.Where("appointment_id = ?", appointmentID).First(&att, attachmentID).Error; err != nil {
		return err
	}

	if err := s.db.Delete(&att).Error; err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	s.attachments.Remove(&att)
	return nil
}

var appointmentTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseAppointmentTime(value string) (time.Time, error) {
	for _, layout := range appointmentTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid requested time: %s", value)
}
