// internal/domain/fleet/attachment.go
package fleet

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/your-org/tireshop-backend/internal/config"
)

// AttachmentStore validates and persists appointment attachments on local
// storage. Validation runs before anything is written to disk or database.
type AttachmentStore struct {
	config *config.Config
}

// NewAttachmentStore creates a new attachment store
func NewAttachmentStore(cfg *config.Config) *AttachmentStore {
	return &AttachmentStore{config: cfg}
}

// Validate checks a file header against the configured upload limits
func (a *AttachmentStore) Validate(header *multipart.FileHeader) error {
	if header == nil || header.Filename == "" {
		return fmt.Errorf("no file selected")
	}
	if header.Size <= 0 {
		return fmt.Errorf("file %s is empty", header.Filename)
	}
	if header.Size > a.config.Upload.MaxSize {
		return fmt.Errorf("file %s exceeds maximum size of %d bytes", header.Filename, a.config.Upload.MaxSize)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if !lo.Contains(a.config.Upload.AllowedExtensions, ext) {
		return fmt.Errorf("file type .%s is not allowed", ext)
	}
	return nil
}

// Save writes a validated upload to local storage and returns the
// attachment record to persist
func (a *AttachmentStore) Save(appointmentID uint, header *multipart.FileHeader) (*Attachment, error) {
	if err := a.Validate(header); err != nil {
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	storedName := a.generateUniqueFilename(header.Filename)
	relativePath := filepath.Join("fleet", storedName)
	fullPath := filepath.Join(a.config.Upload.LocalPath, relativePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &Attachment{
		AppointmentID: appointmentID,
		OriginalName:  header.Filename,
		StoredName:    relativePath,
		FileSize:      header.Size,
		MimeType:      header.Header.Get("Content-Type"),
	}, nil
}

// Remove deletes a stored attachment file, ignoring missing files
func (a *AttachmentStore) Remove(att *Attachment) {
	os.Remove(filepath.Join(a.config.Upload.LocalPath, att.StoredName))
}

func (a *AttachmentStore) generateUniqueFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.New().String() + ext
}
