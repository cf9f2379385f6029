package fleet

import (
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/tireshop-backend/internal/config"
)

func testUploadConfig() *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{
			MaxSize:           5 * 1024 * 1024,
			AllowedExtensions: []string{"jpg", "jpeg", "png", "pdf"},
			LocalPath:         "./uploads",
		},
	}
}

func header(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func TestAttachmentValidate(t *testing.T) {
	store := NewAttachmentStore(testUploadConfig())

	tests := []struct {
		name    string
		header  *multipart.FileHeader
		wantErr string
	}{
		{"valid pdf", header("invoice.pdf", 1024), ""},
		{"valid jpeg", header("Fleet Photo.JPG", 2048), ""},
		{"nil header", nil, "no file selected"},
		{"empty filename", header("", 100), "no file selected"},
		{"empty file", header("doc.pdf", 0), "is empty"},
		{"oversized", header("huge.png", 6*1024*1024), "exceeds maximum size"},
		{"disallowed extension", header("malware.exe", 100), "not allowed"},
		{"no extension", header("README", 100), "not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Validate(tt.header)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestGenerateUniqueFilenameKeepsExtension(t *testing.T) {
	store := NewAttachmentStore(testUploadConfig())

	name := store.generateUniqueFilename("Fleet Report.PDF")
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.NotContains(t, name, " ")

	// Two calls never collide
	other := store.generateUniqueFilename("Fleet Report.PDF")
	assert.NotEqual(t, name, other)
}

func TestAppointmentStatusIsValid(t *testing.T) {
	for _, s := range []AppointmentStatus{
		AppointmentStatusRequested, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled,
	} {
		assert.True(t, s.IsValid())
	}
	assert.False(t, AppointmentStatus("rescheduled").IsValid())
	assert.False(t, AppointmentStatus("").IsValid())
}

func TestParseAppointmentTime(t *testing.T) {
	for _, value := range []string{
		"2026-09-15T10:30:00Z",
		"2026-09-15T10:30:00",
		"2026-09-15 10:30",
		"2026-09-15",
	} {
		_, err := parseAppointmentTime(value)
		assert.NoError(t, err, "expected %q to parse", value)
	}

	_, err := parseAppointmentTime("next tuesday")
	assert.Error(t, err)
}
