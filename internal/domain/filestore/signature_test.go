package filestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesSignature(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		data     []byte
		want     bool
	}{
		{"pdf magic", "application/pdf", []byte("%PDF-1.7 rest"), true},
		{"pdf wrong prefix", "application/pdf", []byte("PDF-1.7"), false},
		{"pdf too short", "application/pdf", []byte("%PD"), false},
		{"jpeg magic", "image/jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, true},
		{"jpeg wrong prefix", "image/jpeg", []byte{0xFF, 0xD8, 0x00}, false},
		{"png magic", "image/png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}, true},
		{"png truncated", "image/png", []byte{0x89, 0x50, 0x4E}, false},
		{"unregistered type passes", "text/plain", []byte("anything"), true},
		{"unregistered type passes empty", "application/msword", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesSignature(tt.mimeType, tt.data))
		})
	}
}
