package filestore

import "bytes"

// magicSignatures maps a mime type to the leading-byte sequences that are
// acceptable for it. Types without an entry are deliberately let through
// unchecked: the allow-list already restricts what can be declared, and
// office/text formats have no single stable prefix worth pinning.
var magicSignatures = map[string][][]byte{
	"application/pdf": {{0x25, 0x50, 0x44, 0x46}}, // %PDF
	"image/jpeg":      {{0xFF, 0xD8, 0xFF}},
	"image/png":       {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
}

// matchesSignature reports whether data is plausible content for mimeType.
// Returns true for types with no registered signature.
func matchesSignature(mimeType string, data []byte) bool {
	sigs, ok := magicSignatures[mimeType]
	if !ok {
		return true
	}
	for _, sig := range sigs {
		if len(data) >= len(sig) && bytes.Equal(data[:len(sig)], sig) {
			return true
		}
	}
	return false
}
