package report

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"

	"reportdesk/internal/domain/filestore"
)

// packageFiles bundles blobs into one ZIP archive, entries named after the
// original upload names in attachment order. Duplicate names get a numeric
// prefix so no entry silently overwrites another.
func packageFiles(files []*filestore.StoredFile) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	seen := map[string]int{}
	for _, f := range files {
		name := f.OriginalName
		if n := seen[name]; n > 0 {
			name = fmt.Sprintf("%d_%s", n, name)
		}
		seen[f.OriginalName]++

		if err := addBlobToZip(zw, f.Path, name); err != nil {
			zw.Close()
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zip writer: %w", err)
	}
	return buf.Bytes(), nil
}

func addBlobToZip(zw *zip.Writer, srcPath, entryName string) error {
	blob, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open blob %s: %w", srcPath, err)
	}
	defer blob.Close()

	info, err := blob.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat blob: %w", err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to create zip header: %w", err)
	}
	header.Name = entryName
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create zip entry: %w", err)
	}
	if _, err := io.Copy(w, blob); err != nil {
		return fmt.Errorf("failed to write zip entry: %w", err)
	}
	return nil
}
