package filestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultMaxFileSize = 50 * 1024 * 1024 // 50 MiB

// AllowedMimeTypes defines which declared content types are accepted.
var AllowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.ms-powerpoint": true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,

	"text/plain": true,

	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// AllowedExtensions mirrors AllowedMimeTypes on the filename side.
var AllowedExtensions = map[string]bool{
	".pdf":  true,
	".ppt":  true,
	".pptx": true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Service is the content-addressed file store. Blobs are written once per
// distinct content hash under uploadDir as <hash><ext>; metadata rows live
// in the repository. Storing identical bytes twice returns the original
// record untouched.
type Service struct {
	repo      Repository
	uploadDir string
	maxSize   int64
}

// NewService creates the store and ensures the upload directory exists.
func NewService(repo Repository, uploadDir string, maxSize int64) (*Service, error) {
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", uploadDir, err)
	}
	return &Service{repo: repo, uploadDir: uploadDir, maxSize: maxSize}, nil
}

// Store validates the buffer, deduplicates it by content hash, and persists
// blob and metadata on a dedup miss. It is idempotent for identical content:
// the later caller gets the first record back, whatever originalName and
// mimeType it supplied. Validation failures leave no state behind.
func (s *Service) Store(ctx context.Context, data []byte, originalName, mimeType string, assoc Associations) (*StoredFile, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, len(data), s.maxSize)
	}
	if !AllowedMimeTypes[mimeType] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMimeType, mimeType)
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if !AllowedExtensions[ext] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}
	if strings.TrimSpace(originalName) == "" {
		return nil, ErrEmptyName
	}
	if !matchesSignature(mimeType, data) {
		return nil, fmt.Errorf("%w: %s", ErrBadSignature, mimeType)
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	existing, err := s.repo.GetByHash(ctx, hash)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrFileNotFound) {
		return nil, err
	}

	storedName := hash + ext
	path := filepath.Join(s.uploadDir, storedName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write blob: %w", err)
	}

	file := &StoredFile{
		ID:           uuid.New().String(),
		OriginalName: originalName,
		StoredName:   storedName,
		MimeType:     mimeType,
		Size:         int64(len(data)),
		Hash:         hash,
		Path:         path,
		UploadedAt:   time.Now(),
		ProjectID:    assoc.ProjectID,
		TaskID:       assoc.TaskID,
		UploadedBy:   assoc.UploadedBy,
	}

	if err := s.repo.Create(ctx, file); err != nil {
		if IsUniqueViolation(err) {
			// A concurrent upload of the same content won the insert. The
			// blob bytes are identical so the double write is harmless;
			// converge on the winner's record.
			return s.repo.GetByHash(ctx, hash)
		}
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	return file, nil
}

// GetByID returns file metadata.
func (s *Service) GetByID(ctx context.Context, id string) (*StoredFile, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByProject returns the files attached to a project, newest first.
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]*StoredFile, error) {
	return s.repo.ListByProject(ctx, projectID)
}

// Open returns the metadata and an open handle on the blob for streaming.
// The caller owns closing the handle.
func (s *Service) Open(ctx context.Context, id string) (*StoredFile, *os.File, error) {
	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open blob %s: %w", file.Path, err)
	}
	return file, f, nil
}

// Delete removes the blob and the metadata row. Blob removal failures are
// logged and tolerated; the row is removed regardless.
func (s *Service) Delete(ctx context.Context, id string) error {
	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := os.Remove(file.Path); err != nil {
		if os.IsNotExist(err) {
			log.Printf("filestore: blob missing on delete id=%s path=%s", file.ID, file.Path)
		} else {
			log.Printf("filestore: blob removal failed id=%s path=%s: %v", file.ID, file.Path, err)
		}
	}
	return s.repo.Delete(ctx, id)
}

// DeleteOwned deletes a file on behalf of the user who uploaded it. Files
// uploaded by someone else, or with no recorded uploader, are refused.
func (s *Service) DeleteOwned(ctx context.Context, id string, userID int64) error {
	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if file.UploadedBy == nil || *file.UploadedBy != userID {
		return ErrNotOwner
	}
	return s.Delete(ctx, id)
}

type BatchFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

type BatchResult struct {
	Succeeded int            `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
}

// DeleteBatch deletes files one by one, accumulating per-item failures.
// A partially failed batch is a normal outcome, not an error.
func (s *Service) DeleteBatch(ctx context.Context, ids []string) BatchResult {
	var res BatchResult
	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			res.Failed = append(res.Failed, BatchFailure{ID: id, Error: err.Error()})
			continue
		}
		res.Succeeded++
	}
	return res
}

type CleanupResult struct {
	Cleaned int `json:"cleaned"`
	Errors  int `json:"errors"`
}

// CleanupExpired removes files older than olderThanDays whose project is
// absent or not completed. Per-file failures are counted and skipped.
func (s *Service) CleanupExpired(ctx context.Context, olderThanDays int) (CleanupResult, error) {
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	expired, err := s.repo.FindExpired(ctx, cutoff)
	if err != nil {
		return CleanupResult{}, err
	}

	var res CleanupResult
	for _, file := range expired {
		if err := s.Delete(ctx, file.ID); err != nil {
			log.Printf("filestore: cleanup failed id=%s error=%v", file.ID, err)
			res.Errors++
			continue
		}
		res.Cleaned++
	}
	return res, nil
}

type StorageStats struct {
	TotalFiles int64          `json:"total_files"`
	TotalSize  int64          `json:"total_size"`
	ByMimeType []MimeTypeStat `json:"by_mime_type"`
	ByDay      []DayStat      `json:"by_day"`
}

// Stats returns aggregate storage numbers; the per-day breakdown covers the
// most recent 30 days.
func (s *Service) Stats(ctx context.Context) (*StorageStats, error) {
	count, size, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	byMime, err := s.repo.StatsByMimeType(ctx)
	if err != nil {
		return nil, err
	}
	byDay, err := s.repo.StatsByDay(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	return &StorageStats{
		TotalFiles: count,
		TotalSize:  size,
		ByMimeType: byMime,
		ByDay:      byDay,
	}, nil
}
