package filestore

import "errors"

var (
	ErrFileNotFound     = errors.New("file not found")
	ErrFileTooLarge     = errors.New("file exceeds maximum allowed size")
	ErrInvalidMimeType  = errors.New("file type is not allowed")
	ErrInvalidExtension = errors.New("file extension is not allowed")
	ErrEmptyName        = errors.New("file name is empty")
	ErrEmptyFile        = errors.New("file is empty")
	ErrBadSignature     = errors.New("file content does not match declared type")
	ErrNotOwner         = errors.New("file belongs to another user")
)
