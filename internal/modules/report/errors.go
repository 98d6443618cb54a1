package report

import "errors"

var (
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidKind    = errors.New("invalid report kind")
	ErrNoFiles        = errors.New("report has no files to package")
)
