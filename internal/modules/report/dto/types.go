package dto

import (
	"time"

	"paymind/internal/modules/report/domain"
)

type BuildInput struct {
	UserID string
	AsOf   time.Time
}

type ReportOutput struct {
	Report domain.Report
}

type RenderInput struct {
	UserID string
	AsOf   time.Time
	Format string
}

type RenderOutput struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportInput writes the rendered report. Path wins over Dir; with neither set the configured report dir is used.
type ExportInput struct {
	UserID string
	AsOf   time.Time
	Format string
	Dir    string
	Path   string
}

type ExportOutput struct {
	Path   string
	Format string
	Bytes  int
	// Pages is set for PDF exports.
	Pages int
}
