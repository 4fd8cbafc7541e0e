package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"paymind/internal/modules/report/domain"
	reportout "paymind/internal/modules/report/port/out"
	"paymind/internal/platform/markdown"
)

// FileWriter stores reports on disk. A markdown export over an existing file keeps the user's
// frontmatter keys and notes and only swaps the managed report block.
type FileWriter struct{}

func NewFileWriter() reportout.Writer {
	return FileWriter{}
}

func (FileWriter) Write(_ context.Context, path string, format domain.Format, data []byte) (string, error) {
	if path == "" {
		return "", fmt.Errorf("report path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve report path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	if format == domain.FormatMarkdown {
		merged, err := mergeMarkdown(abs, data)
		if err != nil {
			return "", err
		}
		data = merged
	}
	tmp := abs + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, abs); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("replace report: %w", err)
	}
	return abs, nil
}

func mergeMarkdown(path string, rendered []byte) ([]byte, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return rendered, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read existing report: %w", err)
	}
	oldMeta, oldBody, err := markdown.SplitFrontmatter(string(existing))
	if err != nil {
		return nil, fmt.Errorf("existing report: %w", err)
	}
	newMeta, newBody, err := markdown.SplitFrontmatter(string(rendered))
	if err != nil {
		return nil, fmt.Errorf("rendered report: %w", err)
	}
	block, ok := markdown.ManagedBlock(newBody, BlockStart, BlockEnd)
	if !ok {
		return rendered, nil
	}
	body := markdown.ReplaceManagedBlock(oldBody, BlockStart, BlockEnd, block)
	doc, err := markdown.RenderFrontmatter(markdown.MergeFrontmatter(oldMeta, newMeta), body)
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}
