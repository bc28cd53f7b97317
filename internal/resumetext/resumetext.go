// Package resumetext reads résumé files into sanitized plain text.
package resumetext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/screening"
)

var (
	ErrUnsupported = errors.New("unsupported resume format")
	ErrEmpty       = errors.New("resume contains no text")
)

// Load reads a .pdf or plain-text résumé. Text that does not look like a
// résumé is still returned; only a warning is logged.
func Load(ctx context.Context, path string, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading resume %q: %w", path, err)
	}

	text, err := FromBytes(data, filepath.Ext(path))
	if err != nil {
		return "", fmt.Errorf("resume %q: %w", path, err)
	}

	if !screening.ValidateResumeText(text) {
		logger.Warn("resume text may be invalid or incomplete", zap.String("path", path), zap.Int("length", len(text)))
	}

	logger.Debug("resume loaded", zap.String("path", path), zap.Int("length", len(text)))
	return text, nil
}

// FromBytes extracts sanitized text for the given file extension.
func FromBytes(data []byte, ext string) (string, error) {
	var (
		text string
		err  error
	)

	switch strings.ToLower(ext) {
	case ".pdf":
		text, err = extractPDF(data)
	case ".txt", ".md", ".text", "":
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
	if err != nil {
		return "", err
	}

	text = screening.SanitizeText(text)
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	return buf.String(), nil
}
