// Package ocr provides the seven-segment OCR engine used for operators that
// publish prices only as display images.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/tankstander/fuelprices/internal/fuel"
)

// DefaultBinary is the ssocr executable looked up on PATH when no explicit
// binary is configured.
const DefaultBinary = "ssocr"

// SSOCR shells out to the ssocr tool to read seven-segment digits from a
// crop of the downloaded price image. It implements fuel.OCREngine.
type SSOCR struct {
	binary string
}

// NewSSOCR creates an engine for the given binary. An empty binary means
// DefaultBinary on PATH.
func NewSSOCR(binary string) *SSOCR {
	if binary == "" {
		binary = DefaultBinary
	}
	return &SSOCR{binary: binary}
}

// Available reports whether the ssocr binary can be resolved. When it
// cannot, callers switch to their documented fallback path instead of
// treating this as an error.
func (s *SSOCR) Available() bool {
	_, err := exec.LookPath(s.binary)
	return err == nil
}

// Recognize runs ssocr against the crop region of the image and returns its
// trimmed text output. Empty output is returned as an empty string, not an
// error: it means the display could not be read this cycle.
func (s *SSOCR) Recognize(ctx context.Context, imagePath string, crop fuel.CropRegion) (string, error) {
	args := []string{
		"-d5", "-t20",
		"make_mono", "invert", "-D",
		"crop",
		strconv.Itoa(crop.X), strconv.Itoa(crop.Y),
		strconv.Itoa(crop.Width), strconv.Itoa(crop.Height),
		imagePath,
	}

	cmd := exec.CommandContext(ctx, s.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// ssocr exits non-zero when it cannot recognize anything; that is
		// an unreadable display, not a broken engine.
		if _, ok := err.(*exec.ExitError); ok {
			return "", nil
		}
		return "", fmt.Errorf("run %s: %w", s.binary, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
