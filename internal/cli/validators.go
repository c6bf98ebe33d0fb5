package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/auctionpost/auctionpost/pkg/models"
)

// ValidateDirectoryPath validates that a directory path exists
func ValidateDirectoryPath(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", path)
		}
		return fmt.Errorf("error accessing directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateBackend validates the --backend flag
func ValidateBackend(backend string) error {
	switch backend {
	case models.BackendNative, models.BackendChrome:
		return nil
	}
	return fmt.Errorf("invalid backend: %s (must be: %s or %s)", backend, models.BackendNative, models.BackendChrome)
}

// ValidatePrice rejects an empty price; anything else is accepted and
// formatted leniently, the same as in the interactive form.
func ValidatePrice(price string) error {
	if strings.TrimSpace(price) == "" {
		return fmt.Errorf("price cannot be empty")
	}
	return nil
}
