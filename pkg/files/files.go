package files

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	ConfigDir    = ".auctionpost"
	SettingsFile = "settings.yaml"
	EnvFile      = ".env"
)

// SettingsPath is the project settings file relative to the working directory
func SettingsPath() string {
	return filepath.Join(ConfigDir, SettingsFile)
}

// InitProjectStructure creates the config directory and, unless one
// already exists, a settings file holding the defaults. It reports
// whether a settings file was written.
func InitProjectStructure() (bool, error) {
	if err := os.MkdirAll(ConfigDir, 0755); err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	if _, err := os.Stat(SettingsPath()); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat %s: %w", SettingsPath(), err)
	}

	if err := WriteSettingsTo(SettingsPath(), nil); err != nil {
		return false, err
	}
	return true, nil
}

// WriteFileAtomic writes data to a temp file in the destination directory
// and renames it into place, so readers never see a partial file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move file into place %s: %w", path, err)
	}
	return nil
}
