package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/auctionpost/auctionpost/pkg/models"
)

// EnvPrefix prefixes environment overrides, e.g. AUCTIONPOST_OUTPUT_DIRECTORY
const EnvPrefix = "AUCTIONPOST"

var ErrInvalidSettings = errors.New("invalid settings")

// ReadSettings loads the project settings file, falling back to defaults
// when it does not exist.
func ReadSettings() (*models.Settings, error) {
	return ReadSettingsFrom(SettingsPath())
}

// ReadSettingsFrom layers defaults, the YAML file at path (if present), a
// .env file in the working directory and AUCTIONPOST_* variables, in that
// order of increasing precedence.
func ReadSettingsFrom(path string) (*models.Settings, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", EnvFile, err)
	}

	v := viper.New()
	setDefaults(v, models.DefaultSettings())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
	}

	settings := &models.Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if err := Validate(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func setDefaults(v *viper.Viper, d *models.Settings) {
	v.SetDefault("output.directory", d.Output.Directory)
	v.SetDefault("output.quality", d.Output.Quality)
	v.SetDefault("output.scale", d.Output.Scale)
	v.SetDefault("output.suffix", d.Output.Suffix)
	v.SetDefault("render.backend", d.Render.Backend)
	v.SetDefault("render.chrome_url", d.Render.ChromeURL)
	v.SetDefault("render.timeout", d.Render.Timeout)
	v.SetDefault("render.logo_timeout", d.Render.LogoTimeout)
	v.SetDefault("render.fetch_logos", d.Render.FetchLogos)
	v.SetDefault("catalog.players_file", d.Catalog.PlayersFile)
	v.SetDefault("catalog.teams_file", d.Catalog.TeamsFile)
	v.SetDefault("ui.show_preview", d.UI.ShowPreview)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// Validate checks ranges and enumerations that the YAML types cannot express
func Validate(s *models.Settings) error {
	var problems []string
	if s.Output.Quality < 1 || s.Output.Quality > 100 {
		problems = append(problems, fmt.Sprintf("output.quality must be 1-100, got %d", s.Output.Quality))
	}
	if s.Output.Scale < 1 || s.Output.Scale > 4 {
		problems = append(problems, fmt.Sprintf("output.scale must be 1-4, got %d", s.Output.Scale))
	}
	if strings.ContainsAny(s.Output.Suffix, `/\`) {
		problems = append(problems, "output.suffix must not contain path separators")
	}
	switch s.Render.Backend {
	case models.BackendNative, models.BackendChrome:
	default:
		problems = append(problems, fmt.Sprintf("render.backend must be %q or %q, got %q",
			models.BackendNative, models.BackendChrome, s.Render.Backend))
	}
	if s.Render.Timeout <= 0 {
		problems = append(problems, "render.timeout must be positive")
	}
	if s.Render.LogoTimeout <= 0 {
		problems = append(problems, "render.logo_timeout must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(problems, "; "))
	}
	return nil
}

// settingsDoc mirrors models.Settings with durations written as strings
// ("30s") instead of yaml.v3's integer nanoseconds.
type settingsDoc struct {
	Output  models.OutputSettings  `yaml:"output"`
	Render  renderDoc              `yaml:"render"`
	Catalog models.CatalogSettings `yaml:"catalog"`
	UI      models.UISettings      `yaml:"ui"`
	Log     models.LogSettings     `yaml:"log"`
}

type renderDoc struct {
	Backend     string `yaml:"backend"`
	ChromeURL   string `yaml:"chrome_url"`
	Timeout     string `yaml:"timeout"`
	LogoTimeout string `yaml:"logo_timeout"`
	FetchLogos  bool   `yaml:"fetch_logos"`
}

// WriteSettings saves settings to the project settings file
func WriteSettings(settings *models.Settings) error {
	return WriteSettingsTo(SettingsPath(), settings)
}

// WriteSettingsTo saves settings to path; nil writes the defaults
func WriteSettingsTo(path string, settings *models.Settings) error {
	if settings == nil {
		settings = models.DefaultSettings()
	}

	doc := settingsDoc{
		Output: settings.Output,
		Render: renderDoc{
			Backend:     settings.Render.Backend,
			ChromeURL:   settings.Render.ChromeURL,
			Timeout:     settings.Render.Timeout.String(),
			LogoTimeout: settings.Render.LogoTimeout.String(),
			FetchLogos:  settings.Render.FetchLogos,
		},
		Catalog: settings.Catalog,
		UI:      settings.UI,
		Log:     settings.Log,
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := WriteFileAtomic(filepath.Clean(path), data); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

