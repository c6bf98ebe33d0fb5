package models

import "time"

// Settings represents the application configuration
type Settings struct {
	Output  OutputSettings  `yaml:"output" mapstructure:"output"`
	Render  RenderSettings  `yaml:"render" mapstructure:"render"`
	Catalog CatalogSettings `yaml:"catalog" mapstructure:"catalog"`
	UI      UISettings      `yaml:"ui" mapstructure:"ui"`
	Log     LogSettings     `yaml:"log" mapstructure:"log"`
}

// OutputSettings controls where and how exported cards are written
type OutputSettings struct {
	Directory string `yaml:"directory" mapstructure:"directory"`
	Quality   int    `yaml:"quality" mapstructure:"quality"` // JPEG quality, 1-100
	Scale     int    `yaml:"scale" mapstructure:"scale"`     // oversampling factor
	Suffix    string `yaml:"suffix" mapstructure:"suffix"`
}

// RenderSettings selects and tunes the rasterizer
type RenderSettings struct {
	Backend     string        `yaml:"backend" mapstructure:"backend"` // "native" or "chrome"
	ChromeURL   string        `yaml:"chrome_url" mapstructure:"chrome_url"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	LogoTimeout time.Duration `yaml:"logo_timeout" mapstructure:"logo_timeout"`
	FetchLogos  bool          `yaml:"fetch_logos" mapstructure:"fetch_logos"`
}

// CatalogSettings points at optional catalog overrides
type CatalogSettings struct {
	PlayersFile string `yaml:"players_file" mapstructure:"players_file"`
	TeamsFile   string `yaml:"teams_file" mapstructure:"teams_file"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowPreview bool `yaml:"show_preview" mapstructure:"show_preview"`
}

// LogSettings controls logger output
type LogSettings struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

const (
	BackendNative = "native"
	BackendChrome = "chrome"
)

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Output: OutputSettings{
			Directory: ".",
			Quality:   95,
			Scale:     2,
			Suffix:    "auction",
		},
		Render: RenderSettings{
			Backend:     BackendNative,
			Timeout:     30 * time.Second,
			LogoTimeout: 5 * time.Second,
			FetchLogos:  true,
		},
		UI: UISettings{
			ShowPreview: true,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}
