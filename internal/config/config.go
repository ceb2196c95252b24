// Package config handles application configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Source  SourceConfig  `yaml:"source"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// SourceConfig holds the input image settings.
type SourceConfig struct {
	// Image is decoded and uploaded at startup when set. An unreadable
	// path aborts initialization; empty means start without an image.
	Image string `yaml:"image"`
}

// ExportConfig holds mip level export settings.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     640,
			Height:    480,
			Title:     "mipforge",
			Resizable: true,
		},
		Source: SourceConfig{
			Image: "",
		},
		Export: ExportConfig{
			Dir: "output",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
