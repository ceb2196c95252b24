package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagInput  = flag.String("input", "", "Path to the source image")
	flagWidth  = flag.Int("width", 0, "Window width")
	flagHeight = flag.Int("height", 0, "Window height")
	flagOut    = flag.String("out", "", "Directory for exported mip levels")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagInput != "" {
		cfg.Source.Image = *flagInput
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagOut != "" {
		cfg.Export.Dir = *flagOut
	}
}
