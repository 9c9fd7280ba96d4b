package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file (default: $"+EnvConfig+" or search)")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile     = flag.String("log-file", "", "Also write logs to this rotating file")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagTitle       = flag.String("title", "", "Window title")
	flagUPS         = flag.Int("ups", 0, "Logic updates per second")
	flagNoVSync     = flag.Bool("no-vsync", false, "Disable vertical sync")
	flagFOV         = flag.Float64("fov", 0, "Vertical field of view in degrees")
	flagScreenshots = flag.String("screenshots", "", "Directory for F12 screenshots")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the config file named by --config, if any.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags overrides cfg with every flag that was set. Zero values mean
// unset; out-of-range values are left for Validate to report.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}

	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagTitle != "" {
		cfg.Window.Title = *flagTitle
	}
	if *flagUPS != 0 {
		cfg.Window.UPS = *flagUPS
	}
	if *flagNoVSync {
		cfg.Window.VSync = false
	}

	if *flagFOV != 0 {
		cfg.Camera.FOV = float32(*flagFOV)
	}
	if *flagScreenshots != "" {
		cfg.Screenshots.Dir = *flagScreenshots
	}
}
