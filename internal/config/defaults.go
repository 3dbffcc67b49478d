package config

const (
	defaultConfigPath   = "~/.config/fileorg/config.toml"
	projectConfigName   = "fileorg.toml"
	defaultStateDir     = "~/.local/share/fileorg"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultHistoryLimit = 20
	defaultOutputMode   = OutputText
	defaultColorMode    = ColorAuto
)

// Output modes for the run command.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputBar  = "bar"
)

// Color modes for console output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: false,
			Limit:   defaultHistoryLimit,
		},
		Output: Output{
			Mode:  defaultOutputMode,
			Color: defaultColorMode,
		},
	}
}
