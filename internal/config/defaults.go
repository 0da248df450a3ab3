package config

const (
	defaultDataDir         = "~/.local/share/thermo"
	defaultLogDir          = "~/.local/share/thermo/logs"
	defaultEndpointName    = "convert0"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultHistoryLimit    = 20
	defaultSocketFileName  = "thermod.sock"
	defaultJournalFileName = "journal.db"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Endpoint: Endpoint{
			Name: defaultEndpointName,
		},
		Journal: Journal{
			Enabled:      true,
			HistoryLimit: defaultHistoryLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
