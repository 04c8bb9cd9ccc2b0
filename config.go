package docmark

import "github.com/goliatone/go-docmark/internal/runtimeconfig"

var (
	ErrSourceDirRequired    = runtimeconfig.ErrSourceDirRequired
	ErrOutputDirRequired    = runtimeconfig.ErrOutputDirRequired
	ErrEntityTypesRequired  = runtimeconfig.ErrEntityTypesRequired
	ErrFallbackStyleInvalid = runtimeconfig.ErrFallbackStyleInvalid
	ErrMaxMatchStepInvalid  = runtimeconfig.ErrMaxMatchStepInvalid
	ErrWorkersInvalid       = runtimeconfig.ErrWorkersInvalid
	ErrLoggingLevelInvalid  = runtimeconfig.ErrLoggingLevelInvalid
)

type (
	Config         = runtimeconfig.Config
	BookConfig     = runtimeconfig.BookConfig
	FallbackConfig = runtimeconfig.FallbackConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the baseline configuration a run starts from.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML configuration file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
