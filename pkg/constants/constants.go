package constants

const (
	// ConfigName is the base name of the config file (without extension).
	ConfigName = "config"
	// ConfigFormat is the config file format viper should expect.
	ConfigFormat = "yaml"

	// EnvPrefix is the prefix for environment variable overrides,
	// e.g. KOKORO_DATABASE_HOST overrides database.host.
	EnvPrefix = "KOKORO"

	// ServiceName identifies this service in logs, traces and metrics.
	ServiceName = "kokoro_backend"
)
