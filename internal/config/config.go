package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName    string
	AppVersion string
	LogLevel   string

	// DatabasePath is the SQLite file used until the user opens another one.
	DatabasePath string
	// SettingsPath is the file remembering the last-opened database and
	// the recent-files list.
	SettingsPath string
	// FixturesDir is the default directory for JSON fixture files.
	FixturesDir string
}

// Load reads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:      getenv("APP_SERVICE", "facturo"),
		AppVersion:   getenv("APP_VERSION", "0.1.0"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		DatabasePath: strings.TrimSpace(getenv("FACTURO_DATABASE", "")),
		SettingsPath: strings.TrimSpace(getenv("FACTURO_SETTINGS", "facturo_settings.yml")),
		FixturesDir:  getenv("FACTURO_FIXTURES_DIR", "fixtures"),
	}
}

var Module = fx.Module("config",
	fx.Provide(Load),
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
