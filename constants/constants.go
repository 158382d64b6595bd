package constants

import (
	"os"
	"strings"
	"time"
)

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func GetPort() string {
	return getEnv("EARTRAINER_PORT", "8080")
}

func GetEnvironment() string {
	return getEnv("EARTRAINER_ENV", "development")
}

func IsProduction() bool {
	return GetEnvironment() == "production"
}

// GetTablesPath is empty unless the embedded content tables are overridden.
func GetTablesPath() string {
	return os.Getenv("EARTRAINER_TABLES")
}

func GetOutDir() string {
	return getEnv("EARTRAINER_OUT_DIR", "./out")
}

func GetSentryDSN() string {
	return os.Getenv("SENTRY_DSN")
}

func GetAllowedOrigins() []string {
	var res []string
	for _, o := range strings.Split(getEnv("EARTRAINER_ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			res = append(res, o)
		}
	}
	return res
}

// number of candidates shown per round
const ChoiceCount = 4

// MIDI file resolution and tempo used when rendering cues
const TicksPerQuarter = 480
const RenderTempo = 120.0

const SentryFlushTimeout = 2 * time.Second

// how long serve waits after the last answer before logging a score snapshot
const ScoreSnapshotDelay = 2 * time.Second
