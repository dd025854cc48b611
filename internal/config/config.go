// internal/config/config.go
//
// Process configuration from the environment.
// Responsibilities:
//   - Load a .env file when present (godotenv), without overriding variables
//     already set in the environment.
//   - Read every setting with a default; malformed numbers fall back to the
//     default with a warning.
//
// Command-line flags override these values (see cmd/).

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// DevSecret signs tokens when JWT_SECRET is unset.
const DevSecret = "dev_secret_change_me"

// Config holds every environment-driven setting.
type Config struct {
	Words          words.Source
	Threshold      float64 // GUESS_THRESHOLD
	SuggestLimit   int     // SUGGEST_LIMIT
	SortCacheSize  int     // SORT_CACHE_SIZE; 0 disables the cache
	LogLevel       string  // LOG_LEVEL
	Port           string  // PORT
	DBPath         string  // DB_PATH
	JWTSecret      string  // JWT_SECRET
	JWTExpiresDays int     // JWT_EXPIRES_DAYS
	ClientOrigin   string  // CLIENT_ORIGIN
}

// Load reads .env (if any) and then the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() Config {
	return Config{
		Words: words.Source{
			WordsFile:   os.Getenv("WORDS_FILE"),
			FreqsFile:   os.Getenv("FREQS_FILE"),
			StatsFile:   os.Getenv("STATS_FILE"),
			StatsWeight: envFloat("STATS_WEIGHT", 0),
			Length:      envInt("WORD_LENGTH", 5),
		},
		Threshold:      envFloat("GUESS_THRESHOLD", 0.05),
		SuggestLimit:   envInt("SUGGEST_LIMIT", 15),
		SortCacheSize:  envInt("SORT_CACHE_SIZE", 4096),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Port:           getEnv("PORT", "5175"),
		DBPath:         getEnv("DB_PATH", "./data/solver.db"),
		JWTSecret:      getEnv("JWT_SECRET", DevSecret),
		JWTExpiresDays: envInt("JWT_EXPIRES_DAYS", 14),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("var", k).Str("value", v).Msg("not an integer, using default")
		return def
	}
	return n
}

func envFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn().Str("var", k).Str("value", v).Msg("not a number, using default")
		return def
	}
	return f
}
