package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings splits the comma-separated CORS origin list
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The types reflect how the values are used in the
// application: strings for identifiers and secrets, ints for durations and
// costs, a slice for the allowed CORS origins.
type Config struct {
	Port        string   // HTTP port to listen on
	DBUser      string   // database username
	DBPass      string   // database password (optional)
	DBHost      string   // database host address
	DBPort      string   // database port number
	DBName      string   // database name
	JWTSecret   string   // secret used to sign auth tokens
	TokenTTLMin int      // auth token time-to-live in minutes
	BcryptCost  int      // bcrypt cost for password hashing
	CORSOrigins []string // origins allowed by the CORS middleware
}

// Load reads configuration values from environment variables and returns a
// Config. The database variables and the signing secret are enforced by
// must(); a missing value causes the process to exit with a fatal log
// message. Everything else carries a sensible default.
func Load() Config {
	return Config{
		Port:        getenv("APP_PORT", "4000"),
		DBUser:      must("DB_USER"),
		DBPass:      os.Getenv("DB_PASS"), // empty allowed
		DBHost:      must("DB_HOST"),
		DBPort:      must("DB_PORT"),
		DBName:      must("DB_NAME"),
		JWTSecret:   must("JWT_SECRET"),
		TokenTTLMin: atoiDefault(getenv("JWT_TTL_MIN", "1440"), 1440), // 1 day
		BcryptCost:  atoiDefault(getenv("BCRYPT_COST", "10"), 10),
		CORSOrigins: splitOrigins(getenv("CORS_ORIGIN", "http://localhost:5500")),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the value of an environment variable or a default when the
// variable is unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// atoiDefault converts s to an int, falling back to def on parse failure or
// a non-positive result.
func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// splitOrigins parses the comma-separated CORS_ORIGIN value into a slice of
// trimmed, non-empty origins.
func splitOrigins(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
