package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses duration values
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, durations for
// timeouts and delays, cents for money.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	DBUser         string        // database username
	DBPass         string        // database password (optional)
	DBHost         string        // database host address
	DBPort         string        // database port number
	DBName         string        // database name
	DBMaxOpenConns int           // connection pool upper bound
	DBMaxIdleConns int           // idle connections kept in the pool
	DBConnLifetime time.Duration // maximum lifetime of a pooled connection
	JWTSecret      string        // secret used to verify JWTs issued by the backend
	BackendBaseURL string        // base URL of the ticketing backend API
	BackendTimeout time.Duration // per-request timeout for backend calls
	FeeCents       uint32        // fixed booking fee added to every transaction
	DocumentDelay  time.Duration // pause between consecutive ticket document fetches
	PendingTTL     time.Duration // how long a pending transaction survives in the store
	PendingSealKey string        // 64-char hex key used to encrypt pending payloads
	MaxAttempts    int           // completion attempts before a pending record is dropped
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),          // environment (dev/test/prod)
		Port:           must("APP_PORT"),         // port to bind the HTTP server
		DBUser:         must("DB_USER"),          // database user
		DBPass:         os.Getenv("DB_PASS"),     // database password (empty allowed)
		DBHost:         must("DB_HOST"),          // database host
		DBPort:         must("DB_PORT"),          // database port
		DBName:         must("DB_NAME"),          // database name
		DBMaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: envInt("DB_MAX_IDLE_CONNS", 25),
		DBConnLifetime: envDur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		JWTSecret:      must("JWT_SECRET"),       // secret used to verify backend-issued JWTs
		BackendBaseURL: must("BACKEND_BASE_URL"), // ticketing backend base URL
		BackendTimeout: envDur("BACKEND_TIMEOUT", 30*time.Second),
		FeeCents:       uint32(envInt("BOOKING_FEE_CENTS", 150)),
		DocumentDelay:  envDur("DOCUMENT_FETCH_DELAY", 500*time.Millisecond),
		PendingTTL:     envDur("PENDING_TTL", 30*time.Minute),
		PendingSealKey: must("PENDING_SEAL_KEY"), // 32-byte hex key for the sealed store
		MaxAttempts:    envInt("MAX_COMPLETION_ATTEMPTS", 5),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// envInt reads an optional integer variable, falling back to the default
// when unset or malformed.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

// envDur reads an optional duration variable ("30s", "500ms"), falling
// back to the default when unset or malformed.
func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
