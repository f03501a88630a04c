package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Token settings feed the TokenManager:
// the secret is mandatory, issuer/audience/TTL have sane defaults.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign JWTs
	JWTIssuer    string // expected `iss` claim
	JWTAudience  string // expected `aud` claim
	TokenTTLDays int    // token lifetime in days
	BcryptCost   int    // bcrypt cost for password hashing
}

// Load reads configuration from the environment. The JWT secret and the
// database coordinates are required; missing values cause the process to
// exit with a fatal log message before the server starts.
func Load() Config {
	return Config{
		Env:          getenv("APP_ENV", "dev"),
		Port:         getenv("APP_PORT", "8080"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"), // empty allowed
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		JWTIssuer:    getenv("JWT_ISSUER", "library-catalog"),
		JWTAudience:  getenv("JWT_AUDIENCE", "library-catalog"),
		TokenTTLDays: envInt("TOKEN_TTL_DAYS", 7),
		BcryptCost:   envInt("BCRYPT_COST", 12),
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

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
