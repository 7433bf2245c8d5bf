package config

import (
	"os"
	"time"
)

// Storage backend selectors. The blob store keys and formats are identical
// across backends, so switching is a config change only.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Digest algorithm selectors for the credential service. sha256 reproduces the
// historical unsalted digest for stored-credential compatibility; bcrypt is the
// hardened option for new deployments.
const (
	DigestSHA256 = "sha256"
	DigestBcrypt = "bcrypt"
)

// Config captures everything main needs to wire the process.
type Config struct {
	Addr string

	StorageBackend string
	DataDir        string
	RedisURL       string
	PostgresDSN    string

	JWTSigningKey string
	TokenTTL      time.Duration

	DigestAlgorithm   string
	InstitutionDomain string
	SuperAdminEmail   string

	ExportDir string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:              envOr("CAMPUSREPORT_ADDR", ":8080"),
		StorageBackend:    envOr("CAMPUSREPORT_STORAGE", BackendFile),
		DataDir:           envOr("CAMPUSREPORT_DATA_DIR", "./data"),
		RedisURL:          os.Getenv("CAMPUSREPORT_REDIS_URL"),
		PostgresDSN:       os.Getenv("CAMPUSREPORT_POSTGRES_DSN"),
		JWTSigningKey:     envOr("CAMPUSREPORT_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		TokenTTL:          24 * time.Hour,
		DigestAlgorithm:   envOr("CAMPUSREPORT_DIGEST", DigestSHA256),
		InstitutionDomain: envOr("CAMPUSREPORT_INSTITUTION_DOMAIN", "@cvsu.edu.ph"),
		SuperAdminEmail:   envOr("CAMPUSREPORT_SUPER_ADMIN_EMAIL", "super@cvsu.edu.ph"),
		ExportDir:         envOr("CAMPUSREPORT_EXPORT_DIR", "./exports"),
	}

	if ttl := os.Getenv("CAMPUSREPORT_TOKEN_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			cfg.TokenTTL = d
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
