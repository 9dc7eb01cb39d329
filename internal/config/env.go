package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/rapidblood/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv loads a dotenv file into the process environment and then copies
// any RAPIDBLOOD_* variables into cfg.
//
// The file is the one passed via -env, or ".env" in the working directory.
// A missing ".env" is fine; a missing explicit file panics, as does an
// unparseable RAPIDBLOOD_SESSION_TTL.
func parseEnv(cfg *Config) {
	envFile := flagx.EnvFileFlags()
	explicit := envFile != ""
	if !explicit {
		envFile = ".env"
	}

	// godotenv.Load never overrides variables already set in the process.
	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	setString(&cfg.Store, "RAPIDBLOOD_STORE")
	setString(&cfg.DatabasePath, "RAPIDBLOOD_DATABASE_PATH")
	setString(&cfg.DatabaseDSN, "RAPIDBLOOD_DATABASE_DSN")
	setString(&cfg.S3Bucket, "RAPIDBLOOD_S3_BUCKET")
	setString(&cfg.S3Region, "RAPIDBLOOD_S3_REGION")
	setString(&cfg.S3BaseEndpoint, "RAPIDBLOOD_S3_BASE_ENDPOINT")
	setString(&cfg.S3RootUser, "RAPIDBLOOD_S3_ROOT_USER")
	setString(&cfg.S3RootPassword, "RAPIDBLOOD_S3_ROOT_PASSWORD")
	setString(&cfg.S3Prefix, "RAPIDBLOOD_S3_PREFIX")
	setString(&cfg.AdminEmail, "RAPIDBLOOD_ADMIN_EMAIL")
	setString(&cfg.AdminPassword, "RAPIDBLOOD_ADMIN_PASSWORD")
	setString(&cfg.SessionSecret, "RAPIDBLOOD_SESSION_SECRET")
	setString(&cfg.LogLevel, "RAPIDBLOOD_LOG_LEVEL")

	if v, ok := os.LookupEnv("RAPIDBLOOD_SESSION_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.SessionTTL = d
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}
