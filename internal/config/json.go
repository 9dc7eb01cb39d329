package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/rapidblood/internal/flagx"
	"github.com/dmitrijs2005/rapidblood/internal/timex"
)

// JsonConfig is a DTO used only for JSON unmarshalling. Absent fields keep
// whatever the earlier stages set.
type JsonConfig struct {
	Store          *string         `json:"store"`
	DatabasePath   *string         `json:"database_path"`
	DatabaseDSN    *string         `json:"database_dsn"`
	S3Bucket       *string         `json:"s3_bucket"`
	S3Region       *string         `json:"s3_region"`
	S3BaseEndpoint *string         `json:"s3_base_endpoint"`
	S3RootUser     *string         `json:"s3_root_user"`
	S3RootPassword *string         `json:"s3_root_password"`
	S3Prefix       *string         `json:"s3_prefix"`
	AdminEmail     *string         `json:"admin_email"`
	AdminPassword  *string         `json:"admin_password"`
	SessionSecret  *string         `json:"session_secret"`
	SessionTTL     *timex.Duration `json:"session_ttl"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays cfg with values from the JSON file named by -c or
// -config. Without either flag it does nothing. Read or decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.Store, jc.Store)
	overlay(&cfg.DatabasePath, jc.DatabasePath)
	overlay(&cfg.DatabaseDSN, jc.DatabaseDSN)
	overlay(&cfg.S3Bucket, jc.S3Bucket)
	overlay(&cfg.S3Region, jc.S3Region)
	overlay(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	overlay(&cfg.S3RootUser, jc.S3RootUser)
	overlay(&cfg.S3RootPassword, jc.S3RootPassword)
	overlay(&cfg.S3Prefix, jc.S3Prefix)
	overlay(&cfg.AdminEmail, jc.AdminEmail)
	overlay(&cfg.AdminPassword, jc.AdminPassword)
	overlay(&cfg.SessionSecret, jc.SessionSecret)
	overlay(&cfg.LogLevel, jc.LogLevel)
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
}

func overlay(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
