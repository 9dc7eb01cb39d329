// Package config loads runtime configuration for the RapidBlood CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file (default ".env", or the path given by -env) and the
//     process environment, using RAPIDBLOOD_* variables.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-s string   record store backend: sqlite, postgres, s3, memory
//	-f string   sqlite database file
//	-d string   postgres DSN
//	-b string   s3 bucket
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "store": "sqlite",
//	  "database_path": "rapidblood.db",
//	  "database_dsn": "",
//	  "s3_bucket": "rapidblood",
//	  "s3_region": "us-east-1",
//	  "s3_base_endpoint": "http://127.0.0.1:9000/",
//	  "s3_root_user": "admin",
//	  "s3_root_password": "secretpassword",
//	  "s3_prefix": "store/",
//	  "admin_email": "admin@rapidblood.com",
//	  "admin_password": "admin123",
//	  "session_secret": "change-me",
//	  "session_ttl": "24h",
//	  "log_level": "info"
//	}
//
// Durations accept strings like "24h" or integer nanoseconds.
package config
