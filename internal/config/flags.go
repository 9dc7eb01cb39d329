package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/rapidblood/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-s string   record store backend
//	-f string   sqlite database file
//	-d string   postgres DSN
//	-b string   s3 bucket
//	-l string   log level
//
// os.Args is filtered through flagx.FilterArgs first so -c and -env, which
// belong to the earlier stages, do not make the flag set fail.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-f", "-d", "-b", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Store, "s", cfg.Store, "record store backend (sqlite, postgres, s3, memory)")
	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "sqlite database file")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "postgres DSN")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "s3 bucket")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
