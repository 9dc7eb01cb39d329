// Package migrations embeds the goose migrations for the SQL record store
// backends. Each dialect lives in its own directory.
package migrations

import "embed"

// Directory names inside Migrations.
const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
