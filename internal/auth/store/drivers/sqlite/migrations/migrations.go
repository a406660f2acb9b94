// Package migrations embeds the SQL migration files that are compiled
// into the binary and applied at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
