// Package migrations embeds the SQL schema files so the server binary
// carries its own schema and needs no migrations directory on disk.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
