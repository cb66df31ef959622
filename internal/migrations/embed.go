// Package migrations embeds the SQL schema and seed scripts applied at
// startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
