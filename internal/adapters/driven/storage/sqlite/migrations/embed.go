// Package migrations embeds the SQL schema migrations for the analysis library.
package migrations

import "embed"

// FS holds the *.up.sql and *.down.sql files, applied in version order.
//
//go:embed *.sql
var FS embed.FS
