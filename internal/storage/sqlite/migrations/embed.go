// Package migrations embeds the Leshy SQLite schema.
package migrations

import "embed"

// FS holds the schema migrations, applied in file name order.
//
//go:embed *.sql
var FS embed.FS
