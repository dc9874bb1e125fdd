// Package migrations embeds the SQL schema migrations so the server binary
// carries its own schema history.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
