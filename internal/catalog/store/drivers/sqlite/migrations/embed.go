// Package migrations embeds the sqlite schema migrations so the binary can
// bring its own schema up to date.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
