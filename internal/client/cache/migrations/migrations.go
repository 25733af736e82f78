// Package migrations embeds the cache database schema for goose.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
