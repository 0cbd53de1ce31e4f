// Package sql carries the embedded database migrations.
package sql

import "embed"

// Migrations holds the schema migration files, applied in name order.
//
//go:embed migrations
var Migrations embed.FS
