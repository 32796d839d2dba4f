package migrations

import "embed"

// Migrations holds the SQL migration files applied by the postgres driver.
//
//go:embed *.sql
var Migrations embed.FS
