// Package migrations хранит SQL-миграции схемы для каждого поддерживаемого диалекта.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
