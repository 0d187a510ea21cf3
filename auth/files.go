package auth

import "embed"

//go:embed data/sql/migrations
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded database migrations.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

//go:embed data/fixtures/*.yml
var fixturesFS embed.FS

// GetFixturesFS returns the embedded seed fixtures.
func GetFixturesFS() embed.FS {
	return fixturesFS
}
