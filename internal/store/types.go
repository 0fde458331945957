package store

import "errors"

type DatabaseType string

const (
	DBTypePostgres DatabaseType = "postgres"
	DBTypeSQLite   DatabaseType = "sqlite"
)

var ErrNotFound = errors.New("not found")

// TypeFromDSN guesses the dialect; anything not postgres is a sqlite file.
func TypeFromDSN(dsn string) DatabaseType {
	if len(dsn) >= 8 && dsn[:8] == "postgres" {
		return DBTypePostgres
	}
	return DBTypeSQLite
}
