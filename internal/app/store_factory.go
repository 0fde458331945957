package app

import (
	"fmt"

	"github.com/shrimpsizemoose/pluggbulle/internal/store"
	"github.com/shrimpsizemoose/pluggbulle/internal/store/postgres"
	"github.com/shrimpsizemoose/pluggbulle/internal/store/sqlite"
)

func NewStore(dsn, migrationsDir string) (store.StudyStore, error) {
	switch dbType := store.TypeFromDSN(dsn); dbType {
	case store.DBTypePostgres:
		return postgres.NewPostgresStore(dsn, migrationsDir)
	case store.DBTypeSQLite:
		return sqlite.NewSQLiteStore(dsn, migrationsDir)
	default:
		return nil, fmt.Errorf("unable to determine database type from DSN: %s", dsn)
	}
}
