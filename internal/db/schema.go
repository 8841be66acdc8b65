package db

import (
	"context"
	"fmt"
)

// TableName is the relational table holding client records
const TableName = "Client"

var schemas = map[Driver]string{
	DriverSQLCipher: `
CREATE TABLE IF NOT EXISTS Client (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    firstName VARCHAR(20) NOT NULL,
    lastName VARCHAR(20) NOT NULL,
    address VARCHAR(50) NOT NULL,
    postalCode CHAR(7) NOT NULL,
    phoneNumber VARCHAR(13) NOT NULL,
    clientType CHAR(1) NOT NULL
)`,
	DriverPostgres: `
CREATE TABLE IF NOT EXISTS Client (
    id SERIAL PRIMARY KEY,
    firstName VARCHAR(20) NOT NULL,
    lastName VARCHAR(20) NOT NULL,
    address VARCHAR(50) NOT NULL,
    postalCode CHAR(7) NOT NULL,
    phoneNumber VARCHAR(13) NOT NULL,
    clientType CHAR(1) NOT NULL
)`,
}

// EnsureSchema creates the Client table if it does not exist yet.
// Safe to call on every startup.
func (db *DB) EnsureSchema(ctx context.Context) error {
	ddl, ok := schemas[db.driver]
	if !ok {
		return fmt.Errorf("no schema for driver %q", db.driver)
	}

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create %s table: %w", TableName, err)
	}

	return nil
}
