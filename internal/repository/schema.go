package repository

import (
	"context"
	"errors"
	"fmt"
)

// schemaLockKey is the pg_advisory_xact_lock key taken while bootstrapping.
const schemaLockKey = 727_001

// ErrDuplicateAddresses means rows already in the table collide on
// address and zip code ignoring case, so the unique index cannot be built.
var ErrDuplicateAddresses = errors.New("existing properties share an address and zip code")

const uniqueAddressIndex = `CREATE UNIQUE INDEX IF NOT EXISTS properties_address_zip_key
		ON properties (LOWER(address), LOWER(zip_code))`

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		id                SERIAL PRIMARY KEY,
		address           VARCHAR(255)  NOT NULL,
		city              VARCHAR(100)  NOT NULL,
		state             VARCHAR(50)   NOT NULL,
		zip_code          VARCHAR(10)   NOT NULL CHECK (zip_code ~ '^[0-9]{5}(-[0-9]{4})?$'),
		rent_amount       NUMERIC(10,2) CHECK (rent_amount > 0 AND rent_amount <= 50000),
		bedrooms          INTEGER       CHECK (bedrooms BETWEEN 0 AND 20),
		bathrooms         NUMERIC(3,1)  CHECK (bathrooms BETWEEN 0 AND 20),
		square_feet       INTEGER       CHECK (square_feet > 0 AND square_feet <= 50000),
		description       TEXT          CHECK (char_length(description) <= 2000),
		landlord_id       INTEGER       NOT NULL REFERENCES users(id),
		landlord_verified BOOLEAN       NOT NULL DEFAULT FALSE,
		created_at        TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
		updated_at        TIMESTAMPTZ   NOT NULL DEFAULT NOW()
	)`,
	uniqueAddressIndex,
	`CREATE INDEX IF NOT EXISTS properties_city_idx ON properties (LOWER(city))`,
	`CREATE INDEX IF NOT EXISTS properties_state_idx ON properties (LOWER(state))`,
	`CREATE INDEX IF NOT EXISTS properties_rent_amount_idx ON properties (rent_amount)`,
	`CREATE INDEX IF NOT EXISTS properties_created_at_idx ON properties (created_at)`,
	`CREATE INDEX IF NOT EXISTS properties_landlord_id_idx ON properties (landlord_id)`,
}

// CreateTable ensures the properties table and its indexes exist. Callers
// racing each other serialize on an advisory lock, so repeated or
// concurrent calls succeed without touching an existing table.
func (r *PropertyRepository) CreateTable(ctx context.Context) (err error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("PropertyRepository.CreateTable begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, schemaLockKey); err != nil {
		return fmt.Errorf("PropertyRepository.CreateTable lock: %w", err)
	}
	for _, stmt := range schemaStatements {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			if stmt == uniqueAddressIndex && IsUniqueViolation(err) {
				return fmt.Errorf("PropertyRepository.CreateTable: %w: %w", ErrDuplicateAddresses, err)
			}
			return fmt.Errorf("PropertyRepository.CreateTable: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("PropertyRepository.CreateTable commit: %w", err)
	}
	return nil
}
