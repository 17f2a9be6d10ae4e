package database

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect/sql"
)

// CreateSearchIndexes creates full-text search GIN indexes for PostgreSQL.
// These indexes let operators search stage logic and generated program bodies
// without adding a dedicated search component to the engine.
func CreateSearchIndexes(ctx context.Context, driver *sql.Driver) error {
	db := driver.DB()

	_, err := db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_stages_logic_gin
		ON stages USING gin(to_tsvector('english', original_logic))`)
	if err != nil {
		return fmt.Errorf("failed to create original_logic GIN index: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_generated_codes_body_gin
		ON generated_codes USING gin(to_tsvector('english', program_body))`)
	if err != nil {
		return fmt.Errorf("failed to create program_body GIN index: %w", err)
	}

	return nil
}
