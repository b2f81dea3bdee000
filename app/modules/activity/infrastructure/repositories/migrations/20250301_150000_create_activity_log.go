package activitymigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating activity_log table...")

		if _, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS activity_log (
				id TEXT PRIMARY KEY,
				topic TEXT NOT NULL,
				actor TEXT,
				correlation_id TEXT,
				payload JSONB,
				occurred_at TIMESTAMPTZ NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_activity_log_occurred_at ON activity_log (occurred_at DESC);
			CREATE INDEX IF NOT EXISTS idx_activity_log_topic ON activity_log (topic);
		`); err != nil {
			return fmt.Errorf("failed to create activity_log table: %w", err)
		}

		fmt.Println("activity_log table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping activity_log table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS activity_log;`); err != nil {
			return fmt.Errorf("failed to drop activity_log table: %w", err)
		}

		fmt.Println("activity_log table dropped successfully!")
		return nil
	})
}
