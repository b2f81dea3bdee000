package matchmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating match tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS matches (
					id TEXT PRIMARY KEY,
					home_team_id TEXT NOT NULL REFERENCES teams(id),
					away_team_id TEXT NOT NULL REFERENCES teams(id),
					date TIMESTAMPTZ NOT NULL,
					venue TEXT NOT NULL,
					match_no INTEGER NOT NULL DEFAULT 0 CHECK (match_no >= 0),
					referee TEXT NOT NULL DEFAULT '',
					status TEXT NOT NULL DEFAULT 'NOT_PLAYED'
						CHECK (status IN ('NOT_PLAYED', 'LIVE', 'HALF_TIME', 'PLAYED')),
					home_score INTEGER NOT NULL DEFAULT 0 CHECK (home_score >= 0),
					away_score INTEGER NOT NULL DEFAULT 0 CHECK (away_score >= 0),
					report TEXT,
					competition TEXT NOT NULL DEFAULT '',
					league_id TEXT NOT NULL REFERENCES leagues(id) ON DELETE CASCADE,
					import_id TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT matches_distinct_teams CHECK (home_team_id <> away_team_id)
				);
				CREATE INDEX IF NOT EXISTS idx_matches_league_date ON matches (league_id, date);
				CREATE INDEX IF NOT EXISTS idx_matches_league_status ON matches (league_id, status);
			`); err != nil {
				return fmt.Errorf("failed to create matches table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS import_runs (
					id TEXT PRIMARY KEY,
					league_id TEXT NOT NULL REFERENCES leagues(id) ON DELETE CASCADE,
					file_name TEXT NOT NULL,
					file_data BYTEA,
					status TEXT NOT NULL,
					stage TEXT,
					error_code TEXT,
					error_message TEXT,
					created_count INTEGER NOT NULL DEFAULT 0,
					requested_by TEXT,
					async BOOLEAN NOT NULL DEFAULT FALSE,
					finished_at TIMESTAMPTZ,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_import_runs_league ON import_runs (league_id, created_at DESC);
			`); err != nil {
				return fmt.Errorf("failed to create import_runs table: %w", err)
			}

			fmt.Println("Match tables created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping match tables...")

		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS import_runs;
			DROP TABLE IF EXISTS matches;
		`)
		if err != nil {
			return fmt.Errorf("failed to drop match tables: %w", err)
		}

		fmt.Println("Match tables dropped successfully!")
		return nil
	})
}
