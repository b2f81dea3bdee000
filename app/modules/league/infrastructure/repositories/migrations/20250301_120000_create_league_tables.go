package leaguemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating league reference tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS leagues (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					competition TEXT NOT NULL,
					season TEXT,
					year INTEGER,
					image_url TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create leagues table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS teams (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					short_name TEXT,
					image_url TEXT,
					founded INTEGER,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_teams_name_lower ON teams (lower(name));
			`); err != nil {
				return fmt.Errorf("failed to create teams table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS players (
					id TEXT PRIMARY KEY,
					team_id TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
					first_name TEXT NOT NULL,
					last_name TEXT NOT NULL,
					position TEXT,
					shirt_number INTEGER,
					date_of_birth TIMESTAMPTZ,
					image_url TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_players_team_id ON players (team_id);
			`); err != nil {
				return fmt.Errorf("failed to create players table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS venues (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					city TEXT,
					capacity INTEGER,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_venues_name_lower ON venues (lower(name));
			`); err != nil {
				return fmt.Errorf("failed to create venues table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS referees (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					level TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create referees table: %w", err)
			}

			fmt.Println("League reference tables created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping league reference tables...")

		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS players;
			DROP TABLE IF EXISTS referees;
			DROP TABLE IF EXISTS venues;
			DROP TABLE IF EXISTS teams;
			DROP TABLE IF EXISTS leagues;
		`)
		if err != nil {
			return fmt.Errorf("failed to drop league reference tables: %w", err)
		}

		fmt.Println("League reference tables dropped successfully!")
		return nil
	})
}
