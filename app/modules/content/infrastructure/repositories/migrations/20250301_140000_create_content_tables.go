package contentmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating content tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS news (
					id TEXT PRIMARY KEY,
					title TEXT NOT NULL,
					body TEXT NOT NULL,
					image_url TEXT,
					published_at TIMESTAMPTZ NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_news_published_at ON news (published_at DESC);
			`); err != nil {
				return fmt.Errorf("failed to create news table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS carousel_slides (
					id TEXT PRIMARY KEY,
					title TEXT NOT NULL,
					image_url TEXT NOT NULL,
					link_url TEXT,
					position INTEGER NOT NULL DEFAULT 0,
					active BOOLEAN NOT NULL DEFAULT TRUE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create carousel_slides table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS media_objects (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					content_type TEXT NOT NULL,
					size BIGINT NOT NULL,
					data BYTEA NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create media_objects table: %w", err)
			}

			fmt.Println("Content tables created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping content tables...")

		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS media_objects;
			DROP TABLE IF EXISTS carousel_slides;
			DROP TABLE IF EXISTS news;
		`)
		if err != nil {
			return fmt.Errorf("failed to drop content tables: %w", err)
		}

		fmt.Println("Content tables dropped successfully!")
		return nil
	})
}
