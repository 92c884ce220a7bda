package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// seedCategories is the default category tree for a fresh installation.
// Children reference their parent by slug.
var seedCategories = []struct {
	name, slug, parent string
	order              int
}{
	{"Company News", "company-news", "", 0},
	{"Production", "production", "", 1},
	{"Quality & Safety", "quality-safety", "production", 0},
	{"Maintenance", "maintenance", "production", 1},
	{"Customer Stories", "customer-stories", "", 2},
	{"Help Center", "help-center", "", 3},
}

// Seed populates the database with initial development data: the default
// category tree and a published welcome page. It does nothing when any
// content already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM content").Scan(&count); err != nil {
		return fmt.Errorf("seed check content: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	for _, c := range seedCategories {
		_, err := tx.Exec(`
			INSERT INTO content_categories (name, slug, parent_id, sort_order)
			VALUES ($1, $2, (SELECT id FROM content_categories WHERE slug = NULLIF($3, '')), $4)
			ON CONFLICT (slug) DO NOTHING
		`, c.name, c.slug, c.parent, c.order)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.slug, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO content (slug, title, excerpt, body, type, status, tags,
		                     category_id, author_name, meta_title, published_at)
		VALUES ($1, $2, $3, $4, 'page', 'published', $5,
		        (SELECT id FROM content_categories WHERE slug = 'help-center'),
		        'System', $2, NOW())
		ON CONFLICT (slug) DO NOTHING
	`, "welcome", "Welcome to B3",
		"Start here to learn how content is organised.",
		"# Welcome\n\nThis page was created by the development seed.",
		[]string{"getting-started"},
	)
	if err != nil {
		return fmt.Errorf("seed welcome page: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with default categories and welcome page")
	return nil
}
