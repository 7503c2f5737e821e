package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"placesbot/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresRepository handles database operations over the places catalog.
// Table names mirror the collections of the mobile app's backend: places,
// categories, bot_conversations.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// DB exposes the underlying handle so the conversation store can share it
func (r *PostgresRepository) DB() *sqlx.DB {
	return r.db
}

// placeColumns joins the category display name into each place row
const placeColumns = `
	p.id, p.name, COALESCE(c.name, '') AS category, p.place_type,
	p.description, p.address, p.external_rating, p.photos,
	p.created, p.updated
`

// FindByKeyword performs a substring search across name, description,
// category display name and place type, best rated first.
func (r *PostgresRepository) FindByKeyword(ctx context.Context, query string, limit int) ([]model.Place, error) {
	const q = `
		SELECT ` + placeColumns + `
		FROM places p
		LEFT JOIN categories c ON c.id = p.category
		WHERE p.name ILIKE $1
		   OR p.description ILIKE $1
		   OR c.name ILIKE $1
		   OR p.place_type ILIKE $1
		ORDER BY p.external_rating DESC NULLS LAST, p.created DESC
		LIMIT $2
	`

	var places []model.Place
	if err := r.db.SelectContext(ctx, &places, q, "%"+query+"%", limit); err != nil {
		return nil, fmt.Errorf("failed to search places by keyword: %w", err)
	}
	return places, nil
}

// FindByType returns places of the exact place type, best rated first
func (r *PostgresRepository) FindByType(ctx context.Context, placeType string, limit int) ([]model.Place, error) {
	const q = `
		SELECT ` + placeColumns + `
		FROM places p
		LEFT JOIN categories c ON c.id = p.category
		WHERE LOWER(p.place_type) = LOWER($1)
		ORDER BY p.external_rating DESC NULLS LAST, p.created DESC
		LIMIT $2
	`

	var places []model.Place
	if err := r.db.SelectContext(ctx, &places, q, placeType, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch places by type: %w", err)
	}
	return places, nil
}

// FindPopular returns the best rated places. Unrated places sort last, so a
// catalog without ratings degrades to most recently created first.
func (r *PostgresRepository) FindPopular(ctx context.Context, limit int) ([]model.Place, error) {
	const q = `
		SELECT ` + placeColumns + `
		FROM places p
		LEFT JOIN categories c ON c.id = p.category
		ORDER BY p.external_rating DESC NULLS LAST, p.created DESC
		LIMIT $1
	`

	var places []model.Place
	if err := r.db.SelectContext(ctx, &places, q, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch popular places: %w", err)
	}
	return places, nil
}

// ListDistinctTypes returns the known place types in a stable alphabetical
// order. The classifier treats this ordering as the match tie-break.
func (r *PostgresRepository) ListDistinctTypes(ctx context.Context) ([]string, error) {
	const q = `
		SELECT DISTINCT place_type
		FROM places
		WHERE place_type IS NOT NULL AND place_type <> ''
		ORDER BY place_type
	`

	var types []string
	if err := r.db.SelectContext(ctx, &types, q); err != nil {
		return nil, fmt.Errorf("failed to list place types: %w", err)
	}
	return types, nil
}

// GetPlace retrieves a single place by id, nil when not found
func (r *PostgresRepository) GetPlace(ctx context.Context, id string) (*model.Place, error) {
	const q = `
		SELECT ` + placeColumns + `
		FROM places p
		LEFT JOIN categories c ON c.id = p.category
		WHERE p.id = $1
	`

	var place model.Place
	if err := r.db.GetContext(ctx, &place, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	return &place, nil
}
