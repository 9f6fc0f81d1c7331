// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"dining-concierge/internal/models"
)

// PostgresStore implements RestaurantStore over a relational table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectRestaurantQuery = `
	SELECT id, name, address, cuisine_type, url, rating, latitude, longitude,
	       contact, review_count, price_tier, ingested_at
	FROM restaurants
	WHERE id = $1`

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	var (
		r           models.Restaurant
		url         sql.NullString
		rating      sql.NullFloat64
		latitude    sql.NullFloat64
		longitude   sql.NullFloat64
		contact     sql.NullString
		reviewCount sql.NullInt64
		priceTier   sql.NullString
	)

	err := s.db.QueryRowContext(ctx, selectRestaurantQuery, id).Scan(
		&r.ID, &r.Name, &r.Address, &r.CuisineType, &url, &rating,
		&latitude, &longitude, &contact, &reviewCount, &priceTier, &r.IngestedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select restaurant %s: %w", id, err)
	}

	r.URL = url.String
	if rating.Valid {
		r.Rating = &rating.Float64
	}
	if latitude.Valid {
		r.Latitude = &latitude.Float64
	}
	if longitude.Valid {
		r.Longitude = &longitude.Float64
	}
	if contact.Valid {
		r.Contact = &contact.String
	}
	if reviewCount.Valid {
		n := int(reviewCount.Int64)
		r.ReviewCount = &n
	}
	if priceTier.Valid {
		r.PriceTier = &priceTier.String
	}
	return &r, nil
}

const upsertRestaurantQuery = `
	INSERT INTO restaurants (id, name, address, cuisine_type, url, rating,
	                         latitude, longitude, contact, review_count,
	                         price_tier, ingested_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		address = EXCLUDED.address,
		cuisine_type = EXCLUDED.cuisine_type,
		url = EXCLUDED.url,
		rating = EXCLUDED.rating,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		contact = EXCLUDED.contact,
		review_count = EXCLUDED.review_count,
		price_tier = EXCLUDED.price_tier,
		ingested_at = EXCLUDED.ingested_at`

func (s *PostgresStore) Put(ctx context.Context, r models.Restaurant) error {
	_, err := s.db.ExecContext(ctx, upsertRestaurantQuery,
		r.ID, r.Name, r.Address, r.CuisineType, nullString(r.URL),
		nullFloat(r.Rating), nullFloat(r.Latitude), nullFloat(r.Longitude),
		nullStringPtr(r.Contact), nullInt(r.ReviewCount),
		nullStringPtr(r.PriceTier), r.IngestedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert restaurant %s: %w", r.ID, err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}
