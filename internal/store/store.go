// internal/store/store.go

// Package store splits restaurant persistence into two roles: the record
// store holds the authoritative rows, the candidate index answers cuisine
// scans. The index may lag the store; a candidate whose record is missing
// is skipped, not an error.
package store

import (
	"context"

	"dining-concierge/internal/models"
)

// RestaurantStore is the authoritative record store.
//
// GetByID returns (nil, nil) for an absent record. Put is an upsert keyed
// on the restaurant ID.
type RestaurantStore interface {
	GetByID(ctx context.Context, id string) (*models.Restaurant, error)
	Put(ctx context.Context, r models.Restaurant) error
}

// CandidateIndex answers "which restaurant IDs serve this cuisine".
type CandidateIndex interface {
	SearchByCuisine(ctx context.Context, cuisine string, limit int) ([]string, error)
	IndexRestaurant(ctx context.Context, r models.Restaurant) error
}
