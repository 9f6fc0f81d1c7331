// internal/models/restaurant.go
package models

import "time"

// Restaurant is a lookup-store record. Records are written only by the
// ingestion job; the fulfillment pipeline treats them as read-only.
type Restaurant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	CuisineType string    `json:"cuisine_type"`
	URL         string    `json:"url,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Contact     *string   `json:"contact,omitempty"`
	ReviewCount *int      `json:"review_count,omitempty"`
	PriceTier   *string   `json:"price_tier,omitempty"`
	IngestedAt  time.Time `json:"ingested_at"`
}
