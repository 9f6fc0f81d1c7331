// internal/ingest/directory.go

// Package ingest populates the restaurant store and candidate index from an
// external restaurant directory. It runs as a one-shot job, not a service.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	commonhttp "dining-concierge/internal/common/http"
	"dining-concierge/internal/models"
)

// DirectoryConfig identifies the external restaurant directory.
type DirectoryConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// DirectoryClient pages through the directory's search endpoint.
type DirectoryClient struct {
	config DirectoryConfig
	http   *commonhttp.Client
}

func NewDirectoryClient(cfg DirectoryConfig) *DirectoryClient {
	return &DirectoryClient{
		config: cfg,
		http:   commonhttp.NewClient(cfg.Timeout),
	}
}

// directoryBusiness is the directory's wire shape for one listing.
type directoryBusiness struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Price       string  `json:"price"`
	Phone       string  `json:"phone"`
	Location    struct {
		DisplayAddress []string `json:"display_address"`
	} `json:"location"`
	Coordinates struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coordinates"`
}

type searchPage struct {
	Businesses []directoryBusiness `json:"businesses"`
	Total      int                 `json:"total"`
}

// Search fetches one page of listings for a category around a location.
func (c *DirectoryClient) Search(ctx context.Context, location, category string, limit, offset int) ([]models.Restaurant, error) {
	params := url.Values{}
	params.Set("location", location)
	params.Set("categories", category)
	params.Set("term", "restaurants")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	req, err := http.NewRequest(http.MethodGet, c.config.BaseURL+"/v3/businesses/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("directory search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory search: %s", resp.Status)
	}

	var page searchPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode directory page: %w", err)
	}

	now := time.Now().UTC()
	restaurants := make([]models.Restaurant, 0, len(page.Businesses))
	for _, b := range page.Businesses {
		restaurants = append(restaurants, toRestaurant(b, now))
	}
	return restaurants, nil
}

func toRestaurant(b directoryBusiness, now time.Time) models.Restaurant {
	r := models.Restaurant{
		ID:         b.ID,
		Name:       b.Name,
		URL:        b.URL,
		IngestedAt: now,
	}
	if len(b.Location.DisplayAddress) > 0 {
		addr := ""
		for i, part := range b.Location.DisplayAddress {
			if i > 0 {
				addr += ", "
			}
			addr += part
		}
		r.Address = addr
	}
	if b.Rating > 0 {
		rating := b.Rating
		r.Rating = &rating
	}
	if b.Coordinates.Latitude != 0 || b.Coordinates.Longitude != 0 {
		lat, lon := b.Coordinates.Latitude, b.Coordinates.Longitude
		r.Latitude = &lat
		r.Longitude = &lon
	}
	if b.Phone != "" {
		phone := b.Phone
		r.Contact = &phone
	}
	if b.ReviewCount > 0 {
		n := b.ReviewCount
		r.ReviewCount = &n
	}
	if b.Price != "" {
		price := b.Price
		r.PriceTier = &price
	}
	return r
}
