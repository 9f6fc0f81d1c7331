// internal/fulfillment/composer_test.go
package fulfillment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"dining-concierge/internal/models"
)

func TestCompose(t *testing.T) {
	req := models.FulfillmentRequest{
		Cuisine:     "japanese",
		Location:    "Brooklyn",
		DiningDate:  "2025-06-16",
		DiningTime:  "19:00",
		PeopleCount: 4,
		Email:       "diner@example.com",
	}
	restaurants := []models.Restaurant{
		{ID: "r-1", Name: "Sushi Yama", Address: "1 Ocean Ave"},
		{ID: "r-2", Name: "Ramen Ichi", Address: "2 Noodle St"},
	}

	msg := Compose(req, restaurants)

	assert.Equal(t, "Dining Concierge restaurant suggestions", msg.Subject)
	assert.Equal(t, strings.Join([]string{
		"Hello! Thank you for using Dining Concierge Chatbot. Here are my japanese restaurant suggestions in Brooklyn for 4 people, for 2025-06-16 at 19:00:",
		"1. Sushi Yama, located at 1 Ocean Ave.",
		"2. Ramen Ichi, located at 2 Noodle St.",
		"Enjoy your meal!",
	}, "\n\n"), msg.TextBody)
	assert.Equal(t, strings.ReplaceAll(msg.TextBody, "\n\n", "<br><br>"), msg.HTMLBody)
}

func TestCompose_EmptyCandidateList(t *testing.T) {
	req := models.FulfillmentRequest{
		Cuisine: "greek", Location: "Queens", DiningDate: "2025-06-16",
		DiningTime: "19:00", PeopleCount: 2,
	}

	msg := Compose(req, nil)

	// greeting and closing only, still a sendable message
	assert.NotContains(t, msg.TextBody, "1.")
	assert.Contains(t, msg.TextBody, "Enjoy your meal!")
}
