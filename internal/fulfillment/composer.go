// internal/fulfillment/composer.go
package fulfillment

import (
	"fmt"
	"strings"

	"dining-concierge/internal/models"
)

// Subject line for every recommendation email.
const subjectLine = "Dining Concierge restaurant suggestions"

const (
	composeGreetingFormat = "Hello! Thank you for using Dining Concierge Chatbot. Here are my %s restaurant suggestions in %s for %d people, for %s at %s:"
	composeEntryFormat    = "%d. %s, located at %s."
	composeClosing        = "Enjoy your meal!"
)

// ComposedMessage is the rendered recommendation in both deliverable forms.
type ComposedMessage struct {
	Subject  string
	TextBody string
	HTMLBody string
}

// Compose renders the greeting, one numbered entry per restaurant in the
// order given, and the closing. An empty list renders greeting and closing
// only; the message is still sent.
func Compose(req models.FulfillmentRequest, restaurants []models.Restaurant) ComposedMessage {
	parts := make([]string, 0, len(restaurants)+2)
	parts = append(parts, fmt.Sprintf(composeGreetingFormat,
		req.Cuisine, req.Location, req.PeopleCount, req.DiningDate, req.DiningTime))

	for i, r := range restaurants {
		parts = append(parts, fmt.Sprintf(composeEntryFormat, i+1, r.Name, r.Address))
	}

	parts = append(parts, composeClosing)

	return ComposedMessage{
		Subject:  subjectLine,
		TextBody: strings.Join(parts, "\n\n"),
		HTMLBody: strings.Join(parts, "<br><br>"),
	}
}
