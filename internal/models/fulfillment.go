// internal/models/fulfillment.go
package models

// Queue message attribute names. The six attributes are carried distinctly
// and typed so the consumer never re-parses free text.
const (
	AttrCuisine        = "Cuisine"
	AttrLocation       = "Location"
	AttrDiningDate     = "DiningDate"
	AttrDiningTime     = "DiningTime"
	AttrNumberOfPeople = "NumberOfPeople"
	AttrEmail          = "Email"
)

// FulfillmentRequest is the immutable snapshot of a closed recommendation
// intent. Produced exactly once per Fulfilled transition; the transport
// guarantees at-least-once delivery to the consumer.
type FulfillmentRequest struct {
	Cuisine     string `json:"cuisine"`
	Location    string `json:"location"`
	DiningDate  string `json:"diningDate"`
	DiningTime  string `json:"diningTime"`
	PeopleCount int    `json:"peopleCount"`
	Email       string `json:"email"`
}
