package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// fulfillmentMessageSchema describes the six-attribute contract of a queued
// fulfillment request. Every attribute rides as a string on the wire;
// NumberOfPeople is a number-as-string by contract.
var fulfillmentMessageSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"Cuisine":  map[string]interface{}{"type": "string", "minLength": 1},
		"Location": map[string]interface{}{"type": "string", "minLength": 1},
		"DiningDate": map[string]interface{}{
			"type": "string", "minLength": 1,
		},
		"DiningTime": map[string]interface{}{
			"type": "string", "minLength": 1,
		},
		"NumberOfPeople": map[string]interface{}{
			"type": "string", "pattern": "^[0-9]+$",
		},
		"Email": map[string]interface{}{"type": "string"},
	},
	"required": []string{"Cuisine", "Location", "DiningDate", "DiningTime", "NumberOfPeople"},
}

// ValidateFulfillmentAttributes checks the attribute map of a queue message
// against the fulfillment contract. Email is deliberately absent from the
// required list: a missing contact address is a distinct hard-stop condition
// handled by the consumer, not a generic schema failure.
func ValidateFulfillmentAttributes(attrs map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(fulfillmentMessageSchema)
	documentLoader := gojsonschema.NewGoLoader(attrs)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return fmt.Errorf("message attributes invalid: %s", strings.Join(details, "; "))
	}

	return nil
}
