// internal/dialog/slots.go
package dialog

import (
	"dining-concierge/internal/dialog/validation"
	"dining-concierge/internal/models"
)

// SlotSet is the closed typed record the dialog machine works with. A nil
// field is an unfilled slot; unknown slot names in the event are ignored.
type SlotSet struct {
	Cuisine     *string
	Location    *string
	DiningDate  *string
	DiningTime  *string
	PeopleCount *string
	Email       *string
}

// SlotsFromIntent projects the event's slot map onto the typed record.
func SlotsFromIntent(intent models.IntentInput) SlotSet {
	get := func(name string) *string {
		s, ok := intent.Slots[name]
		if !ok || s == nil || s.Value == nil || s.Value.InterpretedValue == "" {
			return nil
		}
		v := s.Value.InterpretedValue
		return &v
	}
	return SlotSet{
		Cuisine:     get(validation.SlotCuisine),
		Location:    get(validation.SlotLocation),
		DiningDate:  get(validation.SlotDiningDate),
		DiningTime:  get(validation.SlotDiningTime),
		PeopleCount: get(validation.SlotPeopleCount),
		Email:       get(validation.SlotEmail),
	}
}

// ForValidation converts the slot set into the validator's view.
func (s SlotSet) ForValidation() validation.Slots {
	return validation.Slots{
		Cuisine:     s.Cuisine,
		Location:    s.Location,
		DiningDate:  s.DiningDate,
		DiningTime:  s.DiningTime,
		PeopleCount: s.PeopleCount,
		Email:       s.Email,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
