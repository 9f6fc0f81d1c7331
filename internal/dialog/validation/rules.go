// internal/dialog/validation/rules.go
package validation

import (
	"strconv"
	"strings"
	"time"
)

// Slot names as they appear in dialog turn events.
const (
	SlotCuisine     = "Cuisine"
	SlotLocation    = "Location"
	SlotDiningDate  = "DiningDate"
	SlotDiningTime  = "DiningTime"
	SlotPeopleCount = "PeopleCount"
	SlotEmail       = "Email"
)

// Corrective messages, one per slot.
const (
	MsgUnsupportedCuisine  = "This cuisine is not supported. Please provide another cuisine like italian, chinese, indian etc."
	MsgUnsupportedLocation = "This location is not supported. Please provide another city"
	MsgInvalidDate         = "The entered date is invalid. Please provide date later than today."
	MsgInvalidTime         = "The invalid time entered. Please enter time later than the current time."
	MsgInvalidPeopleCount  = "People number provided is invalid, Please provide a valid number between 1-20."
)

var supportedCuisines = map[string]bool{
	"indian": true, "italian": true, "mexican": true, "chinese": true,
	"japanese": true, "french": true, "greek": true,
}

// excludedCity is the single currently-unsupported city. A future allow-list
// would replace this exclusion.
const excludedCity = "manhattan"

var (
	dateLayouts = []string{"2006-01-02"}
	timeLayouts = []string{"15:04", "15:04:05"}
)

// Slots is the validator's view of a slot set: raw interpreted values, nil
// when absent. Only populated slots are checked; absent slots are left to
// the NLU runtime's own elicitation policy.
type Slots struct {
	Cuisine     *string
	Location    *string
	DiningDate  *string
	DiningTime  *string
	PeopleCount *string
	Email       *string
}

// Result identifies the first slot that failed and its corrective message.
type Result struct {
	Slot    string
	Message string
}

// rule pairs one slot with its predicate and corrective message. Evaluation
// order over the rules slice is the stated priority order, not an accident
// of iteration.
type rule struct {
	slot    string
	value   func(s Slots) *string
	valid   func(s Slots, now time.Time) bool
	message string
}

var rules = []rule{
	{
		slot:    SlotCuisine,
		value:   func(s Slots) *string { return s.Cuisine },
		valid:   func(s Slots, _ time.Time) bool { return ValidCuisine(*s.Cuisine) },
		message: MsgUnsupportedCuisine,
	},
	{
		slot:    SlotLocation,
		value:   func(s Slots) *string { return s.Location },
		valid:   func(s Slots, _ time.Time) bool { return ValidLocation(*s.Location) },
		message: MsgUnsupportedLocation,
	},
	{
		slot:    SlotDiningDate,
		value:   func(s Slots) *string { return s.DiningDate },
		valid:   func(s Slots, now time.Time) bool { return ValidDate(*s.DiningDate, now) },
		message: MsgInvalidDate,
	},
	{
		slot:  SlotDiningTime,
		value: func(s Slots) *string { return s.DiningTime },
		valid: func(s Slots, now time.Time) bool {
			date := ""
			if s.DiningDate != nil {
				date = *s.DiningDate
			}
			return ValidTime(*s.DiningTime, date, now)
		},
		message: MsgInvalidTime,
	},
	{
		slot:    SlotPeopleCount,
		value:   func(s Slots) *string { return s.PeopleCount },
		valid:   func(s Slots, _ time.Time) bool { return ValidPeopleCount(*s.PeopleCount) },
		message: MsgInvalidPeopleCount,
	},
}

// Evaluate runs the ordered rule list against the populated slots and
// returns the first failure, or nil when every populated slot passes.
// now is read once per validation pass by the caller.
func Evaluate(s Slots, now time.Time) *Result {
	for _, r := range rules {
		v := r.value(s)
		if v == nil || *v == "" {
			continue
		}
		if !r.valid(s, now) {
			return &Result{Slot: r.slot, Message: r.message}
		}
	}
	return nil
}

// ValidCuisine reports whether the cuisine's lowercase form belongs to the
// supported vocabulary. Unsupported cuisines are rejected, never mapped.
func ValidCuisine(cuisine string) bool {
	return supportedCuisines[strings.ToLower(strings.TrimSpace(cuisine))]
}

// ValidLocation rejects only the excluded city, case-insensitively.
func ValidLocation(location string) bool {
	return strings.ToLower(strings.TrimSpace(location)) != excludedCity
}

// ValidDate reports whether the value parses as a calendar date strictly
// after today. Unparsable input is invalid, not an error.
func ValidDate(date string, now time.Time) bool {
	d, ok := parseDate(date)
	if !ok {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return d.After(today)
}

// ValidTime evaluates the time jointly with its paired date: a future date
// accepts any parsable time; today accepts only times strictly after now.
func ValidTime(timeStr, dateStr string, now time.Time) bool {
	t, ok := parseTime(timeStr)
	if !ok {
		return false
	}
	d, ok := parseDate(dateStr)
	if !ok {
		return false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.After(today) {
		return true
	}
	if d.Equal(today) {
		nowClock := now.Hour()*3600 + now.Minute()*60 + now.Second()
		slotClock := t.Hour()*3600 + t.Minute()*60 + t.Second()
		return slotClock > nowClock
	}
	return false
}

// ValidPeopleCount accepts integers in [1, 20].
func ValidPeopleCount(people string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(people))
	if err != nil {
		return false
	}
	return n >= 1 && n <= 20
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
