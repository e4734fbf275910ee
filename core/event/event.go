package event

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Event wraps a published payload with identity and timing metadata.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Payload   any       `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// newEvent creates an Event with a generated ID and the name derived from
// the payload's type, e.g. cart.CartChanged -> "CartChanged".
func newEvent(payload any) Event {
	return Event{
		ID:        uuid.New().String(),
		Name:      nameOf(payload),
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}

// nameOf extracts the event name from a value using reflection. Pointer
// types resolve to the pointed-to type name.
func nameOf(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
