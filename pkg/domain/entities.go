// Package domain defines the room catalog and reservation entities, the
// rule evaluation primitives, and the persistence contracts used by innkeep.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Category identifies a room category. The set is closed and fixed at
// catalog seeding time.
type Category string

// Supported room categories.
const (
	// CategoryStandard identifies a standard room.
	CategoryStandard Category = "standard"
	// CategoryDeluxe identifies a deluxe room.
	CategoryDeluxe Category = "deluxe"
	// CategorySuite identifies a suite.
	CategorySuite Category = "suite"
)

// Categories lists all room categories in catalog seeding order.
func Categories() []Category {
	return []Category{CategoryStandard, CategoryDeluxe, CategorySuite}
}

// ParseCategory maps free-form text to a Category, ignoring case and
// surrounding whitespace. Unrecognised text is a caller-side validation
// error, not a core error.
func ParseCategory(text string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case string(CategoryStandard):
		return CategoryStandard, nil
	case string(CategoryDeluxe):
		return CategoryDeluxe, nil
	case string(CategorySuite):
		return CategorySuite, nil
	default:
		return "", fmt.Errorf("unknown category %q", text)
	}
}

// String renders the category with a leading capital for display.
func (c Category) String() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Room is a bookable room in the fixed catalog. Number is positive, unique
// and immutable. Booked is derived from the reservation set by Reconcile
// and is never set directly.
type Room struct {
	Number   int      `json:"number"`
	Category Category `json:"category"`
	Booked   bool     `json:"booked"`
}

// String renders the room in its canonical textual form.
func (r Room) String() string {
	status := "Available"
	if r.Booked {
		status = "Booked"
	}
	return fmt.Sprintf("Room %d (%s) - %s", r.Number, r.Category, status)
}

// Reservation binds a guest to a room for an indefinite stay until
// cancelled. Category snapshots the room's category at booking time and is
// kept even if catalog definitions change later. Guest names match
// case-insensitively.
type Reservation struct {
	GuestName  string    `json:"guest_name"`
	RoomNumber int       `json:"room_number"`
	Category   Category  `json:"category"`
	CreatedAt  time.Time `json:"created_at"`
}

// String renders the reservation in its canonical textual form.
func (r Reservation) String() string {
	return fmt.Sprintf("Reservation: %s in Room %d (%s)", r.GuestName, r.RoomNumber, r.Category)
}

// Matches reports whether the reservation belongs to the given guest and
// room. Guest comparison ignores case.
func (r Reservation) Matches(guestName string, roomNumber int) bool {
	return r.RoomNumber == roomNumber && strings.EqualFold(r.GuestName, guestName)
}

// SeedPlan describes the deterministic catalog partition: rooms are
// numbered contiguously starting at 1, with the standard block first,
// then deluxe, then suites.
type SeedPlan struct {
	Standard int `json:"standard"`
	Deluxe   int `json:"deluxe"`
	Suite    int `json:"suite"`
}

// DefaultSeedPlan returns the stock ten-room catalog: rooms 1-5 standard,
// 6-8 deluxe, 9-10 suite.
func DefaultSeedPlan() SeedPlan {
	return SeedPlan{Standard: 5, Deluxe: 3, Suite: 2}
}

// Rooms materialises the catalog described by the plan. All rooms start
// Available; the reconciler derives occupancy afterwards.
func (p SeedPlan) Rooms() []Room {
	rooms := make([]Room, 0, p.Standard+p.Deluxe+p.Suite)
	next := 1
	for _, block := range []struct {
		count    int
		category Category
	}{
		{p.Standard, CategoryStandard},
		{p.Deluxe, CategoryDeluxe},
		{p.Suite, CategorySuite},
	} {
		for i := 0; i < block.count; i++ {
			rooms = append(rooms, Room{Number: next, Category: block.category})
			next++
		}
	}
	return rooms
}

// EntityType identifies the type of record referenced in Change entries.
type EntityType string

// Supported entity type identifiers.
const (
	// EntityRoom identifies a catalog room record.
	EntityRoom EntityType = "room"
	// EntityReservation identifies a reservation record.
	EntityReservation EntityType = "reservation"
)

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate the mutations captured during a transaction.
const (
	// ActionCreate indicates a record was created.
	ActionCreate Action = "create"
	// ActionDelete indicates a record was removed.
	ActionDelete Action = "delete"
)

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}
