package domain

import (
	"context"
	"fmt"
)

// Transaction exposes the mutations a persistence implementation must
// support within an atomic scope. Invariant checks run through the rules
// engine before commit; callers remain responsible for surface-level
// validation.
type Transaction interface {
	// AddReservation appends a reservation to the ordered set.
	AddReservation(Reservation) (Reservation, error)
	// RemoveReservation removes the unique reservation matching the guest
	// (case-insensitive) and room number.
	RemoveReservation(guestName string, roomNumber int) (Reservation, error)
	// Snapshot exposes the transactional state to the caller.
	Snapshot() TransactionView
}

// TransactionView provides read-only access to snapshot data.
type TransactionView interface {
	ListRooms() []Room
	ListReservations() []Reservation
	FindRoom(number int) (Room, bool)
	FindReservation(guestName string, roomNumber int) (Reservation, bool)
}

// PersistentStore is a minimal abstraction over durable backends. It
// mirrors the subset of store capabilities used directly by higher layers.
// Implementations snapshot the complete reservation set after every
// successful transaction; a failed snapshot is reported as a
// PersistenceError while committed in-memory state is retained.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	ListRooms() []Room
	ListReservations() []Reservation
	FindRoom(number int) (Room, bool)
	// LoadWarning reports the degraded-recovery condition encountered while
	// hydrating stored state, if any. A non-nil warning means the store
	// started from an empty reservation set.
	LoadWarning() error
}

// PersistenceError wraps a failed durable write. The in-memory state it
// accompanies has already been committed and is not rolled back.
type PersistenceError struct {
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("persist reservations: %v", e.Err)
}

// Unwrap exposes the underlying write error.
func (e PersistenceError) Unwrap() error { return e.Err }
