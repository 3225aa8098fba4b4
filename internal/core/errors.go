package core

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the reservation service. Data errors never
// terminate the process; the front end decides how to present them.
var (
	// ErrPaymentDeclined indicates the external confirmation returned
	// negative; no state was mutated.
	ErrPaymentDeclined = errors.New("payment declined")
	// ErrEmptyGuestName indicates a blank guest name was supplied.
	ErrEmptyGuestName = errors.New("guest name cannot be empty")
)

// RoomNotFoundError indicates the referenced room number is not in the catalog.
type RoomNotFoundError struct {
	Number int
}

func (e RoomNotFoundError) Error() string {
	return fmt.Sprintf("room %d does not exist", e.Number)
}

// AlreadyBookedError indicates a booking was attempted on an occupied room.
type AlreadyBookedError struct {
	Number int
}

func (e AlreadyBookedError) Error() string {
	return fmt.Sprintf("room %d is already booked", e.Number)
}

// ReservationNotFoundError indicates a cancellation target does not exist.
type ReservationNotFoundError struct {
	GuestName  string
	RoomNumber int
}

func (e ReservationNotFoundError) Error() string {
	return fmt.Sprintf("no reservation for %q in room %d", e.GuestName, e.RoomNumber)
}
