package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"innkeep/pkg/domain"
)

// PaymentConfirmer is the external payment-confirmation collaborator. The
// core only consumes its boolean result; an error means the confirmation
// itself could not be obtained.
type PaymentConfirmer interface {
	Confirm(ctx context.Context) (bool, error)
}

// PaymentConfirmerFunc adapts a function to the PaymentConfirmer interface.
type PaymentConfirmerFunc func(ctx context.Context) (bool, error)

// Confirm implements PaymentConfirmer.
func (f PaymentConfirmerFunc) Confirm(ctx context.Context) (bool, error) { return f(ctx) }

// Service exposes the reservation operation surface over a persistent
// store. It exclusively owns the room catalog and reservation set for the
// lifetime of the process; all invariant enforcement funnels through here
// and the store's rules engine.
type Service struct {
	store    domain.PersistentStore
	payments PaymentConfirmer
	logger   Logger
	metrics  MetricsRecorder
	tracer   Tracer
	nowFn    func() time.Time
}

// NewService constructs a service backed by the supplied store and payment
// collaborator.
func NewService(store domain.PersistentStore, payments PaymentConfirmer, opts ...Option) *Service {
	s := &Service{
		store:    store,
		payments: payments,
		logger:   nopLogger{},
		nowFn:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if warn := store.LoadWarning(); warn != nil {
		s.logger.Infof("recovered with empty reservation set: %v", warn)
	}
	return s
}

// Store returns the underlying storage implementation.
func (s *Service) Store() domain.PersistentStore { return s.store }

// ListRooms returns the catalog in number order with current derived
// occupancy.
func (s *Service) ListRooms(ctx context.Context) []Room {
	_, done := s.begin(ctx, "list_rooms")
	defer done(nil)
	return s.store.ListRooms()
}

// SearchByCategory returns the available rooms of the given category. An
// empty slice means no room is currently available; it is not an error.
func (s *Service) SearchByCategory(ctx context.Context, category Category) []Room {
	_, done := s.begin(ctx, "search_by_category")
	defer done(nil)
	var matches []Room
	for _, room := range s.store.ListRooms() {
		if room.Category == category && !room.Booked {
			matches = append(matches, room)
		}
	}
	return matches
}

// ListBookings returns the active reservations in insertion order. An empty
// slice is a valid, non-error result.
func (s *Service) ListBookings(ctx context.Context) []Reservation {
	_, done := s.begin(ctx, "list_bookings")
	defer done(nil)
	return s.store.ListReservations()
}

// BookRoom books the given room for the guest. The room's category is
// snapshotted into the reservation at booking time. A persistence failure
// after the in-memory commit is returned as a PersistenceError alongside
// the created reservation: the booking is live but not durable.
func (s *Service) BookRoom(ctx context.Context, guestName string, roomNumber int) (Reservation, Result, error) {
	ctx, done := s.begin(ctx, "book_room")
	var retErr error
	defer func() { done(retErr) }()

	guestName = strings.TrimSpace(guestName)
	if guestName == "" {
		retErr = ErrEmptyGuestName
		return Reservation{}, Result{}, retErr
	}
	room, ok := s.store.FindRoom(roomNumber)
	if !ok {
		retErr = RoomNotFoundError{Number: roomNumber}
		return Reservation{}, Result{}, retErr
	}
	if room.Booked {
		retErr = AlreadyBookedError{Number: roomNumber}
		return Reservation{}, Result{}, retErr
	}

	confirmed, err := s.payments.Confirm(ctx)
	if err != nil {
		retErr = fmt.Errorf("confirm payment: %w", err)
		return Reservation{}, Result{}, retErr
	}
	if !confirmed {
		retErr = ErrPaymentDeclined
		return Reservation{}, Result{}, retErr
	}

	var created Reservation
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		created, err = tx.AddReservation(Reservation{
			GuestName:  guestName,
			RoomNumber: roomNumber,
			Category:   room.Category,
		})
		return err
	})
	if err != nil {
		var pErr PersistenceError
		if errors.As(err, &pErr) {
			s.logger.Warnf("booking for %s kept in memory only: %v", guestName, pErr)
			retErr = pErr
			return created, res, retErr
		}
		retErr = err
		return Reservation{}, res, retErr
	}
	s.logger.Infof("booked room %d (%s) for %s", roomNumber, room.Category, guestName)
	return created, res, nil
}

// CancelReservation removes the unique reservation matching the guest
// (case-insensitive) and room number. Cancelling an absent reservation
// surfaces ReservationNotFoundError and leaves state unchanged.
func (s *Service) CancelReservation(ctx context.Context, guestName string, roomNumber int) (Result, error) {
	ctx, done := s.begin(ctx, "cancel_reservation")
	var retErr error
	defer func() { done(retErr) }()

	guestName = strings.TrimSpace(guestName)
	if guestName == "" {
		retErr = ErrEmptyGuestName
		return Result{}, retErr
	}

	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		if _, ok := tx.Snapshot().FindReservation(guestName, roomNumber); !ok {
			return ReservationNotFoundError{GuestName: guestName, RoomNumber: roomNumber}
		}
		_, err := tx.RemoveReservation(guestName, roomNumber)
		return err
	})
	if err != nil {
		var pErr PersistenceError
		if errors.As(err, &pErr) {
			s.logger.Warnf("cancellation for %s kept in memory only: %v", guestName, pErr)
			retErr = pErr
			return res, retErr
		}
		retErr = err
		return res, retErr
	}
	s.logger.Infof("cancelled reservation for %s in room %d", guestName, roomNumber)
	return res, nil
}
