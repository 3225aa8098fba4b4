// Package memory provides the in-memory transactional store that every
// durable backend builds upon. The room catalog is seeded once at
// construction and never changes; reservations are kept as an ordered
// slice so persistence round-trips preserve insertion order.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"innkeep/pkg/domain"
)

// Exported aliases to keep method signatures concise while still exposing
// domain types from this infra package.
type (
	// Room is a catalog room (alias of domain.Room).
	Room = domain.Room
	// Reservation is an alias of domain.Reservation.
	Reservation = domain.Reservation
	// SeedPlan is an alias of domain.SeedPlan.
	SeedPlan = domain.SeedPlan
	// Change is an alias of domain.Change.
	Change = domain.Change
	// Result is an alias of domain.Result.
	Result = domain.Result
	// RulesEngine is an alias of domain.RulesEngine.
	RulesEngine = domain.RulesEngine
	// Transaction is an alias of domain.Transaction.
	Transaction = domain.Transaction
	// TransactionView is an alias of domain.TransactionView.
	TransactionView = domain.TransactionView
	// PersistentStore is an alias of domain.PersistentStore.
	PersistentStore = domain.PersistentStore
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.PersistentStore = (*Store)(nil)

type memoryState struct {
	rooms        []Room
	reservations []Reservation
}

func (s memoryState) clone() memoryState {
	return memoryState{
		rooms:        append([]Room(nil), s.rooms...),
		reservations: append([]Reservation(nil), s.reservations...),
	}
}

// Snapshot is the serialisable representation of the reservation set. The
// catalog is reseeded from configuration and is not persisted.
type Snapshot struct {
	Reservations []Reservation `json:"reservations"`
}

// Store provides an in-memory transactional store for the reservation domain.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	nowFn  func() time.Time
}

// NewStore seeds the catalog from the plan and constructs a store backed by
// the provided rules engine.
func NewStore(plan SeedPlan, engine *RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{
		state:  memoryState{rooms: plan.Rooms()},
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// SetNowFunc overrides the clock used to stamp reservations (tests).
func (s *Store) SetNowFunc(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now != nil {
		s.nowFn = now
	}
}

// transaction represents a mutation set applied to the store state.
type transaction struct {
	state   *memoryState
	changes []Change
	now     time.Time
}

// view exposes a read-only snapshot of transactional state.
type view struct {
	state *memoryState
}

// ListRooms returns the catalog in number order within the snapshot.
func (v view) ListRooms() []Room {
	return append([]Room(nil), v.state.rooms...)
}

// ListReservations returns all reservations in insertion order.
func (v view) ListReservations() []Reservation {
	return append([]Reservation(nil), v.state.reservations...)
}

// FindRoom retrieves a room by number from the snapshot.
func (v view) FindRoom(number int) (Room, bool) {
	for _, room := range v.state.rooms {
		if room.Number == number {
			return room, true
		}
	}
	return Room{}, false
}

// FindReservation retrieves the reservation matching guest and room, if any.
func (v view) FindReservation(guestName string, roomNumber int) (Reservation, bool) {
	for _, res := range v.state.reservations {
		if res.Matches(guestName, roomNumber) {
			return res, true
		}
	}
	return Reservation{}, false
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot exposes the transactional state to the caller.
func (tx *transaction) Snapshot() TransactionView {
	return view{state: tx.state}
}

// AddReservation appends a reservation to the ordered set. The timestamp is
// assigned here; rule evaluation happens at commit.
func (tx *transaction) AddReservation(res Reservation) (Reservation, error) {
	if res.GuestName == "" {
		return Reservation{}, fmt.Errorf("reservation guest name cannot be empty")
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = tx.now
	}
	tx.state.reservations = append(tx.state.reservations, res)
	tx.recordChange(Change{Entity: domain.EntityReservation, Action: domain.ActionCreate, After: res})
	return res, nil
}

// RemoveReservation removes the unique reservation matching guest and room.
func (tx *transaction) RemoveReservation(guestName string, roomNumber int) (Reservation, error) {
	for i, res := range tx.state.reservations {
		if res.Matches(guestName, roomNumber) {
			tx.state.reservations = append(tx.state.reservations[:i:i], tx.state.reservations[i+1:]...)
			tx.recordChange(Change{Entity: domain.EntityReservation, Action: domain.ActionDelete, Before: res})
			return res, nil
		}
	}
	return Reservation{}, fmt.Errorf("reservation for %q in room %d not found", guestName, roomNumber)
}

// RunInTransaction executes fn within a transactional copy of the store
// state. Registered rules evaluate against the mutated copy; a blocking
// violation abandons the copy and returns RuleViolationError. On commit the
// reconciler rederives every room's booked flag.
func (s *Store) RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	tx := &transaction{state: &next, now: s.nowFn()}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		res, err := s.engine.Evaluate(ctx, view{state: &next}, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	domain.Reconcile(next.rooms, next.reservations)
	s.state = next
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	return fn(view{state: &snapshot})
}

// ListRooms returns the catalog in number order from committed state.
func (s *Store) ListRooms() []Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Room(nil), s.state.rooms...)
}

// ListReservations returns reservations in insertion order from committed state.
func (s *Store) ListReservations() []Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Reservation(nil), s.state.reservations...)
}

// FindRoom retrieves a room by number from committed state.
func (s *Store) FindRoom(number int) (Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, room := range s.state.rooms {
		if room.Number == number {
			return room, true
		}
	}
	return Room{}, false
}

// LoadWarning always reports nil: the in-memory store has no durable state
// to recover from.
func (s *Store) LoadWarning() error { return nil }

// ExportState clones the current reservation set for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Reservations: append([]Reservation(nil), s.state.reservations...)}
}

// ImportState replaces the reservation set with the provided snapshot and
// rederives room occupancy.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.reservations = append([]Reservation(nil), snapshot.Reservations...)
	domain.Reconcile(s.state.rooms, s.state.reservations)
}
