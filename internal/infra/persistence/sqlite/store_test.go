package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"innkeep/internal/infra/persistence/memory"
	"innkeep/pkg/domain"
)

func TestRoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "innkeep.db")
	ctx := context.Background()

	store, err := NewStore(path, domain.DefaultSeedPlan(), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	guests := []string{"Alice", "Bob"}
	rooms := []int{9, 6}
	for i := range guests {
		guest, room := guests[i], rooms[i]
		if _, err := store.RunInTransaction(ctx, func(tx memory.Transaction) error {
			catalogRoom, ok := tx.Snapshot().FindRoom(room)
			if !ok {
				t.Fatalf("room %d missing", room)
			}
			_, err := tx.AddReservation(domain.Reservation{GuestName: guest, RoomNumber: room, Category: catalogRoom.Category})
			return err
		}); err != nil {
			t.Fatalf("book %s: %v", guest, err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path, domain.DefaultSeedPlan(), nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	if reopened.LoadWarning() != nil {
		t.Fatalf("unexpected load warning: %v", reopened.LoadWarning())
	}

	reservations := reopened.ListReservations()
	if len(reservations) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(reservations))
	}
	if reservations[0].GuestName != "Alice" || reservations[1].GuestName != "Bob" {
		t.Fatalf("insertion order lost: %+v", reservations)
	}
	if reservations[0].Category != domain.CategorySuite {
		t.Fatalf("category snapshot lost: %+v", reservations[0])
	}
	if room, _ := reopened.FindRoom(9); !room.Booked {
		t.Fatalf("room 9 should be booked after reload")
	}
}

func TestCorruptPayloadRecoversEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "innkeep.db")

	store, err := NewStore(path, domain.DefaultSeedPlan(), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.DB().Exec(`INSERT INTO state(bucket,payload) VALUES(?,?)
		ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, reservationsBucket, []byte("{garbage")); err != nil {
		t.Fatalf("corrupt payload: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path, domain.DefaultSeedPlan(), nil)
	if err != nil {
		t.Fatalf("corrupt storage must not fail startup: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	if reopened.LoadWarning() == nil {
		t.Fatalf("expected informational load warning")
	}
	if got := len(reopened.ListReservations()); got != 0 {
		t.Fatalf("expected empty reservation set, got %d", got)
	}
}

func TestCorruptDatabaseFileRecoversEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "innkeep.db")
	if err := os.WriteFile(path, []byte("this is not a sqlite database"), 0o644); err != nil {
		t.Fatalf("write garbage: %v", err)
	}

	store, err := NewStore(path, domain.DefaultSeedPlan(), nil)
	if err != nil {
		t.Fatalf("corrupt storage must not fail startup: %v", err)
	}
	defer func() { _ = store.Close() }()
	if store.LoadWarning() == nil {
		t.Fatalf("expected informational load warning")
	}
	if got := len(store.ListReservations()); got != 0 {
		t.Fatalf("expected empty reservation set, got %d", got)
	}
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Fatalf("unreadable file should be set aside: %v", err)
	}

	// The fresh database must accept bookings and persist them.
	ctx := context.Background()
	if _, err := store.RunInTransaction(ctx, func(tx memory.Transaction) error {
		_, err := tx.AddReservation(domain.Reservation{GuestName: "Alice", RoomNumber: 9, Category: domain.CategorySuite})
		return err
	}); err != nil {
		t.Fatalf("book after recovery: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	reopened, err := NewStore(path, domain.DefaultSeedPlan(), nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	if got := len(reopened.ListReservations()); got != 1 {
		t.Fatalf("expected booking to survive reload, got %d", got)
	}
}

func TestCancellationIsDurable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "innkeep.db")
	ctx := context.Background()

	store, err := NewStore(path, domain.DefaultSeedPlan(), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.RunInTransaction(ctx, func(tx memory.Transaction) error {
		_, err := tx.AddReservation(domain.Reservation{GuestName: "Alice", RoomNumber: 9, Category: domain.CategorySuite})
		return err
	}); err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := store.RunInTransaction(ctx, func(tx memory.Transaction) error {
		_, err := tx.RemoveReservation("alice", 9)
		return err
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path, domain.DefaultSeedPlan(), nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	if got := len(reopened.ListReservations()); got != 0 {
		t.Fatalf("cancelled reservation survived reload: %d entries", got)
	}
	if room, _ := reopened.FindRoom(9); room.Booked {
		t.Fatalf("room 9 should be available after durable cancellation")
	}
}
