package core

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"innkeep/internal/blob"
)

func TestExportLedgerWritesSnapshot(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, approveAll, WithClock(func() time.Time { return fixed }))
	ctx := context.Background()
	if _, _, err := svc.BookRoom(ctx, "Alice", 9); err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, _, err := svc.BookRoom(ctx, "Bob", 2); err != nil {
		t.Fatalf("book: %v", err)
	}

	store := blob.NewMemory()
	info, err := svc.ExportLedger(ctx, store)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(info.Key, "ledger/") || !strings.HasSuffix(info.Key, ".json") {
		t.Fatalf("unexpected key %q", info.Key)
	}
	if info.ContentType != "application/json" {
		t.Fatalf("unexpected content type %q", info.ContentType)
	}
	if info.Metadata["reservations"] != "2" {
		t.Fatalf("unexpected metadata %v", info.Metadata)
	}

	_, rc, err := store.Get(ctx, info.Key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var export LedgerExport
	if err := json.Unmarshal(body, &export); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !export.ExportedAt.Equal(fixed) {
		t.Fatalf("unexpected export time %v", export.ExportedAt)
	}
	if len(export.Rooms) != 10 {
		t.Fatalf("expected full catalog, got %d rooms", len(export.Rooms))
	}
	if len(export.Reservations) != 2 || export.Reservations[0].GuestName != "Alice" || export.Reservations[1].GuestName != "Bob" {
		t.Fatalf("unexpected reservations %+v", export.Reservations)
	}
	booked := 0
	for _, room := range export.Rooms {
		if room.Booked {
			booked++
		}
	}
	if booked != 2 {
		t.Fatalf("expected 2 booked rooms in export, got %d", booked)
	}
}

func TestExportLedgerEmptySet(t *testing.T) {
	svc := newTestService(t, approveAll)
	store := blob.NewMemory()
	info, err := svc.ExportLedger(context.Background(), store)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if info.Metadata["reservations"] != "0" {
		t.Fatalf("unexpected metadata %v", info.Metadata)
	}
}
