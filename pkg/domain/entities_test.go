package domain

import (
	"strings"
	"testing"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"standard", CategoryStandard},
		{"STANDARD", CategoryStandard},
		{" Deluxe ", CategoryDeluxe},
		{"suite", CategorySuite},
		{"SuItE", CategorySuite},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: got %s want %s", tc.in, got, tc.want)
		}
	}
	if _, err := ParseCategory("penthouse"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
	if _, err := ParseCategory(""); err == nil {
		t.Fatalf("expected error for empty category")
	}
}

func TestSeedPlanRoomsNumberingAndPartition(t *testing.T) {
	rooms := DefaultSeedPlan().Rooms()
	if len(rooms) != 10 {
		t.Fatalf("expected 10 rooms, got %d", len(rooms))
	}
	for i, room := range rooms {
		if room.Number != i+1 {
			t.Fatalf("expected contiguous numbering, room %d has number %d", i, room.Number)
		}
		if room.Booked {
			t.Fatalf("seeded room %d should start available", room.Number)
		}
	}
	for n := 1; n <= 5; n++ {
		if rooms[n-1].Category != CategoryStandard {
			t.Fatalf("room %d: expected standard, got %s", n, rooms[n-1].Category)
		}
	}
	for n := 6; n <= 8; n++ {
		if rooms[n-1].Category != CategoryDeluxe {
			t.Fatalf("room %d: expected deluxe, got %s", n, rooms[n-1].Category)
		}
	}
	for n := 9; n <= 10; n++ {
		if rooms[n-1].Category != CategorySuite {
			t.Fatalf("room %d: expected suite, got %s", n, rooms[n-1].Category)
		}
	}
}

func TestRoomString(t *testing.T) {
	room := Room{Number: 9, Category: CategorySuite}
	if got := room.String(); got != "Room 9 (Suite) - Available" {
		t.Fatalf("unexpected rendering: %q", got)
	}
	room.Booked = true
	if got := room.String(); got != "Room 9 (Suite) - Booked" {
		t.Fatalf("unexpected rendering: %q", got)
	}
}

func TestReservationStringAndMatches(t *testing.T) {
	res := Reservation{GuestName: "Alice", RoomNumber: 9, Category: CategorySuite}
	if got := res.String(); got != "Reservation: Alice in Room 9 (Suite)" {
		t.Fatalf("unexpected rendering: %q", got)
	}
	if !res.Matches("ALICE", 9) {
		t.Fatalf("guest matching should ignore case")
	}
	if res.Matches("Alice", 8) {
		t.Fatalf("room number must match exactly")
	}
	if res.Matches("Bob", 9) {
		t.Fatalf("different guest should not match")
	}
}

func TestCategoryDisplayString(t *testing.T) {
	for _, cat := range Categories() {
		s := cat.String()
		if s == "" || !strings.EqualFold(s, string(cat)) {
			t.Fatalf("unexpected display string %q for %s", s, string(cat))
		}
		if s[0] < 'A' || s[0] > 'Z' {
			t.Fatalf("display string %q should start capitalised", s)
		}
	}
}
