package domain

// Reconcile derives each room's Booked flag from the reservation set: a
// room is booked iff at least one reservation references its number.
// Reservations are indexed by room number first so the pass stays
// O(rooms + reservations). The rooms slice is mutated in place; there is
// no other side effect.
func Reconcile(rooms []Room, reservations []Reservation) {
	occupied := make(map[int]bool, len(reservations))
	for _, res := range reservations {
		occupied[res.RoomNumber] = true
	}
	for i := range rooms {
		rooms[i].Booked = occupied[rooms[i].Number]
	}
}
