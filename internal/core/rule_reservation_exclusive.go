package core

import (
	"context"
	"fmt"
	"strconv"

	"innkeep/pkg/domain"
)

// NewReservationExclusiveRule returns the in-transaction rule enforcing
// that no room carries more than one active reservation.
func NewReservationExclusiveRule() domain.Rule {
	return reservationExclusiveRule{}
}

type reservationExclusiveRule struct{}

func (reservationExclusiveRule) Name() string { return "reservation_exclusive" }

func (reservationExclusiveRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	counts := make(map[int]int)
	for _, res := range view.ListReservations() {
		counts[res.RoomNumber]++
	}

	result := domain.Result{}
	for _, room := range view.ListRooms() {
		if n := counts[room.Number]; n > 1 {
			result.Violations = append(result.Violations, domain.Violation{
				Rule:     "reservation_exclusive",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("room %d double booked: %d active reservations", room.Number, n),
				Entity:   domain.EntityRoom,
				EntityID: strconv.Itoa(room.Number),
			})
		}
	}
	return result, nil
}
