package core

import (
	"context"
	"fmt"
	"strconv"

	"innkeep/pkg/domain"
)

// NewRoomReferenceRule returns the in-transaction rule enforcing that every
// reservation references a room present in the catalog.
func NewRoomReferenceRule() domain.Rule {
	return roomReferenceRule{}
}

type roomReferenceRule struct{}

func (roomReferenceRule) Name() string { return "room_reference" }

func (roomReferenceRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	result := domain.Result{}
	for _, res := range view.ListReservations() {
		if _, ok := view.FindRoom(res.RoomNumber); !ok {
			result.Violations = append(result.Violations, domain.Violation{
				Rule:     "room_reference",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("reservation for %s references unknown room %d", res.GuestName, res.RoomNumber),
				Entity:   domain.EntityReservation,
				EntityID: strconv.Itoa(res.RoomNumber),
			})
		}
	}
	return result, nil
}
