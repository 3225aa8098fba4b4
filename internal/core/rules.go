package core

import "innkeep/pkg/domain"

// NewDefaultRulesEngine builds a rules engine with the built-in policy set:
// at most one reservation per room, and every reservation must reference a
// catalog room.
func NewDefaultRulesEngine() *RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(NewReservationExclusiveRule())
	engine.Register(NewRoomReferenceRule())
	return engine
}
