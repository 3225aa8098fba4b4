package core

import "innkeep/pkg/domain"

type (
	Category           = domain.Category
	Room               = domain.Room
	Reservation        = domain.Reservation
	SeedPlan           = domain.SeedPlan
	Change             = domain.Change
	Action             = domain.Action
	Violation          = domain.Violation
	Result             = domain.Result
	Rule               = domain.Rule
	RulesEngine        = domain.RulesEngine
	RuleViolationError = domain.RuleViolationError
	Transaction        = domain.Transaction
	TransactionView    = domain.TransactionView
	PersistentStore    = domain.PersistentStore
	PersistenceError   = domain.PersistenceError
)

const (
	CategoryStandard = domain.CategoryStandard
	CategoryDeluxe   = domain.CategoryDeluxe
	CategorySuite    = domain.CategorySuite
)

const (
	EntityRoom        = domain.EntityRoom
	EntityReservation = domain.EntityReservation
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
)

const (
	ActionCreate = domain.ActionCreate
	ActionDelete = domain.ActionDelete
)
