package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Character errors
	ErrMsgCharacterNotFound     = "character not found"
	ErrMsgCharacterExists       = "character already exists"
	ErrMsgInsufficientPoints    = "not enough available stat points"
	ErrMsgInvalidStat           = "invalid stat"
	ErrMsgInvalidSpecialization = "invalid specialization"
	ErrMsgInvalidRespecState    = "invalid respec state"
	ErrMsgRespecSessionNotFound = "no respec in progress"
	ErrMsgInvalidEquipmentSlot  = "item cannot be equipped in that slot"

	// World errors
	ErrMsgWorldNotFound = "world not found"
	ErrMsgWorldLocked   = "world is locked"

	// Item errors
	ErrMsgItemNotFound         = "item not found"
	ErrMsgInsufficientQuantity = "insufficient quantity"

	// Database/System errors
	ErrMsgDatabaseError = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Character errors
	ErrCharacterNotFound     = errors.New(ErrMsgCharacterNotFound)
	ErrCharacterExists       = errors.New(ErrMsgCharacterExists)
	ErrInsufficientPoints    = errors.New(ErrMsgInsufficientPoints)
	ErrInvalidStat           = errors.New(ErrMsgInvalidStat)
	ErrInvalidSpecialization = errors.New(ErrMsgInvalidSpecialization)
	ErrInvalidRespecState    = errors.New(ErrMsgInvalidRespecState)
	ErrRespecSessionNotFound = errors.New(ErrMsgRespecSessionNotFound)
	ErrInvalidEquipmentSlot  = errors.New(ErrMsgInvalidEquipmentSlot)

	// World errors
	ErrWorldNotFound = errors.New(ErrMsgWorldNotFound)
	ErrWorldLocked   = errors.New(ErrMsgWorldLocked)

	// Item errors
	ErrItemNotFound         = errors.New(ErrMsgItemNotFound)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)

	// Database/System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
