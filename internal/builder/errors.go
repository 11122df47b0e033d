package builder

import "errors"

// Configuration errors abort the current derivation pass and must surface to
// whatever triggered the configuration event. They are never retried.
var (
	// ErrMissingPrimaryKey is returned when a versioned entity's backing
	// table declares no primary key, leaving the shadow table without a
	// usable composite identity.
	ErrMissingPrimaryKey = errors.New("backing table has no primary key")

	// ErrMissingRoot is returned when the declarative root of the first
	// pending entity has no backing table, so the transaction entity
	// cannot be bound to a metadata scope.
	ErrMissingRoot = errors.New("cannot resolve declarative root for transaction entity")
)
