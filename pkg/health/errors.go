package health

import "errors"

// Sentinel errors for the health package.
var (
	// ErrCheckTimeout is reported when an indicator exceeds the endpoint timeout.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckPanic is reported when an indicator panics.
	ErrCheckPanic = errors.New("health: check panicked")

	// ErrInvalidName is returned when an indicator or group name is empty or contains '/'.
	ErrInvalidName = errors.New("health: invalid name")

	// ErrDuplicateName is returned when a name is already registered.
	ErrDuplicateName = errors.New("health: duplicate name")

	// ErrUnknownIndicator is returned when no indicator is registered under a name.
	ErrUnknownIndicator = errors.New("health: unknown indicator")

	// ErrUnknownGroup is returned when no group is configured under a name.
	ErrUnknownGroup = errors.New("health: unknown group")

	// ErrUnknownMember is returned when a group includes an unregistered indicator.
	ErrUnknownMember = errors.New("health: group member not registered")

	// ErrNilRegistry is returned when an endpoint is built without a registry.
	ErrNilRegistry = errors.New("health: nil registry")

	// ErrInvalidShowDetails is returned for an unsupported ShowDetails value.
	ErrInvalidShowDetails = errors.New("health: invalid show-details value")
)
