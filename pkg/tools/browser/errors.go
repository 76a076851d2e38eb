package browser

import "errors"

// Registry error taxonomy. Tools surface these as reported text lines; the
// dispatcher never lets them escape to the orchestrator.
var (
	// ErrNoSession indicates an operation that requires a live browser
	// session found none.
	ErrNoSession = errors.New("no browser session is running")

	// ErrDuplicateTab indicates a create collided with a registered name.
	ErrDuplicateTab = errors.New("tab name already in use")

	// ErrTabNotFound indicates a reference to an unregistered tab name.
	ErrTabNotFound = errors.New("tab not found")
)
