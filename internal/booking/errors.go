// Package booking implements the per-client booking flow: catalog browsing,
// seat selection, simulated payment and ticket issuance.  A Controller owns
// one flow and serialises every mutation behind a mutex; delayed login and
// payment completions are delivered through an injected clock so tests can
// drive them deterministically.
package booking

import (
    "errors"
    "fmt"
)

var (
    // ErrAuthorizationRequired is returned when an operation needs a
    // logged-in user and the flow has none.  Handlers map it to 401.
    ErrAuthorizationRequired = errors.New("authorization required")

    // ErrInvalidTransition is returned when an operation is not allowed in
    // the flow's current state.  Handlers map it to 409.
    ErrInvalidTransition = errors.New("invalid state transition")

    // ErrPaymentInProgress is returned when a payment is submitted while
    // another one for the same session is still processing.
    ErrPaymentInProgress = errors.New("payment already processing")

    // ErrNoTicket is returned when a ticket is requested before one has
    // been issued.
    ErrNoTicket = errors.New("no ticket issued")

    // ErrFlowNotFound is returned by the registry for unknown flow ids.
    ErrFlowNotFound = errors.New("flow not found")
)

// ValidationError reports a user input that failed validation.  Field
// names the offending input so clients can highlight it.
type ValidationError struct {
    Field   string
    Message string
}

func (e *ValidationError) Error() string {
    return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
    return &ValidationError{Field: field, Message: message}
}

// transitionError wraps ErrInvalidTransition with the attempted operation
// and the state the flow was in.
func transitionError(op string, from State) error {
    return fmt.Errorf("%s from %s: %w", op, from, ErrInvalidTransition)
}
