package services

import "errors"

// ErrValidation marks a request rejected before it reaches storage: a
// missing required field, a value outside a closed enum, or a violated
// containment invariant. Wrap it with context, e.g.
// fmt.Errorf("%w: nome is required", ErrValidation).
var ErrValidation = errors.New("validation failed")
