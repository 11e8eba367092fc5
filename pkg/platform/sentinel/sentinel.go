package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so middlewares and handlers can translate them into response kinds.
//
// ErrNotFound states that a record does not exist; it is a factual outcome,
// not a validation failure.
var ErrNotFound = errors.New("not found")
