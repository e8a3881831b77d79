package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into user-visible outcomes.
var ErrNotFound = errors.New("not found")
