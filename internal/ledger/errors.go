package ledger

import "errors"

// ErrNotFound is returned by Reader implementations when a scope identifier
// (user or group) does not exist. Data-access failures are wrapped with
// context and propagate unchanged; the engine never retries.
var ErrNotFound = errors.New("not found")
