package strand

import "time"

// SetNow overrides the Repo clock for deterministic timestamps in tests.
// This file only compiles during `go test`.
func (r *Repo) SetNow(now func() time.Time) {
	r.now = now
}
