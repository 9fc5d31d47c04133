// Package all wires every built-in storage backend into the storage factory.
//
// It exists purely for side effects: a blank import runs the init functions
// of each backend, which register themselves with the storage package. A
// binary that should support only one backend can import that backend's
// package directly instead.
package all

import (
	_ "csvnest/internal/storage/postgres"
	_ "csvnest/internal/storage/sqlite"
)
