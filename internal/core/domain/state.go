package domain

import "time"

// CatalogState tracks where the catalog lifecycle stands.
type CatalogState string

const (
	// StateUnbuilt means no build has happened yet.
	// The first query triggers one.
	StateUnbuilt CatalogState = "unbuilt"

	// StateBuilding means a build is in flight.
	// Concurrent queries wait for and share its outcome.
	StateBuilding CatalogState = "building"

	// StateReady means the current generation serves queries.
	StateReady CatalogState = "ready"

	// StateStaleDegraded means the last rebuild failed but an older
	// generation still serves queries. Stale answers beat no answers.
	StateStaleDegraded CatalogState = "stale-degraded"

	// StateFailed means the last build failed and there is no older
	// generation to fall back on. The next query retries the build.
	StateFailed CatalogState = "failed"
)

// IsValid checks if the state is recognised.
func (s CatalogState) IsValid() bool {
	switch s {
	case StateUnbuilt, StateBuilding, StateReady, StateStaleDegraded, StateFailed:
		return true
	}
	return false
}

// String returns the string representation.
func (s CatalogState) String() string {
	return string(s)
}

// CatalogStatus is a point-in-time snapshot of the catalog lifecycle.
// Reading it never triggers a build.
type CatalogStatus struct {
	// State is the lifecycle state at snapshot time.
	State CatalogState

	// Generation identifies the newest built generation, if any.
	Generation string

	// Fingerprint is the content digest of that generation.
	Fingerprint string

	// BuiltAt is when that generation was built.
	BuiltAt time.Time

	// DocumentCount is the number of documents in that generation.
	DocumentCount int

	// WarningCount is how many of those documents carried parse warnings.
	WarningCount int

	// LastError describes the most recent build failure, if any.
	LastError string
}
