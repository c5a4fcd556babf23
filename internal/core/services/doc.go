// Package services implements the driving port interfaces.
// Services contain the core business logic: building catalog
// generations from a source and answering queries against them.
//
// Services are pure Go and depend only on domain types and driven ports.
package services
