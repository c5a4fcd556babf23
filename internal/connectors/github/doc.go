// Package github implements a corpus source backed by a GitHub repository.
//
// The source fetches markdown documents from a single repository via the
// REST API, optionally scoped to a subdirectory and pinned to a branch,
// tag or commit. It is read-only: listing resolves the repository tree in
// one recursive Trees API call, then retrieves blob content for every
// markdown file concurrently.
//
// # Repository Specification
//
// Repositories are specified as "owner/repo" with an optional ref suffix:
//
//	custodia-labs/handbook
//	custodia-labs/handbook@v2
//	custodia-labs/handbook@a1b2c3d
//
// When no ref is given, the repository's default branch is resolved at
// first use. Document paths are reported relative to the configured
// corpus directory, so a corpus rooted at docs/ yields the same paths a
// local checkout of docs/ would.
//
// # Authentication
//
// A personal access token grants 5,000 API requests per hour and access
// to private repositories. Without a token the source still works for
// public repositories, subject to the 60 requests per hour anonymous
// limit.
//
// # Rate Limiting
//
// The client applies a dual-strategy rate limiter:
//
//  1. Proactive throttling: a token bucket keeps the request rate near
//     1.2 requests per second, well under the authenticated quota.
//
//  2. Reactive handling: X-RateLimit-Remaining and X-RateLimit-Reset
//     headers are tracked on every response. When the quota runs low the
//     client waits for the reset rather than burning the remainder.
//
// Exhausted quotas surface as [domain.ErrRateLimited] so callers can fall
// back to a previously built catalog.
//
// # Limitations
//
//   - Files larger than 1MB are skipped
//   - Watch mode is not supported; use [Source.Fetch] or a rebuild to
//     pick up changes
package github
