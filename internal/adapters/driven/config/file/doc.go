// Package file loads guidedex configuration from a TOML file.
//
// The file describes the corpus source. Secrets never have to live in
// it: the GitHub token falls back to GUIDEDEX_GITHUB_TOKEN, then
// GITHUB_TOKEN, when the file leaves it blank.
//
//	[source]
//	type = "github"
//	repository = "custodia-labs/handbook@v2"
//	dir = "docs"
//	timeout = "30s"
//
// A local corpus needs only a path:
//
//	[source]
//	type = "local"
//	path = "./docs"
//	watch = true
package file
