package domain

import (
	"fmt"
	"time"
)

// SourceType identifies where the corpus lives.
type SourceType string

const (
	// SourceLocal reads the corpus from a directory on disk.
	SourceLocal SourceType = "local"

	// SourceGitHub reads the corpus from a GitHub repository.
	SourceGitHub SourceType = "github"
)

// IsValid checks if the source type is recognised.
func (t SourceType) IsValid() bool {
	switch t {
	case SourceLocal, SourceGitHub:
		return true
	}
	return false
}

// String returns the string representation.
func (t SourceType) String() string {
	return string(t)
}

// DefaultRequestTimeout bounds individual source requests when the
// configuration does not say otherwise.
const DefaultRequestTimeout = 30 * time.Second

// Config is the resolved runtime configuration.
// Components receive it through their constructors; nothing reads
// configuration ambiently.
type Config struct {
	// SourceType selects the corpus source.
	SourceType SourceType

	// BasePath is the corpus root directory. Local sources only.
	BasePath string

	// Repository is the corpus repository in "owner/repo" or
	// "owner/repo@ref" form. GitHub sources only.
	Repository string

	// Dir restricts the corpus to a subdirectory of the repository.
	// Empty means the whole repository. GitHub sources only.
	Dir string

	// Token authenticates against the GitHub API. Optional; without it
	// the much lower unauthenticated rate limits apply.
	Token string

	// RequestTimeout bounds individual source requests.
	RequestTimeout time.Duration

	// Watch enables change watching on sources that support it, so the
	// catalog invalidates itself when the corpus changes.
	Watch bool
}

// Validate checks the configuration is complete enough to build a source.
func (c Config) Validate() error {
	if !c.SourceType.IsValid() {
		return fmt.Errorf("%w: unknown source type %q", ErrInvalidInput, string(c.SourceType))
	}

	switch c.SourceType {
	case SourceLocal:
		if c.BasePath == "" {
			return fmt.Errorf("%w: local source requires a base path", ErrInvalidInput)
		}
	case SourceGitHub:
		if c.Repository == "" {
			return fmt.Errorf("%w: github source requires a repository", ErrInvalidInput)
		}
	}

	if c.RequestTimeout < 0 {
		return fmt.Errorf("%w: request timeout must not be negative", ErrInvalidInput)
	}
	return nil
}

// WithDefaults returns a copy with unset optional fields filled in.
func (c Config) WithDefaults() Config {
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	return c
}
