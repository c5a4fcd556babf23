package file

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/guidedex/internal/core/domain"
)

// DefaultPath is the configuration file consulted when --config is not
// given.
const DefaultPath = "guidedex.toml"

const (
	// EnvToken is the guidedex-specific token environment variable.
	EnvToken = "GUIDEDEX_GITHUB_TOKEN"

	// EnvGitHubToken is the conventional fallback.
	EnvGitHubToken = "GITHUB_TOKEN"
)

// fileConfig mirrors the TOML schema. Timeout stays a string so the
// file can say "30s" rather than nanoseconds.
type fileConfig struct {
	Source sourceSection `toml:"source"`
}

type sourceSection struct {
	Type       string `toml:"type"`
	Path       string `toml:"path"`
	Repository string `toml:"repository"`
	Dir        string `toml:"dir"`
	Token      string `toml:"token"`
	Timeout    string `toml:"timeout"`
	Watch      bool   `toml:"watch"`
}

// Load reads a configuration file and resolves it into a validated
// [domain.Config].
func Load(path string) (domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Config{}, fmt.Errorf(
				"%w: config file %s not found", domain.ErrInvalidInput, path,
			)
		}
		return domain.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var parsed fileConfig
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return domain.Config{}, fmt.Errorf(
			"%w: parse %s: %v", domain.ErrInvalidInput, path, err,
		)
	}

	return resolve(parsed)
}

// resolve converts the file schema into a domain.Config, applying the
// environment fallback and defaults before validating.
func resolve(parsed fileConfig) (domain.Config, error) {
	cfg := domain.Config{
		SourceType: domain.SourceType(strings.ToLower(strings.TrimSpace(parsed.Source.Type))),
		BasePath:   parsed.Source.Path,
		Repository: parsed.Source.Repository,
		Dir:        parsed.Source.Dir,
		Token:      parsed.Source.Token,
		Watch:      parsed.Source.Watch,
	}

	if parsed.Source.Timeout != "" {
		timeout, err := time.ParseDuration(parsed.Source.Timeout)
		if err != nil {
			return domain.Config{}, fmt.Errorf(
				"%w: timeout %q: %v", domain.ErrInvalidInput, parsed.Source.Timeout, err,
			)
		}
		cfg.RequestTimeout = timeout
	}

	if cfg.Token == "" {
		cfg.Token = tokenFromEnv()
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func tokenFromEnv() string {
	if token := os.Getenv(EnvToken); token != "" {
		return token
	}
	return os.Getenv(EnvGitHubToken)
}
