package github

import (
	"fmt"
	"path"
	"strings"

	"github.com/custodia-labs/guidedex/internal/core/domain"
)

// ParseRepository splits an "owner/repo[@ref]" specification into its
// parts. The ref is empty when none is given.
func ParseRepository(spec string) (owner, repo, ref string, err error) {
	s := strings.TrimSpace(spec)

	if at := strings.Index(s, "@"); at != -1 {
		ref = strings.TrimSpace(s[at+1:])
		s = s[:at]
		if ref == "" {
			return "", "", "", fmt.Errorf(
				"%w: repository %q has an empty ref", domain.ErrInvalidInput, spec,
			)
		}
	}

	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", fmt.Errorf(
			"%w: repository %q, want owner/repo[@ref]", domain.ErrInvalidInput, spec,
		)
	}

	return parts[0], parts[1], ref, nil
}

// normaliseDir cleans a corpus directory to a bare slash-separated
// relative path. Empty and "." both mean the repository root.
func normaliseDir(dir string) (string, error) {
	cleaned := path.Clean(strings.TrimSpace(dir))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "." || cleaned == "" {
		return "", nil
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: directory %q escapes the repository", domain.ErrInvalidInput, dir)
	}
	return strings.TrimSuffix(cleaned, "/"), nil
}
