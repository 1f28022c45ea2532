package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zicht/zrefs/internal/git"
)

// ValidatePrefix checks that prefix names a ref namespace below refs/.
// A single trailing slash is allowed.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return errors.New("must not be empty")
	}
	if !strings.HasPrefix(prefix, "refs/") {
		return fmt.Errorf("must start with \"refs/\", got %q", prefix)
	}
	trimmed := strings.TrimSuffix(prefix, "/")
	if trimmed == "refs" {
		return fmt.Errorf("must name a namespace below refs/, got %q", prefix)
	}
	if err := git.ValidateRefName(trimmed); err != nil {
		return err
	}
	return nil
}

// validateRemoteName rejects remote names that git would parse as options
// or that cannot be passed as a single argument.
func validateRemoteName(remote string) error {
	if remote == "" {
		return nil
	}
	if strings.HasPrefix(remote, "-") {
		return fmt.Errorf("invalid remote %q: must not start with \"-\"", remote)
	}
	if strings.ContainsFunc(remote, isSpaceOrControl) {
		return fmt.Errorf("invalid remote %q: must not contain whitespace", remote)
	}
	return nil
}

func isSpaceOrControl(r rune) bool {
	return r <= ' ' || r == 0x7f
}
