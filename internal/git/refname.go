package git

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRefName is returned for names git would refuse as a ref.
var ErrInvalidRefName = errors.New("invalid ref name")

// ErrInvalidRevision is returned for revisions that cannot be passed to git safely.
var ErrInvalidRevision = errors.New("invalid revision")

// ValidateRefName checks name against the rules of git check-ref-format
// (without --allow-onelevel relaxations or --normalize).
func ValidateRefName(name string) error {
	invalid := func(reason string) error {
		return fmt.Errorf("%w %q: %s", ErrInvalidRefName, name, reason)
	}

	switch {
	case name == "":
		return invalid("empty")
	case name == "@":
		return invalid("\"@\" is reserved")
	case strings.HasSuffix(name, "/"):
		return invalid("ends with \"/\"")
	case strings.HasSuffix(name, "."):
		return invalid("ends with \".\"")
	case strings.Contains(name, ".."):
		return invalid("contains \"..\"")
	case strings.Contains(name, "@{"):
		return invalid("contains \"@{\"")
	}

	for _, r := range name {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(" ~^:?*[\\", r) {
			return invalid(fmt.Sprintf("contains %q", r))
		}
	}

	for _, component := range strings.Split(name, "/") {
		switch {
		case component == "":
			return invalid("contains an empty path component")
		case strings.HasPrefix(component, "."):
			return invalid("path component starts with \".\"")
		case strings.HasSuffix(component, ".lock"):
			return invalid("path component ends with \".lock\"")
		}
	}
	return nil
}

// ValidateRevision rejects revisions that git would parse as an option or
// that cannot be passed as a single argument. It does not check that the
// revision exists.
func ValidateRevision(rev string) error {
	switch {
	case rev == "":
		return fmt.Errorf("%w: empty", ErrInvalidRevision)
	case strings.HasPrefix(rev, "-"):
		return fmt.Errorf("%w %q: must not start with \"-\"", ErrInvalidRevision, rev)
	}
	for _, r := range rev {
		if r <= ' ' || r == 0x7f {
			return fmt.Errorf("%w %q: contains whitespace or control characters", ErrInvalidRevision, rev)
		}
	}
	return nil
}
