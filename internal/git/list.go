package git

import (
	"fmt"
	"slices"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Ref is a direct (non-symbolic) ref and the object it points to.
type Ref struct {
	Name string
	Hash string
}

// ListRefs returns all direct refs whose full name starts with prefix,
// sorted by name. Loose and packed refs are both included.
func ListRefs(dir, prefix string) ([]Ref, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", dir, err)
	}

	iter, err := repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to get references: %w", err)
	}
	defer iter.Close()

	var refs []Ref
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name().String()
		if !strings.HasPrefix(name, prefix) {
			return nil
		}
		refs = append(refs, Ref{Name: name, Hash: ref.Hash().String()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(refs, func(a, b Ref) int {
		return strings.Compare(a.Name, b.Name)
	})
	return refs, nil
}
