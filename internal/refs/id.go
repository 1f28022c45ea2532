package refs

import "strings"

// ID identifies a command by its name segments, e.g. ID{"refs", "path"}.
type ID []string

// ParseID splits a dotted name such as "refs.local.exists" into an ID.
func ParseID(name string) ID {
	if name == "" {
		return nil
	}
	return ID(strings.Split(name, "."))
}

// String joins the segments with dots.
func (id ID) String() string {
	return strings.Join(id, ".")
}
