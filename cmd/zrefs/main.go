package main

import (
	"fmt"
	"runtime"

	"github.com/zicht/zrefs/internal/refs"
)

// Version information - set by goreleaser
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	Execute()
}

// versionString returns the version string, including the number of
// registered commands so scripts calling "zrefs call" can tell builds apart.
func versionString() string {
	return fmt.Sprintf("zrefs %s (%s, %s, %s, %d commands)",
		version, commit[:min(7, len(commit))], date, runtime.Version(), len(refs.DefaultRegistry().Commands()))
}
