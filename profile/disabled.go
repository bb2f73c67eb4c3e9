//go:build !pprof

package profile

// Enabled reports whether the binary was built with profiling support.
const Enabled = false

// Modes returns nil when built without the pprof tag.
func Modes() []string { return nil }

func start(Config) Stopper { return ignore{} }
