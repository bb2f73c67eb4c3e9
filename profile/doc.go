// Package profile provides optional runtime profiling for the glass
// interpreter.
//
// Profiling is built on [github.com/pkg/profile] and must be enabled at build
// time with the "pprof" build tag. Without the tag, [Enabled] is false,
// [Modes] is empty and [Config.Start] always returns a no-op [Stopper].
//
//	go build -tags pprof ./...
//	glass --pprof-mode cpu -e '2 ** 10'
//	go tool pprof -http=: ~/.cache/glass/pprof/cpu.pprof
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     blocking (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      live heap profiling
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution tracing
//
// Profile files are written to the configured directory with names matching
// the mode, such as cpu.pprof or mem.pprof.
package profile
