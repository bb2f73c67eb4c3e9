// Package cli contains the command line interface for glass.
//
// # Usage
//
// With no subcommand, glass evaluates a program and prints its value:
//
//	glass program.glass
//	echo '1 + 2' | glass
//	glass -e '[1, 2] + [3]' -o json
//
// The tokens and ast subcommands print intermediate stages of the same
// program, init writes a configuration file, and version prints the
// version.
//
// # Configuration
//
// Global flags may also be set in the configuration directory, in
// config.yaml (as written by init) or in config.glass, a glass program that
// evaluates to a dictionary:
//
//	{log: {level: "debug"}, color: false}
//
// Nested keys are joined with "-" to form flag names, and "_" may stand in
// for "-". Command-line flags override configuration files.
//
// # Logging Options
//
//   - --log-level: trace, debug, info, warn or error
//   - --log-format: text or json
//   - --log-time-layout: a time layout name such as RFC3339 or kitchen, or none
//   - --[no-]log-caller: include the source location of each message
//   - --[no-]log-pretty: human-oriented layout
//
// Logger flags take effect before the command line is fully parsed, so they
// also apply to messages about parse failures.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o glass .
//
// It adds these flags:
//
//   - --pprof-mode: allocs, block, clock, cpu, goroutine, heap, mem, mutex,
//     thread or trace
//   - --pprof-dir: profile output directory
package cli
