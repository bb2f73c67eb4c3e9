// Package cmd implements the glass subcommands.
//
// Each command is a kong command struct with a Run method taking a
// [context.Context]. Commands find their environment in that context:
//
//   - [WithContext] stores the parsed [kong.Context].
//   - [WithIO] stores the input and output streams.
//   - [WithSettings] stores the global options shared by all commands.
//
// Commands that read a program embed [Source], which selects a file,
// standard input or inline text given with -e.
//
// Language failures are returned as [lang.Diagnostic] values so the caller
// can lay them out with [Report]. Every other failure is an [*Error] derived
// from one of the sentinels in this package.
package cmd
