// Package pkg holds identity metadata for the glass module.
//
//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the glass module embedded at build time,
// without surrounding whitespace.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier used across the
	// project, for example in help text, diagnostics and default config paths.
	Name = "glass"
	// Description is a short, human-readable summary of the project used in
	// help output.
	Description = "Expression language interpreter"
	// Extension is the conventional file extension of glass source files.
	Extension = ".glass"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
