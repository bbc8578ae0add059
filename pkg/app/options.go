package app

import (
	cliflag "k8s.io/component-base/cli/flag"
)

// CliOptions abstracts configuration options for reading parameters from the
// command line.
type CliOptions interface {
	// Flags returns the named flag sets the command should expose.
	Flags() cliflag.NamedFlagSets

	// Complete fills in any fields not set that are required to have valid data.
	Complete() error

	// Validate checks the options and returns an aggregate error.
	Validate() error
}

// NamedFlagSetOptions is implemented by the options struct of every binary.
type NamedFlagSetOptions interface {
	CliOptions
}
