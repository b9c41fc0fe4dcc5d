// Package cli constructs the commit-msg command-line interface, wiring the
// Cobra command, configuration loader, and structured logging primitives
// around the commit message validation service.
package cli
