// Package validation enforces the Conventional Commits policy on commit
// message files.
//
// Service drives a single run: it normalizes the message file, parses its
// structure, skips auto-generated messages, and applies the ordered rule
// pipeline, stopping at the first violation. CommandBuilder exposes the
// service as a Cobra command and Report renders failures with guidance.
package validation
