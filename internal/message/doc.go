// Package message loads commit message files and derives their structure.
//
// Normalizer strips comment and template lines, unifies line endings, and
// rewrites the message file in place. Parse locates the header line and the
// trailing footer block that validation rules operate on.
package message
