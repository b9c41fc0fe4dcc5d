package validation

import (
	"errors"
	"fmt"
	"strings"
)

const (
	reasonSeparatorConstant               = "\n"
	messageFileMissingMessageConstant     = "commit-msg: message file not provided or does not exist"
	messageFileUnreadableTemplateConstant = "commit-msg: unable to process message file: %v"
)

// FailureKind classifies why a commit message was rejected.
type FailureKind string

// Supported failure kinds.
const (
	FailureKindEmptyMessage            FailureKind = "EmptyMessage"
	FailureKindMalformedHeader         FailureKind = "MalformedHeader"
	FailureKindInvalidType             FailureKind = "InvalidType"
	FailureKindInvalidScope            FailureKind = "InvalidScope"
	FailureKindSubjectLength           FailureKind = "SubjectLength"
	FailureKindSubjectTrailingPeriod   FailureKind = "SubjectTrailingPeriod"
	FailureKindSubjectCasing           FailureKind = "SubjectCasing"
	FailureKindSubjectCharset          FailureKind = "SubjectCharset"
	FailureKindMissingBreakingFooter   FailureKind = "MissingBreakingFooter"
	FailureKindBodyLineTooLong         FailureKind = "BodyLineTooLong"
	FailureKindForbiddenContent        FailureKind = "ForbiddenContent"
	FailureKindMissingOrUnreadableFile FailureKind = "MissingOrUnreadableFile"
)

// Error reports a rule violation together with the human-readable reasons.
type Error struct {
	Kind    FailureKind
	Reasons []string
}

func newError(kind FailureKind, reasons ...string) *Error {
	return &Error{Kind: kind, Reasons: append([]string{}, reasons...)}
}

// Error joins the reasons with newlines.
func (validationError *Error) Error() string {
	return strings.Join(validationError.Reasons, reasonSeparatorConstant)
}

// FileError reports a message file that is missing or cannot be read or rewritten.
type FileError struct {
	Path  string
	Cause error
}

// Error renders the terse file access diagnostic.
func (fileError *FileError) Error() string {
	if fileError.Cause == nil {
		return messageFileMissingMessageConstant
	}
	return fmt.Sprintf(messageFileUnreadableTemplateConstant, fileError.Cause)
}

// Unwrap exposes the underlying file system error.
func (fileError *FileError) Unwrap() error {
	return fileError.Cause
}

// KindOf extracts the failure kind carried by err, if any.
func KindOf(err error) (FailureKind, bool) {
	var fileError *FileError
	if errors.As(err, &fileError) {
		return FailureKindMissingOrUnreadableFile, true
	}

	var validationError *Error
	if errors.As(err, &validationError) {
		return validationError.Kind, true
	}

	return "", false
}
