package validation

import (
	"strings"
)

const (
	reportLineSeparatorConstant = "\n"
	reportReasonPrefixConstant  = "  - "
	reportTitleConstant         = "commit message validation failed:"
)

var reportGuidanceLines = []string{
	"",
	"Expected header: <type>(<scope>)!: <subject>",
	"Where:",
	"  - type one of: feat|fix|refactor|fmt|test|docs|build|chore",
	"  - scope (optional) matches ^[A-Za-z0-9/-]+$",
	"  - ! (optional) indicates breaking change and REQUIRES a 'BREAKING CHANGE:' footer",
	"  - subject: 1-50 chars, lowercase start, allowed: [a-z0-9 \\ -_/():,#+], no trailing .",
	"",
	"Body (optional): lines wrapped to <= 72 chars.",
	"Footers (optional): one trailer per line, e.g. 'BREAKING CHANGE: ...'",
	"",
	"Examples:",
	"  feat(cli): add terse output flag",
	"  fix: handle empty input without panic",
}

// Report is the diagnostic shown when a commit message is rejected.
type Report struct {
	Kind    FailureKind
	Reasons []string
}

// NewReport builds a Report from a validation failure.
func NewReport(validationError *Error) *Report {
	if validationError == nil {
		return &Report{}
	}
	return &Report{Kind: validationError.Kind, Reasons: append([]string{}, validationError.Reasons...)}
}

// Unwrap exposes the underlying validation failure.
func (report *Report) Unwrap() error {
	return newError(report.Kind, report.Reasons...)
}

// Error renders the failure reasons followed by the header, body, and footer guidance.
func (report *Report) Error() string {
	renderedLines := make([]string, 0, 1+len(report.Reasons)+len(reportGuidanceLines))
	renderedLines = append(renderedLines, reportTitleConstant)
	for _, reason := range report.Reasons {
		renderedLines = append(renderedLines, reportReasonPrefixConstant+reason)
	}
	renderedLines = append(renderedLines, reportGuidanceLines...)
	return strings.Join(renderedLines, reportLineSeparatorConstant)
}
