package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/temirov/commitmsg/internal/message"
)

const (
	headerPatternConstant              = `^([a-z]+)(\(([^)]+)\))?(!)?:` + message.WhitespaceClass + `*(.+)$`
	scopePatternConstant               = `^[A-Za-z0-9/-]+$`
	subjectCharsetPatternConstant      = `^[a-z0-9 \-_/():,#+]*$`
	ignoreMarkerPatternConstant        = `-+` + message.WhitespaceClass + `+IGNORE` + message.WhitespaceClass + `*-+`
	diffMarkerPatternConstant          = `(?m)^(diff --git |\+\+\+ |--- |@@ )`
	headerTypeGroupIndexConstant       = 1
	headerScopeGroupIndexConstant      = 3
	headerBreakingGroupIndexConstant   = 4
	headerSubjectGroupIndexConstant    = 5
	subjectMinimumLengthConstant       = 1
	subjectMaximumLengthConstant       = 50
	bodyLineMaximumLengthConstant      = 72
	subjectTrailingPeriodConstant      = "."
	subjectExclamationConstant         = "!"
	breakingChangeFooterPrefixConstant = "BREAKING CHANGE: "

	malformedHeaderReasonConstant         = "header must match '<type>(<scope>)!: <subject>'"
	invalidTypeReasonTemplateConstant     = "invalid type '%s'"
	invalidScopeReasonTemplateConstant    = "scope '%s' must match ^[A-Za-z0-9/-]+$"
	subjectLengthReasonTemplateConstant   = "subject must be 1-50 chars (got %d)"
	subjectTrailingPeriodReasonConstant   = "subject must not end with a period"
	subjectCasingReasonConstant           = "subject must start with a lowercase letter"
	subjectCharsetReasonConstant          = "subject contains invalid characters; allowed: [a-z0-9 -_/():,#+]"
	subjectExclamationReasonConstant      = "subject contains invalid characters; '!' is not allowed"
	missingBreakingFooterReasonConstant   = "'!' in header requires a 'BREAKING CHANGE:' footer explaining the change"
	bodyLineTooLongReasonTemplateConstant = "body line %d exceeds 72 chars"
	forbiddenMarkerReasonConstant         = "commit message contains forbidden internal markers"
	forbiddenDiffReasonConstant           = "commit message appears to contain a raw diff; remove patch content"
)

var (
	headerPattern         = regexp.MustCompile(headerPatternConstant)
	scopePattern          = regexp.MustCompile(scopePatternConstant)
	subjectCharsetPattern = regexp.MustCompile(subjectCharsetPatternConstant)
	ignoreMarkerPattern   = regexp.MustCompile(ignoreMarkerPatternConstant)
	diffMarkerPattern     = regexp.MustCompile(diffMarkerPatternConstant)
)

// AllowedTypes lists the commit types accepted in headers.
var AllowedTypes = []string{"feat", "fix", "refactor", "fmt", "test", "docs", "build", "chore"}

// Header holds the components of a header line matched by the header grammar.
type Header struct {
	Type     string
	Scope    string
	Breaking bool
	Subject  string
}

// ParseHeader matches the header grammar without applying any of the type,
// scope, or subject constraints.
func ParseHeader(header string) (Header, bool) {
	matches := headerPattern.FindStringSubmatch(header)
	if matches == nil {
		return Header{}, false
	}
	return Header{
		Type:     matches[headerTypeGroupIndexConstant],
		Scope:    matches[headerScopeGroupIndexConstant],
		Breaking: len(matches[headerBreakingGroupIndexConstant]) > 0,
		Subject:  matches[headerSubjectGroupIndexConstant],
	}, true
}

// Validate applies the rule pipeline to a parsed message and returns the first violation.
func Validate(parsed message.Parsed) error {
	if forbiddenError := CheckForbiddenContent(parsed.Text()); forbiddenError != nil {
		return forbiddenError
	}

	header, headerError := ValidateHeader(parsed.Header)
	if headerError != nil {
		return headerError
	}

	if breakingError := CheckBreakingFooter(header, parsed.Footers); breakingError != nil {
		return breakingError
	}

	return ValidateBody(parsed)
}

// CheckForbiddenContent rejects internal IGNORE markers and raw diff content.
func CheckForbiddenContent(text string) error {
	if ignoreMarkerPattern.MatchString(text) {
		return newError(FailureKindForbiddenContent, forbiddenMarkerReasonConstant)
	}
	if diffMarkerPattern.MatchString(text) {
		return newError(FailureKindForbiddenContent, forbiddenDiffReasonConstant)
	}
	return nil
}

// ValidateHeader matches the header grammar and checks type, scope, and subject constraints in order.
func ValidateHeader(headerLine string) (Header, error) {
	header, matched := ParseHeader(headerLine)
	if !matched {
		return Header{}, newError(FailureKindMalformedHeader, malformedHeaderReasonConstant)
	}

	if !lo.Contains(AllowedTypes, header.Type) {
		return Header{}, newError(FailureKindInvalidType, fmt.Sprintf(invalidTypeReasonTemplateConstant, header.Type))
	}

	if len(header.Scope) > 0 && !scopePattern.MatchString(header.Scope) {
		return Header{}, newError(FailureKindInvalidScope, fmt.Sprintf(invalidScopeReasonTemplateConstant, header.Scope))
	}

	if subjectError := validateSubject(header.Subject); subjectError != nil {
		return Header{}, subjectError
	}

	return header, nil
}

func validateSubject(subject string) error {
	subjectLength := utf8.RuneCountInString(subject)
	if subjectLength < subjectMinimumLengthConstant || subjectLength > subjectMaximumLengthConstant {
		return newError(FailureKindSubjectLength, fmt.Sprintf(subjectLengthReasonTemplateConstant, subjectLength))
	}

	if strings.HasSuffix(subject, subjectTrailingPeriodConstant) {
		return newError(FailureKindSubjectTrailingPeriod, subjectTrailingPeriodReasonConstant)
	}

	firstRune, _ := utf8.DecodeRuneInString(subject)
	if !unicode.IsLower(firstRune) {
		return newError(FailureKindSubjectCasing, subjectCasingReasonConstant)
	}

	if !subjectCharsetPattern.MatchString(subject) {
		return newError(FailureKindSubjectCharset, subjectCharsetReasonConstant)
	}

	// Unreachable while the charset excludes '!'.
	if strings.Contains(subject, subjectExclamationConstant) {
		return newError(FailureKindSubjectCharset, subjectExclamationReasonConstant)
	}

	return nil
}

// CheckBreakingFooter requires a "BREAKING CHANGE: " footer when the header carries the breaking flag.
func CheckBreakingFooter(header Header, footers []string) error {
	if !header.Breaking {
		return nil
	}

	hasBreakingFooter := lo.SomeBy(footers, func(footer string) bool {
		return strings.HasPrefix(footer, breakingChangeFooterPrefixConstant)
	})
	if hasBreakingFooter {
		return nil
	}

	return newError(FailureKindMissingBreakingFooter, missingBreakingFooterReasonConstant)
}

// ValidateBody rejects non-blank body lines longer than the wrap limit, citing the 1-based line number.
func ValidateBody(parsed message.Parsed) error {
	bodyStart, bodyEnd := parsed.BodyRange()
	for lineIndex := bodyStart; lineIndex < bodyEnd; lineIndex++ {
		line := parsed.Lines[lineIndex]
		if message.IsBlank(line) {
			continue
		}
		if utf8.RuneCountInString(line) > bodyLineMaximumLengthConstant {
			return newError(FailureKindBodyLineTooLong, fmt.Sprintf(bodyLineTooLongReasonTemplateConstant, lineIndex+1))
		}
	}
	return nil
}
