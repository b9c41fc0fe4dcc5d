package message

import (
	"errors"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

const (
	emptyMessageReasonConstant = "empty commit message"
	footerLinePatternConstant  = `^(BREAKING CHANGE|[A-Za-z0-9-]+):` + WhitespaceClass
)

var footerLinePattern = regexp.MustCompile(footerLinePatternConstant)

// ErrEmptyMessage indicates that no line of the message carries content.
var ErrEmptyMessage = errors.New(emptyMessageReasonConstant)

// Parsed is the structural view of a normalized message.
type Parsed struct {
	Lines            []string
	Header           string
	HeaderIndex      int
	Footers          []string
	FirstFooterIndex int
}

// Parse locates the header and the trailing footer block of the provided lines.
func Parse(lines []string) (Parsed, error) {
	header, headerIndex, headerError := FindHeader(lines)
	if headerError != nil {
		return Parsed{}, headerError
	}

	footers, firstFooterIndex := CollectFooters(lines)

	return Parsed{
		Lines:            lines,
		Header:           header,
		HeaderIndex:      headerIndex,
		Footers:          footers,
		FirstFooterIndex: firstFooterIndex,
	}, nil
}

// FindHeader returns the first line with non-whitespace content and its index.
func FindHeader(lines []string) (string, int, error) {
	for lineIndex, line := range lines {
		if IsBlank(line) {
			continue
		}
		return line, lineIndex, nil
	}
	return "", 0, ErrEmptyMessage
}

// CollectFooters scans upward from the last line, skipping blank lines, and
// stops at the first non-blank line that is not a trailer. It returns the
// non-blank lines from the topmost trailer onward and that trailer's index,
// or len(lines) when the message has no trailers.
//
// The scan does not stop at the header: a header that also reads as a
// trailer is reported as the first footer.
func CollectFooters(lines []string) ([]string, int) {
	firstFooterIndex := len(lines)
	for lineIndex := len(lines) - 1; lineIndex >= 0; lineIndex-- {
		line := lines[lineIndex]
		if IsBlank(line) {
			continue
		}
		if !MatchFooter(line) {
			break
		}
		firstFooterIndex = lineIndex
	}

	footers := lo.Reject(lines[firstFooterIndex:], func(line string, _ int) bool {
		return IsBlank(line)
	})
	return footers, firstFooterIndex
}

// MatchFooter reports whether the line reads as a "Token: value" trailer.
func MatchFooter(line string) bool {
	return footerLinePattern.MatchString(line)
}

// Text rejoins the message lines without a trailing newline.
func (parsed Parsed) Text() string {
	return strings.Join(parsed.Lines, lineFeedConstant)
}

// BodyRange reports the half-open range of line indexes between the header and
// the first footer.
func (parsed Parsed) BodyRange() (int, int) {
	bodyStart := parsed.HeaderIndex + 1
	bodyEnd := parsed.FirstFooterIndex
	if bodyEnd < bodyStart {
		bodyEnd = bodyStart
	}
	return bodyStart, bodyEnd
}
