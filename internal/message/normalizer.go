package message

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	textunicode "golang.org/x/text/encoding/unicode"
)

const (
	carriageReturnLineFeedConstant         = "\r\n"
	carriageReturnConstant                 = "\r"
	lineFeedConstant                       = "\n"
	messageFilePermissionsConstant         = fs.FileMode(0o644)
	fileSystemMissingMessageConstant       = "file system not configured"
	messageFileReadErrorTemplateConstant   = "unable to read message file %s: %w"
	messageFileWriteErrorTemplateConstant  = "unable to rewrite message file %s: %w"
	messageFileDecodeErrorTemplateConstant = "unable to decode message file %s: %w"
	messagePathRequiredMessageConstant     = "message file path must be provided"
	commentLinePatternConstant             = `^` + WhitespaceClass + `*#`
	shellPromptLinePrefixConstant          = "$"
	bracketedShellPromptLinePrefixConstant = "[$"
)

var commentLinePattern = regexp.MustCompile(commentLinePatternConstant)

// ErrFileSystemNotConfigured indicates the normalizer was constructed without file access.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// ErrMessagePathRequired indicates an empty message file path.
var ErrMessagePathRequired = errors.New(messagePathRequiredMessageConstant)

// FileSystem exposes the file operations required to normalize a message file.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, permissions fs.FileMode) error
}

// Normalizer rewrites message files into their sanitized form.
type Normalizer struct {
	fileSystem FileSystem
}

// NewNormalizer constructs a Normalizer backed by the provided file system.
func NewNormalizer(fileSystem FileSystem) (*Normalizer, error) {
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &Normalizer{fileSystem: fileSystem}, nil
}

// NormalizeFile reads the message file, removes comment and template lines, and
// writes the sanitized text back before returning the retained lines. Ill-formed
// UTF-8 is rewritten as U+FFFD.
func (normalizer *Normalizer) NormalizeFile(messagePath string) ([]string, error) {
	if len(messagePath) == 0 {
		return nil, ErrMessagePathRequired
	}

	contentBytes, readError := normalizer.fileSystem.ReadFile(messagePath)
	if readError != nil {
		return nil, fmt.Errorf(messageFileReadErrorTemplateConstant, messagePath, readError)
	}

	decodedBytes, decodeError := textunicode.UTF8.NewDecoder().Bytes(contentBytes)
	if decodeError != nil {
		return nil, fmt.Errorf(messageFileDecodeErrorTemplateConstant, messagePath, decodeError)
	}

	lines := Normalize(string(decodedBytes))

	writeError := normalizer.fileSystem.WriteFile(messagePath, []byte(Render(lines)), messageFilePermissionsConstant)
	if writeError != nil {
		return nil, fmt.Errorf(messageFileWriteErrorTemplateConstant, messagePath, writeError)
	}

	return lines, nil
}

// Normalize collapses line endings and drops comment, shell prompt, and
// bracketed shell prompt lines. The remaining lines are returned verbatim.
func Normalize(text string) []string {
	unifiedText := strings.ReplaceAll(text, carriageReturnLineFeedConstant, lineFeedConstant)
	unifiedText = strings.ReplaceAll(unifiedText, carriageReturnConstant, lineFeedConstant)

	rawLines := strings.Split(unifiedText, lineFeedConstant)
	retainedLines := make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		if isTemplateLine(line) {
			continue
		}
		retainedLines = append(retainedLines, line)
	}
	return retainedLines
}

// Render joins lines and appends a newline when the joined text does not
// already end with one.
func Render(lines []string) string {
	joinedText := strings.Join(lines, lineFeedConstant)
	if !strings.HasSuffix(joinedText, lineFeedConstant) {
		joinedText += lineFeedConstant
	}
	return joinedText
}

func isTemplateLine(line string) bool {
	switch {
	case commentLinePattern.MatchString(line):
		return true
	case strings.HasPrefix(line, shellPromptLinePrefixConstant):
		return true
	case strings.HasPrefix(line, bracketedShellPromptLinePrefixConstant):
		return true
	default:
		return false
	}
}
