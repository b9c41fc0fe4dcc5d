package message_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/commitmsg/internal/filesystem"
	"github.com/temirov/commitmsg/internal/message"
)

const (
	testMessageFileNameConstant = "COMMIT_EDITMSG"
)

type failingWriteFileSystem struct {
	content []byte
}

func (fileSystem failingWriteFileSystem) ReadFile(path string) ([]byte, error) {
	return fileSystem.content, nil
}

func (fileSystem failingWriteFileSystem) WriteFile(path string, data []byte, permissions fs.FileMode) error {
	return errors.New("read-only file system")
}

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedLines []string
	}{
		{
			name:          "CommentLineRemoved",
			input:         "feat: add flag\n# this is a comment\n",
			expectedLines: []string{"feat: add flag", ""},
		},
		{
			name:          "IndentedCommentLineRemoved",
			input:         "feat: add flag\n   # indented comment\n",
			expectedLines: []string{"feat: add flag", ""},
		},
		{
			name:          "NoBreakSpaceIndentedCommentRemoved",
			input:         "feat: add flag\n\u00a0# indented with a no-break space\n",
			expectedLines: []string{"feat: add flag", ""},
		},
		{
			name:          "VerticalTabIndentedCommentRemoved",
			input:         "feat: add flag\n\v# indented with a vertical tab\n",
			expectedLines: []string{"feat: add flag", ""},
		},
		{
			name:          "ShellPromptLineRemoved",
			input:         "feat: add flag\n$ shell prompt\n",
			expectedLines: []string{"feat: add flag", ""},
		},
		{
			name:          "BracketedShellPromptLineRemoved",
			input:         "feat: add flag\n[$ bracketed prompt\n",
			expectedLines: []string{"feat: add flag", ""},
		},
		{
			name:          "CarriageReturnLineFeedCollapsed",
			input:         "feat: add flag\r\n\r\nbody text\r\n",
			expectedLines: []string{"feat: add flag", "", "body text", ""},
		},
		{
			name:          "BareCarriageReturnCollapsed",
			input:         "feat: add flag\rbody text",
			expectedLines: []string{"feat: add flag", "body text"},
		},
		{
			name:          "HashInsideLinePreserved",
			input:         "fix: handle issue #42\nsee a#b for details\n",
			expectedLines: []string{"fix: handle issue #42", "see a#b for details", ""},
		},
		{
			name:          "DollarInsideLinePreserved",
			input:         "  $ not at line start\n",
			expectedLines: []string{"  $ not at line start", ""},
		},
		{
			name:          "EmptyInput",
			input:         "",
			expectedLines: []string{""},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expectedLines, message.Normalize(testCase.input))
		})
	}
}

func TestRenderAppendsTrailingNewline(t *testing.T) {
	require.Equal(t, "feat: add flag\n", message.Render([]string{"feat: add flag"}))
	require.Equal(t, "feat: add flag\n", message.Render([]string{"feat: add flag", ""}))
	require.Equal(t, "\n", message.Render([]string{""}))
}

func TestNormalizeFileRewritesMessage(t *testing.T) {
	messagePath := filepath.Join(t.TempDir(), testMessageFileNameConstant)
	require.NoError(t, os.WriteFile(messagePath, []byte("feat: add flag\r\n# Please enter the commit message\r\n\r\nbody text"), 0o600))

	normalizer, constructionError := message.NewNormalizer(filesystem.OSFileSystem{})
	require.NoError(t, constructionError)

	lines, normalizeError := normalizer.NormalizeFile(messagePath)
	require.NoError(t, normalizeError)
	require.Equal(t, []string{"feat: add flag", "", "body text"}, lines)

	rewrittenContent, readError := os.ReadFile(messagePath)
	require.NoError(t, readError)
	require.Equal(t, "feat: add flag\n\nbody text\n", string(rewrittenContent))
}

func TestNormalizeFileReplacesIllFormedBytes(t *testing.T) {
	messagePath := filepath.Join(t.TempDir(), testMessageFileNameConstant)
	require.NoError(t, os.WriteFile(messagePath, []byte("feat: add \xff flag\n\nbody \xff\xfe text\n"), 0o600))

	normalizer, constructionError := message.NewNormalizer(filesystem.OSFileSystem{})
	require.NoError(t, constructionError)

	lines, normalizeError := normalizer.NormalizeFile(messagePath)
	require.NoError(t, normalizeError)
	require.Equal(t, []string{"feat: add \ufffd flag", "", "body \ufffd\ufffd text", ""}, lines)

	rewrittenContent, readError := os.ReadFile(messagePath)
	require.NoError(t, readError)
	require.Equal(t, "feat: add \xef\xbf\xbd flag\n\nbody \xef\xbf\xbd\xef\xbf\xbd text\n", string(rewrittenContent))
}

func TestNormalizeFileIsIdempotent(t *testing.T) {
	messagePath := filepath.Join(t.TempDir(), testMessageFileNameConstant)
	require.NoError(t, os.WriteFile(messagePath, []byte("fix: handle input\n# comment\n$ prompt\n\nwrapped body\n"), 0o600))

	normalizer, constructionError := message.NewNormalizer(filesystem.OSFileSystem{})
	require.NoError(t, constructionError)

	firstLines, firstError := normalizer.NormalizeFile(messagePath)
	require.NoError(t, firstError)
	firstContent, firstReadError := os.ReadFile(messagePath)
	require.NoError(t, firstReadError)

	secondLines, secondError := normalizer.NormalizeFile(messagePath)
	require.NoError(t, secondError)
	secondContent, secondReadError := os.ReadFile(messagePath)
	require.NoError(t, secondReadError)

	require.Equal(t, firstLines, secondLines)
	require.Equal(t, string(firstContent), string(secondContent))
	require.Equal(t, "fix: handle input\n\nwrapped body\n", string(secondContent))
}

func TestNormalizeFileKeepsPermissions(t *testing.T) {
	messagePath := filepath.Join(t.TempDir(), testMessageFileNameConstant)
	require.NoError(t, os.WriteFile(messagePath, []byte("feat: add flag\n"), 0o600))

	normalizer, constructionError := message.NewNormalizer(filesystem.OSFileSystem{})
	require.NoError(t, constructionError)

	_, normalizeError := normalizer.NormalizeFile(messagePath)
	require.NoError(t, normalizeError)

	fileInfo, statError := os.Stat(messagePath)
	require.NoError(t, statError)
	require.Equal(t, fs.FileMode(0o600), fileInfo.Mode().Perm())
}

func TestNormalizeFileErrors(t *testing.T) {
	_, constructionError := message.NewNormalizer(nil)
	require.ErrorIs(t, constructionError, message.ErrFileSystemNotConfigured)

	normalizer, constructionError := message.NewNormalizer(filesystem.OSFileSystem{})
	require.NoError(t, constructionError)

	_, emptyPathError := normalizer.NormalizeFile("")
	require.ErrorIs(t, emptyPathError, message.ErrMessagePathRequired)

	_, missingFileError := normalizer.NormalizeFile(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, missingFileError)
	require.True(t, errors.Is(missingFileError, fs.ErrNotExist))

	writeFailingNormalizer, writeFailingConstructionError := message.NewNormalizer(failingWriteFileSystem{content: []byte("feat: add flag\n")})
	require.NoError(t, writeFailingConstructionError)
	_, writeError := writeFailingNormalizer.NormalizeFile(testMessageFileNameConstant)
	require.ErrorContains(t, writeError, "unable to rewrite message file")
}
