package message_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/commitmsg/internal/message"
)

func TestFindHeader(t *testing.T) {
	testCases := []struct {
		name           string
		lines          []string
		expectedHeader string
		expectedIndex  int
		expectEmpty    bool
	}{
		{
			name:           "FirstLine",
			lines:          []string{"feat: add flag", "", "body"},
			expectedHeader: "feat: add flag",
			expectedIndex:  0,
		},
		{
			name:           "LeadingBlankLinesSkipped",
			lines:          []string{"", "   ", "\t", "fix: handle input"},
			expectedHeader: "fix: handle input",
			expectedIndex:  3,
		},
		{
			name:           "UnicodeWhitespaceLinesSkipped",
			lines:          []string{"\u00a0", "\v\u3000", "\x1c", "fix: handle input"},
			expectedHeader: "fix: handle input",
			expectedIndex:  3,
		},
		{
			name:        "OnlyBlankLines",
			lines:       []string{"", "  ", ""},
			expectEmpty: true,
		},
		{
			name:        "NoLines",
			lines:       nil,
			expectEmpty: true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			header, headerIndex, headerError := message.FindHeader(testCase.lines)
			if testCase.expectEmpty {
				require.ErrorIs(t, headerError, message.ErrEmptyMessage)
				return
			}
			require.NoError(t, headerError)
			require.Equal(t, testCase.expectedHeader, header)
			require.Equal(t, testCase.expectedIndex, headerIndex)
		})
	}
}

func TestCollectFooters(t *testing.T) {
	testCases := []struct {
		name               string
		lines              []string
		expectedFooters    []string
		expectedFirstIndex int
	}{
		{
			name:               "NoFooters",
			lines:              []string{"feat!: drop api", "", "plain body", ""},
			expectedFooters:    []string{},
			expectedFirstIndex: 4,
		},
		{
			name:               "SingleBreakingChangeFooter",
			lines:              []string{"feat!: drop api", "", "BREAKING CHANGE: api removed", ""},
			expectedFooters:    []string{"BREAKING CHANGE: api removed"},
			expectedFirstIndex: 2,
		},
		{
			name:               "BlankLinesInsideFooterBlockSkipped",
			lines:              []string{"fix: handle input", "", "body text", "", "Refs: 42", "", "Signed-off-by: dev", ""},
			expectedFooters:    []string{"Refs: 42", "Signed-off-by: dev"},
			expectedFirstIndex: 4,
		},
		{
			name:               "TokenWithDigits",
			lines:              []string{"fix: handle input", "", "body text", "", "Co-authored-by2: dev"},
			expectedFooters:    []string{"Co-authored-by2: dev"},
			expectedFirstIndex: 4,
		},
		{
			name:               "NonTrailerStopsScan",
			lines:              []string{"fix: handle input", "", "Refs: 1", "body text", "Refs: 2"},
			expectedFooters:    []string{"Refs: 2"},
			expectedFirstIndex: 4,
		},
		{
			name:               "TokenWithSpacesIsNotTrailer",
			lines:              []string{"fix: handle input", "", "Not A Token: value"},
			expectedFooters:    []string{},
			expectedFirstIndex: 3,
		},
		{
			name:               "ColonWithoutWhitespaceIsNotTrailer",
			lines:              []string{"fix: handle input", "", "Refs:42"},
			expectedFooters:    []string{},
			expectedFirstIndex: 3,
		},
		{
			name:               "NoBreakSpaceAfterColon",
			lines:              []string{"fix: handle input", "", "body text", "Refs:\u00a042"},
			expectedFooters:    []string{"Refs:\u00a042"},
			expectedFirstIndex: 3,
		},
		{
			name:               "VerticalTabAfterColon",
			lines:              []string{"fix: handle input", "", "body text", "Refs:\v42", "\u00a0"},
			expectedFooters:    []string{"Refs:\v42"},
			expectedFirstIndex: 3,
		},
		{
			name:               "SingleLineHeaderReadsAsTrailer",
			lines:              []string{"chore: update", ""},
			expectedFooters:    []string{"chore: update"},
			expectedFirstIndex: 0,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			footers, firstFooterIndex := message.CollectFooters(testCase.lines)
			require.Equal(t, testCase.expectedFooters, footers)
			require.Equal(t, testCase.expectedFirstIndex, firstFooterIndex)
		})
	}
}

func TestParse(t *testing.T) {
	lines := []string{"", "feat(cli): add terse output flag", "", "adds a flag", "", "Refs: 7", ""}

	parsed, parseError := message.Parse(lines)
	require.NoError(t, parseError)
	require.Equal(t, "feat(cli): add terse output flag", parsed.Header)
	require.Equal(t, 1, parsed.HeaderIndex)
	require.Equal(t, []string{"Refs: 7"}, parsed.Footers)
	require.Equal(t, 5, parsed.FirstFooterIndex)
	require.Equal(t, "\nfeat(cli): add terse output flag\n\nadds a flag\n\nRefs: 7\n", parsed.Text())

	bodyStart, bodyEnd := parsed.BodyRange()
	require.Equal(t, 2, bodyStart)
	require.Equal(t, 5, bodyEnd)
}

func TestParseHeaderReadAsFooterHasEmptyBody(t *testing.T) {
	parsed, parseError := message.Parse([]string{"chore: update", ""})
	require.NoError(t, parseError)
	require.Equal(t, 0, parsed.HeaderIndex)
	require.Equal(t, 0, parsed.FirstFooterIndex)

	bodyStart, bodyEnd := parsed.BodyRange()
	require.Equal(t, bodyStart, bodyEnd)
}

func TestParseEmptyMessage(t *testing.T) {
	_, parseError := message.Parse([]string{"", ""})
	require.ErrorIs(t, parseError, message.ErrEmptyMessage)
}

func TestMatchFooter(t *testing.T) {
	require.True(t, message.MatchFooter("BREAKING CHANGE: removed api"))
	require.True(t, message.MatchFooter("Signed-off-by: dev <dev@example.com>"))
	require.True(t, message.MatchFooter("Refs:\t42"))
	require.True(t, message.MatchFooter("Refs:\u00a042"))
	require.True(t, message.MatchFooter("BREAKING CHANGE:\vremoved api"))
	require.False(t, message.MatchFooter("Refs:\u200b42"))
	require.False(t, message.MatchFooter("BREAKING-CHANGE removed"))
	require.False(t, message.MatchFooter("feat(cli): add flag"))
	require.False(t, message.MatchFooter("feat!: drop api"))
}
