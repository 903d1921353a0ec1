// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acm

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/acm-search/pkg/types"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func intPtr(n int) *int { return &n }

func TestParseResults(t *testing.T) {
	records, err := ParseResults(readFixture(t, "results.html"))
	require.NoError(t, err)
	require.Len(t, records, 3)

	want := types.ResultRecord{
		Title:     "Attention is all you need",
		Authors:   []string{"Ashish Vaswani", "Noam Shazeer", "Niki Parmar"},
		Venue:     "NIPS'17: Proceedings of the 31st International Conference on Neural Information Processing Systems",
		Link:      "https://dl.acm.org/doi/10.5555/3295222.3295349",
		DOI:       "https://doi.org/10.5555/3295222.3295349",
		Abstract:  "The dominant sequence transduction models are based on complex recurrent or convolutional neural networks.",
		PDFLink:   "https://dl.acm.org/doi/pdf/10.5555/3295222.3295349",
		Date:      "December 2017",
		Citations: intPtr(5201),
		Downloads: intPtr(102344),
	}
	assert.Equal(t, want, records[0])
}

func TestParseResultsSparseEntries(t *testing.T) {
	records, err := ParseResults(readFixture(t, "results.html"))
	require.NoError(t, err)
	require.Len(t, records, 3)

	second := records[1]
	assert.Equal(t, "Attention Is Not All You Need", second.Title)
	assert.Equal(t, "https://dl.acm.org/doi/10.1145/3394486.3403333", second.Link)
	assert.NotNil(t, second.Authors)
	assert.Empty(t, second.Authors)
	assert.Nil(t, second.Citations, "non-numeric counter should be omitted")
	assert.Empty(t, second.Venue)

	third := records[2]
	assert.Equal(t, "Self-Attention Without Links", third.Title)
	assert.Empty(t, third.Link)
}

func TestParseResultsDocumentOrder(t *testing.T) {
	records, err := ParseResults(readFixture(t, "results.html"))
	require.NoError(t, err)

	var titles []string
	for _, r := range records {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{
		"Attention is all you need",
		"Attention Is Not All You Need",
		"Self-Attention Without Links",
	}, titles)
}

func TestParseResultsResolvesAgainstBase(t *testing.T) {
	records, err := parseResults(readFixture(t, "results.html"), "http://127.0.0.1:8080", 0)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/doi/10.5555/3295222.3295349", records[0].Link)
	assert.Equal(t, "https://dl.acm.org/doi/10.1145/3394486.3403333", records[1].Link)
}

func TestParseResultsNoResults(t *testing.T) {
	records, err := ParseResults(readFixture(t, "no_results.html"))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestParseResultsEmptyContainer(t *testing.T) {
	records, err := ParseResults(`<html><body><ul class="search-result__xsl-body"></ul></body></html>`)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseResultsUnrecognized(t *testing.T) {
	html := readFixture(t, "unrecognized.html")
	_, err := ParseResults(html)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Snippet, "redesigned-results")
}

func TestParseResultsEntryWithoutTitle(t *testing.T) {
	_, err := ParseResults(readFixture(t, "untitled_entry.html"))

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Reason, "entry 2")
	assert.Contains(t, perr.Snippet, "Moved title")
}

func TestParseResultsStopsAtLimit(t *testing.T) {
	html := readFixture(t, "untitled_entry.html")

	records, err := parseResults(html, types.DefaultBaseURL, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "First", records[0].Title)

	_, err = parseResults(html, types.DefaultBaseURL, 2)
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseErrorSnippetSkipsHead(t *testing.T) {
	html := "<html><head><style>" + strings.Repeat(".x{color:red}", 500) +
		"</style></head><body><main class=\"redesigned\">new layout</main></body></html>"
	_, err := ParseResults(html)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.True(t, strings.HasPrefix(perr.Snippet, "<body>"))
	assert.Contains(t, perr.Snippet, "new layout")
	assert.NotContains(t, perr.Snippet, "color:red")
}

func TestParseErrorSnippetKeepsRunesWhole(t *testing.T) {
	// The odd prefix puts the byte limit in the middle of a two-byte rune.
	perr := newParseError("reason", "a"+strings.Repeat("é", snippetLimit))
	assert.True(t, utf8.ValidString(perr.Snippet))
	assert.Len(t, perr.Snippet, snippetLimit-1)
}

func TestParseErrorSnippetIsBounded(t *testing.T) {
	html := "<html><body>" + strings.Repeat("<p>filler</p>", 1000) + "</body></html>"
	_, err := ParseResults(html)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Len(t, perr.Snippet, snippetLimit)
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"42", intPtr(42)},
		{" 1,234 ", intPtr(1234)},
		{"0", intPtr(0)},
		{"12 345", intPtr(12345)},
		{"", nil},
		{"n/a", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseCount(tt.in), "parseCount(%q)", tt.in)
	}
}

func TestCollapse(t *testing.T) {
	assert.Equal(t, "a b c", collapse("  a\n\tb   c "))
	assert.Equal(t, "", collapse(" \n "))
}
