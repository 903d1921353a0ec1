// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acm

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/pdiddy/acm-search/internal/browser"
)

// Error kinds returned by the searcher. Every kind is terminal for the call
// that produced it; nothing is retried.
var (
	ErrDriverNotFound = browser.ErrDriverNotFound
	ErrNavigation     = errors.New("navigation failed")
	ErrResultsTimeout = errors.New("results did not render in time")
	ErrParse          = errors.New("results page not recognized")
	ErrEmptyQuery     = errors.New("query is empty: provide a paper title")
	ErrInvalidCount   = errors.New("result count must be at least 1")
	ErrNothingToSave  = errors.New("no search results to save: run a search first")
	ErrClosed         = errors.New("searcher is closed")
)

// snippetLimit caps the page excerpt attached to a ParseError.
const snippetLimit = 2048

// ParseError reports markup the parser could not interpret. Snippet holds
// the start of the offending HTML for diagnosis.
type ParseError struct {
	Reason  string
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %s", ErrParse, e.Reason)
}

// Is makes errors.Is(err, ErrParse) match any *ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func newParseError(reason, html string) *ParseError {
	return &ParseError{Reason: reason, Snippet: clip(html, snippetLimit)}
}

// clip shortens s to at most n bytes without splitting a UTF-8 sequence.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
