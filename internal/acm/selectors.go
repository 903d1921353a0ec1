// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acm

// CSS selectors for the ACM Digital Library pages. The site's markup is an
// unversioned contract; when it changes, this file and parse.go are the only
// places to update.
const (
	selConsentDecline = "#CybotCookiebotDialogBodyLevelButtonLevelOptinDeclineAll"
	selSearchInput    = `div input[type="search"]`

	selResultItem      = "li.search__item"
	selResultContainer = "ul.search-result__xsl-body, div.search-result__body"
	selNoResults       = ".search-result__no-result, .search-result__no-results"

	selTitle    = "span.hlFld-Title"
	selAuthor   = "span.hlFld-ContribAuthor a"
	selVenue    = "span.epub-section__title"
	selDOI      = "a.issue-item__doi"
	selAbstract = "div.issue-item__abstract"
	selPDF      = `a[data-title="PDF"]`
	selDate     = "div.bookPubDate"
	selCitation = "div.citation span"
	selMetric   = "div.metric span"
)

// selRendered matches once the results page has finished rendering, with or
// without hits.
const selRendered = selResultItem + ", " + selNoResults
