// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for acm-search.
// ResultRecord is the unit the searcher returns and the writer persists;
// SearchConfig and LogConfig carry the settings the CLI assembles.
package types

// ResultRecord represents one entry from the ACM Digital Library results page.
// Optional fields are omitted from JSON when the page does not carry them.
type ResultRecord struct {
	// Title is the paper title with whitespace collapsed.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in page order. Never nil.
	Authors []string `json:"authors" yaml:"authors"`

	// Venue is the conference or journal the paper appeared in.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Link is the absolute URL of the paper's landing page.
	Link string `json:"link,omitempty" yaml:"link,omitempty"`

	// DOI is the DOI URL shown on the result entry.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Abstract is the truncated abstract the results page shows.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// PDFLink is the eprint link, if the entry offers one.
	PDFLink string `json:"pdf_link,omitempty" yaml:"pdf_link,omitempty"`

	// Date is the publication date as printed (e.g. "December 2017").
	Date string `json:"date,omitempty" yaml:"date,omitempty"`

	// Citations is the total citation count; nil when not shown.
	Citations *int `json:"citations,omitempty" yaml:"citations,omitempty"`

	// Downloads is the total download count; nil when not shown.
	Downloads *int `json:"downloads,omitempty" yaml:"downloads,omitempty"`
}
