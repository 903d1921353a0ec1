// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acm

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/acm-search/pkg/types"
)

// ParseResults extracts result entries from a rendered ACM results page, in
// document order. Relative links resolve against the public ACM site.
//
// A page with no entries but a results container or a "no results" marker
// yields an empty, non-nil slice. A page with neither, or an entry without a
// title, yields a *ParseError.
func ParseResults(html string) ([]types.ResultRecord, error) {
	return parseResults(html, types.DefaultBaseURL, 0)
}

// parseResults reads at most limit entries (all of them when limit <= 0).
// Entries past the limit are never inspected, so malformed markup there
// cannot fail the call.
func parseResults(html, baseURL string, limit int) ([]types.ResultRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, newParseError("reading HTML: "+err.Error(), html)
	}

	base, _ := url.Parse(baseURL)

	items := doc.Find(selResultItem)
	if items.Length() == 0 {
		if doc.Find(selNoResults).Length() > 0 || doc.Find(selResultContainer).Length() > 0 {
			return []types.ResultRecord{}, nil
		}
		return nil, newParseError("no result entries and no results container", bodyHTML(doc, html))
	}
	if limit > 0 && items.Length() > limit {
		items = items.Slice(0, limit)
	}

	records := make([]types.ResultRecord, 0, items.Length())
	var perr error
	items.EachWithBreak(func(i int, item *goquery.Selection) bool {
		rec, ok := parseItem(item, base)
		if !ok {
			snippet, _ := goquery.OuterHtml(item)
			perr = newParseError("result entry "+strconv.Itoa(i+1)+" has no title", snippet)
			return false
		}
		records = append(records, rec)
		return true
	})
	if perr != nil {
		return nil, perr
	}
	return records, nil
}

// bodyHTML returns the outer HTML of the page's <body>, falling back to the
// raw page.
func bodyHTML(doc *goquery.Document, html string) string {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return html
	}
	if s, err := goquery.OuterHtml(body); err == nil {
		return s
	}
	return html
}

// pageParseError reports a whole page the searcher could not use.
func pageParseError(reason, html string) *ParseError {
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		html = bodyHTML(doc, html)
	}
	return newParseError(reason, html)
}

// parseItem reads one li.search__item. It reports false when the entry has
// no title, which means the markup no longer matches the selectors.
func parseItem(item *goquery.Selection, base *url.URL) (types.ResultRecord, bool) {
	titleSel := item.Find(selTitle).First()
	title := collapse(titleSel.Text())
	if title == "" {
		return types.ResultRecord{}, false
	}

	rec := types.ResultRecord{
		Title:   title,
		Authors: parseAuthors(item),
		Venue:   collapse(item.Find(selVenue).First().Text()),
		Date:    collapse(item.Find(selDate).First().Text()),
	}

	if href, ok := titleSel.Find("a").First().Attr("href"); ok {
		rec.Link = resolve(base, href)
	}

	doi := item.Find(selDOI).First()
	if text := collapse(doi.Text()); text != "" {
		rec.DOI = text
	} else if href, ok := doi.Attr("href"); ok {
		rec.DOI = strings.TrimSpace(href)
	}

	if href, ok := item.Find(selPDF).First().Attr("href"); ok {
		rec.PDFLink = resolve(base, href)
	}

	abstract := item.Find(selAbstract).First()
	if p := abstract.Find("p").First(); p.Length() > 0 {
		rec.Abstract = collapse(p.Text())
	} else {
		rec.Abstract = collapse(abstract.Text())
	}

	rec.Citations = parseCount(item.Find(selCitation).First().Text())
	rec.Downloads = parseCount(item.Find(selMetric).First().Text())
	return rec, true
}

// parseAuthors prefers the anchor's title attribute, which carries the full
// name even when the visible text is abbreviated.
func parseAuthors(item *goquery.Selection) []string {
	authors := []string{}
	item.Find(selAuthor).Each(func(_ int, a *goquery.Selection) {
		name, _ := a.Attr("title")
		name = collapse(name)
		if name == "" {
			name = collapse(a.Text())
		}
		if name != "" {
			authors = append(authors, name)
		}
	})
	return authors
}

// parseCount reads counters such as "1,234". Empty or malformed text yields nil.
func parseCount(s string) *int {
	s = strings.NewReplacer(",", "", " ", "", "\u00a0", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// collapse trims s and replaces every whitespace run with a single space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
