package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/acm-search/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-YAML schema so that
// output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes records as a CSL-YAML list to w.
func FormatCSL(w io.Writer, records []types.ResultRecord) error {
	items := make([]CSLItem, len(records))
	for i, r := range records {
		items[i] = toCSLItem(r, i)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a ResultRecord to a CSLItem. Records with a venue are
// typed as conference papers; the rest as articles.
func toCSLItem(r types.ResultRecord, index int) CSLItem {
	item := CSLItem{
		Type:           "article",
		Title:          r.Title,
		ContainerTitle: r.Venue,
		Abstract:       r.Abstract,
		DOI:            bareDOI(r.DOI),
		URL:            r.Link,
	}
	if r.Venue != "" {
		item.Type = "paper-conference"
	}

	switch {
	case item.DOI != "":
		item.ID = item.DOI
	case r.Link != "":
		item.ID = r.Link
	default:
		item.ID = fmt.Sprintf("acm-%d", index+1)
	}

	for _, a := range r.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}

	if parts := parseDateParts(r.Date); parts != nil {
		item.Issued = &CSLDate{DateParts: [][]int{parts}}
	}
	return item
}

// bareDOI strips resolver prefixes so "https://doi.org/10.1145/x" becomes
// "10.1145/x". Strings that are not DOIs yield "".
func bareDOI(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "doi:"} {
		s = strings.TrimPrefix(s, prefix)
	}
	if !strings.HasPrefix(s, "10.") {
		return ""
	}
	return s
}

// dateLayouts lists the date formats the results page prints.
var dateLayouts = []struct {
	layout string
	parts  int
}{
	{"2 January 2006", 3},
	{"January 2, 2006", 3},
	{"January 2006", 2},
	{"Jan 2006", 2},
	{"2006", 1},
}

// parseDateParts converts a printed date into CSL date-parts, keeping only
// the precision the text carries. Unrecognized text yields nil.
func parseDateParts(s string) []int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, l := range dateLayouts {
		t, err := time.Parse(l.layout, s)
		if err != nil {
			continue
		}
		parts := []int{t.Year(), int(t.Month()), t.Day()}
		return parts[:l.parts]
	}
	return nil
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
