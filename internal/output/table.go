// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/acm-search/pkg/types"
)

// FormatTable writes records as a human-readable table to w.
func FormatTable(w io.Writer, records []types.ResultRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-30s  %s\n",
		"Rank", "Title", "Authors", "Venue", "Citations")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for i, r := range records {
		citations := ""
		if r.Citations != nil {
			citations = fmt.Sprintf("%d", *r.Citations)
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-30s  %s\n",
			i+1, truncate(r.Title, 60), formatAuthors(r.Authors), truncate(r.Venue, 30), citations)
	}

	fmt.Fprintf(w, "\n%d results\n", len(records))
}

// FormatJSON writes records as indented JSON to w.
func FormatJSON(w io.Writer, records []types.ResultRecord) error {
	if records == nil {
		records = []types.ResultRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
