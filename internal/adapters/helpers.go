// Package adapters holds the per-site extraction routines and the table that
// registers them. Each adapter mirrors the markup of one directory site;
// selectors go stale when sites redesign, so routines probe fallbacks and
// lean on the record layer's NA collapsing instead of failing.
package adapters

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// text returns the trimmed text of the first selector that matches a
// non-empty element, probing selectors in order.
func text(root *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if t := clean(root.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

// texts collects the trimmed text of every match across all selectors.
func texts(root *goquery.Selection, selectors ...string) []string {
	var out []string
	for _, sel := range selectors {
		root.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if t := clean(s.Text()); t != "" {
				out = append(out, t)
			}
		})
	}
	return out
}

// clean trims and collapses internal whitespace runs to single spaces.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// containsFold reports whether s contains substr, case-insensitively and
// ignoring surrounding whitespace.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(clean(s)), strings.ToLower(substr))
}

// scoped returns the selection under sel when it matches, otherwise the whole
// document. Sites that wrap the profile in a known container get their
// selectors evaluated inside it.
func scoped(doc *goquery.Document, sel string) *goquery.Selection {
	if root := doc.Find(sel).First(); root.Length() > 0 {
		return root
	}
	return doc.Selection
}
