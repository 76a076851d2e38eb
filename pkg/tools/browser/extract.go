package browser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Snapshot is a bounded, sanitized extraction of a page's markup.
type Snapshot struct {
	// Markup is the sanitized output, hard-capped at the configured size.
	Markup string

	// Truncated reports whether the cap cut anything off.
	Truncated bool

	// Matches is how many elements survived search-term filtering. Zero
	// with a search term set means nothing on the page matched.
	Matches int
}

// SnapshotOptions configures one extraction pass.
type SnapshotOptions struct {
	// SearchTerm, when set, keeps only elements whose text contains the
	// term or the term prefixed with '#', case-insensitively.
	SearchTerm string

	// MaxChars caps the output; zero means DefaultSnapshotMaxChars.
	MaxChars int
}

// BuildSnapshot runs the extraction pipeline over raw page markup: pick the
// scope root, collect head metadata, filter by search term, sanitize each
// kept fragment, join, and truncate to the cap.
func BuildSnapshot(rawHTML string, opts SnapshotOptions) (*Snapshot, error) {
	maxChars := opts.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultSnapshotMaxChars
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse page markup: %w", err)
	}

	scope := doc.Find("main").First()
	if scope.Length() == 0 {
		scope = doc.Find("body").First()
	}

	headMeta := collectHeadMetadata(doc)

	fragments, matches := selectFragments(scope, opts.SearchTerm)
	if opts.SearchTerm != "" && matches == 0 {
		return &Snapshot{Matches: 0}, nil
	}

	sanitized := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if clean := SanitizeFragment(fragment); clean != "" {
			sanitized = append(sanitized, clean)
		}
	}

	var out string
	if headMeta != "" {
		out = headMeta + "\n\n"
	}
	out += strings.Join(sanitized, "\n\n")

	truncated := false
	if len(out) > maxChars {
		out = out[:maxChars]
		truncated = true
	}

	return &Snapshot{
		Markup:    out,
		Truncated: truncated,
		Matches:   matches,
	}, nil
}

// collectHeadMetadata gathers descriptive head elements verbatim: the title,
// the meta description, and any Open Graph tags.
func collectHeadMetadata(doc *goquery.Document) string {
	var parts []string

	doc.Find("head title, head meta[name=description], head meta[property^='og:']").
		Each(func(_ int, s *goquery.Selection) {
			if markup, err := goquery.OuterHtml(s); err == nil {
				if markup = strings.TrimSpace(markup); markup != "" {
					parts = append(parts, markup)
				}
			}
		})

	return strings.Join(parts, "\n")
}

// selectFragments picks the markup fragments to sanitize. Without a search
// term the whole scope root is one fragment. With a term, the scope root's
// child elements are filtered: an element is kept when its text contains the
// term, or the term prefixed with '#' (tag-style lookups), case-insensitive.
func selectFragments(scope *goquery.Selection, searchTerm string) ([]string, int) {
	if searchTerm == "" {
		markup, err := goquery.OuterHtml(scope)
		if err != nil || strings.TrimSpace(markup) == "" {
			return nil, 0
		}
		return []string{markup}, 1
	}

	term := strings.ToLower(searchTerm)
	hashTerm := "#" + term

	var fragments []string
	scope.Children().Each(func(_ int, s *goquery.Selection) {
		text := strings.ToLower(s.Text())
		if !strings.Contains(text, term) && !strings.Contains(text, hashTerm) {
			return
		}
		if markup, err := goquery.OuterHtml(s); err == nil {
			fragments = append(fragments, markup)
		}
	})

	return fragments, len(fragments)
}
