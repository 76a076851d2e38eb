package browser

import (
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// sanitizeRule is one independent markup transformation. Rules are applied
// in order by SanitizeFragment; each must be idempotent so that re-running
// the whole chain over already-sanitized markup is a no-op.
type sanitizeRule struct {
	name  string
	apply func(string) string
}

// SanitizeFragment folds a markup fragment through the ordered rule list:
// noise blocks out, page chrome out, embedded payloads out, presentational
// attributes out, anchors reduced to their targets, empty containers
// dropped, whitespace collapsed.
func SanitizeFragment(markup string) string {
	for _, rule := range sanitizeRules {
		markup = rule.apply(markup)
	}
	return markup
}

var sanitizeRules = []sanitizeRule{
	{name: "strip-noise-blocks", apply: stripNoiseBlocks},
	{name: "strip-chrome-blocks", apply: stripChromeBlocks},
	{name: "strip-svg-blocks", apply: stripSVGBlocks},
	{name: "strip-data-uris", apply: stripDataURIs},
	{name: "strip-media-sources", apply: stripMediaSources},
	{name: "normalize-anchors", apply: normalizeAnchors},
	{name: "strip-presentational-attrs", apply: stripPresentationalAttrs},
	{name: "drop-empty-containers", apply: dropEmptyContainers},
	{name: "collapse-whitespace", apply: collapseWhitespace},
}

var (
	scriptBlockRe   = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	styleBlockRe    = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	noscriptBlockRe = regexp.MustCompile(`(?is)<noscript\b[^>]*>.*?</noscript>`)
	linkTagRe       = regexp.MustCompile(`(?i)<link\b[^>]*/?>`)
	commentRe       = regexp.MustCompile(`(?s)<!--.*?-->`)
)

func stripNoiseBlocks(s string) string {
	s = scriptBlockRe.ReplaceAllString(s, "")
	s = styleBlockRe.ReplaceAllString(s, "")
	s = noscriptBlockRe.ReplaceAllString(s, "")
	s = linkTagRe.ReplaceAllString(s, "")
	s = commentRe.ReplaceAllString(s, "")
	return s
}

// Structural chrome is removed wholesale: nav/footer/header elements, plus
// generic containers whose opening-tag attributes look like site chrome.
var (
	structuralChromeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<nav\b[^>]*>.*?</nav>`),
		regexp.MustCompile(`(?is)<footer\b[^>]*>.*?</footer>`),
		regexp.MustCompile(`(?is)<header\b[^>]*>.*?</header>`),
	}

	chromeKeywordGlobs = []glob.Glob{
		glob.MustCompile("*navigation*"),
		glob.MustCompile("*sidebar*"),
		glob.MustCompile("*menu*"),
		glob.MustCompile("*toolbar*"),
		glob.MustCompile("*breadcrumb*"),
	}

	chromeContainerOpenRe = regexp.MustCompile(`(?i)<(div|ul|ol|aside|section)\b[^>]*>`)

	containerTagRes = map[string]struct{ open, close *regexp.Regexp }{
		"div":     {regexp.MustCompile(`(?i)<div\b[^>]*>`), regexp.MustCompile(`(?i)</div>`)},
		"ul":      {regexp.MustCompile(`(?i)<ul\b[^>]*>`), regexp.MustCompile(`(?i)</ul>`)},
		"ol":      {regexp.MustCompile(`(?i)<ol\b[^>]*>`), regexp.MustCompile(`(?i)</ol>`)},
		"aside":   {regexp.MustCompile(`(?i)<aside\b[^>]*>`), regexp.MustCompile(`(?i)</aside>`)},
		"section": {regexp.MustCompile(`(?i)<section\b[^>]*>`), regexp.MustCompile(`(?i)</section>`)},
	}
)

func looksLikeChrome(openTag string) bool {
	lower := strings.ToLower(openTag)
	for _, g := range chromeKeywordGlobs {
		if g.Match(lower) {
			return true
		}
	}
	return false
}

func stripChromeBlocks(s string) string {
	for _, re := range structuralChromeRes {
		s = re.ReplaceAllString(s, "")
	}
	for {
		span := findChromeContainer(s)
		if span == nil {
			return s
		}
		s = s[:span[0]] + s[span[1]:]
	}
}

// findChromeContainer locates the next chrome-looking container together with
// its balanced closing tag, so nested children go with their parent.
func findChromeContainer(s string) []int {
	for _, m := range chromeContainerOpenRe.FindAllStringSubmatchIndex(s, -1) {
		if !looksLikeChrome(s[m[0]:m[1]]) {
			continue
		}
		tag := strings.ToLower(s[m[2]:m[3]])
		if end := findContainerEnd(s, m[1], tag); end > 0 {
			return []int{m[0], end}
		}
		// Unbalanced fragment: the container runs off the end.
		return []int{m[0], len(s)}
	}
	return nil
}

// findContainerEnd scans forward from the end of an open tag, tracking the
// nesting depth of the same tag kind, and returns the position just past the
// matching close tag. Returns -1 when the fragment never closes it.
func findContainerEnd(s string, from int, tag string) int {
	res := containerTagRes[tag]
	pos := from
	for depth := 1; depth > 0; {
		closeLoc := res.close.FindStringIndex(s[pos:])
		if closeLoc == nil {
			return -1
		}
		openLoc := res.open.FindStringIndex(s[pos:])
		if openLoc != nil && openLoc[0] < closeLoc[0] {
			depth++
			pos += openLoc[1]
		} else {
			depth--
			pos += closeLoc[1]
		}
	}
	return pos
}

var svgBlockRe = regexp.MustCompile(`(?is)<svg\b[^>]*>.*?</svg>|<svg\b[^>]*/>`)

func stripSVGBlocks(s string) string {
	return svgBlockRe.ReplaceAllString(s, "")
}

// Inline data: payloads for media, scripts and stylesheets, under any
// encoding label (base64, charset, ...).
var dataURIRe = regexp.MustCompile(
	`(?i)\bdata:(?:(?:image|video|audio)/[a-z0-9.+-]+|(?:application|text)/(?:x-)?(?:java|ecma)script|text/css)[^,"'\s>]*,[^"'\s>]*`)

func stripDataURIs(s string) string {
	return dataURIRe.ReplaceAllString(s, "")
}

var (
	mediaTagRe    = regexp.MustCompile(`(?i)<(?:img|source)\b[^>]*>`)
	mediaSourceRe = regexp.MustCompile(`(?i)\s(?:src|srcset)\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)
)

func stripMediaSources(s string) string {
	return mediaTagRe.ReplaceAllStringFunc(s, func(tag string) string {
		return mediaSourceRe.ReplaceAllString(tag, "")
	})
}

var (
	anchorOpenRe = regexp.MustCompile(`(?is)<a\b[^>]*>`)
	hrefRe       = regexp.MustCompile(`(?i)\bhref\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s>]+))`)
)

// normalizeAnchors keeps only the link target: every other anchor attribute
// is dropped.
func normalizeAnchors(s string) string {
	return anchorOpenRe.ReplaceAllStringFunc(s, func(tag string) string {
		m := hrefRe.FindStringSubmatch(tag)
		if m == nil {
			return "<a>"
		}
		href := m[1]
		if href == "" {
			href = m[2]
		}
		if href == "" {
			href = m[3]
		}
		return `<a href="` + href + `">`
	})
}

var (
	presentationalAttrRe = regexp.MustCompile(
		`(?i)\s(?:style|class|role|tabindex|crossorigin|nonce|async|defer|aria-[a-z0-9-]+|data-[a-z0-9_-]+)\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)
	bareBooleanAttrRe = regexp.MustCompile(`(?i)\s(?:async|defer|crossorigin|nonce)([\s/>])`)
)

func stripPresentationalAttrs(s string) string {
	s = presentationalAttrRe.ReplaceAllString(s, "")
	s = bareBooleanAttrRe.ReplaceAllString(s, "$1")
	return s
}

var emptyContainerRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<div\b[^>]*>\s*</div>`),
	regexp.MustCompile(`(?i)<span\b[^>]*>\s*</span>`),
	regexp.MustCompile(`(?i)<p\b[^>]*>\s*</p>`),
	regexp.MustCompile(`(?i)<section\b[^>]*>\s*</section>`),
	regexp.MustCompile(`(?i)<article\b[^>]*>\s*</article>`),
	regexp.MustCompile(`(?i)<ul\b[^>]*>\s*</ul>`),
	regexp.MustCompile(`(?i)<ol\b[^>]*>\s*</ol>`),
	regexp.MustCompile(`(?i)<li\b[^>]*>\s*</li>`),
	regexp.MustCompile(`(?i)<figure\b[^>]*>\s*</figure>`),
	regexp.MustCompile(`(?i)<picture\b[^>]*>\s*</picture>`),
}

// dropEmptyContainers removes whitespace-only containers to a fixpoint, so
// wrappers emptied by earlier rules disappear too.
func dropEmptyContainers(s string) string {
	for {
		before := s
		for _, re := range emptyContainerRes {
			s = re.ReplaceAllString(s, "")
		}
		if s == before {
			return s
		}
	}
}

var whitespaceRunRe = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRunRe.ReplaceAllString(s, " "))
}
