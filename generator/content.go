package generator

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lookizm/autopress/model"
	"github.com/lookizm/autopress/utils"
)

// disclaimer is appended to every generated body, unconditionally.
const disclaimer = "\n\n<hr />\n\n<p><em>Disclaimer: This article is for informational purposes only and does not constitute medical advice. Always consult with qualified healthcare professionals before making significant changes to your health, fitness, or appearance routines. Individual results may vary.</em></p>"

var (
	markdownHeaderRe = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
	markdownBoldRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	markdownBold2Re  = regexp.MustCompile(`__([^_]+)__`)
	markdownCodeRe   = regexp.MustCompile("`([^`]+)`")
	blankRunRe       = regexp.MustCompile(`\n{3,}`)

	relatedHTMLRe     = regexp.MustCompile(`(?is)<h[2-6][^>]*>.*?related\s+posts?.*?</h[2-6]>.*?</(?:ul|ol|p)>`)
	relatedMarkdownRe = regexp.MustCompile(`(?is)(##?\s*related\s+posts?.*?)(\n##|\z)`)

	anchorRe = regexp.MustCompile(`(?is)<a\s+href="([^"]+)"[^>]*>(.*?)</a>`)
)

// cleanHTMLContent normalizes leftover markdown into the blog's HTML dialect
// and collapses runs of blank lines.
func cleanHTMLContent(content string) string {
	if content == "" {
		return content
	}
	content = markdownHeaderRe.ReplaceAllString(content, "<h2>$1</h2>")
	content = markdownBoldRe.ReplaceAllString(content, "<strong>$1</strong>")
	content = markdownBold2Re.ReplaceAllString(content, "<strong>$1</strong>")
	content = markdownCodeRe.ReplaceAllString(content, "$1")
	content = blankRunRe.ReplaceAllString(content, "\n\n")
	return content
}

// removeRelatedPosts strips any model-invented "Related Posts" section.
func removeRelatedPosts(content string) string {
	if content == "" {
		return content
	}
	content = relatedHTMLRe.ReplaceAllString(content, "")
	content = relatedMarkdownRe.ReplaceAllString(content, "$2")
	return content
}

// validateLinks unwraps any hyperlink pointing at our own domain that was not
// one of the supplied link candidates; the link is removed, its visible text
// kept. With no candidates at all, every link to the domain is unwrapped.
func validateLinks(content, domain string, candidates []model.PostRecord) string {
	if len(candidates) == 0 {
		domainAnchorRe := regexp.MustCompile(`(?is)<a\s+href="https?://(?:www\.)?` + regexp.QuoteMeta(domain) + `[^"]*"[^>]*>(.*?)</a>`)
		return domainAnchorRe.ReplaceAllString(content, "$1")
	}

	validURLs := map[string]bool{}
	for _, candidate := range candidates {
		if candidate.URL != "" {
			validURLs[strings.TrimRight(strings.ToLower(candidate.URL), "/")] = true
		}
	}

	return anchorRe.ReplaceAllStringFunc(content, func(anchor string) string {
		groups := anchorRe.FindStringSubmatch(anchor)
		linkURL := strings.TrimRight(strings.ToLower(groups[1]), "/")
		linkText := groups[2]
		if strings.Contains(linkURL, domain) && !validURLs[linkURL] {
			return linkText
		}
		return anchor
	})
}

// requiredTerms is the niche vocabulary a post is expected to use; purely
// advisory at validation time.
var requiredTerms = []string{
	"looksmax", "softmaxx", "hardmaxx", "mewing", "mog", "chad", "maxxing",
}

// normiePatterns flag generic self-help phrasing the niche rejects.
var normiePatterns = []string{
	"self-improvement journey", "personal growth", "be your best self",
	"unlock your potential", "optimize your potential", "feel good about yourself",
	"build confidence", "self-care", "wellness journey",
}

// ContentDiagnostics carries advisory quality signals computed after a body
// is accepted. Nothing here blocks publication.
type ContentDiagnostics struct {
	WordCount  int
	H2Count    int
	H3Count    int
	ULCount    int
	OLCount    int
	TableCount int
	PCount     int

	FoundTerms    []string
	NormiePhrases []string
	KeywordCount  int
}

// diagnoseContent inspects the generated body for structural markup,
// terminology coverage and primary keyword density.
func diagnoseContent(content, primaryKeyword string) ContentDiagnostics {
	diag := ContentDiagnostics{
		WordCount: utils.WordCount(content),
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(content)); err == nil {
		diag.H2Count = doc.Find("h2").Length()
		diag.H3Count = doc.Find("h3").Length()
		diag.ULCount = doc.Find("ul").Length()
		diag.OLCount = doc.Find("ol").Length()
		diag.TableCount = doc.Find("table").Length()
		diag.PCount = doc.Find("p").Length()
	}

	contentLower := strings.ToLower(content)
	for _, term := range requiredTerms {
		if strings.Contains(contentLower, term) {
			diag.FoundTerms = append(diag.FoundTerms, term)
		}
	}
	for _, pattern := range normiePatterns {
		if strings.Contains(contentLower, pattern) {
			diag.NormiePhrases = append(diag.NormiePhrases, pattern)
		}
	}
	diag.KeywordCount = strings.Count(contentLower, strings.ToLower(primaryKeyword))

	return diag
}

// HasEnoughTerminology reports whether the post uses at least 4 terms of the
// required niche vocabulary.
func (d ContentDiagnostics) HasEnoughTerminology() bool {
	return len(d.FoundTerms) >= 4
}
