// Package generator produces complete draft posts from a local text
// generation backend: title, HTML body with validated internal links,
// excerpt, tags and a locally classified category.
package generator

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lookizm/autopress/app_config"
	"github.com/lookizm/autopress/model"
	"github.com/lookizm/autopress/tracker"
	"github.com/lookizm/autopress/utils"
	Logger "github.com/lookizm/autopress/utils/log"
)

const (
	maxTitleLength   = 70
	maxExcerptLength = 160
	minContentLength = 500
	maxInternalLinks = 4
	maxTags          = 10
)

// ErrContentTooShort marks a generation whose output is below the minimum
// acceptable body size. Treated as a failed generation, never published.
var ErrContentTooShort = errors.New("generated content is too short")

// BlogPostGenerator generates draft posts, consulting the post tracker for
// internal link candidates.
type BlogPostGenerator struct {
	client  *OllamaClient
	tracker *tracker.PostTracker

	// domain of the publishing site, used to validate internal links
	domain string

	minWordCount int
	maxWordCount int
}

// New builds a generator and verifies the generation backend is reachable.
func New(cfg *app_config.Config, postTracker *tracker.PostTracker) (*BlogPostGenerator, error) {
	client, err := NewOllamaClient(cfg.OllamaBaseURL, cfg.OllamaModel)
	if err != nil {
		return nil, err
	}

	return &BlogPostGenerator{
		client:       client,
		tracker:      postTracker,
		domain:       domainFromURL(cfg.WordPressURL),
		minWordCount: cfg.MinWordCount,
		maxWordCount: cfg.MaxWordCount,
	}, nil
}

func domainFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}

// GenerateTitle asks the backend for an SEO title and post-processes it. A
// backend failure or empty output falls back to a templated title locally.
func (g *BlogPostGenerator) GenerateTitle(topic string) string {
	systemPrompt := "You are an expert SEO content creator specializing in looksmaxing and male self-improvement."
	userPrompt := fmt.Sprintf(`Generate ONLY a blog post title about: %s

Return ONLY the title text. No prefixes, labels, or explanations.

Requirements:
- 60-70 characters (SEO-optimized length)
- Include primary keyword naturally
- Engaging and click-worthy
- Uses looksmaxing terminology
- Title case

Title:`, topic)

	raw, err := g.client.GenerateText(systemPrompt, userPrompt, 0.8, 100)
	if err != nil {
		Logger.Log.Warnln("error generating title, using fallback:", err)
		return fallbackTitle(topic)
	}

	title := postProcessTitle(raw)
	if title == "" {
		return fallbackTitle(topic)
	}
	return title
}

func fallbackTitle(topic string) string {
	return "Complete Guide to " + topic
}

// postProcessTitle strips quoting and label artifacts and enforces the
// 70-character budget.
func postProcessTitle(title string) string {
	title = strings.Trim(title, `"'`)
	title = strings.TrimSpace(title)
	title = strings.ReplaceAll(title, "Title:", "")
	title = strings.ReplaceAll(title, "Title", "")
	title = strings.TrimSpace(title)
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		title = strings.TrimSpace(title[:i])
	}
	return utils.TruncateRunes(title, maxTitleLength)
}

// GenerateContent produces the full HTML body for a post. Backend failures
// and too-short output propagate: there is no post without a body.
func (g *BlogPostGenerator) GenerateContent(title, topic string) (string, error) {
	keywords := KeywordsForTopic(topic)

	// internal link candidates must be fully addressable
	candidates := []model.PostRecord{}
	for _, candidate := range g.tracker.Relevant(topic, title, maxInternalLinks) {
		if candidate.ID != 0 && candidate.URL != "" && candidate.Title != "" {
			candidates = append(candidates, candidate)
		}
	}

	systemPrompt := g.buildContentSystemPrompt()
	userPrompt := g.buildContentUserPrompt(title, topic, keywords, candidates)

	content, err := g.client.GenerateText(systemPrompt, userPrompt, 0.7, 12000)
	if err != nil {
		return "", err
	}
	if len(strings.TrimSpace(content)) < minContentLength {
		return "", ErrContentTooShort
	}

	content = cleanHTMLContent(content)
	content = removeRelatedPosts(content)
	content = validateLinks(content, g.domain, candidates)

	primaryKeyword := topic
	if len(keywords) > 0 {
		primaryKeyword = keywords[0]
	}
	g.logDiagnostics(diagnoseContent(content, primaryKeyword), primaryKeyword)

	return content + disclaimer, nil
}

// logDiagnostics reports the advisory quality signals; nothing here blocks.
func (g *BlogPostGenerator) logDiagnostics(diag ContentDiagnostics, primaryKeyword string) {
	Logger.Log.WithFields(logrus.Fields{
		"words":  diag.WordCount,
		"h2":     diag.H2Count,
		"h3":     diag.H3Count,
		"ul":     diag.ULCount,
		"ol":     diag.OLCount,
		"tables": diag.TableCount,
		"p":      diag.PCount,
	}).Infoln("content generated")

	if diag.WordCount < g.minWordCount || diag.WordCount > g.maxWordCount {
		Logger.Log.Warnf("content is %d words (target: %d-%d)", diag.WordCount, g.minWordCount, g.maxWordCount)
	}
	if !diag.HasEnoughTerminology() {
		Logger.Log.Warnln("content may lack looksmaxing terminology, found:", diag.FoundTerms)
	}
	if len(diag.NormiePhrases) > 0 {
		Logger.Log.Warnln("content uses generic self-help phrasing:", diag.NormiePhrases)
	}
	if diag.KeywordCount < 5 {
		Logger.Log.Warnf("primary keyword %q appears only %d times (should be 5-10)", primaryKeyword, diag.KeywordCount)
	}
}

func (g *BlogPostGenerator) buildContentSystemPrompt() string {
	var sb strings.Builder
	sb.WriteString("You are a veteran looksmaxer writing for the looksmax.org community. ")
	sb.WriteString("You write with the authentic, edgy, direct tone of the best-of-the-best subforum. ")
	sb.WriteString("This is NOT a generic self-help blog.\n\n")
	sb.WriteString("CRITICAL TERMINOLOGY (use naturally throughout): ")
	sb.WriteString(strings.Join(terminology, ", "))
	sb.WriteString("\n\nCOMMON PHRASES (use these naturally): ")
	limit := 8
	if limit > len(commonPhrases) {
		limit = len(commonPhrases)
	}
	sb.WriteString(strings.Join(commonPhrases[:limit], ", "))
	sb.WriteString("\n\nTONE: edgy, direct, no-bullshit. Use community slang (mog, chad, based, cope, ascend, maxxing, blackpill). ")
	sb.WriteString("Use the -maxxing suffix liberally. Use specific numbers and timeframes. ")
	sb.WriteString("AVOID generic self-help phrases, corporate speak and soft motivational language.")
	return sb.String()
}

func (g *BlogPostGenerator) buildContentUserPrompt(title, topic string, keywords []string, candidates []model.PostRecord) string {
	primaryKeyword := topic
	secondary := ""
	if len(keywords) > 0 {
		primaryKeyword = keywords[0]
		end := len(keywords)
		if end > 8 {
			end = 8
		}
		secondary = strings.Join(keywords[1:end], ", ")
	}

	var links strings.Builder
	if len(candidates) > 0 {
		links.WriteString("\nINTERNAL LINKS (add 2-4 natural links to these posts):\n")
		for _, candidate := range candidates {
			links.WriteString(fmt.Sprintf("- %s - %s\n", candidate.Title, candidate.URL))
		}
	} else {
		links.WriteString("\nNO INTERNAL LINKS: Do NOT create any links or 'Related Posts' sections.\n")
	}

	return fmt.Sprintf(`Write a complete, SEO-optimized looksmaxing blog post in proper WordPress HTML format.

TITLE: %s
TOPIC: %s
%s
REQUIREMENTS:

1. WORD COUNT: write %d-%d words total.

2. SEO:
   - Primary keyword: %s
   - Secondary keywords: %s
   - Use the primary keyword in the first paragraph, H2 headings, and naturally throughout.

3. HTML FORMAT (WordPress ready):
   - <h2> for main sections (6-8 sections), <h3> for subsections
   - <p> for all paragraphs
   - <ul><li> bullet lists (3-4), <ol><li> numbered lists (1-2)
   - <table><thead><tbody> comparison tables (1-2)
   - <strong> for important terms

4. TONE: authentic looksmaxing community voice, never generic self-help.

5. STRUCTURE: strong hook intro, 6-8 H2 sections of 300-500 words each with
   H3 subsections, specific numbers and timeframes, strong conclusion.

Now write the complete blog post:`, title, topic, links.String(), g.minWordCount, g.maxWordCount, primaryKeyword, secondary)
}

// GenerateExcerpt takes the first sentence of the tag-stripped body, capped
// at 160 characters.
func (g *BlogPostGenerator) GenerateExcerpt(content string) string {
	return excerptFromContent(content, maxExcerptLength)
}

func excerptFromContent(content string, maxLength int) string {
	text := utils.StripHTMLTags(content)
	excerpt := text
	if i := strings.IndexByte(text, '.'); i >= 0 {
		excerpt = text[:i]
	} else if len([]rune(text)) > maxLength {
		excerpt = string([]rune(text)[:maxLength])
	}
	return utils.TruncateRunes(strings.TrimSpace(excerpt), maxLength)
}

// GenerateTags asks the backend for a comma-separated tag list. Failure or an
// empty result falls back to topic-derived keywords.
func (g *BlogPostGenerator) GenerateTags(title, content string) []string {
	systemPrompt := "You are an SEO expert specializing in looksmaxing content."
	preview := content
	if len(preview) > 500 {
		preview = preview[:500]
	}
	userPrompt := fmt.Sprintf(`Generate 8-10 relevant SEO tags for this blog post.

Title: %s
Content preview: %s...

Return ONLY the tags, comma-separated. No prefixes or labels.`, title, preview)

	raw, err := g.client.GenerateText(systemPrompt, userPrompt, 0.5, 100)
	if err != nil {
		Logger.Log.Warnln("error generating tags, using keyword fallback:", err)
		return fallbackTags(title)
	}

	tags := parseTagList(raw)
	if len(tags) == 0 {
		return fallbackTags(title)
	}
	return tags
}

func fallbackTags(title string) []string {
	keywords := KeywordsForTopic(title)
	if len(keywords) > maxTags {
		keywords = keywords[:maxTags]
	}
	return keywords
}

func parseTagList(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		tag = strings.Trim(tag, `"'`)
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) >= maxTags {
			break
		}
	}
	return tags
}

// DetermineCategory classifies a post into the fixed taxonomy by additive
// keyword scoring over topic (x3), title (x2) and a content prefix (x1).
// No backend call is made. Weights are fixed for parity.
func DetermineCategory(topic, title, content string) string {
	topicLower := strings.ToLower(topic)
	titleLower := strings.ToLower(title)
	if len(content) > 500 {
		content = content[:500]
	}
	contentLower := strings.ToLower(content)

	best := model.DefaultCategory
	bestScore := 0
	for _, category := range model.Categories {
		score := 0
		for _, kw := range model.CategoryKeywords[category] {
			if strings.Contains(topicLower, kw) {
				score += 3
			}
			if strings.Contains(titleLower, kw) {
				score += 2
			}
			if strings.Contains(contentLower, kw) {
				score += 1
			}
		}
		if score > bestScore {
			best = category
			bestScore = score
		}
	}
	return best
}

// GenerateFullPost runs the whole generation pipeline for one topic. Title
// and tags recover locally from backend failures; a body failure aborts.
func (g *BlogPostGenerator) GenerateFullPost(topic string) (*model.DraftPost, error) {
	if topic == "" {
		topic = TopicSuggestion()
		Logger.Log.Infoln("auto-selected topic:", topic)
	}

	title := g.GenerateTitle(topic)
	Logger.Log.Infoln("generated title:", title)

	content, err := g.GenerateContent(title, topic)
	if err != nil {
		return nil, err
	}

	excerpt := g.GenerateExcerpt(content)
	tags := g.GenerateTags(title, content)
	category := DetermineCategory(topic, title, content)
	Logger.Log.WithFields(logrus.Fields{"category": category, "tags": strings.Join(tags, ", ")}).
		Infoln("draft post complete")

	return &model.DraftPost{
		Title:    title,
		Content:  content,
		Excerpt:  excerpt,
		Tags:     tags,
		Topic:    topic,
		Category: category,
	}, nil
}
