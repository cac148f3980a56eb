package generator

import (
	"math/rand"
	"strings"

	"github.com/lookizm/autopress/utils"
)

// Research corpus for the looksmaxing niche, distilled from forum analysis.
// Order matters everywhere below: prompt assembly and keyword extraction walk
// these slices front to back.

var terminology = []string{
	"softmaxxing", "hardmaxxing", "mewing", "mogging", "blackpill",
	"chad", "looksmaxxing", "looksmax", "pill", "gtfih", "botb",
}

var commonPhrases = []string{
	"GTFIH", "mog", "chad", "blackpill", "based", "cope", "cope harder",
	"it's over", "just looksmax bro", "maxxing", "pill", "ascend",
}

var maxxingCategories = []string{
	"looksmaxxing", "softmaxxing", "hardmaxxing", "mewing", "skincaremaxxing",
	"fitnessmaxxing", "hairmaxxing", "stylemaxxing", "dietmaxxing", "sleepmaxxing",
	"makeupmaxxing", "penismaxxing", "heightmaxxing", "jawmaxxing", "eyemaxxing",
	"teethmaxxing", "collagenmaxxing", "hormonemaxxing", "posturemaxxing", "voicemaxxing",
}

var primaryKeywords = []string{
	"looksmaxing", "looksmax", "looksmaxxing", "looksmaxing guide",
	"softmaxxing", "softmaxing", "hardmaxxing", "hardmaxing",
	"mewing", "mewing technique", "jawline", "jawline exercises",
	"facial aesthetics", "male grooming", "self-improvement",
	"aesthetic enhancement", "physical appearance", "facial structure",
	"glow up", "face maxxing", "body maxxing",
}

var secondaryKeywords = []string{
	"skincare routine", "skincare routine for men", "fitness transformation",
	"chad physique", "facial symmetry", "bone structure", "height increase",
	"jaw development", "jawline development", "teeth whitening",
	"hair styling", "fashion tips", "posture correction", "voice training",
	"sleep optimization", "sleepmaxxing", "diet for aesthetics",
	"height optimization", "shoulder width", "waist to hip ratio",
	"eye area enhancement", "nose optimization", "mouth widening",
}

var longTailKeywords = []string{
	"how to looksmax", "how to start looksmaxing", "looksmaxing for men",
	"looksmaxing for beginners", "looksmaxing tips for men",
	"how to improve jawline naturally", "best skincare routine for men",
	"mewing technique guide", "how to mew correctly",
	"softmaxxing vs hardmaxxing", "facial aesthetics improvement",
	"male appearance enhancement", "natural looksmaxing methods",
	"looksmaxing without surgery", "cosmetic surgery for men",
	"fitness routine for aesthetics", "grooming tips for better looks",
	"looksmaxing before and after", "looksmaxing transformation",
	"looksmaxing routine", "looksmaxing skincare routine",
	"looksmaxing exercises", "looksmaxing jawline exercises",
	"looksmaxing diet plan", "looksmaxing hair growth tips",
	"how to get a better jawline", "how to improve facial symmetry",
	"best mewing exercises", "mewing results timeline",
	"posture correction exercises", "how to fix posture",
	"height increase exercises", "how to look taller",
	"skincare routine for clear skin", "best supplements for looksmaxing",
	"looksmaxing success stories", "looksmaxing community",
	"looksmaxing product reviews", "looksmaxing guide for beginners",
}

var questionKeywords = []string{
	"what is looksmaxing", "how to start looksmaxing",
	"how does mewing work", "how to improve jawline",
	"how to fix posture", "how to get taller",
	"what is softmaxxing", "what is hardmaxxing",
	"how long does mewing take", "does mewing work",
	"how to improve facial symmetry", "best skincare for men",
	"how to look more attractive", "how to improve appearance",
	"what is looksmax", "how to looksmax for beginners",
}

type topicKeywords struct {
	topic    string
	keywords []string
}

var topicSpecificKeywords = []topicKeywords{
	{"mewing", []string{"how to mew", "mewing technique", "mewing exercises",
		"mewing results", "mewing before and after", "proper tongue posture"}},
	{"jawline", []string{"how to get a better jawline", "jawline exercises",
		"jawline development", "strong jawline", "defined jawline"}},
	{"skincare", []string{"skincare routine for men", "best skincare routine",
		"male skincare", "skincare for clear skin", "skincaremaxxing"}},
	{"posture", []string{"posture correction", "how to fix posture",
		"posture exercises", "good posture", "improve posture"}},
	{"fitness", []string{"aesthetic physique", "fitness transformation",
		"workout for aesthetics", "chad physique workout", "aesthetic body"}},
	{"height", []string{"height increase", "how to get taller",
		"height optimization", "how to look taller", "height maxxing"}},
	{"hair", []string{"hair styling for men", "best hairstyles",
		"hairstyle for face shape", "hairmaxxing", "hair styling tips"}},
	{"supplements", []string{"best supplements for looksmaxing",
		"supplements for aesthetics", "looksmaxing supplements"}},
	{"sleep", []string{"sleep optimization", "sleepmaxxing",
		"how to sleep better", "sleep for appearance", "quality sleep"}},
}

var contentThemes = [][]string{
	{ // guides
		"Complete Skincare Routine for Maximum Results",
		"Mewing: The Ultimate Jawline Enhancement Guide",
		"How to Achieve a Chad Physique Naturally",
		"Softmaxxing vs Hardmaxxing: Complete Breakdown",
		"The Sleepmaxxing Playbook: Optimize Your Rest",
		"Mouth Widening Techniques and Appliances",
		"Teeth Whitening Methods That Actually Work",
		"Collagen Maximization for Skin Health",
		"Posture Correction for Better Appearance",
	},
	{ // transformations
		"Before and After: My Looksmaxing Journey",
		"My Natural Transformation Story",
		"Results After Six Months of Consistent Looksmaxing",
	},
	{ // product reviews
		"Best Skincare Products for Men",
		"Top Supplements for Aesthetic Enhancement",
		"Recommended Tools for Mewing",
		"Fashion Essentials for Better Appearance",
	},
	{ // advanced topics
		"The Truth About Steroids and Peptides",
		"Surgical Options for Facial Enhancement",
		"Hormone Optimization for Aesthetics",
		"Genetic Limitations and What You Can Change",
	},
}

// TopicSuggestion picks a random topic from the research themes. Used when a
// run is started without an explicit topic.
func TopicSuggestion() string {
	theme := contentThemes[rand.Intn(len(contentThemes))]
	return theme[rand.Intn(len(theme))]
}

// KeywordsForTopic extracts up to 15 SEO keywords for a topic, ordered by
// relevance tier and de-duplicated preserving first occurrence. The first
// entry is treated as the primary keyword by the content prompt.
func KeywordsForTopic(topic string) []string {
	topicLower := strings.ToLower(topic)
	var keywords []string

	// core terms always lead
	keywords = append(keywords, primaryKeywords[:2]...)

	for _, tk := range topicSpecificKeywords {
		if strings.Contains(topicLower, tk.topic) {
			limit := 3
			if limit > len(tk.keywords) {
				limit = len(tk.keywords)
			}
			keywords = append(keywords, tk.keywords[:limit]...)
			break
		}
	}

	for _, category := range maxxingCategories {
		base := strings.ReplaceAll(strings.ReplaceAll(category, "maxxing", ""), "maxing", "")
		if base != "" && strings.Contains(topicLower, base) {
			keywords = append(keywords, category)
		}
	}

	for _, keyword := range secondaryKeywords {
		if anyWordIn(keyword, topicLower, 0) {
			keywords = append(keywords, keyword)
		}
	}

	for _, longTail := range longTailKeywords {
		if anyWordIn(longTail, topicLower, 3) {
			keywords = append(keywords, longTail)
			if len(keywords) >= 12 {
				break
			}
		}
	}

	for _, question := range questionKeywords {
		if anyWordIn(question, topicLower, 2) {
			keywords = append(keywords, question)
			break
		}
	}

	var unique []string
	for _, kw := range keywords {
		if !utils.ContainsString(unique, kw) {
			unique = append(unique, kw)
		}
		if len(unique) >= 15 {
			break
		}
	}
	return unique
}

// anyWordIn reports whether any of the first n words of keyword (all words
// when n is 0) is a substring of text.
func anyWordIn(keyword, text string, n int) bool {
	words := strings.Fields(keyword)
	if n > 0 && len(words) > n {
		words = words[:n]
	}
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
