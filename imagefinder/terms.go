package imagefinder

import (
	"regexp"
	"strings"

	"github.com/lookizm/autopress/model"
)

// The niche vocabulary is useless as an image query ("mewing" returns cats).
// Every term is mapped to generic, photo-searchable phrases instead.
// Multi-word terms come first so the most specific translation wins.
type termTranslation struct {
	term    string
	phrases []string
}

var translations = []termTranslation{
	{"bonesmashing", []string{"strong jawline male", "defined jaw", "facial bone structure"}},
	{"jawline development", []string{"strong jawline male", "defined jaw", "facial structure development"}},
	{"facial symmetry", []string{"symmetric male face", "balanced facial features", "male portrait"}},
	{"mouth widening", []string{"wide smile male", "confident smile", "facial expression"}},
	{"eye area enhancement", []string{"attractive male eyes", "eye area", "facial features"}},
	{"nose optimization", []string{"male nose profile", "nose shape", "facial profile"}},
	{"physique development", []string{"athletic male body", "muscular physique", "fitness transformation male"}},
	{"posture correction", []string{"good posture male", "standing straight", "confident posture"}},
	{"height optimization", []string{"tall athletic male", "height advantage", "tall man"}},
	{"shoulder width", []string{"broad shoulders male", "athletic shoulders", "V-shaped physique"}},
	{"waist-to-hip ratio", []string{"athletic male body", "fitness physique", "muscular build"}},
	{"sleep optimization", []string{"healthy sleep", "sleeping well", "rest recovery"}},
	{"diet for aesthetics", []string{"healthy nutrition", "fitness diet", "athletic nutrition"}},
	{"hormone optimization", []string{"male health", "fitness wellness", "health optimization"}},
	{"stress management", []string{"relaxation techniques", "meditation wellness", "stress relief"}},
	{"hair styling", []string{"male hairstyle", "groomed hair", "professional haircut"}},
	{"skincare routine", []string{"male skincare", "face care routine", "grooming routine"}},
	{"fashion sense", []string{"male fashion style", "professional style", "well-dressed man"}},
	{"dental care", []string{"white teeth smile", "dental health", "perfect smile"}},
	{"cosmetic surgery", []string{"cosmetic procedure", "plastic surgery", "medical enhancement"}},
	{"hair transplants", []string{"hair restoration", "hair transplant procedure", "medical hair"}},
	{"filler procedures", []string{"cosmetic fillers", "facial enhancement", "medical aesthetics"}},
	{"jaw surgery", []string{"orthognathic surgery", "jaw correction", "facial surgery"}},
	{"mewing", []string{"jawline exercise", "tongue posture technique", "facial development exercise"}},
	{"softmaxxing", []string{"male grooming routine", "skincare fitness", "lifestyle improvement"}},
	{"hardmaxxing", []string{"cosmetic surgery", "surgical enhancement", "medical procedure"}},
	{"mogging", []string{"attractive confident male", "fitness model", "athletic attractive man"}},
	{"chad", []string{"attractive athletic male", "confident portrait", "ideal male physique"}},
	{"looksmaxing", []string{"male self improvement", "fitness transformation", "aesthetic enhancement male"}},
	{"looksmax", []string{"male improvement", "fitness aesthetics", "self enhancement"}},
	{"maxxing", []string{"improvement", "enhancement"}},
	{"maxxed", []string{"improved", "enhanced"}},
	{"supplementation", []string{"health supplements", "fitness vitamins", "nutrition supplements"}},
	{"orthodontics", []string{"dental braces", "teeth alignment", "orthodontic treatment"}},
}

var categoryContext = map[string][]string{
	model.CategoryFacialAesthetics: {"male", "facial", "face", "portrait"},
	model.CategoryBodyAesthetics:   {"athletic", "fitness", "muscular", "male"},
	model.CategoryLifestyle:        {"health", "wellness", "lifestyle", "routine"},
	model.CategoryGrooming:         {"male", "grooming", "style", "fashion"},
	model.CategorySurgery:          {"medical", "surgery", "procedure", "cosmetic"},
}

var categoryDefaults = map[string][]string{
	model.CategoryFacialAesthetics: {"male portrait", "facial features"},
	model.CategoryBodyAesthetics:   {"athletic male", "fitness"},
	model.CategoryLifestyle:        {"healthy lifestyle", "wellness"},
	model.CategoryGrooming:         {"male grooming", "style"},
	model.CategorySurgery:          {"medical procedure", "cosmetic surgery"},
}

var commonWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "your": true, "you": true, "how": true,
	"what": true, "when": true, "where": true, "why": true, "this": true,
	"that": true, "these": true, "those": true, "proven": true,
	"techniques": true, "appliances": true, "guide": true, "complete": true,
	"ultimate": true, "improve": true, "enhance": true, "transform": true,
	"achieve": true, "become": true,
}

// words that survive translation untouched because they already search well
var searchableWords = map[string]bool{
	"fitness": true, "health": true, "facial": true, "face": true,
	"body": true, "muscle": true, "athletic": true, "grooming": true,
	"style": true, "fashion": true, "hair": true, "skincare": true,
	"dental": true, "medical": true, "surgery": true, "posture": true,
	"diet": true, "nutrition": true, "sleep": true, "wellness": true,
	"lifestyle": true, "portrait": true, "jaw": true, "chin": true,
	"eyes": true, "nose": true, "mouth": true, "teeth": true,
	"shoulders": true, "back": true, "spine": true, "male": true,
	"man": true, "attractive": true, "confident": true, "strong": true,
	"defined": true, "symmetric": true, "wide": true, "broad": true,
	"tall": true, "white": true, "good": true, "healthy": true,
}

var wordRe = regexp.MustCompile(`\w+`)

// translateTerms maps niche jargon in text to up to 5 photo-searchable
// phrases, padded with category context when the text yields too little.
func translateTerms(text, category string) []string {
	if text == "" {
		return nil
	}

	processed := strings.ToLower(text)
	var translated []string

	for _, tr := range translations {
		if strings.Contains(processed, tr.term) {
			limit := 2
			if limit > len(tr.phrases) {
				limit = len(tr.phrases)
			}
			translated = append(translated, tr.phrases[:limit]...)
			// avoid double matching of sub-terms
			processed = strings.ReplaceAll(processed, tr.term, " ")
		}
	}

	for _, word := range wordRe.FindAllString(processed, -1) {
		if commonWords[word] || len(word) <= 3 {
			continue
		}
		if searchableWords[word] {
			translated = append(translated, word)
		}
	}

	if context, ok := categoryContext[category]; ok && len(translated) < 4 {
		for _, ctxWord := range context {
			if !containsTerm(translated, ctxWord) {
				translated = append(translated, ctxWord)
				if len(translated) >= 5 {
					break
				}
			}
		}
	}

	if len(translated) > 5 {
		translated = translated[:5]
	}
	return translated
}

// generateSearchTerms derives 2-3 concise search phrases for an image query.
// Multi-word phrases are preferred; a phrase wholly contained in another is
// dropped in favor of the longer one; category defaults pad short results.
func generateSearchTerms(title, topic, category string) []string {
	combined := strings.TrimSpace(title + " " + topic)
	translated := translateTerms(combined, category)

	var multiWord, singleWord []string
	for _, term := range translated {
		if strings.Contains(term, " ") {
			multiWord = append(multiWord, term)
		} else {
			singleWord = append(singleWord, term)
		}
	}

	searchTerms := append([]string{}, multiWord...)
	if len(singleWord) > 0 {
		if len(searchTerms) < 2 && len(singleWord) >= 2 {
			searchTerms = append(searchTerms, singleWord[0]+" "+singleWord[1])
		} else if len(searchTerms) < 3 {
			limit := 2
			if limit > len(singleWord) {
				limit = len(singleWord)
			}
			searchTerms = append(searchTerms, singleWord[:limit]...)
		}
	}

	unique := dedupeSubsumed(searchTerms)
	if len(unique) > 3 {
		unique = unique[:3]
	}

	if len(unique) < 2 {
		for _, def := range categoryDefaults[category] {
			if !overlapsAny(unique, def) {
				unique = append(unique, def)
				if len(unique) >= 3 {
					break
				}
			}
		}
	}

	if len(unique) > 3 {
		unique = unique[:3]
	}
	return unique
}

// dedupeSubsumed removes exact duplicates and phrases contained in a longer
// phrase already kept; a longer phrase replaces a shorter one it contains.
func dedupeSubsumed(terms []string) []string {
	var unique []string
	seen := map[string]bool{}
	for _, term := range terms {
		termLower := strings.ToLower(strings.TrimSpace(term))
		if seen[termLower] {
			continue
		}

		subsumed := false
		for i, existing := range unique {
			existingLower := strings.ToLower(strings.TrimSpace(existing))
			if strings.Contains(existingLower, termLower) {
				subsumed = true
				break
			}
			if strings.Contains(termLower, existingLower) {
				unique = append(unique[:i], unique[i+1:]...)
				delete(seen, existingLower)
				break
			}
		}
		if !subsumed {
			unique = append(unique, term)
			seen[termLower] = true
		}
	}
	return unique
}

func containsTerm(terms []string, term string) bool {
	for _, t := range terms {
		if t == term {
			return true
		}
	}
	return false
}

// overlapsAny reports whether candidate is contained in, or contains, any of
// the existing terms (case-insensitive).
func overlapsAny(terms []string, candidate string) bool {
	candidateLower := strings.ToLower(candidate)
	for _, term := range terms {
		termLower := strings.ToLower(term)
		if strings.Contains(termLower, candidateLower) || strings.Contains(candidateLower, termLower) {
			return true
		}
	}
	return false
}
