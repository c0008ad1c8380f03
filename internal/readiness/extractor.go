package readiness

import (
	"regexp"
	"strings"
)

// Extractor detects taxonomy skills in free text. It is immutable once built
// and safe for concurrent use.
type Extractor struct {
	taxonomy Taxonomy
	patterns []categoryPatterns
}

type categoryPatterns struct {
	category Category
	skills   []skillPattern
}

type skillPattern struct {
	token string
	re    *regexp.Regexp
	// longer holds the tails of taxonomy tokens that extend this one with
	// '+' or '#', e.g. "++" and "#" for "C".
	longer []string
}

var defaultExtractor = NewExtractor(DefaultTaxonomy())

// NewExtractor compiles one whole-word matcher per taxonomy token.
func NewExtractor(taxonomy Taxonomy) *Extractor {
	var all []string
	for _, category := range taxonomy.Categories() {
		all = append(all, taxonomy.Skills(category)...)
	}
	patterns := make([]categoryPatterns, 0, len(taxonomy.entries))
	for _, category := range taxonomy.Categories() {
		tokens := taxonomy.Skills(category)
		cp := categoryPatterns{category: category, skills: make([]skillPattern, 0, len(tokens))}
		for _, token := range tokens {
			cp.skills = append(cp.skills, skillPattern{
				token:  token,
				re:     wholeWord(token),
				longer: extensionsOf(token, all),
			})
		}
		patterns = append(patterns, cp)
	}
	return &Extractor{taxonomy: taxonomy, patterns: patterns}
}

// wholeWord matches token literally after a word boundary. The trailing
// boundary is checked by skillPattern.matches.
func wholeWord(token string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(strings.ToLower(token))
	return regexp.MustCompile(`(?:^|[^a-z0-9_])` + quoted)
}

func extensionsOf(token string, all []string) []string {
	lower := strings.ToLower(token)
	var tails []string
	for _, other := range all {
		o := strings.ToLower(other)
		if len(o) <= len(lower) || !strings.HasPrefix(o, lower) {
			continue
		}
		if next := o[len(lower)]; next == '+' || next == '#' {
			tails = append(tails, o[len(lower):])
		}
	}
	return tails
}

// matches reports whether the token occurs as a whole word in lower. "C" is
// rejected inside "c++" or "c#" but still found in "c+redux".
func (sp skillPattern) matches(lower string) bool {
	for _, loc := range sp.re.FindAllStringIndex(lower, -1) {
		rest := lower[loc[1]:]
		if rest != "" && isWordByte(rest[0]) {
			continue
		}
		if sp.extendedAt(rest) {
			continue
		}
		return true
	}
	return false
}

func (sp skillPattern) extendedAt(rest string) bool {
	for _, tail := range sp.longer {
		if strings.HasPrefix(rest, tail) {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '_'
}

// ExtractSkills scans text with the default taxonomy.
func ExtractSkills(text string) ExtractedSkills {
	return defaultExtractor.Extract(text)
}

// Extract returns the detected skills per category in taxonomy order. When
// nothing is detected the general fresher stack is returned instead.
func (e *Extractor) Extract(text string) ExtractedSkills {
	lower := strings.ToLower(text)
	out := ExtractedSkills{}
	for _, category := range Categories() {
		out.set(category, []string{})
	}
	for _, cp := range e.patterns {
		found := make([]string, 0, len(cp.skills))
		for _, sp := range cp.skills {
			if sp.matches(lower) {
				found = append(found, sp.token)
			}
		}
		out.set(cp.category, found)
	}
	if out.IsEmpty() {
		return fallbackSkills()
	}
	return out
}

// Taxonomy returns the table the extractor was built from.
func (e *Extractor) Taxonomy() Taxonomy {
	return e.taxonomy
}
