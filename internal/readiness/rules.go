package readiness

import "strings"

type predicate func(ExtractedSkills) bool

// slotRule renders one skeleton slot when its predicate holds. A nil
// predicate always matches.
type slotRule struct {
	when   predicate
	render func(ExtractedSkills) string
}

// slot is an ordered rule list evaluated top to bottom; the first matching rule wins.
type slot []slotRule

func (s slot) render(skills ExtractedSkills) string {
	for _, r := range s {
		if r.when == nil || r.when(skills) {
			return r.render(skills)
		}
	}
	return ""
}

func fixed(text string) slot {
	return slot{{render: literal(text)}}
}

// either renders yes when p holds and the literal fallback otherwise.
func either(p predicate, yes func(ExtractedSkills) string, fallback string) slot {
	return slot{
		{when: p, render: yes},
		{render: literal(fallback)},
	}
}

func literal(text string) func(ExtractedSkills) string {
	return func(ExtractedSkills) string { return text }
}

func hasSkill(category Category, skill string) predicate {
	return func(s ExtractedSkills) bool { return s.Has(category, skill) }
}

func hasAny(category Category) predicate {
	return func(s ExtractedSkills) bool { return s.HasAny(category) }
}

func anyOf(preds ...predicate) predicate {
	return func(s ExtractedSkills) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}
}

// leading joins up to the first n skills of a category, keeping taxonomy order.
func leading(s ExtractedSkills, category Category, n int) string {
	skills := s.Get(category)
	if len(skills) > n {
		skills = skills[:n]
	}
	return strings.Join(skills, ", ")
}

// renderSlots drops slots that render empty text; order is preserved.
func renderSlots(skills ExtractedSkills, slots []slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if text := s.render(skills); text != "" {
			out = append(out, text)
		}
	}
	return out
}
