package readiness

// Taxonomy maps each category to its ordered canonical skill tokens.
// The zero value is empty; use DefaultTaxonomy for the built-in table.
type Taxonomy struct {
	entries []taxonomyEntry
}

type taxonomyEntry struct {
	category Category
	label    string
	skills   []string
}

// DefaultTaxonomy returns the built-in skill table.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{entries: []taxonomyEntry{
		{category: CategoryCoreCS, label: "Core CS", skills: []string{"DSA", "OOP", "DBMS", "OS", "Networks"}},
		{category: CategoryLanguages, label: "Languages", skills: []string{"Java", "Python", "JavaScript", "TypeScript", "C", "C++", "C#", "Go"}},
		{category: CategoryWeb, label: "Web", skills: []string{"React", "Next.js", "Node.js", "Express", "REST", "GraphQL"}},
		{category: CategoryData, label: "Data", skills: []string{"SQL", "MongoDB", "PostgreSQL", "MySQL", "Redis"}},
		{category: CategoryCloudDevOps, label: "Cloud/DevOps", skills: []string{"AWS", "Azure", "GCP", "Docker", "Kubernetes", "CI/CD", "Linux"}},
		{category: CategoryTesting, label: "Testing", skills: []string{"Selenium", "Cypress", "Playwright", "JUnit", "PyTest"}},
	}}
}

// Categories returns the categories covered by the taxonomy, in order.
func (t Taxonomy) Categories() []Category {
	out := make([]Category, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.category)
	}
	return out
}

// Skills returns a copy of the tokens for a category.
func (t Taxonomy) Skills(category Category) []string {
	for _, e := range t.entries {
		if e.category == category {
			return append([]string(nil), e.skills...)
		}
	}
	return nil
}

// Label returns the display label for a category.
func (t Taxonomy) Label(category Category) string {
	for _, e := range t.entries {
		if e.category == category {
			return e.label
		}
	}
	return string(category)
}

// Contains reports whether token is a canonical skill of the category.
func (t Taxonomy) Contains(category Category, token string) bool {
	for _, e := range t.entries {
		if e.category != category {
			continue
		}
		for _, s := range e.skills {
			if s == token {
				return true
			}
		}
	}
	return false
}

// fallbackSkills is the general fresher stack used when nothing is detected.
func fallbackSkills() ExtractedSkills {
	return ExtractedSkills{
		CoreCS:      []string{"DSA", "OOP"},
		Languages:   []string{"Java", "Python"},
		Web:         []string{"HTML/CSS", "JavaScript Basics"},
		Data:        []string{},
		CloudDevOps: []string{},
		Testing:     []string{},
	}
}
