package readiness

import (
	"reflect"
	"slices"
	"strings"
	"testing"
)

func TestExtractSkillsLiteralSymbols(t *testing.T) {
	skills := ExtractSkills("Experience with C++ and C# required")

	if want := []string{"C++", "C#"}; !reflect.DeepEqual(skills.Languages, want) {
		t.Fatalf("languages = %v, want %v", skills.Languages, want)
	}
	if len(skills.CoreCS) != 0 || len(skills.Web) != 0 {
		t.Fatalf("unexpected skills: core=%v web=%v", skills.CoreCS, skills.Web)
	}
}

func TestExtractSkillsWholeWord(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		category Category
		want     []string
	}{
		{name: "react_native", text: "React Native developer", category: CategoryWeb, want: []string{"React"}},
		{name: "java_not_in_javascript", text: "Senior JavaScript developer", category: CategoryLanguages, want: []string{"JavaScript"}},
		{name: "go_not_in_google", text: "Ex-Google engineers welcome, SQL a plus", category: CategoryLanguages, want: []string{}},
		{name: "case_insensitive", text: "we use docker and KUBERNETES daily", category: CategoryCloudDevOps, want: []string{"Docker", "Kubernetes"}},
		{name: "dotted_tokens", text: "Next.js, Node.js; express", category: CategoryWeb, want: []string{"Next.js", "Node.js", "Express"}},
		{name: "dot_is_literal", text: "nodexjs and nextxjs with Redis", category: CategoryWeb, want: []string{}},
		{name: "slash_token", text: "Own the CI/CD pipeline on Linux", category: CategoryCloudDevOps, want: []string{"CI/CD", "Linux"}},
		{name: "c_before_slash", text: "C/C++ firmware", category: CategoryLanguages, want: []string{"C", "C++"}},
		{name: "c_not_in_cpp_or_csharp", text: "C++ and C# only", category: CategoryLanguages, want: []string{"C++", "C#"}},
		{name: "c_plus_other_word", text: "C+Linux drivers", category: CategoryLanguages, want: []string{"C"}},
		{name: "react_plus_redux", text: "React+Redux and Node.js", category: CategoryWeb, want: []string{"React", "Node.js"}},
		{name: "java_plus_spring", text: "Java+Spring, Python+Django", category: CategoryLanguages, want: []string{"Java", "Python"}},
		{name: "hash_suffix", text: "Python# scripting", category: CategoryLanguages, want: []string{"Python"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			skills := ExtractSkills(tc.text)
			if skills.IsEmpty() {
				t.Fatalf("unexpected empty result")
			}
			got := skills.Get(tc.category)
			if len(tc.want) == 0 {
				if len(got) != 0 {
					t.Fatalf("expected no skills, got %v", got)
				}
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExtractSkillsPlusJoinedIsNotFallback(t *testing.T) {
	skills := ExtractSkills("Java+Spring, Python+Django")
	if slices.Contains(skills.Web, "HTML/CSS") {
		t.Fatalf("expected detected skills, got fallback %+v", skills)
	}
}

func TestExtractSkillsTaxonomyOrder(t *testing.T) {
	skills := ExtractSkills("Redis, MySQL, PostgreSQL, MongoDB and SQL")
	if want := []string{"SQL", "MongoDB", "PostgreSQL", "MySQL", "Redis"}; !reflect.DeepEqual(skills.Data, want) {
		t.Fatalf("data = %v, want %v", skills.Data, want)
	}
}

func TestExtractSkillsFallback(t *testing.T) {
	for _, text := range []string{"", "   ", "We are hiring a friendly person", "\x00\xff\xfe"} {
		skills := ExtractSkills(text)
		if !reflect.DeepEqual(skills.CoreCS, []string{"DSA", "OOP"}) ||
			!reflect.DeepEqual(skills.Languages, []string{"Java", "Python"}) ||
			!reflect.DeepEqual(skills.Web, []string{"HTML/CSS", "JavaScript Basics"}) {
			t.Fatalf("unexpected fallback for %q: %+v", text, skills)
		}
		if len(skills.Data)+len(skills.CloudDevOps)+len(skills.Testing) != 0 {
			t.Fatalf("fallback should leave other categories empty: %+v", skills)
		}
	}
}

func TestExtractSkillsSubsetOfTaxonomy(t *testing.T) {
	taxonomy := DefaultTaxonomy()
	text := strings.Repeat("DSA OOP DBMS OS Networks Java Python Go C C++ C# React REST SQL Redis AWS GCP Docker PyTest JUnit ", 50)

	skills := ExtractSkills(text)
	if skills.IsEmpty() {
		t.Fatalf("expected skills")
	}
	for _, category := range Categories() {
		for _, skill := range skills.Get(category) {
			if !taxonomy.Contains(category, skill) {
				t.Fatalf("%s not in %s", skill, category)
			}
		}
	}
	if got := skills.CategoriesPresent(); got != 6 {
		t.Fatalf("expected 6 categories, got %d", got)
	}
}

func TestExtractorCustomTaxonomy(t *testing.T) {
	taxonomy := Taxonomy{entries: []taxonomyEntry{
		{category: CategoryLanguages, label: "Languages", skills: []string{"Rust", "Zig"}},
	}}
	extractor := NewExtractor(taxonomy)

	skills := extractor.Extract("Rust and zig")
	if want := []string{"Rust", "Zig"}; !reflect.DeepEqual(skills.Languages, want) {
		t.Fatalf("languages = %v, want %v", skills.Languages, want)
	}
	if len(skills.Web) != 0 {
		t.Fatalf("expected no web skills, got %v", skills.Web)
	}
}

func TestTaxonomySkillsReturnsCopy(t *testing.T) {
	taxonomy := DefaultTaxonomy()
	skills := taxonomy.Skills(CategoryCoreCS)
	skills[0] = "mutated"

	if got := taxonomy.Skills(CategoryCoreCS)[0]; got != "DSA" {
		t.Fatalf("taxonomy mutated: %q", got)
	}
	if got := taxonomy.Label(CategoryCloudDevOps); got != "Cloud/DevOps" {
		t.Fatalf("label = %q", got)
	}
}
