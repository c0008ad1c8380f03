package readiness

import "fmt"

type checklistSection struct {
	round int
	title string
	slots []slot
}

func checklistSections() []checklistSection {
	return []checklistSection{
		{
			round: 1,
			title: "Aptitude / Basics",
			slots: []slot{
				fixed("Practice quantitative aptitude (percentages, ratios, profit/loss)"),
				fixed("Solve logical reasoning puzzles (pattern matching, series)"),
				fixed("Review verbal ability (grammar, comprehension)"),
				either(hasAny(CategoryCoreCS), literal("Brush up on basic CS fundamentals"), "Learn basic programming concepts"),
				fixed("Complete 2-3 mock aptitude tests"),
			},
		},
		{
			round: 2,
			title: "DSA + Core CS",
			slots: []slot{
				either(hasSkill(CategoryCoreCS, "DSA"), literal("Revise arrays, strings, and hash maps"), "Learn basic data structures"),
				either(hasSkill(CategoryCoreCS, "DSA"), literal("Practice tree and graph traversals"), "Understand recursion basics"),
				either(hasSkill(CategoryCoreCS, "OOP"), literal("Review OOP principles and design patterns"), "Learn OOP fundamentals"),
				either(hasSkill(CategoryCoreCS, "DBMS"), literal("Study SQL queries and normalization"), "Learn basic database concepts"),
				either(hasSkill(CategoryCoreCS, "OS"), literal("Revise processes, threads, and memory management"), "Understand OS basics"),
				either(hasSkill(CategoryCoreCS, "Networks"), literal("Review HTTP, TCP/IP protocols"), "Learn networking fundamentals"),
				fixed("Solve 5-10 LeetCode medium problems"),
			},
		},
		{
			round: 3,
			title: "Tech Interview (Projects + Stack)",
			slots: []slot{
				either(hasAny(CategoryLanguages), func(s ExtractedSkills) string {
					return fmt.Sprintf("Prepare deep dive on %s", leading(s, CategoryLanguages, 2))
				}, "Learn one programming language deeply"),
				either(hasAny(CategoryWeb), func(s ExtractedSkills) string {
					return fmt.Sprintf("Review %s concepts and best practices", leading(s, CategoryWeb, 2))
				}, "Understand web development basics"),
				either(hasAny(CategoryData), func(s ExtractedSkills) string {
					return fmt.Sprintf("Practice %s queries and optimization", leading(s, CategoryData, 2))
				}, "Learn database fundamentals"),
				either(hasAny(CategoryCloudDevOps), func(s ExtractedSkills) string {
					return fmt.Sprintf("Understand %s basics", leading(s, CategoryCloudDevOps, 2))
				}, "Learn deployment fundamentals"),
				fixed("Prepare to explain your projects (architecture, challenges, solutions)"),
				fixed("Review system design basics (scalability, caching)"),
			},
		},
		{
			round: 4,
			title: "Managerial / HR",
			slots: []slot{
				fixed("Prepare STAR format answers for behavioral questions"),
				fixed("Research company culture and values"),
				fixed("Prepare questions to ask the interviewer"),
				fixed("Practice salary negotiation strategies"),
				fixed("Review your resume thoroughly"),
				fixed("Prepare introduction (elevator pitch)"),
			},
		},
	}
}

// GenerateChecklist builds the four-round preparation checklist.
func GenerateChecklist(skills ExtractedSkills) []RoundChecklist {
	sections := checklistSections()
	out := make([]RoundChecklist, 0, len(sections))
	for _, section := range sections {
		out = append(out, RoundChecklist{
			Round: section.round,
			Title: section.title,
			Items: renderSlots(skills, section.slots),
		})
	}
	return out
}
