package readiness

import "fmt"

type planDay struct {
	day   int
	title string
	tasks []slot
}

func planDays() []planDay {
	return []planDay{
		{
			day:   1,
			title: "Basics + Core CS",
			tasks: []slot{
				fixed("Review CS fundamentals (OOP, DBMS basics)"),
				either(hasAny(CategoryCoreCS), literal("Study core CS subjects detected in JD"), "Learn basic CS concepts"),
				fixed("Practice 2 aptitude problems"),
			},
		},
		{
			day:   2,
			title: "Basics + Core CS",
			tasks: []slot{
				fixed("Continue CS fundamentals revision"),
				either(hasAny(CategoryCoreCS), literal("Focus on weak areas from mock tests"), "Build CS foundation"),
				fixed("Complete 1 mock aptitude test"),
			},
		},
		{
			day:   3,
			title: "DSA + Coding Practice",
			tasks: []slot{
				fixed("Solve 3 array/string problems"),
				either(hasAny(CategoryCoreCS), literal("Practice DSA problems related to JD"), "Learn basic data structures"),
				fixed("Review time/space complexity"),
			},
		},
		{
			day:   4,
			title: "DSA + Coding Practice",
			tasks: []slot{
				fixed("Solve 3 tree/graph problems"),
				fixed("Practice dynamic programming basics"),
				fixed("Complete 1 timed coding test"),
			},
		},
		{
			day:   5,
			title: "Project + Resume Alignment",
			tasks: []slot{
				fixed("Update resume with relevant keywords"),
				either(hasAny(CategoryWeb), func(s ExtractedSkills) string {
					return fmt.Sprintf("Review %s project architecture", headlineSkill(s))
				}, "Prepare project explanations"),
				fixed("Practice explaining projects in 2 minutes"),
				either(hasAny(CategoryData), literal("Prepare database schema explanations"), "Review project data flow"),
			},
		},
		{
			day:   6,
			title: "Mock Interview Questions",
			tasks: []slot{
				fixed("Practice 5 technical questions aloud"),
				either(hasAny(CategoryWeb), literal("Review frontend/backend interview questions"), "Practice general tech questions"),
				fixed("Do 1 mock interview with friend/peer"),
				fixed("Record yourself answering questions"),
			},
		},
		{
			day:   7,
			title: "Revision + Weak Areas",
			tasks: []slot{
				fixed("Review all notes and flashcards"),
				fixed("Focus on weak areas identified during practice"),
				fixed("Light coding practice (2 easy problems)"),
				fixed("Rest and prepare mentally for interview"),
			},
		},
	}
}

// headlineSkill is the first skill across all categories, or "web" when there is none.
func headlineSkill(s ExtractedSkills) string {
	if all := s.All(); len(all) > 0 {
		return all[0]
	}
	return "web"
}

// GeneratePlan builds the seven-day study plan.
func GeneratePlan(skills ExtractedSkills) []DayPlan {
	days := planDays()
	out := make([]DayPlan, 0, len(days))
	for _, d := range days {
		out = append(out, DayPlan{
			Day:   d.day,
			Title: d.title,
			Tasks: renderSlots(skills, d.tasks),
		})
	}
	return out
}
