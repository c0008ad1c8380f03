package readiness

const (
	maxQuestions      = 10
	minSpecificBefore = 5
)

type questionRule struct {
	when      predicate
	questions []string
}

// questionRules run in category order: coreCS, languages, web, data, cloudDevOps, testing.
func questionRules() []questionRule {
	return []questionRule{
		{when: hasSkill(CategoryCoreCS, "DSA"), questions: []string{
			"How would you optimize search in sorted data? Explain binary search vs linear search.",
			"Explain the difference between array and linked list. When would you use each?",
		}},
		{when: hasSkill(CategoryCoreCS, "OOP"), questions: []string{
			"Explain the four pillars of OOP with real-world examples.",
			"What is the difference between abstraction and encapsulation?",
		}},
		{when: hasSkill(CategoryCoreCS, "DBMS"), questions: []string{
			"Explain normalization and its types. Why is it important?",
			"What are ACID properties in databases?",
		}},
		{when: hasSkill(CategoryCoreCS, "OS"), questions: []string{
			"Explain the difference between process and thread.",
			"What is deadlock? How can it be prevented?",
		}},
		{when: hasSkill(CategoryCoreCS, "Networks"), questions: []string{
			"Explain the difference between HTTP and HTTPS.",
			"What happens when you type a URL in the browser?",
		}},
		{when: hasSkill(CategoryLanguages, "Java"), questions: []string{
			"Explain Java memory model and garbage collection.",
			"What is the difference between String, StringBuilder, and StringBuffer?",
		}},
		{when: hasSkill(CategoryLanguages, "Python"), questions: []string{
			"Explain Python decorators with an example.",
			"What are list comprehensions and generator expressions?",
		}},
		{when: anyOf(hasSkill(CategoryLanguages, "JavaScript"), hasSkill(CategoryLanguages, "TypeScript")), questions: []string{
			"Explain closures in JavaScript with a practical example.",
			"What is the event loop in JavaScript?",
		}},
		{when: hasSkill(CategoryWeb, "React"), questions: []string{
			"Explain React state management options. When would you use each?",
			"What are React hooks? Explain useEffect and useMemo.",
		}},
		{when: hasSkill(CategoryWeb, "Node.js"), questions: []string{
			"How does Node.js handle asynchronous operations?",
			"Explain the middleware pattern in Express.js.",
		}},
		{when: anyOf(hasSkill(CategoryWeb, "REST"), hasSkill(CategoryWeb, "GraphQL")), questions: []string{
			"Compare REST vs GraphQL. What are the pros and cons of each?",
		}},
		{when: hasSkill(CategoryData, "SQL"), questions: []string{
			"Explain indexing in databases. When does it help and when does it hurt?",
			"What is the difference between INNER JOIN and LEFT JOIN?",
		}},
		{when: hasSkill(CategoryData, "MongoDB"), questions: []string{
			"When would you choose MongoDB over SQL databases?",
			"Explain MongoDB aggregation pipeline.",
		}},
		{when: hasSkill(CategoryCloudDevOps, "Docker"), questions: []string{
			"What is the difference between Docker container and VM?",
			"Explain Docker layers and how they optimize builds.",
		}},
		{when: anyOf(hasSkill(CategoryCloudDevOps, "AWS"), hasSkill(CategoryCloudDevOps, "Azure"), hasSkill(CategoryCloudDevOps, "GCP")), questions: []string{
			"Explain cloud computing deployment models (IaaS, PaaS, SaaS).",
			"What are the benefits of using cloud services?",
		}},
		{when: anyOf(hasSkill(CategoryTesting, "Selenium"), hasSkill(CategoryTesting, "Cypress"), hasSkill(CategoryTesting, "Playwright")), questions: []string{
			"What is the difference between unit testing and integration testing?",
			"Explain the Page Object Model in test automation.",
		}},
	}
}

func genericQuestions() []string {
	return []string{
		"Tell me about yourself and your technical background.",
		"What is your approach to debugging a complex issue?",
		"How do you stay updated with the latest technologies?",
		"Describe a challenging project you worked on.",
		"How do you handle tight deadlines and pressure?",
	}
}

// GenerateQuestions lists likely interview questions. Skill-specific
// questions always come first; the generic block is added only when fewer
// than five specific ones were found. At most ten are returned.
func GenerateQuestions(skills ExtractedSkills) []string {
	out := make([]string, 0, maxQuestions+len(genericQuestions()))
	for _, rule := range questionRules() {
		if rule.when(skills) {
			out = append(out, rule.questions...)
		}
	}
	if len(out) < minSpecificBefore {
		out = append(out, genericQuestions()...)
	}
	if len(out) > maxQuestions {
		out = out[:maxQuestions]
	}
	return out
}
