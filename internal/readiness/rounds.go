package readiness

// GenerateRoundMapping picks one of five fixed round templates from the
// company size and the detected skills. Mid-size companies always get the
// balanced template regardless of skills.
func GenerateRoundMapping(skills ExtractedSkills, intel *CompanyIntel) []RoundMapping {
	hasDSA := skills.Has(CategoryCoreCS, "DSA")
	hasWeb := skills.HasAny(CategoryWeb)
	size := SizeStartup
	if intel != nil {
		size = intel.Size
	}

	switch {
	case size == SizeEnterprise && hasDSA:
		return enterpriseTechnicalRounds()
	case size == SizeEnterprise:
		return enterpriseGeneralRounds()
	case size == SizeStartup && hasWeb:
		return startupPracticalRounds()
	case size == SizeStartup:
		return startupGeneralRounds()
	default:
		return balancedRounds()
	}
}

func enterpriseTechnicalRounds() []RoundMapping {
	return []RoundMapping{
		{
			Round:        1,
			Title:        "Online Assessment",
			Description:  "DSA + Aptitude test on HackerRank/Codility platform",
			WhyItMatters: "Filters 70% of candidates. Tests speed, accuracy, and foundational problem-solving under time pressure.",
		},
		{
			Round:        2,
			Title:        "Technical Interview I",
			Description:  "Deep DSA + Core CS fundamentals (OOP, DBMS, OS)",
			WhyItMatters: "Validates depth of knowledge. Enterprise needs engineers who can handle complex, scalable systems.",
		},
		{
			Round:        3,
			Title:        "Technical Interview II",
			Description:  "System design + Projects discussion",
			WhyItMatters: "Assesses architecture skills. Critical for building and maintaining large-scale enterprise products.",
		},
		{
			Round:        4,
			Title:        "Hiring Manager",
			Description:  "Behavioral + Culture fit + Career alignment",
			WhyItMatters: "Ensures long-term retention. Enterprise invests heavily in onboarding and training.",
		},
		{
			Round:        5,
			Title:        "HR Discussion",
			Description:  "Compensation, benefits, and offer negotiation",
			WhyItMatters: "Final alignment on expectations. Standardized packages with room for negotiation based on performance.",
		},
	}
}

func enterpriseGeneralRounds() []RoundMapping {
	return []RoundMapping{
		{
			Round:        1,
			Title:        "Online Assessment",
			Description:  "Aptitude + Basic programming concepts",
			WhyItMatters: "Baseline assessment of logical thinking and coding fundamentals.",
		},
		{
			Round:        2,
			Title:        "Technical Interview",
			Description:  "Role-specific skills + Core concepts",
			WhyItMatters: "Validates practical knowledge required for the specific position.",
		},
		{
			Round:        3,
			Title:        "Hiring Manager",
			Description:  "Projects + Behavioral discussion",
			WhyItMatters: "Assesses cultural fit and past experience relevance.",
		},
		{
			Round:        4,
			Title:        "HR Discussion",
			Description:  "Offer and compensation",
			WhyItMatters: "Finalizes employment terms and onboarding details.",
		},
	}
}

func startupPracticalRounds() []RoundMapping {
	return []RoundMapping{
		{
			Round:        1,
			Title:        "Practical Coding",
			Description:  "Live coding session building a small feature",
			WhyItMatters: "Startups need immediate contributors. Tests real-world coding ability and speed.",
		},
		{
			Round:        2,
			Title:        "System Discussion",
			Description:  "Architecture discussion + Previous projects deep dive",
			WhyItMatters: "Assesses end-to-end thinking. Startups value engineers who can own features independently.",
		},
		{
			Round:        3,
			Title:        "Culture & Fit",
			Description:  "Founder/CTO interview + Team collaboration scenarios",
			WhyItMatters: "Critical for small teams. Cultural alignment drives startup success and retention.",
		},
		{
			Round:        4,
			Title:        "Final Discussion",
			Description:  "Role expectations + Equity discussion",
			WhyItMatters: "Aligns on growth trajectory. Startup compensation often includes equity components.",
		},
	}
}

func startupGeneralRounds() []RoundMapping {
	return []RoundMapping{
		{
			Round:        1,
			Title:        "Technical Screening",
			Description:  "Problem solving + Core skills assessment",
			WhyItMatters: "Quick validation of technical competency for fast-moving startups.",
		},
		{
			Round:        2,
			Title:        "Deep Dive",
			Description:  "Project discussion + Domain expertise",
			WhyItMatters: "Assesses depth in relevant areas for immediate impact.",
		},
		{
			Round:        3,
			Title:        "Team Fit",
			Description:  "Collaboration scenarios + Culture alignment",
			WhyItMatters: "Small teams require strong interpersonal dynamics and shared values.",
		},
	}
}

func balancedRounds() []RoundMapping {
	return []RoundMapping{
		{
			Round:        1,
			Title:        "Online Test",
			Description:  "DSA + Aptitude screening",
			WhyItMatters: "Initial filter to manage high application volume efficiently.",
		},
		{
			Round:        2,
			Title:        "Technical Interview",
			Description:  "DSA/Problem solving + Practical coding",
			WhyItMatters: "Balances theoretical knowledge with hands-on implementation skills.",
		},
		{
			Round:        3,
			Title:        "System Design",
			Description:  "Architecture discussion + Scalability concepts",
			WhyItMatters: "Mid-size companies are scaling. Need engineers who can grow with the system.",
		},
		{
			Round:        4,
			Title:        "Hiring Manager",
			Description:  "Behavioral + Career goals alignment",
			WhyItMatters: "Ensures mutual growth trajectory. Mid-size companies invest in long-term potential.",
		},
	}
}
