package readiness

// Analyzer runs the full pipeline over a fixed set of lookup tables.
type Analyzer struct {
	extractor *Extractor
	companies CompanyClassifier
}

var defaultAnalyzer = &Analyzer{extractor: defaultExtractor, companies: defaultClassifier}

// NewAnalyzer builds an Analyzer from explicit tables.
func NewAnalyzer(taxonomy Taxonomy, lists CompanyLists) *Analyzer {
	return &Analyzer{
		extractor: NewExtractor(taxonomy),
		companies: NewCompanyClassifier(lists),
	}
}

// Analyze runs the pipeline with the built-in tables.
func Analyze(in Input) Report {
	return defaultAnalyzer.Analyze(in)
}

// Analyze derives every artifact from the input. The adjusted score starts
// equal to the base score; confidence edits recompute it from the full map.
func (a *Analyzer) Analyze(in Input) Report {
	skills := a.extractor.Extract(in.JDText)
	score := CalculateReadinessScore(skills, in.Company, in.Role, in.JDText)
	intel := a.companies.Classify(in.Company)
	return Report{
		ExtractedSkills:        skills,
		SkillConfidenceMap:     CreateDefaultConfidenceMap(skills),
		ReadinessScore:         score,
		AdjustedReadinessScore: score,
		CompanyIntel:           intel,
		RoundMapping:           GenerateRoundMapping(skills, intel),
		Plan:                   GeneratePlan(skills),
		Checklist:              GenerateChecklist(skills),
		Questions:              GenerateQuestions(skills),
	}
}

// Extractor returns the extractor used by the analyzer.
func (a *Analyzer) Extractor() *Extractor {
	return a.extractor
}

// CompanyIntel classifies a company name with the analyzer's lists.
func (a *Analyzer) CompanyIntel(name string) *CompanyIntel {
	return a.companies.Classify(name)
}
