package readiness

// Category names one of the fixed skill groupings.
type Category string

const (
	CategoryCoreCS      Category = "coreCS"
	CategoryLanguages   Category = "languages"
	CategoryWeb         Category = "web"
	CategoryData        Category = "data"
	CategoryCloudDevOps Category = "cloudDevOps"
	CategoryTesting     Category = "testing"
)

// Categories returns every category in taxonomy order.
func Categories() []Category {
	return []Category{
		CategoryCoreCS,
		CategoryLanguages,
		CategoryWeb,
		CategoryData,
		CategoryCloudDevOps,
		CategoryTesting,
	}
}

// ExtractedSkills holds the canonical skill names found in a job description, per category.
type ExtractedSkills struct {
	CoreCS      []string `json:"coreCS"`
	Languages   []string `json:"languages"`
	Web         []string `json:"web"`
	Data        []string `json:"data"`
	CloudDevOps []string `json:"cloudDevOps"`
	Testing     []string `json:"testing"`
}

// Get returns the skills detected for a category.
func (s ExtractedSkills) Get(category Category) []string {
	switch category {
	case CategoryCoreCS:
		return s.CoreCS
	case CategoryLanguages:
		return s.Languages
	case CategoryWeb:
		return s.Web
	case CategoryData:
		return s.Data
	case CategoryCloudDevOps:
		return s.CloudDevOps
	case CategoryTesting:
		return s.Testing
	default:
		return nil
	}
}

func (s *ExtractedSkills) set(category Category, skills []string) {
	switch category {
	case CategoryCoreCS:
		s.CoreCS = skills
	case CategoryLanguages:
		s.Languages = skills
	case CategoryWeb:
		s.Web = skills
	case CategoryData:
		s.Data = skills
	case CategoryCloudDevOps:
		s.CloudDevOps = skills
	case CategoryTesting:
		s.Testing = skills
	}
}

// Has reports whether the exact skill token was detected in the category.
func (s ExtractedSkills) Has(category Category, skill string) bool {
	for _, item := range s.Get(category) {
		if item == skill {
			return true
		}
	}
	return false
}

// HasAny reports whether the category has at least one detected skill.
func (s ExtractedSkills) HasAny(category Category) bool {
	return len(s.Get(category)) > 0
}

// All flattens every category in taxonomy order.
func (s ExtractedSkills) All() []string {
	out := make([]string, 0, 16)
	for _, category := range Categories() {
		out = append(out, s.Get(category)...)
	}
	return out
}

// CategoriesPresent counts categories with at least one skill.
func (s ExtractedSkills) CategoriesPresent() int {
	n := 0
	for _, category := range Categories() {
		if s.HasAny(category) {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no category has a skill.
func (s ExtractedSkills) IsEmpty() bool {
	return s.CategoriesPresent() == 0
}

// Confidence is a user's self-assessment for one skill.
type Confidence string

const (
	ConfidenceKnow     Confidence = "know"
	ConfidencePractice Confidence = "practice"
)

// Valid reports whether c is one of the two known states.
func (c Confidence) Valid() bool {
	return c == ConfidenceKnow || c == ConfidencePractice
}

// ConfidenceMap maps a skill name to its confidence state.
type ConfidenceMap map[string]Confidence

// CompanySize classifies a company by headcount bucket.
type CompanySize string

const (
	SizeStartup    CompanySize = "Startup"
	SizeMidSize    CompanySize = "Mid-size"
	SizeEnterprise CompanySize = "Enterprise"
)

// CompanyIntel is the inferred profile of the hiring company.
type CompanyIntel struct {
	Name               string      `json:"name"`
	Industry           string      `json:"industry"`
	Size               CompanySize `json:"size"`
	TypicalHiringFocus string      `json:"typicalHiringFocus"`
}

// RoundMapping describes one expected interview round.
type RoundMapping struct {
	Round        int    `json:"round"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	WhyItMatters string `json:"whyItMatters"`
}

// DayPlan is one day of the seven-day preparation plan.
type DayPlan struct {
	Day   int      `json:"day"`
	Title string   `json:"title"`
	Tasks []string `json:"tasks"`
}

// RoundChecklist lists preparation items for one interview round.
type RoundChecklist struct {
	Round int      `json:"round"`
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// Input is the raw material of one analysis.
type Input struct {
	Company string
	Role    string
	JDText  string
}

// Report aggregates every artifact derived from an Input.
type Report struct {
	ExtractedSkills        ExtractedSkills  `json:"extractedSkills"`
	SkillConfidenceMap     ConfidenceMap    `json:"skillConfidenceMap"`
	ReadinessScore         int              `json:"readinessScore"`
	AdjustedReadinessScore int              `json:"adjustedReadinessScore"`
	CompanyIntel           *CompanyIntel    `json:"companyIntel"`
	RoundMapping           []RoundMapping   `json:"roundMapping"`
	Plan                   []DayPlan        `json:"plan"`
	Checklist              []RoundChecklist `json:"checklist"`
	Questions              []string         `json:"questions"`
}
