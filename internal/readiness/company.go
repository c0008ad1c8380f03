package readiness

import "strings"

const defaultIndustry = "Technology Services"

// CompanyLists holds the lower-case name fragments used for size classification.
type CompanyLists struct {
	Enterprise []string
	MidSize    []string
}

// DefaultCompanyLists returns the built-in company tables.
func DefaultCompanyLists() CompanyLists {
	return CompanyLists{
		Enterprise: []string{
			"amazon", "microsoft", "google", "apple", "meta", "facebook", "netflix",
			"oracle", "ibm", "sap", "salesforce", "adobe", "intel", "cisco", "dell",
			"hp", "hewlett packard", "accenture", "tcs", "tata consultancy", "infosys",
			"wipro", "cognizant", "hcl", "tech mahindra", "capgemini", "deloitte",
			"ey", "ernst & young", "kpmg", "pwc", "pricewaterhousecoopers",
			"jpmorgan", "jp morgan", "goldman sachs", "morgan stanley", "bank of america",
			"wells fargo", "citigroup", "citi",
		},
		MidSize: []string{
			"uber", "airbnb", "twitter", "snap", "spotify", "stripe", "square",
			"shopify", "slack", "zoom", "dropbox", "twilio", "atlassian", "hubspot",
			"servicenow", "workday", "splunk", "datadog", "snowflake", "databricks",
		},
	}
}

type industryRule struct {
	keywords []string
	industry string
}

// industryRules are evaluated in order; the first match wins.
func industryRules() []industryRule {
	return []industryRule{
		{keywords: []string{"bank", "jpmorgan", "goldman"}, industry: "Financial Services"},
		{keywords: []string{"consulting", "accenture", "deloitte"}, industry: "Consulting"},
		{keywords: []string{"retail", "amazon", "walmart"}, industry: "Retail & E-commerce"},
		{keywords: []string{"health", "pharma"}, industry: "Healthcare"},
	}
}

func hiringFocus(size CompanySize) string {
	switch size {
	case SizeEnterprise:
		return "Structured DSA + Core Fundamentals. Heavy emphasis on algorithms, system design, and standardized interview processes."
	case SizeMidSize:
		return "Balanced approach with DSA fundamentals plus practical implementation skills and product thinking."
	default:
		return "Practical problem solving + Stack depth. Focus on immediate contribution, hands-on coding, and versatility."
	}
}

// CompanyClassifier infers company size and industry from the name alone.
// Matching is plain substring containment, so false positives are expected.
type CompanyClassifier struct {
	lists CompanyLists
	rules []industryRule
}

var defaultClassifier = NewCompanyClassifier(DefaultCompanyLists())

// NewCompanyClassifier builds a classifier over the given lists.
func NewCompanyClassifier(lists CompanyLists) CompanyClassifier {
	return CompanyClassifier{lists: lists, rules: industryRules()}
}

// GenerateCompanyIntel classifies name with the built-in tables.
func GenerateCompanyIntel(name string) *CompanyIntel {
	return defaultClassifier.Classify(name)
}

// Classify returns nil when the trimmed name is empty; nil means no intel, not an error.
func (c CompanyClassifier) Classify(name string) *CompanyIntel {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	lower := strings.ToLower(name)

	size := SizeStartup
	switch {
	case containsAny(lower, c.lists.Enterprise):
		size = SizeEnterprise
	case containsAny(lower, c.lists.MidSize):
		size = SizeMidSize
	}

	industry := defaultIndustry
	for _, rule := range c.rules {
		if containsAny(lower, rule.keywords) {
			industry = rule.industry
			break
		}
	}

	return &CompanyIntel{
		Name:               name,
		Industry:           industry,
		Size:               size,
		TypicalHiringFocus: hiringFocus(size),
	}
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if f != "" && strings.Contains(s, f) {
			return true
		}
	}
	return false
}
