package ingest

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const noiseSelector = "script, style, noscript, iframe, nav, header, footer, form, svg, .cookie-banner, .sidebar"

const blockSelector = "p, li, h1, h2, h3, h4, h5, h6, div, section, article, br, tr, dd, dt"

// jobSelectors are tried in order before falling back to <body>.
var jobSelectors = []string{
	".job-description",
	"#job-description",
	".job-details",
	"#job-content",
	".posting-content",
	"[data-testid='job-description']",
	"main",
	"article",
}

// CleanHTML strips page chrome from a job posting and returns its text
// with one line per block element.
func CleanHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find(noiseSelector).Remove()

	content := doc.Find("body")
	for _, selector := range jobSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	content.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return cleanWhitespace(content.Text()), nil
}

func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
