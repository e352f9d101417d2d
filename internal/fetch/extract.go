package fetch

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const noiseSelector = "nav, footer, header, script, style, noscript, .ad, .advertisement, .sidebar, .cookie-banner, .popup"

// JobPostingSelectors are tried in order to locate the posting body.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		"#job-description",
		".job-details",
		".posting-content",
		"[data-testid='job-description']",
		"main",
		"article",
		"#content",
	}
}

// ExtractText strips noise from the HTML document and returns the text of the
// first element matching one of selectors, or of <body> when none match.
func ExtractText(document string, selectors []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	var content *goquery.Selection
	for _, selector := range selectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	// Block elements are separated explicitly; Text() would glue words
	// from adjacent list items together.
	content.Find("p, li, br, div, h1, h2, h3, h4, h5, h6, td").Each(func(_ int, s *goquery.Selection) {
		s.AppendNodes(&html.Node{Type: html.TextNode, Data: "\n"})
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
