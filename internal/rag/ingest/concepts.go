package ingest

import (
	"fmt"
	"regexp"
	"strings"
)

// Concept is one "## " section of a knowledge base markdown file, split
// out so each security topic becomes its own document.
type Concept struct {
	Title    string
	Content  string
	Filename string
}

// conceptFilenameMap pins the canonical knowledge base sections to stable
// filenames so re-feeding the same source updates the same documents.
var conceptFilenameMap = map[string]string{
	"1. Authentication & Access Control":           "security_policy_auth.md",
	"2. Data Security – Encryption & Storage":      "data_security_encryption.md",
	"3. Data Security – Multi-tenancy & Isolation": "data_security_multitenancy.md",
	"4. Infrastructure & Network Security":         "infrastructure_network_security.md",
	"5. Compliance & Certifications":               "compliance_certifications.md",
	"6. Operations & Risk Management":              "operations_risk_management.md",
	"7. Backup & Disaster Recovery":                "backup_disaster_recovery.md",
	"8. API & Integration Security":                "api_integration_security.md",
	"9. Legal & Contractual":                       "legal_contractual.md",
	"10. Privacy & Data Handling":                  "privacy_data_handling.md",
}

var (
	sectionHeaderRe = regexp.MustCompile(`(?m)^##\s+`)
	separatorRe     = regexp.MustCompile(`(?m)^\*\*\*$`)
	slugRe          = regexp.MustCompile(`[^a-z0-9]+`)
)

// ParseConcepts splits markdown text on "## " headers into concepts. The
// first line of each section is the title; "***" separator lines are
// stripped from the body, and sections left with no body are dropped.
func ParseConcepts(text string) []Concept {
	var concepts []Concept

	for _, section := range sectionHeaderRe.Split(text, -1) {
		if strings.TrimSpace(section) == "" {
			continue
		}
		title, body, _ := strings.Cut(section, "\n")
		title = strings.TrimSpace(title)
		body = strings.TrimSpace(separatorRe.ReplaceAllString(strings.TrimSpace(body), ""))
		if body == "" {
			continue
		}

		filename, ok := conceptFilenameMap[title]
		if !ok {
			filename = slugify(title) + ".md"
		}
		concepts = append(concepts, Concept{
			Title:    title,
			Content:  body,
			Filename: filename,
		})
	}
	return concepts
}

// Markdown rewraps the concept as a standalone document with its title
// promoted to a top-level header.
func (c Concept) Markdown() string {
	return fmt.Sprintf("# %s\n\n%s", c.Title, c.Content)
}

func slugify(title string) string {
	s := slugRe.ReplaceAllString(strings.ToLower(title), "_")
	return strings.Trim(s, "_")
}
