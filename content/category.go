package content

import "strings"

// DefaultCategory is returned when no rule matches or tags are absent.
const DefaultCategory = "General"

// categoryRules are evaluated in order; the first keyword hit wins. The
// order is part of the classification contract: automation/AI keywords are
// checked before industry keywords, so a post tagged with both classifies
// as AI & Automation. Reordering rules changes classification.
var categoryRules = []struct {
	label    string
	keywords []string
}{
	{"AI & Automation", []string{"ai", "automation", "machine learning", "llm", "agent", "workflow"}},
	{"Engineering", []string{"engineering", "software", "programming", "code", "development", "devops"}},
	{"Business", []string{"business", "strategy", "consulting", "startup", "operations", "growth"}},
	{"Marketing", []string{"marketing", "seo", "brand", "copywriting", "sales"}},
}

// Classify derives a single display category from a post's comma-separated
// tag string via case-insensitive substring matching. Deterministic: the
// same tag string always yields the same label.
func Classify(tags string) string {
	tags = strings.ToLower(strings.TrimSpace(tags))
	if tags == "" {
		return DefaultCategory
	}

	parts := strings.Split(tags, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			for _, tag := range parts {
				if strings.Contains(tag, kw) {
					return rule.label
				}
			}
		}
	}
	return DefaultCategory
}
