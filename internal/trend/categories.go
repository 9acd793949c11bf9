package trend

import "strings"

// Category is a named bucket of questions.
type Category struct {
	Name      string   `json:"name"`
	Questions []string `json:"questions"`
}

// categoryKeywords is the ordered keyword partition for grouping
// questions. Buckets are evaluated top-down and the first match claims
// the question; anything unclaimed lands in the final Other bucket.
var categoryKeywords = []struct {
	name     string
	keywords []string
}{
	{"Team & Organization", []string{"team", "scrum", "org", "director"}},
	{"AI & Efficiency", []string{"ai", "efficiency", "productivity"}},
	{"Release Planning", []string{"planning", "commitment", "timeline"}},
	{"Agile Ceremonies", []string{"sprint", "standup", "retrospective", "ceremony"}},
	{"Process & Support", []string{"process", "support", "capacity", "jira"}},
}

// OtherCategory names the catch-all bucket.
const OtherCategory = "Other"

// Categorize partitions the given questions into categories. Matching
// is case-insensitive substring containment; each question appears in
// exactly one bucket. Empty buckets are included so the category list
// is stable across datasets.
func Categorize(questions []string) []Category {
	categories := make([]Category, len(categoryKeywords)+1)
	for i, bucket := range categoryKeywords {
		categories[i].Name = bucket.name
	}
	categories[len(categoryKeywords)].Name = OtherCategory

	for _, question := range questions {
		idx := len(categoryKeywords) // Other
		lower := strings.ToLower(question)
	buckets:
		for i, bucket := range categoryKeywords {
			for _, keyword := range bucket.keywords {
				if strings.Contains(lower, keyword) {
					idx = i
					break buckets
				}
			}
		}
		categories[idx].Questions = append(categories[idx].Questions, question)
	}

	return categories
}

// FindAIEfficiencyQuestion picks the first question containing the
// literal substring "AI" and, case-insensitively, "efficiency". Used
// by the demo walkthrough; returns false when no question matches.
func FindAIEfficiencyQuestion(questions []string) (string, bool) {
	for _, question := range questions {
		if strings.Contains(question, "AI") && strings.Contains(strings.ToLower(question), "efficiency") {
			return question, true
		}
	}
	return "", false
}
