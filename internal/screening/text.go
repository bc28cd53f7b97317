package screening

import (
	"fmt"
	"strings"
)

// SkillMatch returns the share of required skills found among the candidate
// skills, compared case-insensitively. An empty requirement list matches fully.
func SkillMatch(candidate, required []string) float64 {
	want := normalizedSet(required)
	if len(want) == 0 {
		return 100
	}

	have := normalizedSet(candidate)
	matched := 0
	for skill := range want {
		if _, ok := have[skill]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(want)) * 100
}

func normalizedSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		set[item] = struct{}{}
	}
	return set
}

// FormatDuration renders minutes as "30 minutes", "1 hour" or "2 hours 15 minutes".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}

	hours := minutes / 60
	rest := minutes % 60

	unit := "hour"
	if hours > 1 {
		unit = "hours"
	}

	if rest == 0 {
		return fmt.Sprintf("%d %s", hours, unit)
	}
	return fmt.Sprintf("%d %s %d minutes", hours, unit, rest)
}

// SanitizeText trims every line and drops blank ones.
func SanitizeText(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

var resumeIndicators = []string{"experience", "education", "skills", "work", "university", "degree"}

const minResumeLength = 50

// ValidateResumeText is a cheap heuristic that the text looks like a résumé.
func ValidateResumeText(text string) bool {
	if len(strings.TrimSpace(text)) < minResumeLength {
		return false
	}

	lower := strings.ToLower(text)
	matches := 0
	for _, indicator := range resumeIndicators {
		if strings.Contains(lower, indicator) {
			matches++
		}
	}
	return matches >= 2
}
