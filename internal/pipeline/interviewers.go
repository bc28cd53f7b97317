package pipeline

import (
	"strings"

	"github.com/spigell/hr-screener/internal/screening"
)

const seniorYears = 5

var technicalTitleWords = []string{"engineer", "developer", "data", "software", "tech"}

// SuggestInterviewers proposes the interview panel for an accepted candidate.
func SuggestInterviewers(job *screening.JobProfile, candidate *screening.CandidateProfile) []string {
	panel := []string{"HR Manager"}

	title := ""
	if job != nil {
		if department := strings.TrimSpace(job.Department); department != "" {
			panel = append(panel, department+" Lead")
		}
		title = strings.ToLower(job.Title)
	}

	for _, word := range technicalTitleWords {
		if strings.Contains(title, word) {
			panel = append(panel, "Technical Lead")
			break
		}
	}

	if candidate.Years() > seniorYears {
		panel = append(panel, "Senior Team Member")
	}

	return panel
}
