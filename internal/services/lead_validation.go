package services

import (
	"strings"

	"walkaway/internal/models"
)

// ValidateLead checks the required fields. It returns *ValidationError with
// all violations, or nil.
func ValidateLead(lead models.LeadRecord) error {
	var problems []string
	if strings.TrimSpace(lead.Name) == "" {
		problems = append(problems, "Name is required")
	}
	if strings.TrimSpace(lead.Email) == "" {
		problems = append(problems, "Email is required")
	}
	if strings.TrimSpace(lead.Phone) == "" {
		problems = append(problems, "Phone is required")
	}
	// NaN fails this comparison too
	if !(lead.SquareFeet > 0) {
		problems = append(problems, "Square footage must be > 0")
	}
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}
