package document

import "github.com/gws-tools/scubacfg/pkg/models/domain"

// Samples returns ready-made documents for the common starting points: a
// minimal service-account setup, a hardened configuration with break-glass
// accounts, and an OAuth-based one.
func Samples() map[string]domain.ConfigDocument {
	return map[string]domain.ConfigDocument{
		"basic": {
			OrgName:  "Example Organization",
			Products: []string{"GMAIL", "DRIVE", "CALENDAR"},
			Output:   domain.OutputSettings{Directory: "reports"},
			Auth: domain.AuthSettings{
				Mode:            domain.AuthServiceAccount,
				CredentialsFile: "/path/to/service-account.json",
				CustomerID:      "C0123abcd",
				SubjectEmail:    "admin@example.com",
			},
		},
		"advanced": {
			OrgName:     "Example Organization",
			OrgUnit:     "Security Engineering",
			Description: "Quarterly compliance assessment",
			Products:    []string{"GMAIL", "DRIVE", "CALENDAR", "MEET", "GROUPS"},
			BreakGlass: []domain.BreakGlassAccount{
				{Email: "breakglass1@example.com"},
				{Email: "breakglass2@example.com"},
			},
			Output: domain.OutputSettings{
				Directory: "compliance-reports",
				Formats:   []string{"json", "html"},
				DarkMode:  true,
			},
			Auth: domain.AuthSettings{
				Mode:            domain.AuthServiceAccount,
				CredentialsFile: "/path/to/service-account.json",
				CustomerID:      "C0123abcd",
				SubjectEmail:    "admin@example.com",
			},
		},
		"oauth": {
			OrgName:  "Example Organization",
			Products: []string{"GMAIL", "DRIVE"},
			Output:   domain.OutputSettings{Directory: "reports"},
			Auth:     domain.AuthSettings{Mode: domain.AuthOAuth},
		},
	}
}
