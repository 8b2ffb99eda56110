package builder

import (
	"fmt"

	"github.com/gws-tools/scubacfg/pkg/models/domain"
)

// Validate performs the full cross-entity check and returns every violation
// found; an empty list means the document is ready to export. A successful
// run moves the session to the valid state.
func (b *Builder) Validate() []domain.Violation {
	violations := ValidateDocument(b.doc, b.catalog)
	if len(violations) == 0 {
		b.state = domain.StateValid
	}
	return violations
}

// ValidateDocument checks doc against the catalog without touching any
// session state, for callers that validate standalone documents.
func ValidateDocument(doc domain.ConfigDocument, catalog domain.BaselineCatalog) []domain.Violation {
	var violations []domain.Violation
	fail := func(field, format string, args ...any) {
		violations = append(violations, domain.Violation{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if doc.OrgName == "" {
		fail("organization.name", "organization name is required")
	}

	if len(doc.Products) == 0 {
		fail("products", "at least one product required")
	}
	selected := map[string]bool{}
	for _, name := range doc.Products {
		if _, ok := catalog[name]; !ok {
			fail("products", "unknown baseline %q", name)
			continue
		}
		selected[name] = true
	}

	resolves := func(policyID string) bool {
		for name := range selected {
			if catalog.HasPolicy(name, policyID) {
				return true
			}
		}
		return false
	}

	for _, entry := range doc.Omissions {
		if entry.Rationale == "" {
			fail("omitPolicies", "rationale is required for %s", entry.PolicyID)
		}
		if !resolves(entry.PolicyID) {
			fail("omitPolicies", "policy %s does not belong to any selected baseline", entry.PolicyID)
		}
	}
	for _, entry := range doc.Annotations {
		if !resolves(entry.PolicyID) {
			fail("annotatePolicies", "policy %s does not belong to any selected baseline", entry.PolicyID)
		}
	}

	for _, acct := range doc.BreakGlass {
		if !validEmail(acct.Email) {
			fail("breakGlassAccounts", "malformed email %q", acct.Email)
		}
	}

	switch doc.Auth.Mode {
	case domain.AuthServiceAccount:
		if doc.Auth.CredentialsFile == "" {
			fail("auth.credentialsFile", "credentials file is required for service account authentication")
		}
		if doc.Auth.CustomerID == "" {
			fail("auth.customerId", "customer id is required for service account authentication")
		}
		if doc.Auth.SubjectEmail == "" {
			fail("auth.subjectEmail", "subject email is required for service account authentication")
		} else if !validEmail(doc.Auth.SubjectEmail) {
			fail("auth.subjectEmail", "malformed email %q", doc.Auth.SubjectEmail)
		}
	case domain.AuthOAuth, domain.AuthApplicationDefault, "":
		// OAuth and application-default carry no sub-fields; an unset mode
		// defaults to the engine's own prompt-driven flow.
	default:
		fail("auth.mode", "unknown auth mode %q", doc.Auth.Mode)
	}

	return violations
}
