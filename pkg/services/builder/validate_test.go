package builder

import (
	"testing"

	"github.com/gws-tools/scubacfg/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func violationFields(violations []domain.Violation) []string {
	fields := make([]string, len(violations))
	for i, v := range violations {
		fields[i] = v.Field
	}
	return fields
}

func TestValidateDocument(t *testing.T) {
	catalog := testCatalog()

	t.Run("minimal valid document", func(t *testing.T) {
		doc := domain.ConfigDocument{
			OrgName:  "Acme",
			Products: []string{"GMAIL"},
		}
		assert.Empty(t, ValidateDocument(doc, catalog))
	})

	t.Run("empty document accumulates all violations", func(t *testing.T) {
		violations := ValidateDocument(domain.ConfigDocument{}, catalog)

		fields := violationFields(violations)
		assert.Contains(t, fields, "organization.name")
		assert.Contains(t, fields, "products")
	})

	t.Run("zero products cites at least one product required", func(t *testing.T) {
		doc := domain.ConfigDocument{OrgName: "Acme"}
		violations := ValidateDocument(doc, catalog)

		found := false
		for _, v := range violations {
			if v.Field == "products" && v.Message == "at least one product required" {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("omission referencing an unselected baseline", func(t *testing.T) {
		doc := domain.ConfigDocument{
			OrgName:  "Acme",
			Products: []string{"GMAIL"},
			Omissions: []domain.OmissionEntry{
				{PolicyID: "GWS.DRIVEDOCS.1.1v0.5", Rationale: "documented"},
			},
		}
		violations := ValidateDocument(doc, catalog)
		require.Len(t, violations, 1)
		assert.Equal(t, "omitPolicies", violations[0].Field)

		// Selecting the baseline resolves the reference.
		doc.Products = []string{"GMAIL", "DRIVE"}
		assert.Empty(t, ValidateDocument(doc, catalog))
	})

	t.Run("annotation referencing an unknown policy", func(t *testing.T) {
		doc := domain.ConfigDocument{
			OrgName:  "Acme",
			Products: []string{"GMAIL"},
			Annotations: []domain.AnnotationEntry{
				{PolicyID: "GWS.GMAIL.9.9v0.5", Comment: "stale"},
			},
		}
		violations := ValidateDocument(doc, catalog)
		require.Len(t, violations, 1)
		assert.Equal(t, "annotatePolicies", violations[0].Field)
	})

	t.Run("malformed break-glass email", func(t *testing.T) {
		doc := domain.ConfigDocument{
			OrgName:    "Acme",
			Products:   []string{"GMAIL"},
			BreakGlass: []domain.BreakGlassAccount{{Email: "nope"}},
		}
		violations := ValidateDocument(doc, catalog)
		require.Len(t, violations, 1)
		assert.Equal(t, "breakGlassAccounts", violations[0].Field)
	})

	t.Run("service account requires all three sub-fields", func(t *testing.T) {
		doc := domain.ConfigDocument{
			OrgName:  "Acme",
			Products: []string{"GMAIL"},
			Auth:     domain.AuthSettings{Mode: domain.AuthServiceAccount},
		}
		violations := ValidateDocument(doc, catalog)

		fields := violationFields(violations)
		assert.Contains(t, fields, "auth.credentialsFile")
		assert.Contains(t, fields, "auth.customerId")
		assert.Contains(t, fields, "auth.subjectEmail")

		doc.Auth.CredentialsFile = "/creds.json"
		doc.Auth.CustomerID = "C0123abcd"
		doc.Auth.SubjectEmail = "admin@acme.example"
		assert.Empty(t, ValidateDocument(doc, catalog))
	})

	t.Run("oauth and application default need no sub-fields", func(t *testing.T) {
		doc := domain.ConfigDocument{OrgName: "Acme", Products: []string{"GMAIL"}}

		doc.Auth = domain.AuthSettings{Mode: domain.AuthOAuth}
		assert.Empty(t, ValidateDocument(doc, catalog))

		doc.Auth = domain.AuthSettings{Mode: domain.AuthApplicationDefault}
		assert.Empty(t, ValidateDocument(doc, catalog))
	})

	t.Run("remove of a missing omission does not change the result", func(t *testing.T) {
		b := New(catalog)
		require.NoError(t, b.SetOrganization("Acme", "", ""))
		require.NoError(t, b.SelectBaselines([]string{"GMAIL"}))
		before := b.Validate()

		b.RemoveOmission("GWS.GMAIL.1.1v0.5")
		assert.Equal(t, before, b.Validate())
	})
}
