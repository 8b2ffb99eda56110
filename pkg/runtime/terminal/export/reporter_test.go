package export

import (
	"bytes"
	"testing"

	"github.com/gws-tools/scubacfg/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleValidationWithViolations(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	violations := []domain.Violation{
		{Field: "organization.name", Message: "organization name is required"},
		{Field: "products", Message: "at least one product required"},
	}

	require.NoError(t, reporter.HandleValidation("scuba.yaml", violations))

	out := buf.String()
	assert.Contains(t, out, "scuba.yaml")
	assert.Contains(t, out, "2 violation(s) found")
	assert.Contains(t, out, "organization.name")
	assert.Contains(t, out, "at least one product required")
	assert.Contains(t, out, "| Field")
}

func TestHandleValidationClean(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	require.NoError(t, reporter.HandleValidation("scuba.yaml", nil))
	assert.Contains(t, buf.String(), "Configuration is valid.")
}

func TestHandleCatalog(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	catalog := domain.BaselineCatalog{
		"GMAIL": {{ID: "GWS.GMAIL.1.1v0.5"}, {ID: "GWS.GMAIL.2.1v0.5"}},
		"MEET":  {{ID: "GWS.MEET.1.1v0.5"}},
	}

	require.NoError(t, reporter.HandleCatalog(catalog))

	out := buf.String()
	assert.Contains(t, out, "GMAIL")
	assert.Contains(t, out, "2 policies")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "3 policies")
}
