package builder

import (
	"testing"

	"github.com/gws-tools/scubacfg/pkg/models/domain"
	"github.com/gws-tools/scubacfg/pkg/services/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	t.Run("refuses to serialize an invalid document", func(t *testing.T) {
		b := New(testCatalog())
		require.NoError(t, b.SetOrganization("Acme", "", ""))

		data, err := b.Export(document.FormatYAML)
		assert.Nil(t, data)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.NotEmpty(t, vErr.Violations)
		assert.NotEqual(t, domain.StateExported, b.State())
	})

	t.Run("exports a valid document and marks the session", func(t *testing.T) {
		b := New(testCatalog())
		require.NoError(t, b.SetOrganization("Acme", "", ""))
		require.NoError(t, b.SelectBaselines([]string{"GMAIL"}))

		data, err := b.Export(document.FormatYAML)
		require.NoError(t, err)
		assert.Contains(t, string(data), "products:")
		assert.Contains(t, string(data), "GMAIL")
		assert.Equal(t, domain.StateExported, b.State())

		// Exported is not terminal; further edits return to editing.
		require.NoError(t, b.AddBreakGlass("bg@acme.example"))
		assert.Equal(t, domain.StateEditing, b.State())
	})
}

func TestImport(t *testing.T) {
	t.Run("replaces the session document", func(t *testing.T) {
		source := New(testCatalog())
		require.NoError(t, source.SetOrganization("Acme", "", ""))
		require.NoError(t, source.SelectBaselines([]string{"GMAIL", "DRIVE"}))
		data, err := source.Export(document.FormatJSON)
		require.NoError(t, err)

		b := New(testCatalog())
		require.NoError(t, b.Import(data))
		assert.Equal(t, source.Document(), b.Document())
		assert.Equal(t, domain.StateEditing, b.State())
	})

	t.Run("parse error leaves the document untouched", func(t *testing.T) {
		b := New(testCatalog())
		require.NoError(t, b.SetOrganization("Acme", "", ""))
		before := b.Document()

		err := b.Import([]byte("organization: [not: valid"))
		var pErr *document.ParseError
		require.ErrorAs(t, err, &pErr)
		assert.Equal(t, before, b.Document())
	})
}
