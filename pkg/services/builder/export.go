package builder

import (
	"github.com/gws-tools/scubacfg/pkg/models/domain"
	"github.com/gws-tools/scubacfg/pkg/services/document"
)

// Export validates and serializes the session document. It refuses to emit
// anything while violations remain; a successful export moves the session
// to the exported state.
func (b *Builder) Export(format document.Format) ([]byte, error) {
	if violations := b.Validate(); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	data, err := document.Encode(b.doc, format)
	if err != nil {
		return nil, err
	}
	b.state = domain.StateExported
	return data, nil
}

// Import atomically replaces the session document with a deserialized one.
// On a parse error the current document is left untouched.
func (b *Builder) Import(data []byte) error {
	doc, err := document.Decode(data)
	if err != nil {
		return err
	}
	b.Replace(doc)
	return nil
}
