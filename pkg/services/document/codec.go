package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gws-tools/scubacfg/pkg/models/api"
	"github.com/gws-tools/scubacfg/pkg/models/domain"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

const dateLayout = "2006-01-02"

// header is prepended to YAML output. It carries no timestamp so identical
// documents always serialize to identical bytes.
const header = "# scubacfg configuration\n# https://github.com/gws-tools/scubacfg\n\n"

// ParseError reports a structurally malformed persisted document. Imports
// that fail with it are atomic: the in-progress document is left untouched.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse error: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, FormatJSON:
		return Format(s), nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q, expected yaml or json", s)
	}
}

// Encode serializes a document. Callers are expected to have validated it;
// the session-level export path refuses invalid documents before reaching
// here.
func Encode(doc domain.ConfigDocument, format Format) ([]byte, error) {
	wire := toWire(doc)
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(&wire, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode document: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(&wire)
		if err != nil {
			return nil, fmt.Errorf("failed to encode document: %w", err)
		}
		return append([]byte(header), data...), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Decode is the inverse of Encode. YAML is a superset of JSON, so a single
// decoder covers both formats. Unknown top-level keys and malformed dates
// are ParseErrors; absent fields take their documented defaults.
func Decode(data []byte) (domain.ConfigDocument, error) {
	var wire api.Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&wire); err != nil {
		return domain.ConfigDocument{}, &ParseError{Reason: "malformed document", Err: err}
	}
	return fromWire(wire)
}

func toWire(doc domain.ConfigDocument) api.Config {
	wire := api.Config{
		Organization: api.Organization{
			Name:        doc.OrgName,
			Unit:        doc.OrgUnit,
			Description: doc.Description,
		},
		Products: doc.Products,
	}

	for _, entry := range doc.Omissions {
		wire.OmitPolicies = append(wire.OmitPolicies, api.Omission{
			PolicyID:   entry.PolicyID,
			Rationale:  entry.Rationale,
			Expiration: formatDate(entry.Expiration),
		})
	}
	for _, entry := range doc.Annotations {
		wire.AnnotatePolicies = append(wire.AnnotatePolicies, api.Annotation{
			PolicyID:        entry.PolicyID,
			Comment:         entry.Comment,
			Incorrect:       entry.MarkedIncorrect,
			RemediationDate: formatDate(entry.RemediationDate),
		})
	}
	for _, acct := range doc.BreakGlass {
		wire.BreakGlassAccounts = append(wire.BreakGlassAccounts, acct.Email)
	}

	if !isZeroOutput(doc.Output) {
		wire.Output = &api.Output{
			Directory: doc.Output.Directory,
			Formats:   doc.Output.Formats,
			Quiet:     doc.Output.Quiet,
			DarkMode:  doc.Output.DarkMode,
		}
	}
	if doc.Auth.Mode != "" {
		wire.Auth = &api.Auth{
			Mode:            string(doc.Auth.Mode),
			CredentialsFile: doc.Auth.CredentialsFile,
			CustomerID:      doc.Auth.CustomerID,
			SubjectEmail:    doc.Auth.SubjectEmail,
		}
	}
	return wire
}

func fromWire(wire api.Config) (domain.ConfigDocument, error) {
	doc := domain.ConfigDocument{
		OrgName:     wire.Organization.Name,
		OrgUnit:     wire.Organization.Unit,
		Description: wire.Organization.Description,
		Products:    wire.Products,
	}

	for _, entry := range wire.OmitPolicies {
		expiration, err := parseDate(entry.Expiration)
		if err != nil {
			return domain.ConfigDocument{}, &ParseError{
				Reason: fmt.Sprintf("omission %s has a malformed expiration date", entry.PolicyID),
				Err:    err,
			}
		}
		doc.Omissions = append(doc.Omissions, domain.OmissionEntry{
			PolicyID:   entry.PolicyID,
			Rationale:  entry.Rationale,
			Expiration: expiration,
		})
	}
	for _, entry := range wire.AnnotatePolicies {
		remediation, err := parseDate(entry.RemediationDate)
		if err != nil {
			return domain.ConfigDocument{}, &ParseError{
				Reason: fmt.Sprintf("annotation %s has a malformed remediation date", entry.PolicyID),
				Err:    err,
			}
		}
		doc.Annotations = append(doc.Annotations, domain.AnnotationEntry{
			PolicyID:        entry.PolicyID,
			Comment:         entry.Comment,
			MarkedIncorrect: entry.Incorrect,
			RemediationDate: remediation,
		})
	}
	for _, email := range wire.BreakGlassAccounts {
		doc.BreakGlass = append(doc.BreakGlass, domain.BreakGlassAccount{Email: email})
	}

	if wire.Output != nil {
		doc.Output = domain.OutputSettings{
			Directory: wire.Output.Directory,
			Formats:   wire.Output.Formats,
			Quiet:     wire.Output.Quiet,
			DarkMode:  wire.Output.DarkMode,
		}
	}
	if wire.Auth != nil {
		doc.Auth = domain.AuthSettings{
			Mode:            domain.AuthMode(wire.Auth.Mode),
			CredentialsFile: wire.Auth.CredentialsFile,
			CustomerID:      wire.Auth.CustomerID,
			SubjectEmail:    wire.Auth.SubjectEmail,
		}
	}
	return doc, nil
}

func isZeroOutput(o domain.OutputSettings) bool {
	return o.Directory == "" && len(o.Formats) == 0 && !o.Quiet && !o.DarkMode
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
