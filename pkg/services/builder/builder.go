package builder

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/gws-tools/scubacfg/pkg/models/domain"
)

// ValidationError is the user-correctable error class. Entry-time checks
// return it with a single violation; Validate reports accumulated
// violations as a plain list instead.
type ValidationError struct {
	Violations []domain.Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func failf(field, format string, args ...any) error {
	return &ValidationError{Violations: []domain.Violation{
		{Field: field, Message: fmt.Sprintf(format, args...)},
	}}
}

// Builder accumulates one user's selections into a ConfigDocument and
// tracks the session lifecycle (empty -> editing -> valid -> exported).
// It is session-scoped and not safe for concurrent use.
type Builder struct {
	catalog domain.BaselineCatalog
	doc     domain.ConfigDocument
	state   domain.SessionState
}

func New(catalog domain.BaselineCatalog) *Builder {
	return &Builder{catalog: catalog, state: domain.StateEmpty}
}

func (b *Builder) Document() domain.ConfigDocument { return b.doc }
func (b *Builder) State() domain.SessionState      { return b.state }

// Replace swaps in a whole document, e.g. after an import. The session
// drops back to editing; nothing is re-validated implicitly.
func (b *Builder) Replace(doc domain.ConfigDocument) {
	b.doc = doc
	b.state = domain.StateEditing
}

func (b *Builder) touch() { b.state = domain.StateEditing }

// SeedOutput applies process-level output defaults to a fresh document.
// Unlike SetOutput it is not a user mutation, so the session stays empty.
func (b *Builder) SeedOutput(settings domain.OutputSettings) {
	b.doc.Output = settings
}

func (b *Builder) SetOrganization(name, unit, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return failf("organization.name", "organization name is required")
	}
	b.doc.OrgName = name
	b.doc.OrgUnit = strings.TrimSpace(unit)
	b.doc.Description = strings.TrimSpace(description)
	b.touch()
	return nil
}

func (b *Builder) SelectBaselines(names []string) error {
	if len(names) == 0 {
		return failf("products", "at least one product required")
	}
	seen := map[string]bool{}
	selection := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := b.catalog[name]; !ok {
			return failf("products", "unknown baseline %q", name)
		}
		if !seen[name] {
			seen[name] = true
			selection = append(selection, name)
		}
	}
	b.doc.Products = selection
	b.touch()
	return nil
}

// AddOmission records a policy omission. The policy id is checked for
// syntax only; whether it belongs to a selected baseline is a Validate
// concern. Re-adding an existing id replaces the entry.
func (b *Builder) AddOmission(policyID, rationale string, expiration *time.Time) error {
	if !domain.ValidPolicyID(policyID) {
		return failf("omitPolicies", "malformed policy id %q", policyID)
	}
	if strings.TrimSpace(rationale) == "" {
		return failf("omitPolicies", "rationale is required for %s", policyID)
	}
	entry := domain.OmissionEntry{PolicyID: policyID, Rationale: strings.TrimSpace(rationale), Expiration: expiration}
	for i, existing := range b.doc.Omissions {
		if existing.PolicyID == policyID {
			b.doc.Omissions[i] = entry
			b.touch()
			return nil
		}
	}
	b.doc.Omissions = append(b.doc.Omissions, entry)
	b.touch()
	return nil
}

// RemoveOmission is a no-op when the policy is not omitted.
func (b *Builder) RemoveOmission(policyID string) {
	for i, entry := range b.doc.Omissions {
		if entry.PolicyID == policyID {
			b.doc.Omissions = append(b.doc.Omissions[:i], b.doc.Omissions[i+1:]...)
			b.touch()
			return
		}
	}
}

func (b *Builder) AddAnnotation(policyID, comment string, incorrect bool, remediation *time.Time) error {
	if !domain.ValidPolicyID(policyID) {
		return failf("annotatePolicies", "malformed policy id %q", policyID)
	}
	if strings.TrimSpace(comment) == "" {
		return failf("annotatePolicies", "comment is required for %s", policyID)
	}
	entry := domain.AnnotationEntry{
		PolicyID:        policyID,
		Comment:         strings.TrimSpace(comment),
		MarkedIncorrect: incorrect,
		RemediationDate: remediation,
	}
	for i, existing := range b.doc.Annotations {
		if existing.PolicyID == policyID {
			b.doc.Annotations[i] = entry
			b.touch()
			return nil
		}
	}
	b.doc.Annotations = append(b.doc.Annotations, entry)
	b.touch()
	return nil
}

func (b *Builder) RemoveAnnotation(policyID string) {
	for i, entry := range b.doc.Annotations {
		if entry.PolicyID == policyID {
			b.doc.Annotations = append(b.doc.Annotations[:i], b.doc.Annotations[i+1:]...)
			b.touch()
			return
		}
	}
}

func (b *Builder) AddBreakGlass(email string) error {
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		return failf("breakGlassAccounts", "malformed email %q", email)
	}
	for _, acct := range b.doc.BreakGlass {
		if acct.Email == email {
			return failf("breakGlassAccounts", "duplicate account %q", email)
		}
	}
	b.doc.BreakGlass = append(b.doc.BreakGlass, domain.BreakGlassAccount{Email: email})
	b.touch()
	return nil
}

func (b *Builder) RemoveBreakGlass(email string) {
	for i, acct := range b.doc.BreakGlass {
		if acct.Email == email {
			b.doc.BreakGlass = append(b.doc.BreakGlass[:i], b.doc.BreakGlass[i+1:]...)
			b.touch()
			return
		}
	}
}

func (b *Builder) SetOutput(settings domain.OutputSettings) {
	// The engine's default output dir; keeping it out of the document keeps
	// exports minimal and round-trip stable.
	if settings.Directory == "." || settings.Directory == "./" {
		settings.Directory = ""
	}
	b.doc.Output = settings
	b.touch()
}

func (b *Builder) SetAuth(settings domain.AuthSettings) error {
	switch settings.Mode {
	case domain.AuthServiceAccount, domain.AuthOAuth, domain.AuthApplicationDefault:
	default:
		return failf("auth.mode", "unknown auth mode %q", settings.Mode)
	}
	b.doc.Auth = settings
	b.touch()
	return nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
