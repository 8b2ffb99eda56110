package domain

import "time"

type AuthMode string

const (
	AuthServiceAccount     AuthMode = "serviceaccount"
	AuthOAuth              AuthMode = "oauth"
	AuthApplicationDefault AuthMode = "applicationdefault"
)

// SessionState tracks a document's lifecycle within one builder session.
type SessionState string

const (
	StateEmpty    SessionState = "empty"
	StateEditing  SessionState = "editing"
	StateValid    SessionState = "valid"
	StateExported SessionState = "exported"
)

// OmissionEntry records a documented decision to exclude a policy from
// assessment. Keyed by PolicyID within a document.
type OmissionEntry struct {
	PolicyID   string
	Rationale  string
	Expiration *time.Time
}

// AnnotationEntry attaches a comment or correction to a policy, independent
// of whether the policy is omitted.
type AnnotationEntry struct {
	PolicyID        string
	Comment         string
	MarkedIncorrect bool
	RemediationDate *time.Time
}

// BreakGlassAccount is an emergency-access account excluded from some
// normal policy checks.
type BreakGlassAccount struct {
	Email string
}

type OutputSettings struct {
	Directory string
	Formats   []string
	Quiet     bool
	DarkMode  bool
}

// AuthSettings describes how the assessment engine authenticates against the
// Google Workspace APIs. Service-account mode requires all three of its
// sub-fields; the other modes carry none.
type AuthSettings struct {
	Mode            AuthMode
	CredentialsFile string
	CustomerID      string
	SubjectEmail    string
}

// ConfigDocument is the root aggregate a builder session accumulates. It
// exclusively owns its child entries; the BaselineCatalog it is validated
// against is shared reference data.
type ConfigDocument struct {
	OrgName     string
	OrgUnit     string
	Description string

	Products []string

	Omissions   []OmissionEntry
	Annotations []AnnotationEntry
	BreakGlass  []BreakGlassAccount

	Output OutputSettings
	Auth   AuthSettings
}

// Violation is a single user-correctable validation failure. Violations are
// accumulated and reported together, never short-circuited.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	return v.Field + ": " + v.Message
}
