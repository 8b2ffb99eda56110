package api

// Config is the persisted wire format of a configuration document. It is
// the sole contract with the assessment engine; field names are fixed.
type Config struct {
	Organization       Organization `yaml:"organization" json:"organization"`
	Products           []string     `yaml:"products" json:"products"`
	OmitPolicies       []Omission   `yaml:"omitPolicies,omitempty" json:"omitPolicies,omitempty"`
	AnnotatePolicies   []Annotation `yaml:"annotatePolicies,omitempty" json:"annotatePolicies,omitempty"`
	BreakGlassAccounts []string     `yaml:"breakGlassAccounts,omitempty" json:"breakGlassAccounts,omitempty"`
	Output             *Output      `yaml:"output,omitempty" json:"output,omitempty"`
	Auth               *Auth        `yaml:"auth,omitempty" json:"auth,omitempty"`
}

type Organization struct {
	Name        string `yaml:"name" json:"name"`
	Unit        string `yaml:"unit,omitempty" json:"unit,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Omission dates are YYYY-MM-DD strings on the wire.
type Omission struct {
	PolicyID   string `yaml:"policy_id" json:"policy_id"`
	Rationale  string `yaml:"rationale" json:"rationale"`
	Expiration string `yaml:"expiration,omitempty" json:"expiration,omitempty"`
}

type Annotation struct {
	PolicyID        string `yaml:"policy_id" json:"policy_id"`
	Comment         string `yaml:"comment,omitempty" json:"comment,omitempty"`
	Incorrect       bool   `yaml:"incorrect,omitempty" json:"incorrect,omitempty"`
	RemediationDate string `yaml:"remediationDate,omitempty" json:"remediationDate,omitempty"`
}

type Output struct {
	Directory string   `yaml:"directory,omitempty" json:"directory,omitempty"`
	Formats   []string `yaml:"formats,omitempty" json:"formats,omitempty"`
	Quiet     bool     `yaml:"quiet,omitempty" json:"quiet,omitempty"`
	DarkMode  bool     `yaml:"darkMode,omitempty" json:"darkMode,omitempty"`
}

type Auth struct {
	Mode            string `yaml:"mode" json:"mode"`
	CredentialsFile string `yaml:"credentialsFile,omitempty" json:"credentialsFile,omitempty"`
	CustomerID      string `yaml:"customerId,omitempty" json:"customerId,omitempty"`
	SubjectEmail    string `yaml:"subjectEmail,omitempty" json:"subjectEmail,omitempty"`
}

// Catalog is the embedded snapshot format produced by the extract command.
type Catalog struct {
	Baselines map[string][]Policy `yaml:"baselines" json:"baselines"`
}

type Policy struct {
	ID          string `yaml:"id" json:"id"`
	Description string `yaml:"description" json:"description"`
}
