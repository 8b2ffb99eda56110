package domain

import "regexp"

// PolicyIDPattern matches baseline policy identifiers such as
// "GWS.GMAIL.1.1v0.6".
var PolicyIDPattern = regexp.MustCompile(`^GWS\.[A-Z]+\.\d+\.\d+v[\d.]+$`)

// PolicyRecord is a single identified recommendation extracted from a
// baseline document.
type PolicyRecord struct {
	ID          string
	Description string
}

// BaselineCatalog maps a baseline name (e.g. "GMAIL") to its policies in
// document order. Once built it is treated as read-only reference data.
type BaselineCatalog map[string][]PolicyRecord

// Baselines returns the catalog's baseline names, unordered.
func (c BaselineCatalog) Baselines() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	return names
}

// HasPolicy reports whether id belongs to the named baseline.
func (c BaselineCatalog) HasPolicy(baseline, id string) bool {
	for _, p := range c[baseline] {
		if p.ID == id {
			return true
		}
	}
	return false
}

// ValidPolicyID reports whether id is a syntactically well-formed policy
// identifier, regardless of whether any baseline contains it.
func ValidPolicyID(id string) bool {
	return PolicyIDPattern.MatchString(id)
}
