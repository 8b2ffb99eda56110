package catalog

import (
	_ "embed"
)

// snapshot.yaml is produced by `scubacfg extract` from the published
// baseline documents and checked in so the builder can run without them.
//
//go:embed snapshot.yaml
var embeddedSnapshot []byte

// NewEmbeddedRegistry serves the catalog snapshot compiled into the binary.
func NewEmbeddedRegistry() (Registry, error) {
	catalog, err := DecodeSnapshot(embeddedSnapshot)
	if err != nil {
		return nil, err
	}
	return NewStaticRegistry(catalog), nil
}
