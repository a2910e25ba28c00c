// Package model defines the interface to the external resource-model
// registry: a lookup service, outside the core, that knows each
// resource type's primary-identifier property names (spec §1, §4.2).
package model

// Provider looks up the primary-identifier field list for a
// CloudFormation resource type. It is implemented and supplied by the
// caller; the core only consumes it.
type Provider interface {
	// PrimaryIdentifier returns the ordered list of Properties keys
	// that, together, uniquely identify the real cloud object for the
	// given resource type. ok is false when the type has no known
	// physical identifier (or the type is unrecognized).
	PrimaryIdentifier(resourceType string) (keys []string, ok bool)
}

// StaticProvider is a simple in-memory Provider backed by a fixed
// map, suitable for tests and for callers with a small, static
// resource model (e.g. a vendored subset of the CloudFormation
// resource specification).
type StaticProvider struct {
	identifiers map[string][]string
}

// NewStaticProvider builds a StaticProvider from a type -> identifier
// keys map.
func NewStaticProvider(identifiers map[string][]string) *StaticProvider {
	return &StaticProvider{identifiers: identifiers}
}

func (p *StaticProvider) PrimaryIdentifier(resourceType string) ([]string, bool) {
	keys, ok := p.identifiers[resourceType]
	return keys, ok
}
