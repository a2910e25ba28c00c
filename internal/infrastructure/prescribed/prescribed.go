// Package prescribed implements usePrescribedMappings (spec §6): a
// validation-only path, separate from the general move-inference
// engine, for callers that already know exactly which resources moved
// where and just want the mapping set checked and shaped.
package prescribed

import (
	"sort"

	"github.com/stackmove/stackmove/internal/domain/cfn"
)

// Group is one caller-supplied batch of prescribed mappings, scoped to
// a single environment (spec §6): source location string → destination
// location string, both in "StackName.LogicalId" form.
type Group struct {
	Environment cfn.Environment
	Mappings    map[string]string
}

// Resolver answers the existence questions usePrescribedMappings needs
// to validate a group against the deployed set (spec §6). A caller
// backs this with whatever deployed-state view it already holds; the
// core never loads or caches deployed state itself.
type Resolver interface {
	StackExists(env cfn.Environment, stackName string) bool
	ResourceExists(env cfn.Environment, loc cfn.Location) bool
}

// UsePrescribedMappings resolves every group's source/destination
// strings into Locations, confirming along the way that: the string is
// well-formed, the source stack and resource exist in the deployed
// set, the destination is not already occupied, and no two sources
// within a group share a destination (spec §6).
func UsePrescribedMappings(groups []Group, resolver Resolver) ([]cfn.Mapping, error) {
	var mappings []cfn.Mapping

	for _, g := range groups {
		seenDestinations := make(map[cfn.Location]bool, len(g.Mappings))
		for _, rawSource := range sortedKeys(g.Mappings) {
			rawDestination := g.Mappings[rawSource]

			source, ok := cfn.ParseNodeID(rawSource)
			if !ok {
				return nil, cfn.NewInvalidLocationError(rawSource)
			}
			destination, ok := cfn.ParseNodeID(rawDestination)
			if !ok {
				return nil, cfn.NewInvalidLocationError(rawDestination)
			}

			if !resolver.StackExists(g.Environment, source.StackName) {
				return nil, cfn.NewSourceNotFoundError(source, g.Environment)
			}
			if !resolver.ResourceExists(g.Environment, source) {
				return nil, cfn.NewSourceNotFoundError(source, g.Environment)
			}
			if resolver.ResourceExists(g.Environment, destination) {
				return nil, cfn.NewDestinationOccupiedError(destination, g.Environment)
			}
			if seenDestinations[destination] {
				return nil, cfn.NewDuplicateDestinationError(destination, g.Environment)
			}
			seenDestinations[destination] = true

			mappings = append(mappings, cfn.Mapping{Source: source, Destination: destination})
		}
	}

	return mappings, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
