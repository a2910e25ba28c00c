// Package plan implements the second of the core's four external
// operations (spec §6): deriving mappings and ambiguous paths from a
// deployed and a local stack set. It composes the digest, move, and
// override packages; it adds no logic of its own beyond wiring them
// together and shaping the result.
package plan

import (
	"sort"

	"github.com/stackmove/stackmove/internal/domain/cfn"
	"github.com/stackmove/stackmove/internal/domain/model"
	"github.com/stackmove/stackmove/internal/infrastructure/digest"
	"github.com/stackmove/stackmove/internal/infrastructure/graph"
	"github.com/stackmove/stackmove/internal/infrastructure/move"
	"github.com/stackmove/stackmove/internal/infrastructure/override"
)

// Options configures a Plan call (spec §6).
type Options struct {
	// Overrides are user-supplied (source, destination) pairs tried
	// before the structural overrides mined from the reversed graph.
	Overrides []cfn.Mapping
	// IgnoreModifications suppresses the isomorphism check (spec §4.3).
	IgnoreModifications bool
	// FilteredStacks restricts emitted mappings to those whose source
	// or destination stack name appears here; empty means unfiltered.
	FilteredStacks []cfn.Stack
}

// AmbiguousPath is one unresolved move's source and destination path
// lists, each entry the toPath() of a location (spec §6).
type AmbiguousPath struct {
	SourcePaths      []string
	DestinationPaths []string
}

// Result is the output of Plan (spec §6).
type Result struct {
	Mappings       []cfn.Mapping
	AmbiguousPaths []AmbiguousPath
}

// Plan derives the mapping set between a deployed and a local stack
// set (spec §4.1–§4.4, §6).
func Plan(deployedStacks, localStacks []cfn.Stack, provider model.Provider, opts Options) (Result, error) {
	deployedIndex := digest.BuildIndex(deployedStacks, graph.Direct, provider)
	localIndex := digest.BuildIndex(localStacks, graph.Direct, provider)

	moves, err := move.Infer(deployedStacks, localStacks, deployedIndex, localIndex, opts.IgnoreModifications)
	if err != nil {
		return Result{}, err
	}

	overrides := make([]cfn.Mapping, 0, len(opts.Overrides))
	overrides = append(overrides, opts.Overrides...)
	overrides = append(overrides, override.Structural(deployedStacks, localStacks, provider)...)

	resolvedMoves, ambiguousMoves := override.Resolve(moves, overrides)
	mappings := override.ExtractMappings(resolvedMoves)

	if len(opts.FilteredStacks) > 0 {
		mappings = filterMappings(mappings, opts.FilteredStacks)
	}

	lookup := buildLookup(deployedStacks, localStacks)
	return Result{
		Mappings:       mappings,
		AmbiguousPaths: ambiguousPaths(ambiguousMoves, lookup),
	}, nil
}

func filterMappings(mappings []cfn.Mapping, filteredStacks []cfn.Stack) []cfn.Mapping {
	allowed := make(map[string]bool, len(filteredStacks))
	for _, st := range filteredStacks {
		allowed[st.StackName] = true
	}
	out := make([]cfn.Mapping, 0, len(mappings))
	for _, m := range mappings {
		if allowed[m.Source.StackName] || allowed[m.Destination.StackName] {
			out = append(out, m)
		}
	}
	return out
}

func ambiguousPaths(moves []cfn.Move, lookup func(cfn.Location) (cfn.Resource, bool)) []AmbiguousPath {
	out := make([]AmbiguousPath, 0, len(moves))
	for _, mv := range moves {
		out = append(out, AmbiguousPath{
			SourcePaths:      toPaths(mv.Sources, lookup),
			DestinationPaths: toPaths(mv.Destinations, lookup),
		})
	}
	return out
}

func toPaths(locs []cfn.Location, lookup func(cfn.Location) (cfn.Resource, bool)) []string {
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = l.ToPath(lookup)
	}
	sort.Strings(out)
	return out
}

func buildLookup(stackSets ...[]cfn.Stack) func(cfn.Location) (cfn.Resource, bool) {
	byLocation := make(map[cfn.Location]cfn.Resource)
	for _, stacks := range stackSets {
		for _, st := range stacks {
			if st.Template == nil {
				continue
			}
			for logicalID, res := range st.Template.Resources {
				byLocation[cfn.NewLocation(st.StackName, logicalID)] = res
			}
		}
	}
	return func(loc cfn.Location) (cfn.Resource, bool) {
		res, ok := byLocation[loc]
		return res, ok
	}
}
