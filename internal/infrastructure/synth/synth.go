// Package synth produces the minimal set of rewritten stack templates
// that apply a mapping set via the external refactor API (spec §4.5).
package synth

import (
	"sort"

	"github.com/stackmove/stackmove/internal/domain/cfn"
	"github.com/stackmove/stackmove/internal/pkg/codec"
)

// Output is one synthesized stack entry (spec §4.5 step 8).
type Output struct {
	StackName    string
	TemplateBody []byte
}

// Synthesize runs the eight-step algorithm of spec §4.5: seed working
// copies from the local templates, prune additions, inject resources
// the mapping relocated away from a stack, carry forward the deployed
// CDK path metadata, strip Rules/Parameters from brand-new stacks,
// reject empty outputs, filter to only the stacks a mapping touches,
// and serialize each survivor to canonical JSON.
func Synthesize(mappings []cfn.Mapping, deployedStacks, localStacks []cfn.Stack) ([]Output, error) {
	bySource, byDestination := indexMappings(mappings)
	deployedByLoc := indexResourcesByLocation(deployedStacks)
	deployedStackNames := stackNameSet(deployedStacks)

	working := seedWorkingSet(localStacks, deployedStacks)

	pruneAdditions(working, deployedByLoc, byDestination)
	injectMissing(working, deployedStacks, bySource)
	overrideCDKPaths(working, deployedByLoc, byDestination)
	stripNewStackSections(working, deployedStackNames)

	if err := checkNonEmpty(working); err != nil {
		return nil, err
	}

	touched := touchedStackNames(mappings)
	return serialize(working, touched)
}

func indexMappings(mappings []cfn.Mapping) (bySource, byDestination map[cfn.Location]cfn.Location) {
	bySource = make(map[cfn.Location]cfn.Location, len(mappings))
	byDestination = make(map[cfn.Location]cfn.Location, len(mappings))
	for _, m := range mappings {
		bySource[m.Source] = m.Destination
		byDestination[m.Destination] = m.Source
	}
	return bySource, byDestination
}

func indexResourcesByLocation(stacks []cfn.Stack) map[cfn.Location]cfn.Resource {
	out := make(map[cfn.Location]cfn.Resource)
	for _, st := range stacks {
		if st.Template == nil {
			continue
		}
		for logicalID, res := range st.Template.Resources {
			out[cfn.NewLocation(st.StackName, logicalID)] = res
		}
	}
	return out
}

func stackNameSet(stacks []cfn.Stack) map[string]bool {
	out := make(map[string]bool, len(stacks))
	for _, st := range stacks {
		out[st.StackName] = true
	}
	return out
}

// seedWorkingSet deep-clones every local template into a working set
// keyed by stack name, then also gives every deployed stack name not
// already present an empty entry (spec §4.5 step 1: "Also deep-clone
// every deployed template into a parallel working set"). Without this
// second half, a deployed stack whose only resources all relocate into
// already-existing local stacks never gets a working entry at all and
// silently disappears instead of being caught by the empty check.
func seedWorkingSet(localStacks, deployedStacks []cfn.Stack) map[string]*cfn.Template {
	out := make(map[string]*cfn.Template, len(localStacks))
	for _, st := range localStacks {
		out[st.StackName] = st.Template.Clone()
	}
	for _, st := range deployedStacks {
		if _, ok := out[st.StackName]; !ok {
			out[st.StackName] = cfn.NewTemplate()
		}
	}
	return out
}

// pruneAdditions removes local resources whose corresponding deployed
// location doesn't exist: they represent an addition, not a move
// (spec §4.5 step 2).
func pruneAdditions(working map[string]*cfn.Template, deployedByLoc map[cfn.Location]cfn.Resource, byDestination map[cfn.Location]cfn.Location) {
	for stackName, tmpl := range working {
		for logicalID := range tmpl.Resources {
			loc := cfn.NewLocation(stackName, logicalID)
			deployedLoc := loc
			if src, ok := byDestination[loc]; ok {
				deployedLoc = src
			}
			if _, ok := deployedByLoc[deployedLoc]; !ok {
				delete(tmpl.Resources, logicalID)
				tmpl.ResourceOrder = removeString(tmpl.ResourceOrder, logicalID)
			}
		}
	}
}

// injectMissing inserts deployed resources whose corresponding local
// location is absent from the working set, creating the destination
// stack entry if needed (spec §4.5 step 3).
func injectMissing(working map[string]*cfn.Template, deployedStacks []cfn.Stack, bySource map[cfn.Location]cfn.Location) {
	for _, st := range deployedStacks {
		if st.Template == nil {
			continue
		}
		for logicalID, res := range st.Template.Resources {
			loc := cfn.NewLocation(st.StackName, logicalID)
			localLoc := loc
			if dst, ok := bySource[loc]; ok {
				localLoc = dst
			}

			tmpl, ok := working[localLoc.StackName]
			if !ok {
				tmpl = cfn.NewTemplate()
				working[localLoc.StackName] = tmpl
			}
			if _, exists := tmpl.Resources[localLoc.LogicalResourceID]; exists {
				continue
			}
			tmpl.Resources[localLoc.LogicalResourceID] = res
			tmpl.ResourceOrder = append(tmpl.ResourceOrder, localLoc.LogicalResourceID)
		}
	}
}

// overrideCDKPaths carries the deployed resource's construct path
// forward onto the local body wherever the local body records one at
// all; the refactor API does not support CDK path updates (spec §4.5
// step 4).
func overrideCDKPaths(working map[string]*cfn.Template, deployedByLoc map[cfn.Location]cfn.Resource, byDestination map[cfn.Location]cfn.Location) {
	for stackName, tmpl := range working {
		for logicalID, res := range tmpl.Resources {
			if _, hasPath := res.CDKPath(); !hasPath {
				continue
			}
			loc := cfn.NewLocation(stackName, logicalID)
			deployedLoc := loc
			if src, ok := byDestination[loc]; ok {
				deployedLoc = src
			}
			deployedRes, ok := deployedByLoc[deployedLoc]
			if !ok {
				continue
			}
			path, ok := deployedRes.CDKPath()
			if !ok {
				continue
			}
			tmpl.Resources[logicalID] = res.WithCDKPath(path)
		}
	}
}

// stripNewStackSections drops Rules and Parameters from any output
// stack that wasn't present in the deployed set (spec §4.5 step 5).
func stripNewStackSections(working map[string]*cfn.Template, deployedStackNames map[string]bool) {
	for stackName, tmpl := range working {
		if deployedStackNames[stackName] {
			continue
		}
		tmpl.Rules = cfn.Value{}
		tmpl.Parameters = cfn.Value{}
	}
}

func checkNonEmpty(working map[string]*cfn.Template) error {
	for stackName, tmpl := range working {
		if len(tmpl.Resources) == 0 {
			return cfn.NewEmptyStackAfterRefactorError(stackName)
		}
	}
	return nil
}

func touchedStackNames(mappings []cfn.Mapping) map[string]bool {
	out := make(map[string]bool, len(mappings)*2)
	for _, m := range mappings {
		out[m.Source.StackName] = true
		out[m.Destination.StackName] = true
	}
	return out
}

func serialize(working map[string]*cfn.Template, touched map[string]bool) ([]Output, error) {
	stackNames := make([]string, 0, len(working))
	for name := range working {
		if touched[name] {
			stackNames = append(stackNames, name)
		}
	}
	sort.Strings(stackNames)

	out := make([]Output, 0, len(stackNames))
	for _, name := range stackNames {
		body, err := codec.EncodeCanonicalJSON(working[name])
		if err != nil {
			return nil, err
		}
		out = append(out, Output{StackName: name, TemplateBody: body})
	}
	return out, nil
}

func removeString(items []string, target string) []string {
	out := items[:0:0]
	for _, s := range items {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}
