// Package digest computes the 256-bit content digest of every
// resource in a stack set (spec §4.2): computeDigests, the first of
// the core's four external operations (spec §6).
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/stackmove/stackmove/internal/domain/cfn"
	"github.com/stackmove/stackmove/internal/domain/model"
	"github.com/stackmove/stackmove/internal/infrastructure/graph"
)

// Compute returns a map from graph node id ("{stackName}.{logicalId}")
// to digest hex for every resource reachable in topological order.
// Resources that are part of a dependency cycle are silently omitted
// (spec §4.1 Failure, §4.2).
func Compute(stacks []cfn.Stack, direction graph.Direction, provider model.Provider) map[string]cfn.Digest {
	g := graph.Build(stacks, direction)
	exports := graph.ExportsIndex(stacks)
	byLocation := indexResources(stacks)

	order := g.SortedNodes()
	topoIndex := make(map[string]int, len(order))
	for i, n := range order {
		topoIndex[n] = i
	}
	digests := make(map[string]cfn.Digest, len(order))

	for _, nodeID := range order {
		res, ok := byLocation[nodeID]
		if !ok {
			continue
		}
		digests[nodeID] = hashResource(res, nodeID, g, digests, topoIndex, exports, provider)
	}

	return digests
}

// indexResources maps every node id to its Resource across all stacks.
func indexResources(stacks []cfn.Stack) map[string]cfn.Resource {
	out := make(map[string]cfn.Resource)
	for _, st := range stacks {
		if st.Template == nil {
			continue
		}
		for logicalID, res := range st.Template.Resources {
			out[cfn.NewLocation(st.StackName, logicalID).NodeID()] = res
		}
	}
	return out
}

func hashResource(res cfn.Resource, nodeID string, g *graph.Graph, computed map[string]cfn.Digest, topoIndex map[string]int, exports map[string]cfn.Export, provider model.Provider) cfn.Digest {
	res = res.WithoutCDKPath()

	if keys, ok := physicalIdentifierKeys(res, provider); ok {
		return hashPhysicalIdentity(res.Type, res.Properties, keys)
	}
	return hashStructural(res, nodeID, g, computed, topoIndex, exports)
}

// physicalIdentifierKeys reports the resource's primary-identifier key
// list when every key is present in Properties (spec §4.2).
func physicalIdentifierKeys(res cfn.Resource, provider model.Provider) ([]string, bool) {
	if provider == nil {
		return nil, false
	}
	keys, ok := provider.PrimaryIdentifier(res.Type)
	if !ok || len(keys) == 0 {
		return nil, false
	}
	for _, k := range keys {
		if _, present := res.Properties.Get(k); !present {
			return nil, false
		}
	}
	return keys, true
}

func hashPhysicalIdentity(resourceType string, properties cfn.Value, keys []string) cfn.Digest {
	h := sha256.New()
	canonicalize(h, cfn.String(resourceType))
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	for _, k := range sorted {
		val, _ := properties.Get(k)
		writeBytes(h, []byte(k))
		canonicalize(h, val)
	}
	return cfn.Digest(hex.EncodeToString(h.Sum(nil)))
}

func hashStructural(res cfn.Resource, nodeID string, g *graph.Graph, computed map[string]cfn.Digest, topoIndex map[string]int, exports map[string]cfn.Export) cfn.Digest {
	stripped := stripReferences(res.Properties, exports)

	h := sha256.New()
	canonicalize(h, cfn.String(res.Type))
	canonicalize(h, stripped)

	for _, depDigest := range dependencyDigestsInTopoOrder(nodeID, g, computed, topoIndex) {
		writeBytes(h, []byte(depDigest))
	}

	return cfn.Digest(hex.EncodeToString(h.Sum(nil)))
}

// dependencyDigestsInTopoOrder returns the digests of nodeID's
// out-neighbors (dependencies) ordered by their position in the
// graph's global topological order, per spec §4.2: "depDigests are
// the digests of out-neighbors in topological order of that neighbor
// set as reported by the graph." Neighbors without a computed digest
// (cycle members) are skipped.
func dependencyDigestsInTopoOrder(nodeID string, g *graph.Graph, computed map[string]cfn.Digest, topoIndex map[string]int) []string {
	neighbors, err := g.OutNeighbors(nodeID)
	if err != nil || len(neighbors) == 0 {
		return nil
	}

	sort.Slice(neighbors, func(i, j int) bool {
		return topoIndex[neighbors[i]] < topoIndex[neighbors[j]]
	})

	out := make([]string, 0, len(neighbors))
	for _, n := range neighbors {
		if d, ok := computed[n]; ok {
			out = append(out, string(d))
		}
	}
	return out
}
