package digest

import (
	"github.com/stackmove/stackmove/internal/domain/cfn"
	"github.com/stackmove/stackmove/internal/domain/model"
	"github.com/stackmove/stackmove/internal/infrastructure/graph"
)

// ComputeDigests is the first of the core's four external operations
// (spec §6): node id ("{stackName}.{logicalId}") to lowercase hex
// SHA-256 digest, for every resource reachable in topological order.
func ComputeDigests(stacks []cfn.Stack, direction graph.Direction, provider model.Provider) map[string]string {
	digests := Compute(stacks, direction, provider)
	out := make(map[string]string, len(digests))
	for nodeID, d := range digests {
		out[nodeID] = string(d)
	}
	return out
}
