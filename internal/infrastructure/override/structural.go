package override

import (
	"github.com/stackmove/stackmove/internal/domain/cfn"
	"github.com/stackmove/stackmove/internal/domain/model"
	"github.com/stackmove/stackmove/internal/infrastructure/digest"
	"github.com/stackmove/stackmove/internal/infrastructure/graph"
	"github.com/stackmove/stackmove/internal/infrastructure/move"
)

// Structural recomputes the digest indices over the reversed
// dependency graph and extracts the unambiguous moves that emerge
// there as additional overrides (spec §4.4): two resources that are
// indistinguishable by their own properties and descendants can still
// be told apart by their ancestors, which only become outgoing edges
// once the graph is reversed. The isomorphism check is suppressed
// (ignoreModifications = true) since this pass exists purely to mine
// overrides, not to validate the refactor.
func Structural(deployedStacks, localStacks []cfn.Stack, provider model.Provider) []cfn.Mapping {
	deployedIndex := digest.BuildIndex(deployedStacks, graph.Opposite, provider)
	localIndex := digest.BuildIndex(localStacks, graph.Opposite, provider)

	moves, err := move.Infer(deployedStacks, localStacks, deployedIndex, localIndex, true)
	if err != nil {
		return nil
	}
	return ExtractMappings(move.Unambiguous(moves))
}
