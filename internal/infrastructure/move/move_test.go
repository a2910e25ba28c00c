package move

import (
	"testing"

	"github.com/stackmove/stackmove/internal/domain/cfn"
)

func loc(stack, id string) cfn.Location { return cfn.NewLocation(stack, id) }

func stackWith(name string, resources map[string]cfn.Resource) cfn.Stack {
	tmpl := cfn.NewTemplate()
	for id, r := range resources {
		tmpl.Resources[id] = r
	}
	return cfn.Stack{StackName: name, Template: tmpl}
}

func TestInferDetectsSimpleMove(t *testing.T) {
	deployed := cfn.DigestIndex{"d1": {loc("Old", "Bucket")}}
	local := cfn.DigestIndex{"d1": {loc("New", "Bucket")}}

	moves, err := Infer(nil, nil, deployed, local, false)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if len(moves) != 1 {
		t.Fatalf("Infer() = %v, want exactly 1 move", moves)
	}
	if !moves[0].IsUnambiguous() {
		t.Fatalf("expected move to be unambiguous, got %+v", moves[0])
	}
}

func TestInferSelfFiltersUnmovedResources(t *testing.T) {
	deployed := cfn.DigestIndex{"d1": {loc("Same", "Bucket")}}
	local := cfn.DigestIndex{"d1": {loc("Same", "Bucket")}}

	moves, err := Infer(nil, nil, deployed, local, false)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if len(moves) != 0 {
		t.Fatalf("Infer() = %v, want no moves for an unmoved resource", moves)
	}
}

func TestInferProducesAmbiguousMoveForManyToMany(t *testing.T) {
	deployed := cfn.DigestIndex{"d1": {loc("A", "X"), loc("A", "Y")}}
	local := cfn.DigestIndex{"d1": {loc("B", "X"), loc("B", "Y")}}

	moves, err := Infer(nil, nil, deployed, local, false)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if len(moves) != 1 || !moves[0].IsAmbiguous() {
		t.Fatalf("Infer() = %v, want a single ambiguous move", moves)
	}
}

func TestInferPureAdditionAndDeletion(t *testing.T) {
	deployed := cfn.DigestIndex{"deleted": {loc("A", "X")}}
	local := cfn.DigestIndex{"added": {loc("B", "Y")}}

	// Disjoint digest keys fail the isomorphism check, so it is
	// suppressed here to observe the zipped addition/deletion moves.
	moves, err := Infer(nil, nil, deployed, local, true)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if len(moves) != 2 {
		t.Fatalf("Infer() = %v, want 2 moves (one addition, one deletion)", moves)
	}
	for _, m := range moves {
		if !m.IsPureAddition() && !m.IsPureDeletion() {
			t.Fatalf("move %+v is neither a pure addition nor a pure deletion", m)
		}
	}
}

func TestInferReturnsModificationDetectedErrorOnCardinalityMismatch(t *testing.T) {
	deployedStacks := []cfn.Stack{stackWith("A", map[string]cfn.Resource{"X": {Type: "AWS::S3::Bucket"}, "Y": {Type: "AWS::S3::Bucket"}})}
	localStacks := []cfn.Stack{stackWith("A", map[string]cfn.Resource{"X": {Type: "AWS::S3::Bucket"}})}

	deployed := cfn.DigestIndex{"d1": {loc("A", "X"), loc("A", "Y")}}
	local := cfn.DigestIndex{"d1": {loc("A", "X")}}

	_, err := Infer(deployedStacks, localStacks, deployed, local, false)
	if err == nil {
		t.Fatal("expected an error for a cardinality mismatch")
	}
	if _, ok := err.(*cfn.ModificationDetectedError); !ok {
		t.Fatalf("error = %T, want *cfn.ModificationDetectedError", err)
	}
}

func TestInferIgnoreModificationsSkipsIsomorphismCheck(t *testing.T) {
	deployed := cfn.DigestIndex{"d1": {loc("A", "X"), loc("A", "Y")}}
	local := cfn.DigestIndex{"d1": {loc("A", "X")}}

	moves, err := Infer(nil, nil, deployed, local, true)
	if err != nil {
		t.Fatalf("Infer with ignoreModifications: %v", err)
	}
	if len(moves) != 1 {
		t.Fatalf("Infer() = %v, want 1 move once the cardinality mismatch is ignored", moves)
	}
}

func TestUnambiguousAndAmbiguousFilters(t *testing.T) {
	moves := []cfn.Move{
		{Sources: []cfn.Location{loc("A", "X")}, Destinations: []cfn.Location{loc("B", "X")}},
		{Sources: []cfn.Location{loc("A", "X"), loc("A", "Y")}, Destinations: []cfn.Location{loc("B", "X")}},
	}

	if got := Unambiguous(moves); len(got) != 1 {
		t.Fatalf("Unambiguous() = %v, want 1", got)
	}
	if got := Ambiguous(moves); len(got) != 1 {
		t.Fatalf("Ambiguous() = %v, want 1", got)
	}
}
