package override

import (
	"testing"

	"github.com/stackmove/stackmove/internal/domain/cfn"
)

func loc(stack, id string) cfn.Location { return cfn.NewLocation(stack, id) }

func TestResolvePassesThroughNonAmbiguousMoves(t *testing.T) {
	moves := []cfn.Move{
		{Sources: []cfn.Location{loc("A", "X")}, Destinations: []cfn.Location{loc("B", "X")}},
	}

	resolved, ambiguous := Resolve(moves, nil)
	if len(resolved) != 1 || len(ambiguous) != 0 {
		t.Fatalf("Resolve() = (%v, %v), want (1 resolved, 0 ambiguous)", resolved, ambiguous)
	}
}

func TestResolveFullyMatchedByOverridesBecomesUnambiguous(t *testing.T) {
	mv := cfn.Move{
		Sources:      []cfn.Location{loc("A", "X"), loc("A", "Y")},
		Destinations: []cfn.Location{loc("B", "X"), loc("B", "Y")},
	}
	overrides := []cfn.Mapping{
		{Source: loc("A", "X"), Destination: loc("B", "X")},
		{Source: loc("A", "Y"), Destination: loc("B", "Y")},
	}

	resolved, ambiguous := Resolve([]cfn.Move{mv}, overrides)
	if len(ambiguous) != 0 {
		t.Fatalf("Resolve() ambiguous = %v, want none", ambiguous)
	}
	if len(resolved) != 2 {
		t.Fatalf("Resolve() resolved = %v, want 2 extracted moves", resolved)
	}
	for _, r := range resolved {
		if !r.IsUnambiguous() {
			t.Fatalf("resolved move %+v is not unambiguous", r)
		}
	}
}

func TestResolvePartialOverrideLeavesAmbiguousResidue(t *testing.T) {
	mv := cfn.Move{
		Sources:      []cfn.Location{loc("A", "X"), loc("A", "Y"), loc("A", "Z")},
		Destinations: []cfn.Location{loc("B", "X"), loc("B", "Y"), loc("B", "Z")},
	}
	overrides := []cfn.Mapping{
		{Source: loc("A", "X"), Destination: loc("B", "X")},
	}

	resolved, ambiguous := Resolve([]cfn.Move{mv}, overrides)
	if len(resolved) != 1 {
		t.Fatalf("Resolve() resolved = %v, want 1 extracted move", resolved)
	}
	if len(ambiguous) != 1 {
		t.Fatalf("Resolve() ambiguous = %v, want exactly 1 residual move", ambiguous)
	}
	if len(ambiguous[0].Sources) != 2 || len(ambiguous[0].Destinations) != 2 {
		t.Fatalf("residual move = %+v, want 2 sources and 2 destinations remaining", ambiguous[0])
	}
}

func TestResolveUnmatchedOverrideIsIgnored(t *testing.T) {
	mv := cfn.Move{
		Sources:      []cfn.Location{loc("A", "X"), loc("A", "Y")},
		Destinations: []cfn.Location{loc("B", "X"), loc("B", "Y")},
	}
	overrides := []cfn.Mapping{
		{Source: loc("A", "Ghost"), Destination: loc("B", "Ghost")},
	}

	resolved, ambiguous := Resolve([]cfn.Move{mv}, overrides)
	if len(resolved) != 0 || len(ambiguous) != 1 {
		t.Fatalf("Resolve() = (%v, %v), want (0 resolved, 1 still-ambiguous)", resolved, ambiguous)
	}
}

func TestExtractMappingsOnlyUnambiguous(t *testing.T) {
	moves := []cfn.Move{
		{Sources: []cfn.Location{loc("A", "X")}, Destinations: []cfn.Location{loc("B", "X")}},
		{Sources: []cfn.Location{loc("A", "Y")}, Destinations: []cfn.Location{loc("A", "Y")}},
		{Sources: []cfn.Location{loc("A", "Z"), loc("A", "W")}, Destinations: []cfn.Location{loc("B", "Z")}},
	}

	mappings := ExtractMappings(moves)
	if len(mappings) != 1 {
		t.Fatalf("ExtractMappings() = %v, want exactly 1 mapping", mappings)
	}
	if mappings[0].Source != loc("A", "X") || mappings[0].Destination != loc("B", "X") {
		t.Fatalf("ExtractMappings()[0] = %+v, want A.X -> B.X", mappings[0])
	}
}

func TestStructuralMinesOverridesFromReversedGraph(t *testing.T) {
	// Two buckets with identical digests forwards (no outgoing
	// properties), but distinguishable by who depends on them once the
	// graph is reversed: App depends on BucketOld/BucketNew by name.
	deployedTmpl := cfn.NewTemplate()
	deployedTmpl.Resources["BucketOld"] = cfn.Resource{Type: "AWS::S3::Bucket"}
	deployedTmpl.Resources["AppOld"] = cfn.Resource{Type: "AWS::Foo::App", DependsOn: []string{"BucketOld"}}
	deployed := []cfn.Stack{{StackName: "Stack", Template: deployedTmpl}}

	localTmpl := cfn.NewTemplate()
	localTmpl.Resources["BucketNew"] = cfn.Resource{Type: "AWS::S3::Bucket"}
	localTmpl.Resources["AppOld"] = cfn.Resource{Type: "AWS::Foo::App", DependsOn: []string{"BucketNew"}}
	local := []cfn.Stack{{StackName: "Stack", Template: localTmpl}}

	mappings := Structural(deployed, local, nil)

	var found bool
	for _, m := range mappings {
		if m.Source == loc("Stack", "BucketOld") && m.Destination == loc("Stack", "BucketNew") {
			found = true
		}
	}
	if !found {
		t.Fatalf("Structural() = %v, want a BucketOld -> BucketNew mapping", mappings)
	}
}
