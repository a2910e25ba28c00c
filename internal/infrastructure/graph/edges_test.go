package graph

import (
	"testing"

	"github.com/stackmove/stackmove/internal/domain/cfn"
)

func TestWalkValueVisitsNestedMaps(t *testing.T) {
	v := cfn.NewMap().WithKey("Properties", cfn.NewMap().WithKey("Sub",
		cfn.NewMap().WithKey(cfn.FnRef, cfn.String("X"))))

	var visited []cfn.Value
	walkValue(v, func(m cfn.Value) { visited = append(visited, m) })

	if len(visited) != 3 {
		t.Fatalf("walkValue visited %d maps, want 3", len(visited))
	}
}

func TestWalkValueVisitsMapsInsideSeq(t *testing.T) {
	v := cfn.Seq([]cfn.Value{
		cfn.NewMap().WithKey(cfn.FnRef, cfn.String("A")),
		cfn.String("plain"),
	})

	var visited int
	walkValue(v, func(m cfn.Value) { visited++ })

	if visited != 1 {
		t.Fatalf("walkValue visited %d maps inside seq, want 1", visited)
	}
}

func TestFirstGetAttSegmentDottedForm(t *testing.T) {
	seg, ok := firstGetAttSegment(cfn.String("Bucket.Arn"))
	if !ok || seg != "Bucket" {
		t.Fatalf("firstGetAttSegment(dotted) = (%q, %v), want (Bucket, true)", seg, ok)
	}
}

func TestFirstGetAttSegmentNoDot(t *testing.T) {
	seg, ok := firstGetAttSegment(cfn.String("Bucket"))
	if !ok || seg != "Bucket" {
		t.Fatalf("firstGetAttSegment(no dot) = (%q, %v), want (Bucket, true)", seg, ok)
	}
}

func TestFirstGetAttSegmentSeqForm(t *testing.T) {
	seg, ok := firstGetAttSegment(cfn.Seq([]cfn.Value{cfn.String("Bucket"), cfn.String("Arn")}))
	if !ok || seg != "Bucket" {
		t.Fatalf("firstGetAttSegment(seq) = (%q, %v), want (Bucket, true)", seg, ok)
	}
}

func TestResolveConstructTargetRef(t *testing.T) {
	m := cfn.NewMap().WithKey(cfn.FnRef, cfn.String("VPC"))
	target, ok := resolveConstructTarget(m, "Net", nil)
	if !ok || target != "Net.VPC" {
		t.Fatalf("resolveConstructTarget(Ref) = (%q, %v), want (Net.VPC, true)", target, ok)
	}
}

func TestResolveConstructTargetNotAConstruct(t *testing.T) {
	m := cfn.NewMap().WithKey("PlainKey", cfn.String("value"))
	if _, ok := resolveConstructTarget(m, "Net", nil); ok {
		t.Fatal("expected non-construct map to not resolve")
	}
}

func TestBuildExportsIndexSkipsMissingOrEmptyExportName(t *testing.T) {
	tmpl := cfn.NewTemplate()
	tmpl.Outputs["NoExport"] = cfn.Output{Value: cfn.String("x"), HasExport: false}
	tmpl.Outputs["EmptyName"] = cfn.Output{Value: cfn.String("x"), HasExport: true, ExportName: cfn.String("")}
	tmpl.Outputs["Good"] = cfn.Output{Value: cfn.String("x"), HasExport: true, ExportName: cfn.String("good-export")}
	st := cfn.Stack{StackName: "Net", Template: tmpl}

	exports := buildExportsIndex([]cfn.Stack{st})

	if len(exports) != 1 {
		t.Fatalf("buildExportsIndex() = %v, want exactly 1 entry", exports)
	}
	if _, ok := exports["good-export"]; !ok {
		t.Fatal("expected good-export to be indexed")
	}
}

func TestResolveImportValueRef(t *testing.T) {
	exports := map[string]cfn.Export{
		"net-vpc-id": {StackName: "Net", Value: cfn.NewMap().WithKey(cfn.FnRef, cfn.String("VPC"))},
	}

	nodeID, kind, isResolved, found := ResolveImportValue("net-vpc-id", exports)
	if !found || !isResolved || kind != cfn.FnRef || nodeID != "Net.VPC" {
		t.Fatalf("ResolveImportValue(Ref) = (%q, %q, %v, %v), want (Net.VPC, Ref, true, true)", nodeID, kind, isResolved, found)
	}
}

func TestResolveImportValueGetAtt(t *testing.T) {
	exports := map[string]cfn.Export{
		"net-vpc-arn": {StackName: "Net", Value: cfn.NewMap().WithKey(cfn.FnGetAtt, cfn.String("VPC.Arn"))},
	}

	nodeID, kind, isResolved, found := ResolveImportValue("net-vpc-arn", exports)
	if !found || !isResolved || kind != cfn.FnGetAtt || nodeID != "Net.VPC" {
		t.Fatalf("ResolveImportValue(GetAtt) = (%q, %q, %v, %v), want (Net.VPC, Fn::GetAtt, true, true)", nodeID, kind, isResolved, found)
	}
}

func TestResolveImportValueUnresolvedLiteral(t *testing.T) {
	exports := map[string]cfn.Export{
		"literal-export": {StackName: "Net", Value: cfn.String("just-a-string")},
	}

	_, _, isResolved, found := ResolveImportValue("literal-export", exports)
	if !found || isResolved {
		t.Fatalf("ResolveImportValue(literal) isResolved = %v, found = %v, want (false, true)", isResolved, found)
	}
}

func TestResolveImportValueNotFound(t *testing.T) {
	_, _, isResolved, found := ResolveImportValue("missing", map[string]cfn.Export{})
	if found || isResolved {
		t.Fatalf("ResolveImportValue(missing) = (_, _, %v, %v), want (false, false)", isResolved, found)
	}
}

func TestExportsIndexMatchesBuildExportsIndex(t *testing.T) {
	tmpl := cfn.NewTemplate()
	tmpl.Outputs["Good"] = cfn.Output{Value: cfn.String("x"), HasExport: true, ExportName: cfn.String("good-export")}
	st := cfn.Stack{StackName: "Net", Template: tmpl}

	exported := ExportsIndex([]cfn.Stack{st})
	if len(exported) != 1 {
		t.Fatalf("ExportsIndex() = %v, want exactly 1 entry", exported)
	}
}
