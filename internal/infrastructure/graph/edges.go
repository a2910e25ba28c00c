package graph

import (
	"strings"

	"github.com/stackmove/stackmove/internal/domain/cfn"
)

// walkValue recursively visits every map sub-value of v (including v
// itself, if it is a map), calling visit on each. Intrinsic-function
// detection pattern-matches each visited map (spec §9 Design Notes:
// "reserved-key detection becomes a pattern-match on Map").
func walkValue(v cfn.Value, visit func(cfn.Value)) {
	switch v.Kind() {
	case cfn.KindMap:
		visit(v)
		m, _ := v.AsMap()
		for _, vv := range m {
			walkValue(vv, visit)
		}
	case cfn.KindSeq:
		seq, _ := v.AsSeq()
		for _, vv := range seq {
			walkValue(vv, visit)
		}
	}
}

// resolveConstructTarget inspects one map-shaped value and, if it is a
// Ref/Fn::GetAtt/Fn::ImportValue construct, resolves the node id it
// points at, per the edge derivation table in spec §4.1.
func resolveConstructTarget(m cfn.Value, sameStack string, exports map[string]cfn.Export) (string, bool) {
	if key, val, ok := m.SoleKey(); ok {
		switch key {
		case cfn.FnRef:
			if s, ok := val.AsString(); ok {
				return cfn.NewLocation(sameStack, s).NodeID(), true
			}
		case cfn.FnGetAtt:
			if logicalID, ok := firstGetAttSegment(val); ok {
				return cfn.NewLocation(sameStack, logicalID).NodeID(), true
			}
		case cfn.FnImportValue:
			if name, ok := val.AsString(); ok {
				return resolveImportValue(name, exports)
			}
		}
	}
	return "", false
}

// firstGetAttSegment extracts the logical id from a Fn::GetAtt value,
// which may be the dotted string form "X.attr" or the sequence form
// [X, attr, ...] (spec §4.1: "only the first segment").
func firstGetAttSegment(val cfn.Value) (string, bool) {
	if s, ok := val.AsString(); ok {
		if idx := strings.IndexByte(s, '.'); idx >= 0 {
			return s[:idx], true
		}
		return s, true
	}
	if seq, ok := val.AsSeq(); ok && len(seq) > 0 {
		return seq[0].AsString()
	}
	return "", false
}

// resolveImportValue looks up name in the exports index and resolves
// it to a node id: if the export's Value is {Ref: X}, the target is
// "{exportStack}.X"; if {Fn::GetAtt: [X, ...]}, same; otherwise the
// raw value is treated as a logical id in the exporting stack (spec
// §4.1). Edge derivation needs *some* target to link to, even a
// literal export value, so it is more permissive here than
// ResolveImportValue below, which backs the digest engine's stripping
// pass and only substitutes a sentinel for the two cases spec §4.2
// names explicitly.
func resolveImportValue(name string, exports map[string]cfn.Export) (string, bool) {
	export, ok := exports[name]
	if !ok {
		return "", false
	}
	if key, val, ok := export.Value.SoleKey(); ok {
		switch key {
		case cfn.FnRef:
			if s, ok := val.AsString(); ok {
				return cfn.NewLocation(export.StackName, s).NodeID(), true
			}
		case cfn.FnGetAtt:
			if logicalID, ok := firstGetAttSegment(val); ok {
				return cfn.NewLocation(export.StackName, logicalID).NodeID(), true
			}
		}
	}
	if s, ok := export.Value.AsString(); ok {
		return cfn.NewLocation(export.StackName, s).NodeID(), true
	}
	return "", false
}

// buildExportsIndex maps each export name to its {stackName, value}
// pair across all supplied stacks. Exports missing Export.Name of
// string type are ignored (spec §4.1).
func buildExportsIndex(stacks []cfn.Stack) map[string]cfn.Export {
	exports := make(map[string]cfn.Export)
	for _, st := range stacks {
		if st.Template == nil {
			continue
		}
		for _, out := range st.Template.Outputs {
			if !out.HasExport {
				continue
			}
			name, ok := out.ExportName.AsString()
			if !ok || name == "" {
				continue
			}
			exports[name] = cfn.Export{StackName: st.StackName, Value: out.Value}
		}
	}
	return exports
}

// ExportsIndex exposes buildExportsIndex for use outside the package
// (the digest engine's reference-stripping pass needs the same
// resolution; see resolveImportValue's doc comment).
func ExportsIndex(stacks []cfn.Stack) map[string]cfn.Export {
	return buildExportsIndex(stacks)
}

// ResolveImportValue resolves an Fn::ImportValue name through the
// exports index for the digest engine's reference-stripping pass (spec
// §4.2), reporting whether the export's value is a Ref, a Fn::GetAtt,
// or neither (spec §9 Open Question). It shares the Ref/Fn::GetAtt
// handling of resolveImportValue, which graph edge derivation uses, but
// unlike that function it does not treat a literal export value as a
// logical id. resolvedKind is "Ref" or "Fn::GetAtt" when found is
// true and isResolved is true; otherwise the caller should leave the
// Fn::ImportValue construct unchanged.
func ResolveImportValue(name string, exports map[string]cfn.Export) (nodeID, resolvedKind string, isResolved, found bool) {
	export, ok := exports[name]
	if !ok {
		return "", "", false, false
	}
	if key, val, ok := export.Value.SoleKey(); ok {
		switch key {
		case cfn.FnRef:
			if s, ok := val.AsString(); ok {
				return cfn.NewLocation(export.StackName, s).NodeID(), cfn.FnRef, true, true
			}
		case cfn.FnGetAtt:
			if logicalID, ok := firstGetAttSegment(val); ok {
				return cfn.NewLocation(export.StackName, logicalID).NodeID(), cfn.FnGetAtt, true, true
			}
		}
	}
	return "", "", false, true
}
