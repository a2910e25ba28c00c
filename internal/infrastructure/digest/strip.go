package digest

import (
	"github.com/stackmove/stackmove/internal/domain/cfn"
	"github.com/stackmove/stackmove/internal/infrastructure/graph"
)

// stripReferences replaces every Ref/Fn::GetAtt/DependsOn subtree with
// a sentinel, and resolves Fn::ImportValue through the exports index,
// substituting the corresponding sentinel when the imported value is
// itself a Ref or Fn::GetAtt (spec §4.2). This makes two resources
// that point at equivalent targets hash identically regardless of the
// target's logical name; the target's actual identity re-enters the
// digest separately, via depDigests.
func stripReferences(v cfn.Value, exports map[string]cfn.Export) cfn.Value {
	switch v.Kind() {
	case cfn.KindMap:
		if key, val, ok := v.SoleKey(); ok {
			switch key {
			case cfn.FnRef:
				return sentinel(cfn.FnRef)
			case cfn.FnGetAtt:
				return sentinel(cfn.FnGetAtt)
			case cfn.KeyDependsOn:
				return sentinel(cfn.KeyDependsOn)
			case cfn.FnImportValue:
				if name, ok := val.AsString(); ok {
					_, resolvedKind, isResolved, found := graph.ResolveImportValue(name, exports)
					if found && isResolved {
						return sentinel(resolvedKind)
					}
				}
				return v
			}
		}
		m, _ := v.AsMap()
		out := make(map[string]cfn.Value, len(m))
		for k, vv := range m {
			out[k] = stripReferences(vv, exports)
		}
		return cfn.Map(out, v.Keys())
	case cfn.KindSeq:
		seq, _ := v.AsSeq()
		out := make([]cfn.Value, len(seq))
		for i, vv := range seq {
			out[i] = stripReferences(vv, exports)
		}
		return cfn.Seq(out)
	default:
		return v
	}
}

func sentinel(kind string) cfn.Value {
	return cfn.NewMap().WithKey(cfn.SentinelKey, cfn.String(kind))
}
