package cfn

import "sort"

func sortStrings(s []string) { sort.Strings(s) }

// Template is a parsed CloudFormation document. Resources, Outputs,
// Parameters, and Rules are all optional (spec §3); any other
// top-level key is preserved opaquely in Extra so the synthesizer can
// round-trip sections it never needed to understand.
type Template struct {
	Resources  map[string]Resource
	Outputs    map[string]Output
	Parameters Value
	Rules      Value
	Extra      map[string]Value

	// ResourceOrder records the order logical ids were declared in the
	// wire document, when known, so graph construction and the order of
	// locations within one digest bucket mirror the input template
	// rather than Go's randomized map order (spec §5). Moves, and the
	// mappings extracted from them, are not emitted in this order: they
	// follow lexicographic digest order. When empty, callers fall back
	// to lexicographic order.
	ResourceOrder []string
}

// SortedResourceIDs returns ResourceOrder if it covers every resource,
// else the lexicographically sorted logical ids.
func (t *Template) SortedResourceIDs() []string {
	if len(t.ResourceOrder) == len(t.Resources) {
		seen := make(map[string]bool, len(t.ResourceOrder))
		ok := true
		for _, id := range t.ResourceOrder {
			if _, exists := t.Resources[id]; !exists {
				ok = false
				break
			}
			seen[id] = true
		}
		if ok {
			out := make([]string, len(t.ResourceOrder))
			copy(out, t.ResourceOrder)
			return out
		}
	}
	out := make([]string, 0, len(t.Resources))
	for id := range t.Resources {
		out = append(out, id)
	}
	sortStrings(out)
	return out
}

// NewTemplate returns an empty template with initialized maps.
func NewTemplate() *Template {
	return &Template{
		Resources: make(map[string]Resource),
		Outputs:   make(map[string]Output),
		Extra:     make(map[string]Value),
	}
}

// Clone deep-copies the template. The synthesizer is the only
// component that mutates templates in place, and it always does so on
// a clone taken at its own entry point (spec §4.5 step 1, §9).
func (t *Template) Clone() *Template {
	if t == nil {
		return nil
	}
	out := NewTemplate()
	for id, r := range t.Resources {
		out.Resources[id] = r
	}
	for id, o := range t.Outputs {
		out.Outputs[id] = o
	}
	out.Parameters = t.Parameters
	out.Rules = t.Rules
	for k, v := range t.Extra {
		out.Extra[k] = v
	}
	out.ResourceOrder = append([]string(nil), t.ResourceOrder...)
	return out
}

// Output is a CloudFormation Outputs entry.
type Output struct {
	Description string
	Value       Value
	ExportName  Value // the Export.Name sub-value, or the zero Value if absent
	HasExport   bool
}

// Export describes one resolved entry of the cross-template exports
// index built in §4.1 (Exports index).
type Export struct {
	StackName string
	Value     Value
}
