// Package codec translates between the CloudFormation JSON/YAML wire
// format and the in-memory cfn.Value/cfn.Template tree (spec §4.6). It
// holds no state and never mutates a caller-owned byte slice.
package codec

import "github.com/stackmove/stackmove/internal/domain/cfn"

const (
	keyResources  = "Resources"
	keyOutputs    = "Outputs"
	keyParameters = "Parameters"
	keyRules      = "Rules"
	keyDescription = "Description"
	keyValue      = "Value"
	keyExport     = "Export"
	keyName       = "Name"
)

// templateFromValue extracts a Template from a decoded top-level
// document value, shared by the JSON and YAML decode paths (spec
// §4.6). Unrecognized top-level keys are preserved in Extra.
func templateFromValue(root cfn.Value) (*cfn.Template, error) {
	t := cfn.NewTemplate()
	if root.Kind() != cfn.KindMap {
		return t, nil
	}

	for _, key := range root.Keys() {
		val, _ := root.Get(key)
		switch key {
		case keyResources:
			resources, order, err := resourcesFromValue(val)
			if err != nil {
				return nil, err
			}
			t.Resources = resources
			t.ResourceOrder = order
		case keyOutputs:
			outputs, err := outputsFromValue(val)
			if err != nil {
				return nil, err
			}
			t.Outputs = outputs
		case keyParameters:
			t.Parameters = val
		case keyRules:
			t.Rules = val
		default:
			t.Extra[key] = val
		}
	}
	return t, nil
}

func resourcesFromValue(v cfn.Value) (map[string]cfn.Resource, []string, error) {
	out := make(map[string]cfn.Resource)
	if v.Kind() != cfn.KindMap {
		return out, nil, nil
	}
	order := v.Keys()
	for _, logicalID := range order {
		raw, _ := v.Get(logicalID)
		res, err := resourceFromValue(raw)
		if err != nil {
			return nil, nil, err
		}
		out[logicalID] = res
	}
	return out, append([]string(nil), order...), nil
}

func resourceFromValue(v cfn.Value) (cfn.Resource, error) {
	res := cfn.Resource{Metadata: cfn.Null()}
	if v.Kind() != cfn.KindMap {
		return res, nil
	}
	if typ, ok := v.Get(cfn.KeyType); ok {
		res.Type, _ = typ.AsString()
	}
	if props, ok := v.Get(cfn.KeyProperties); ok {
		res.Properties = props
	} else {
		res.Properties = cfn.NewMap()
	}
	if meta, ok := v.Get(cfn.KeyMetadata); ok {
		res.Metadata = meta
	}
	if dep, ok := v.Get(cfn.KeyDependsOn); ok {
		res.DependsOn = dependsOnFromValue(dep)
	}
	return res, nil
}

// dependsOnFromValue normalizes a scalar-or-sequence DependsOn wire
// value to []string (spec §3), mirroring the teacher's
// CFNResource.UnmarshalYAML handling of the same ambiguity.
func dependsOnFromValue(v cfn.Value) []string {
	switch v.Kind() {
	case cfn.KindString:
		s, _ := v.AsString()
		return []string{s}
	case cfn.KindSeq:
		seq, _ := v.AsSeq()
		out := make([]string, 0, len(seq))
		for _, item := range seq {
			if s, ok := item.AsString(); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func outputsFromValue(v cfn.Value) (map[string]cfn.Output, error) {
	out := make(map[string]cfn.Output)
	if v.Kind() != cfn.KindMap {
		return out, nil
	}
	for _, name := range v.Keys() {
		raw, _ := v.Get(name)
		output := cfn.Output{}
		if desc, ok := raw.Get(keyDescription); ok {
			output.Description, _ = desc.AsString()
		}
		if val, ok := raw.Get(keyValue); ok {
			output.Value = val
		}
		if export, ok := raw.Get(keyExport); ok {
			if name, ok := export.Get(keyName); ok {
				output.ExportName = name
				output.HasExport = true
			}
		}
		out[name] = output
	}
	return out, nil
}

// valueFromTemplate assembles a Template back into a single document
// Value, for canonical encoding (spec §4.6).
func valueFromTemplate(t *cfn.Template) cfn.Value {
	doc := cfn.NewMap()
	for k, v := range t.Extra {
		doc = doc.WithKey(k, v)
	}
	if len(t.Resources) > 0 {
		doc = doc.WithKey(keyResources, resourcesToValue(t))
	}
	if len(t.Outputs) > 0 {
		doc = doc.WithKey(keyOutputs, outputsToValue(t.Outputs))
	}
	if t.Parameters.Kind() == cfn.KindMap {
		doc = doc.WithKey(keyParameters, t.Parameters)
	}
	if t.Rules.Kind() == cfn.KindMap {
		doc = doc.WithKey(keyRules, t.Rules)
	}
	return doc
}

func resourcesToValue(t *cfn.Template) cfn.Value {
	m := cfn.NewMap()
	for _, logicalID := range t.SortedResourceIDs() {
		m = m.WithKey(logicalID, resourceToValue(t.Resources[logicalID]))
	}
	return m
}

func resourceToValue(r cfn.Resource) cfn.Value {
	v := cfn.NewMap().WithKey(cfn.KeyType, cfn.String(r.TypeOrUnknown()))
	v = v.WithKey(cfn.KeyProperties, r.Properties)
	if r.Metadata.Kind() == cfn.KindMap {
		v = v.WithKey(cfn.KeyMetadata, r.Metadata)
	}
	if len(r.DependsOn) > 0 {
		items := make([]cfn.Value, len(r.DependsOn))
		for i, d := range r.DependsOn {
			items[i] = cfn.String(d)
		}
		v = v.WithKey(cfn.KeyDependsOn, cfn.Seq(items))
	}
	return v
}

func outputsToValue(outputs map[string]cfn.Output) cfn.Value {
	m := cfn.NewMap()
	for name, o := range outputs {
		entry := cfn.NewMap()
		if o.Description != "" {
			entry = entry.WithKey(keyDescription, cfn.String(o.Description))
		}
		entry = entry.WithKey(keyValue, o.Value)
		if o.HasExport {
			entry = entry.WithKey(keyExport, cfn.NewMap().WithKey(keyName, o.ExportName))
		}
		m = m.WithKey(name, entry)
	}
	return m
}
