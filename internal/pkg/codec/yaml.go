package codec

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stackmove/stackmove/internal/domain/cfn"
	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a CloudFormation template document in YAML form,
// expanding the short-form intrinsic tags (`!Ref`, `!GetAtt`, `!Sub`,
// `!ImportValue`, `!Join`, `!Condition`, ...) to their long-form
// `Fn::*`/`Ref` map equivalents before building the Value tree (spec
// §4.6), exactly as the teacher's CFNResource.UnmarshalYAML expands a
// scalar DependsOn into its normalized form.
func DecodeYAML(r io.Reader) (*cfn.Template, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("codec: decode yaml: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	val, err := valueFromYAMLNode(root)
	if err != nil {
		return nil, err
	}
	return templateFromValue(val)
}

func valueFromYAMLNode(n *yaml.Node) (cfn.Value, error) {
	if n == nil {
		return cfn.Null(), nil
	}
	if longKey, ok := expandShortTag(n.Tag); ok {
		return valueFromShortForm(longKey, n)
	}

	switch n.Kind {
	case yaml.MappingNode:
		m := make(map[string]cfn.Value, len(n.Content)/2)
		order := make([]string, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val, err := valueFromYAMLNode(n.Content[i+1])
			if err != nil {
				return cfn.Value{}, err
			}
			if _, exists := m[key]; !exists {
				order = append(order, key)
			}
			m[key] = val
		}
		return cfn.Map(m, order), nil
	case yaml.SequenceNode:
		items := make([]cfn.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := valueFromYAMLNode(c)
			if err != nil {
				return cfn.Value{}, err
			}
			items = append(items, v)
		}
		return cfn.Seq(items), nil
	case yaml.ScalarNode:
		return scalarFromYAMLNode(n), nil
	case yaml.AliasNode:
		return valueFromYAMLNode(n.Alias)
	default:
		return cfn.Null(), nil
	}
}

func scalarFromYAMLNode(n *yaml.Node) cfn.Value {
	switch n.Tag {
	case "!!null":
		return cfn.Null()
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err == nil {
			return cfn.Bool(b)
		}
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err == nil {
			return cfn.Number(f)
		}
	}
	return cfn.String(n.Value)
}

// expandShortTag maps a CloudFormation YAML shorthand tag (single
// bang, e.g. "!Ref", "!GetAtt", "!Condition") to its long-form map
// key. Default-resolved tags (double bang, e.g. "!!str") are left
// alone. "!Ref" and "!Condition" map to themselves; every other
// "!Foo" maps to "Fn::Foo".
func expandShortTag(tag string) (string, bool) {
	if !strings.HasPrefix(tag, "!") || strings.HasPrefix(tag, "!!") {
		return "", false
	}
	name := strings.TrimPrefix(tag, "!")
	if name == "" {
		return "", false
	}
	switch name {
	case "Ref", "Condition":
		return name, true
	default:
		return "Fn::" + name, true
	}
}

// valueFromShortForm builds the long-form {longKey: value} map for a
// shorthand-tagged node. !GetAtt gets special handling: its scalar
// form "LogicalId.Attr" is split into the long form's ["LogicalId",
// "Attr"] sequence; its already-sequence form passes through.
func valueFromShortForm(longKey string, n *yaml.Node) (cfn.Value, error) {
	if longKey == cfn.FnGetAtt && n.Kind == yaml.ScalarNode {
		parts := strings.Split(n.Value, ".")
		items := make([]cfn.Value, len(parts))
		for i, p := range parts {
			items[i] = cfn.String(p)
		}
		return cfn.NewMap().WithKey(cfn.FnGetAtt, cfn.Seq(items)), nil
	}

	plain := *n
	plain.Tag = ""
	inner, err := valueFromYAMLNode(&plain)
	if err != nil {
		return cfn.Value{}, err
	}
	return cfn.NewMap().WithKey(longKey, inner), nil
}
