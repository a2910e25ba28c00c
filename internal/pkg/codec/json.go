package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/stackmove/stackmove/internal/domain/cfn"
)

// DecodeJSON parses a CloudFormation template document in JSON form
// (spec §4.6). Object key order is preserved via token-based decoding
// so ResourceOrder and round-tripping stay faithful to the source.
func DecodeJSON(r io.Reader) (*cfn.Template, error) {
	dec := json.NewDecoder(r)
	root, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("codec: decode json: %w", err)
	}
	return templateFromValue(root)
}

func decodeJSONValue(dec *json.Decoder) (cfn.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return cfn.Value{}, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (cfn.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return cfn.Value{}, fmt.Errorf("codec: unexpected delimiter %q", t)
		}
	case bool:
		return cfn.Bool(t), nil
	case float64:
		return cfn.Number(t), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return cfn.Value{}, err
		}
		return cfn.Number(n), nil
	case string:
		return cfn.String(t), nil
	case nil:
		return cfn.Null(), nil
	default:
		return cfn.Value{}, fmt.Errorf("codec: unsupported json token %T", tok)
	}
}

func decodeJSONObject(dec *json.Decoder) (cfn.Value, error) {
	m := make(map[string]cfn.Value)
	var order []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return cfn.Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return cfn.Value{}, fmt.Errorf("codec: expected object key, got %v", keyTok)
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return cfn.Value{}, err
		}
		if _, exists := m[key]; !exists {
			order = append(order, key)
		}
		m[key] = val
	}
	if _, err := dec.Token(); err != nil { // consume closing '}'
		return cfn.Value{}, err
	}
	return cfn.Map(m, order), nil
}

func decodeJSONArray(dec *json.Decoder) (cfn.Value, error) {
	var items []cfn.Value
	for dec.More() {
		val, err := decodeJSONValue(dec)
		if err != nil {
			return cfn.Value{}, err
		}
		items = append(items, val)
	}
	if _, err := dec.Token(); err != nil { // consume closing ']'
		return cfn.Value{}, err
	}
	return cfn.Seq(items), nil
}
