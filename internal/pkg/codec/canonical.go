package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/stackmove/stackmove/internal/domain/cfn"
)

// EncodeCanonicalJSON produces the TemplateBody consumed by the
// synthesizer's output (spec §4.6): object keys in lexicographic
// order, no insignificant whitespace, stable across runs regardless
// of map iteration order.
func EncodeCanonicalJSON(t *cfn.Template) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeCanonicalValue(&buf, valueFromTemplate(t)); err != nil {
		return nil, fmt.Errorf("codec: encode canonical json: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeCanonicalValue(buf *bytes.Buffer, v cfn.Value) error {
	switch v.Kind() {
	case cfn.KindNull:
		buf.WriteString("null")
	case cfn.KindBool:
		b, _ := v.AsBool()
		if b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case cfn.KindNumber:
		n, _ := v.AsNumber()
		buf.WriteString(strconv.FormatFloat(n, 'g', -1, 64))
	case cfn.KindString:
		s, _ := v.AsString()
		return encodeJSONString(buf, s)
	case cfn.KindSeq:
		seq, _ := v.AsSeq()
		buf.WriteByte('[')
		for i, item := range seq {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeCanonicalValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case cfn.KindMap:
		m, _ := v.AsMap()
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSONString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeCanonicalValue(buf, m[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func encodeJSONString(buf *bytes.Buffer, s string) error {
	encoded, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	return nil
}
