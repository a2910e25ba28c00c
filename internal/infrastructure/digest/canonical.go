package digest

import (
	"encoding/binary"
	"hash"
	"sort"
	"strconv"

	"github.com/stackmove/stackmove/internal/domain/cfn"
)

// Canonical hashing byte-level protocol (spec §4.2, §9 Design Notes):
// every value is preceded by a one-byte kind tag, and every variable-
// length field (strings, sequence/map element counts) is
// length-prefixed with a big-endian uint64 so that no two distinct
// trees can ever serialize to the same byte stream. Map keys are
// sorted lexicographically before being fed in; sequence elements are
// fed in order.
const (
	tagNull byte = iota
	tagBool
	tagNumber
	tagString
	tagSeq
	tagMap
)

func writeLen(h hash.Hash, n int) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	h.Write(buf[:])
}

func writeBytes(h hash.Hash, b []byte) {
	writeLen(h, len(b))
	h.Write(b)
}

// canonicalize feeds v's canonical byte representation into h.
func canonicalize(h hash.Hash, v cfn.Value) {
	switch v.Kind() {
	case cfn.KindNull:
		h.Write([]byte{tagNull})
	case cfn.KindBool:
		h.Write([]byte{tagBool})
		b, _ := v.AsBool()
		if b {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case cfn.KindNumber:
		h.Write([]byte{tagNumber})
		n, _ := v.AsNumber()
		writeBytes(h, []byte(strconv.FormatFloat(n, 'g', -1, 64)))
	case cfn.KindString:
		h.Write([]byte{tagString})
		s, _ := v.AsString()
		writeBytes(h, []byte(s))
	case cfn.KindSeq:
		h.Write([]byte{tagSeq})
		seq, _ := v.AsSeq()
		writeLen(h, len(seq))
		for _, item := range seq {
			canonicalize(h, item)
		}
	case cfn.KindMap:
		h.Write([]byte{tagMap})
		m, _ := v.AsMap()
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		writeLen(h, len(keys))
		for _, k := range keys {
			writeBytes(h, []byte(k))
			canonicalize(h, m[k])
		}
	default:
		h.Write([]byte{tagNull})
	}
}
