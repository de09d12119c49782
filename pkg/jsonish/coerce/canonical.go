package coerce

import (
	"strconv"
	"strings"

	"github.com/ormasoftchile/gert/pkg/jsonish/parse"
)

// canonicalJSON renders v as compact, well-formed JSON text, used when a
// composite value must be stringified against a String target (§4.2.2).
func canonicalJSON(v *parse.Value) string {
	var b strings.Builder
	writeCanonical(&b, v)
	return b.String()
}

func writeCanonical(b *strings.Builder, v *parse.Value) {
	if v == nil {
		b.WriteString("null")
		return
	}
	switch v.Kind {
	case parse.VNull:
		b.WriteString("null")
	case parse.VBool:
		b.WriteString(strconv.FormatBool(v.Bool))
	case parse.VNumber:
		b.WriteString(v.Num)
	case parse.VString:
		b.WriteString(strconv.Quote(v.Str))
	case parse.VArray:
		b.WriteByte('[')
		for i, item := range v.Arr {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, item)
		}
		b.WriteByte(']')
	case parse.VObject:
		b.WriteByte('{')
		for i, kv := range v.ObjectPairs() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(kv.Key))
			b.WriteByte(':')
			writeCanonical(b, kv.Value)
		}
		b.WriteByte('}')
	case parse.VAnyOf:
		if len(v.Any) > 0 {
			writeCanonical(b, v.Any[0])
		} else {
			b.WriteString(strconv.Quote(v.OriginalText))
		}
	default:
		b.WriteString("null")
	}
}
