package eval

import (
	"encoding/json"
	"strconv"

	"github.com/peamaeq/makepad/encode"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"
)

// MarshalJSON encodes the value at ptr.
func MarshalJSON(doc *live.Document, ptr id.Ptr) ([]byte, error) {
	return json.Marshal(ToAny(doc, ptr))
}

// DocToAny converts the roots of doc to a map keyed by root name.
func DocToAny(doc *live.Document) map[string]any {
	return runToAny(doc, 0, 0, len(doc.Roots()))
}

// ToAny converts the node at ptr to plain Go values: maps for classes and
// objects, slices for arrays and calls, and bool, int, float64 or string
// for everything else.
func ToAny(doc *live.Document, ptr id.Ptr) any {
	n, ok := doc.Node(ptr)
	if !ok {
		return nil
	}
	v := n.Value
	switch v.Type {
	case live.ClassType, live.ObjectType:
		start, count := v.Children()
		return runToAny(doc, ptr.Level+1, start, count)
	case live.ArrayType, live.CallType:
		start, count := v.Children()
		res := make([]any, 0, count)
		for i := range count {
			res = append(res, ToAny(doc, id.Ptr{Level: ptr.Level + 1, Index: start + i}))
		}
		return res
	case live.BoolType:
		return v.Bool
	case live.IntType:
		return int(v.Int)
	case live.FloatType:
		return v.Float
	case live.Vec2Type:
		return []any{float64(v.Vec[0]), float64(v.Vec[1])}
	case live.Vec3Type:
		return []any{float64(v.Vec[0]), float64(v.Vec[1]), float64(v.Vec[2])}
	case live.StringType:
		return doc.StringOf(v)
	case live.IdType:
		return doc.ColonString(v.ID)
	default:
		return encode.Scalar(doc, v)
	}
}

func runToAny(doc *live.Document, level, start, count int) map[string]any {
	res := make(map[string]any, count)
	for i := range count {
		ptr := id.Ptr{Level: level, Index: start + i}
		n, ok := doc.Node(ptr)
		if !ok {
			break
		}
		key := strconv.Itoa(i)
		if !n.ID.IsEmpty() {
			key = doc.PathString(n.ID)
		}
		res[key] = ToAny(doc, ptr)
	}
	return res
}
