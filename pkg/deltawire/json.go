// Package deltawire encodes and decodes Delta documents as JSON in the
// exact shape Quill's own delta library uses on the wire: a document is
// `{"ops": [...]}`, and each op is an object naming exactly one of
// "insert", "retain", or "delete", plus an optional "attributes" map.
//
// Grounded on the teacher's pkg/transport/protocol.go, whose
// ProtocolMessage/OperationData structs hand-roll JSON shapes around a
// variant "operation" payload rather than leaning on reflection-based
// tags for the op itself; Op here gets the same hand-written treatment
// because its Value field's meaning depends on Action, something
// encoding/json's struct tags cannot express on their own.
package deltawire

import (
	"encoding/json"
	"fmt"

	"github.com/deltaweave/deltaweave/pkg/delta"
)

// deltaEmbedType is the embed type key this package recognizes as a
// nested document, recursing MarshalDelta/UnmarshalDelta into its
// value instead of leaving it as a generic JSON value. It matches the
// "delta" embed type pkg/embedhandlers registers by default.
const deltaEmbedType = "delta"

// wireOp is the JSON shape of a single op. Exactly one of Insert,
// Retain, or Delete is set, matching the Quill delta convention.
type wireOp struct {
	Insert     json.RawMessage `json:"insert,omitempty"`
	Retain     json.RawMessage `json:"retain,omitempty"`
	Delete     *int            `json:"delete,omitempty"`
	Attributes map[string]any  `json:"attributes,omitempty"`
}

// wireDocument is the JSON shape of a whole delta document.
type wireDocument struct {
	Ops []wireOp `json:"ops"`
}

// MarshalDelta renders ops as a `{"ops": [...]}` JSON document.
func MarshalDelta(ops []delta.Op) ([]byte, error) {
	doc, err := toWireDocument(ops)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// MarshalOp renders a single op as its standalone JSON object, useful
// for line-delimited transports that send one op change at a time.
func MarshalOp(op delta.Op) ([]byte, error) {
	w, err := toWireOp(op)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalDelta parses a `{"ops": [...]}` JSON document into ops.
func UnmarshalDelta(data []byte) ([]delta.Op, error) {
	var doc wireDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("deltawire: decoding document: %w", err)
	}
	ops := make([]delta.Op, 0, len(doc.Ops))
	for i, w := range doc.Ops {
		op, err := fromWireOp(w)
		if err != nil {
			return nil, fmt.Errorf("deltawire: decoding op %d: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// UnmarshalOp parses a single standalone op JSON object.
func UnmarshalOp(data []byte) (delta.Op, error) {
	var w wireOp
	if err := json.Unmarshal(data, &w); err != nil {
		return delta.Op{}, fmt.Errorf("deltawire: decoding op: %w", err)
	}
	return fromWireOp(w)
}

func toWireDocument(ops []delta.Op) (wireDocument, error) {
	doc := wireDocument{Ops: make([]wireOp, 0, len(ops))}
	for i, op := range ops {
		w, err := toWireOp(op)
		if err != nil {
			return wireDocument{}, fmt.Errorf("deltawire: encoding op %d: %w", i, err)
		}
		doc.Ops = append(doc.Ops, w)
	}
	return doc, nil
}

func toWireOp(op delta.Op) (wireOp, error) {
	w := wireOp{Attributes: encodeAttributes(op.Attrs)}

	switch op.Action {
	case delta.ActionDelete:
		n, ok := op.Value.(int)
		if !ok {
			return wireOp{}, fmt.Errorf("delete op has non-integer value %T", op.Value)
		}
		w.Delete = &n
		return w, nil

	case delta.ActionInsert:
		raw, err := encodeValue(op.Value)
		if err != nil {
			return wireOp{}, err
		}
		w.Insert = raw
		return w, nil

	case delta.ActionRetain:
		raw, err := encodeValue(op.Value)
		if err != nil {
			return wireOp{}, err
		}
		w.Retain = raw
		return w, nil

	default:
		return wireOp{}, fmt.Errorf("unknown action %v", op.Action)
	}
}

// encodeValue renders an insert/retain op's value: a plain string or
// integer marshal directly, and an embed marshals as its single-key
// object, recursing into MarshalDelta when the key is the "delta" type.
func encodeValue(v any) (json.RawMessage, error) {
	switch val := v.(type) {
	case string:
		return json.Marshal(val)
	case int:
		return json.Marshal(val)
	case delta.Embed:
		return encodeEmbed(val)
	default:
		return nil, fmt.Errorf("unsupported op value type %T", v)
	}
}

func encodeEmbed(e delta.Embed) (json.RawMessage, error) {
	if len(e) != 1 {
		return nil, fmt.Errorf("embed must have exactly one key, got %d", len(e))
	}
	t := e.Type()
	v := e.Value()

	if t == deltaEmbedType {
		nested, err := asDelta(v)
		if err != nil {
			return nil, fmt.Errorf("embed %q: %w", t, err)
		}
		nestedDoc, err := toWireDocument(nested)
		if err != nil {
			return nil, err
		}
		return json.Marshal(map[string]wireDocument{t: nestedDoc})
	}

	return json.Marshal(map[string]any{t: v})
}

func asDelta(v any) ([]delta.Op, error) {
	switch ops := v.(type) {
	case delta.Delta:
		return []delta.Op(ops), nil
	case []delta.Op:
		return ops, nil
	default:
		return nil, fmt.Errorf("expected a nested delta, got %T", v)
	}
}

// encodeAttributes renders an attribute map, turning delta.Null into
// JSON null so the removal sentinel round-trips.
func encodeAttributes(attrs delta.Attributes) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		if delta.IsNull(v) {
			out[k] = nil
			continue
		}
		out[k] = v
	}
	return out
}

// decodeAttributes is the inverse of encodeAttributes: a JSON null
// value becomes delta.Null, everything else passes through as decoded
// by encoding/json (float64 for numbers, map[string]any for objects).
func decodeAttributes(m map[string]any) delta.Attributes {
	if len(m) == 0 {
		return nil
	}
	out := make(delta.Attributes, len(m))
	for k, v := range m {
		if v == nil {
			out[k] = delta.Null
			continue
		}
		out[k] = v
	}
	return out
}

func fromWireOp(w wireOp) (delta.Op, error) {
	attrs := decodeAttributes(w.Attributes)

	switch {
	case w.Delete != nil:
		if *w.Delete < 0 {
			return delta.Op{}, fmt.Errorf("delete: length must be non-negative, got %d", *w.Delete)
		}
		return delta.NewDelete(*w.Delete, attrs), nil

	case w.Insert != nil:
		v, err := decodeValue(w.Insert)
		if err != nil {
			return delta.Op{}, fmt.Errorf("insert: %w", err)
		}
		if s, ok := v.(string); ok {
			if s == "" && len(attrs) > 0 {
				return delta.Op{}, fmt.Errorf("insert: zero-length insert text cannot carry attributes")
			}
			return delta.NewInsertText(s, attrs), nil
		}
		e, ok := v.(delta.Embed)
		if !ok {
			return delta.Op{}, fmt.Errorf("insert: unexpected decoded value type %T", v)
		}
		return delta.NewInsertEmbed(e, attrs), nil

	case w.Retain != nil:
		v, err := decodeValue(w.Retain)
		if err != nil {
			return delta.Op{}, fmt.Errorf("retain: %w", err)
		}
		if n, ok := v.(int); ok {
			if n < 0 {
				return delta.Op{}, fmt.Errorf("retain: length must be non-negative, got %d", n)
			}
			return delta.NewRetain(n, attrs), nil
		}
		e, ok := v.(delta.Embed)
		if !ok {
			return delta.Op{}, fmt.Errorf("retain: unexpected decoded value type %T", v)
		}
		return delta.NewRetainEmbed(e, attrs), nil

	default:
		return delta.Op{}, fmt.Errorf("op has none of insert, retain, or delete set")
	}
}

// decodeValue parses a raw insert/retain value: a JSON string, a JSON
// number (retain length), or a single-key JSON object (an embed).
func decodeValue(raw json.RawMessage) (any, error) {
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}

	switch v := probe.(type) {
	case string:
		return v, nil
	case float64:
		return int(v), nil
	case map[string]any:
		if len(v) != 1 {
			return nil, fmt.Errorf("embed object must have exactly one key, got %d", len(v))
		}
		for t, val := range v {
			if t == deltaEmbedType {
				nestedRaw, err := json.Marshal(val)
				if err != nil {
					return nil, err
				}
				nested, err := UnmarshalDelta(nestedRaw)
				if err != nil {
					return nil, fmt.Errorf("embed %q: %w", t, err)
				}
				return delta.Embed{t: delta.Delta(nested)}, nil
			}
			return delta.Embed{t: val}, nil
		}
	}
	return nil, fmt.Errorf("unsupported JSON value type %T", probe)
}
