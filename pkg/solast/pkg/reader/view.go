// Package reader implements the two schema-specific front ends that turn
// raw Solidity compiler JSON into the typed tree defined by pkg/node: a
// legacy reader for compiler versions below 0.4.12, and a modern reader for
// 0.4.12 and later, sharing a common build/link pipeline.
package reader

import (
	"encoding/json"
	"fmt"

	"github.com/solast-dev/solast/pkg/solast/pkg/node"
)

// view is the schema-agnostic field accessor a builder uses to pull typed
// attributes and structural children out of one decoded JSON node, however
// that node's shape encodes them (named fields for modern, attributes plus
// a positional children array for legacy). Builders never see raw JSON.
type view interface {
	kind() string
	id() int
	src() (node.Src, error)
	raw() json.RawMessage

	str(field string) string
	optStr(field string) (string, bool)
	boolField(field string) bool
	intRef(field string) node.RefID
	strList(field string) []string
	refList(field string) []node.RefID // null entries preserved as RefID(0)
	typeDescriptions() node.TypeDescriptions

	child(field string) (view, bool)      // a single nested object attribute
	childList(field string) []view        // an array of nested object attributes
	positional(i int) (view, bool)        // legacy-only: i'th entry of "children"
	positionalCount() int
}

func decodeRawNode(raw json.RawMessage) (map[string]json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("reader: malformed AST node: %w", err)
	}

	return m, nil
}

// isModern reports whether a decoded top-level AST object uses the modern
// (nodeType-tagged) schema, per §6.1's per-section selection rule.
func isModern(m map[string]json.RawMessage) bool {
	_, ok := m["nodeType"]

	return ok
}

func jsonString(raw json.RawMessage) string {
	var s string
	_ = json.Unmarshal(raw, &s)

	return s
}

func jsonInt(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}

	return int(f), true
}

func jsonBool(raw json.RawMessage) bool {
	var b bool
	_ = json.Unmarshal(raw, &b)

	return b
}

func jsonStrList(raw json.RawMessage) []string {
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil
	}

	out := make([]string, len(raws))
	for i, r := range raws {
		out[i] = jsonString(r)
	}

	return out
}

// jsonUnmarshalAny is used by the handful of fields (exportedSymbols,
// symbolAliases) whose shape is a plain JSON object/array rather than a
// nested AST node, so the view's node-shaped accessors don't apply.
func jsonUnmarshalAny(raw json.RawMessage, out interface{}) error {
	if len(raw) == 0 {
		return nil
	}

	return json.Unmarshal(raw, out)
}

func jsonRefList(raw json.RawMessage) []node.RefID {
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil
	}

	out := make([]node.RefID, len(raws))
	for i, r := range raws {
		if id, ok := jsonInt(r); ok {
			out[i] = node.RefID(id)
		}
	}

	return out
}

func parseSrcField(m map[string]json.RawMessage) (node.Src, error) {
	raw, ok := m["src"]
	if !ok {
		return node.Src{}, nil
	}

	return node.ParseSrc(jsonString(raw))
}

// --- modern view ---

type modernView struct {
	m map[string]json.RawMessage
}

func newModernView(raw json.RawMessage) (view, error) {
	m, err := decodeRawNode(raw)
	if err != nil {
		return nil, err
	}

	return &modernView{m: m}, nil
}

func (v *modernView) kind() string { return jsonString(v.m["nodeType"]) }

func (v *modernView) id() int {
	id, _ := jsonInt(v.m["id"])

	return id
}

func (v *modernView) src() (node.Src, error) { return parseSrcField(v.m) }
func (v *modernView) raw() json.RawMessage   { return rawOf(v.m) }

func (v *modernView) str(field string) string { return jsonString(v.m[field]) }

func (v *modernView) optStr(field string) (string, bool) {
	raw, ok := v.m[field]
	if !ok || string(raw) == "null" {
		return "", false
	}

	return jsonString(raw), true
}

func (v *modernView) boolField(field string) bool { return jsonBool(v.m[field]) }

func (v *modernView) intRef(field string) node.RefID {
	id, _ := jsonInt(v.m[field])

	return node.RefID(id)
}

func (v *modernView) strList(field string) []string     { return jsonStrList(v.m[field]) }
func (v *modernView) refList(field string) []node.RefID { return jsonRefList(v.m[field]) }

func (v *modernView) typeDescriptions() node.TypeDescriptions {
	raw, ok := v.m["typeDescriptions"]
	if !ok {
		return node.TypeDescriptions{}
	}

	td, err := decodeRawNode(raw)
	if err != nil {
		return node.TypeDescriptions{}
	}

	return node.TypeDescriptions{
		TypeString:     jsonString(td["typeString"]),
		TypeIdentifier: jsonString(td["typeIdentifier"]),
	}
}

func (v *modernView) child(field string) (view, bool) {
	raw, ok := v.m[field]
	if !ok || string(raw) == "null" {
		return nil, false
	}

	cv, err := newModernView(raw)
	if err != nil {
		return nil, false
	}

	return cv, true
}

func (v *modernView) childList(field string) []view {
	raw, ok := v.m[field]
	if !ok {
		return nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil
	}

	out := make([]view, len(raws))
	for i, r := range raws {
		if string(r) == "null" {
			continue
		}

		cv, err := newModernView(r)
		if err != nil {
			continue
		}

		out[i] = cv
	}

	return out
}

func (v *modernView) positional(i int) (view, bool)  { return nil, false }
func (v *modernView) positionalCount() int            { return 0 }

func rawOf(m map[string]json.RawMessage) json.RawMessage {
	b, err := json.Marshal(m)
	if err != nil {
		return nil
	}

	return b
}

// --- legacy view ---

// legacyView adapts the pre-0.4.12 { name, src, attributes, children }
// shape to the same field-access surface as modernView. Legacy has no
// named child fields: positional() lets each legacy builder pick children
// out of the "children" array by the fixed order solc emitted for that
// variant.
type legacyView struct {
	m          map[string]json.RawMessage
	attrs      map[string]json.RawMessage
	childRaws  []json.RawMessage
	childCache []view
}

func newLegacyView(raw json.RawMessage) (view, error) {
	m, err := decodeRawNode(raw)
	if err != nil {
		return nil, err
	}

	var attrs map[string]json.RawMessage
	if a, ok := m["attributes"]; ok {
		_ = json.Unmarshal(a, &attrs)
	}

	var children []json.RawMessage
	if c, ok := m["children"]; ok {
		_ = json.Unmarshal(c, &children)
	}

	return &legacyView{m: m, attrs: attrs, childRaws: children}, nil
}

func (v *legacyView) kind() string { return jsonString(v.m["name"]) }

func (v *legacyView) id() int {
	id, _ := jsonInt(v.m["id"])

	return id
}

func (v *legacyView) src() (node.Src, error) { return parseSrcField(v.m) }
func (v *legacyView) raw() json.RawMessage   { return rawOf(v.m) }

func (v *legacyView) str(field string) string { return jsonString(v.attrs[field]) }

func (v *legacyView) optStr(field string) (string, bool) {
	raw, ok := v.attrs[field]
	if !ok || string(raw) == "null" {
		return "", false
	}

	return jsonString(raw), true
}

func (v *legacyView) boolField(field string) bool { return jsonBool(v.attrs[field]) }

func (v *legacyView) intRef(field string) node.RefID {
	id, _ := jsonInt(v.attrs[field])

	return node.RefID(id)
}

func (v *legacyView) strList(field string) []string     { return jsonStrList(v.attrs[field]) }
func (v *legacyView) refList(field string) []node.RefID { return jsonRefList(v.attrs[field]) }

func (v *legacyView) typeDescriptions() node.TypeDescriptions {
	return node.TypeDescriptions{
		TypeString:     jsonString(v.attrs["type"]),
		TypeIdentifier: jsonString(v.attrs["typeIdentifier"]),
	}
}

// child is not used by legacy builders for structural attributes: legacy
// has no named child fields, only the positional list. It is kept to
// satisfy the view interface uniformly; it always reports absent.
func (v *legacyView) child(field string) (view, bool) { return nil, false }
func (v *legacyView) childList(field string) []view   { return nil }

func (v *legacyView) positional(i int) (view, bool) {
	if i < 0 || i >= len(v.childRaws) {
		return nil, false
	}

	v.ensureCache()

	return v.childCache[i], v.childCache[i] != nil
}

func (v *legacyView) positionalCount() int {
	return len(v.childRaws)
}

func (v *legacyView) ensureCache() {
	if v.childCache != nil {
		return
	}

	v.childCache = make([]view, len(v.childRaws))
	for i, r := range v.childRaws {
		if string(r) == "null" {
			continue
		}

		cv, err := newLegacyView(r)
		if err != nil {
			continue
		}

		v.childCache[i] = cv
	}
}

// positionalAll returns every positional child as views, skipping nulls.
func positionalAll(v view) []view {
	n := v.positionalCount()

	out := make([]view, 0, n)
	for i := 0; i < n; i++ {
		if cv, ok := v.positional(i); ok {
			out = append(out, cv)
		}
	}

	return out
}
