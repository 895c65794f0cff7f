package jsondoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ErrEmptyPath is returned by edits that are given no keys.
var ErrEmptyPath = errors.New("empty key path")

// Indent is the indentation used by Marshal.
const Indent = "    "

var prettyOptions = &pretty.Options{
	// -1 keeps every array expanded, one element per line.
	Width:  -1,
	Indent: Indent,
}

// Document is an ordered JSON object. The zero value is not usable; use New,
// Parse or Load.
type Document struct {
	raw []byte
}

// New returns an empty document.
func New() *Document {
	return &Document{raw: []byte("{}")}
}

// Parse builds a document from JSON text. Blank input yields an empty
// document. Anything other than a JSON object is an error.
func Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return New(), nil
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		return nil, fmt.Errorf("expected a JSON object, got %s", kindOf(res))
	}
	return &Document{raw: pretty.Ugly(data)}, nil
}

// Clone returns an independent copy of d.
func (d *Document) Clone() *Document {
	return &Document{raw: append([]byte(nil), d.raw...)}
}

// Get walks path from the root and returns the value found there. The result
// does not exist as soon as any key along the path is absent.
func (d *Document) Get(path ...string) gjson.Result {
	p, err := joinPath(path)
	if err != nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(d.raw, p)
}

// GetOr is Get with a fallback: it returns the decoded value at path, or def
// when the path does not exist.
func (d *Document) GetOr(def any, path ...string) any {
	res := d.Get(path...)
	if !res.Exists() {
		return def
	}
	return res.Value()
}

// Has reports whether a value exists at path.
func (d *Document) Has(path ...string) bool {
	return d.Get(path...).Exists()
}

// Len returns the number of elements of the array or object at path, and 0
// for anything else (including a missing path).
func (d *Document) Len(path ...string) int {
	res := d.Get(path...)
	switch {
	case res.IsArray():
		return len(res.Array())
	case res.IsObject():
		n := 0
		res.ForEach(func(_, _ gjson.Result) bool {
			n++
			return true
		})
		return n
	default:
		return 0
	}
}

// Set encodes value as JSON and stores it at path. Missing intermediate keys
// are created; an intermediate that holds a scalar is replaced by a container.
// A numeric key addresses an array index, and an index equal to the array
// length appends.
func (d *Document) Set(value any, path ...string) error {
	raw, err := encode(value)
	if err != nil {
		return fmt.Errorf("encoding value for %s: %w", strings.Join(path, "."), err)
	}
	return d.SetRaw(raw, path...)
}

// SetRaw stores already-encoded JSON at path, with the same rules as Set.
func (d *Document) SetRaw(raw []byte, path ...string) error {
	p, err := joinPath(path)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(raw) {
		return fmt.Errorf("setting %s: invalid JSON value", strings.Join(path, "."))
	}
	out, err := sjson.SetRawBytes(d.raw, p, pretty.Ugly(raw))
	if err != nil {
		return fmt.Errorf("setting %s: %w", strings.Join(path, "."), err)
	}
	d.raw = out
	return nil
}

// Unset removes the value at path. It is a no-op when any key along the path
// is missing or does not hold a container.
func (d *Document) Unset(path ...string) error {
	p, err := joinPath(path)
	if err != nil {
		return err
	}
	out, err := sjson.DeleteBytes(d.raw, p)
	if err != nil {
		return fmt.Errorf("removing %s: %w", strings.Join(path, "."), err)
	}
	d.raw = out
	return nil
}

// ForEach calls fn for every top-level key in document order until fn
// returns false.
func (d *Document) ForEach(fn func(key string, value gjson.Result) bool) {
	gjson.ParseBytes(d.raw).ForEach(func(k, v gjson.Result) bool {
		return fn(k.String(), v)
	})
}

// Keys returns the top-level keys in document order.
func (d *Document) Keys() []string {
	var keys []string
	d.ForEach(func(key string, _ gjson.Result) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// MergeMissing copies every top-level key of other that d does not have yet,
// appending them in other's order. Keys already in d win.
func (d *Document) MergeMissing(other *Document) error {
	var err error
	other.ForEach(func(key string, value gjson.Result) bool {
		if d.Has(key) {
			return true
		}
		err = d.SetRaw([]byte(value.Raw), key)
		return err == nil
	})
	return err
}

// Raw returns the compact JSON text of the document.
func (d *Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Marshal renders the document with four-space indentation, keys in
// document order, and a trailing newline.
func (d *Document) Marshal() []byte {
	return pretty.PrettyOptions(d.raw, prettyOptions)
}

// encode marshals v without HTML escaping so "<", ">" and "&" survive as-is.
func encode(v any) ([]byte, error) {
	if r, ok := v.(gjson.Result); ok {
		if !r.Exists() {
			return []byte("null"), nil
		}
		return []byte(r.Raw), nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// joinPath escapes each key so that characters meaningful to gjson/sjson
// path syntax ('.', '*', '@', '/' ...) are taken literally.
func joinPath(path []string) (string, error) {
	if len(path) == 0 {
		return "", ErrEmptyPath
	}
	parts := make([]string, len(path))
	for i, key := range path {
		if key == "" {
			return "", fmt.Errorf("empty key at position %d", i)
		}
		k := gjson.Escape(key)
		// sjson reads a leading ':' as "force object key".
		if strings.HasPrefix(k, ":") {
			k = `\` + k
		}
		parts[i] = k
	}
	return strings.Join(parts, "."), nil
}

func kindOf(res gjson.Result) string {
	switch {
	case res.IsArray():
		return "an array"
	case res.Type == gjson.String:
		return "a string"
	case res.Type == gjson.Number:
		return "a number"
	case res.Type == gjson.True, res.Type == gjson.False:
		return "a boolean"
	default:
		return "null"
	}
}
