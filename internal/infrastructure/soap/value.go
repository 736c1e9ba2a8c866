package soap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Value is a dynamic tree decoded from a SOAP section-5 encoded response.
// The endpoint encodes associative arrays as sequences of item{key,value}
// pairs, plain arrays as repeated item elements, and structs as named
// members; scalars arrive as typed character data. Value normalizes all
// four shapes.
type Value struct {
	scalar string
	isLeaf bool
	list   []*Value
	fields map[string]*Value
	order  []string
}

func newScalar(s string) *Value {
	return &Value{scalar: s, isLeaf: true}
}

func newMap() *Value {
	return &Value{fields: make(map[string]*Value)}
}

func (v *Value) setField(key string, val *Value) {
	if v.fields == nil {
		v.fields = make(map[string]*Value)
	}
	if _, dup := v.fields[key]; !dup {
		v.order = append(v.order, key)
	}
	v.fields[key] = val
}

// IsNil reports whether the value carries no data at all.
func (v *Value) IsNil() bool {
	return v == nil || (!v.isLeaf && v.list == nil && len(v.fields) == 0)
}

func (v *Value) IsList() bool {
	return v != nil && v.list != nil
}

func (v *Value) IsMap() bool {
	return v != nil && v.fields != nil
}

func (v *Value) String() string {
	if v == nil {
		return ""
	}
	return v.scalar
}

func (v *Value) Int() int {
	if v == nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.scalar))
	if err != nil {
		return 0
	}
	return n
}

func (v *Value) Float() float64 {
	if v == nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.scalar), 64)
	if err != nil {
		return 0
	}
	return f
}

// List returns the element values, treating a missing value as empty.
func (v *Value) List() []*Value {
	if v == nil {
		return nil
	}
	return v.list
}

// Get walks nested maps along the given keys, returning nil when any hop is
// missing.
func (v *Value) Get(keys ...string) *Value {
	cur := v
	for _, key := range keys {
		if cur == nil || cur.fields == nil {
			return nil
		}
		cur = cur.fields[key]
	}
	return cur
}

func (v *Value) Has(key string) bool {
	return v != nil && v.fields != nil && v.fields[key] != nil
}

// Keys returns map keys in document order.
func (v *Value) Keys() []string {
	if v == nil {
		return nil
	}
	return v.order
}

// Strings flattens a list of scalars.
func (v *Value) Strings() []string {
	items := v.List()
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}
	return out
}

type decodedChild struct {
	name  string
	value *Value
}

// DecodeValue consumes the element opened by start and returns its decoded
// value. The decoder is left positioned after the matching end element.
func DecodeValue(dec *xml.Decoder, start xml.StartElement) (*Value, error) {
	var children []decodedChild
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("unexpected EOF inside <%s>", start.Name.Local)
			}
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			val, err := DecodeValue(dec, t)
			if err != nil {
				return nil, err
			}
			children = append(children, decodedChild{name: t.Name.Local, value: val})
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if len(children) == 0 {
				return newScalar(strings.TrimSpace(text.String())), nil
			}
			return assembleValue(children)
		}
	}
}

func assembleValue(children []decodedChild) (*Value, error) {
	allItems := true
	for _, c := range children {
		if c.name != "item" {
			allItems = false
			break
		}
	}

	if allItems {
		// item{key,value} sequences are associative arrays, bare items a list
		if isKeyValueItems(children) {
			result := newMap()
			for _, c := range children {
				key := c.value.Get("key").String()
				result.setField(key, c.value.Get("value"))
			}
			return result, nil
		}
		result := &Value{list: make([]*Value, 0, len(children))}
		for _, c := range children {
			result.list = append(result.list, c.value)
		}
		return result, nil
	}

	// named members; a repeated member name folds into a list
	result := newMap()
	for _, c := range children {
		if existing, ok := result.fields[c.name]; ok {
			if existing.IsList() {
				existing.list = append(existing.list, c.value)
			} else {
				result.fields[c.name] = &Value{list: []*Value{existing, c.value}}
			}
			continue
		}
		result.setField(c.name, c.value)
	}
	return result, nil
}

func isKeyValueItems(children []decodedChild) bool {
	for _, c := range children {
		if !c.value.IsMap() || !c.value.Has("key") || !c.value.Has("value") {
			return false
		}
	}
	return len(children) > 0
}
