package objpatch

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/cases"
)

// Object is a schema-less mapping from string keys to values. Keys keep
// their insertion order. A case-insensitive Object matches keys by their
// Unicode case folding, and keeps the casing under which a key was first
// inserted.
//
// The zero value is an empty case-sensitive Object.
type Object struct {
	keys            []string
	values          map[string]interface{}
	folded          map[string]string
	caseInsensitive bool
}

func NewObject() *Object {
	return &Object{}
}

func NewCaseInsensitiveObject() *Object {
	return &Object{caseInsensitive: true}
}

func (o *Object) CaseInsensitive() bool {
	return o.caseInsensitive
}

func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Lookup resolves key to the key actually stored in the object.
func (o *Object) Lookup(key string) (string, bool) {
	if _, ok := o.values[key]; ok {
		return key, true
	}
	if o.caseInsensitive {
		actual, ok := o.folded[foldKey(key)]
		return actual, ok
	}
	return "", false
}

// Resolve is Lookup falling back to key itself.
func (o *Object) Resolve(key string) string {
	if actual, ok := o.Lookup(key); ok {
		return actual
	}
	return key
}

func (o *Object) Get(key string) (interface{}, bool) {
	actual, ok := o.Lookup(key)
	if !ok {
		return nil, false
	}
	return o.values[actual], true
}

// Set stores value under key. An existing key matching under the object's
// case policy is overwritten in place.
func (o *Object) Set(key string, value interface{}) {
	if actual, ok := o.Lookup(key); ok {
		o.values[actual] = value
		return
	}
	if o.values == nil {
		o.values = make(map[string]interface{})
	}
	o.keys = append(o.keys, key)
	o.values[key] = value
	if o.caseInsensitive {
		if o.folded == nil {
			o.folded = make(map[string]string)
		}
		o.folded[foldKey(key)] = key
	}
}

func (o *Object) Delete(key string) bool {
	actual, ok := o.Lookup(key)
	if !ok {
		return false
	}
	delete(o.values, actual)
	if o.caseInsensitive {
		delete(o.folded, foldKey(actual))
	}
	for i, k := range o.keys {
		if k == actual {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object. Nested objects become *Object values
// with the same case policy as the receiver.
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	t, err := dec.Token()
	if err != nil {
		return err
	}
	if t != json.Delim('{') {
		return fmt.Errorf("objpatch: cannot unmarshal %v into Object", t)
	}
	fresh := Object{caseInsensitive: o.caseInsensitive}
	if err := fresh.decodeFields(dec); err != nil {
		return err
	}
	*o = fresh
	return nil
}

func (o *Object) decodeFields(dec *json.Decoder) error {
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := t.(string)
		if !ok {
			return fmt.Errorf("objpatch: expected object key, got %v", t)
		}
		value, err := o.decodeValue(dec)
		if err != nil {
			return err
		}
		o.Set(key, value)
	}
	_, err := dec.Token()
	return err
}

func (o *Object) decodeValue(dec *json.Decoder) (interface{}, error) {
	t, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t {
	case json.Delim('{'):
		child := &Object{caseInsensitive: o.caseInsensitive}
		if err := child.decodeFields(dec); err != nil {
			return nil, err
		}
		return child, nil
	case json.Delim('['):
		arr := []interface{}{}
		for dec.More() {
			v, err := o.decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return t, nil
}

// copyWith returns a new Object with the same keys, order and case policy,
// each value passed through copyValue.
func (o *Object) copyWith(copyValue func(interface{}) interface{}) *Object {
	cp := &Object{caseInsensitive: o.caseInsensitive}
	for _, key := range o.keys {
		cp.Set(key, copyValue(o.values[key]))
	}
	return cp
}

func foldKey(key string) string {
	return cases.Fold().String(key)
}
