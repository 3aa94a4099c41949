package objpatch

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// ConversionResult reports whether a value could be converted, and the
// converted instance when it could.
type ConversionResult struct {
	CanBeConverted    bool
	ConvertedInstance interface{}
}

// ConvertTo converts value into an instance of target. A value which already
// satisfies target is returned as is. Anything else is re-encoded through its
// generic JSON structure and decoded as target.
func ConvertTo(value interface{}, target reflect.Type) ConversionResult {
	v, ok := convertValue(value, target)
	if !ok {
		return ConversionResult{}
	}
	return ConversionResult{CanBeConverted: true, ConvertedInstance: v.Interface()}
}

var jsonNull = []byte("null")

func convertValue(value interface{}, target reflect.Type) (result reflect.Value, ok bool) {
	if value == nil {
		if !nullable(target) {
			return reflect.Value{}, false
		}
		return reflect.Zero(target), true
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(target) {
		return v, true
	}

	defer func() {
		if recover() != nil {
			result, ok = reflect.Value{}, false
		}
	}()

	data, err := json.Marshal(value)
	if err != nil {
		return reflect.Value{}, false
	}
	if bytes.Equal(data, jsonNull) && !nullable(target) {
		return reflect.Value{}, false
	}
	ptr := reflect.New(target)
	if err := json.Unmarshal(data, ptr.Interface()); err != nil {
		return reflect.Value{}, false
	}
	return ptr.Elem(), true
}

func nullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

// copyGeneric copies the schema-less containers an operation payload is
// decoded into: map[string]interface{}, []interface{} and *Object. Any other
// value is returned as is.
func copyGeneric(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		if v == nil {
			return v
		}
		out := make(map[string]interface{}, len(v))
		for k, e := range v {
			out[k] = copyGeneric(e)
		}
		return out
	case []interface{}:
		if v == nil {
			return v
		}
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = copyGeneric(e)
		}
		return out
	case *Object:
		if v == nil {
			return v
		}
		return v.copyWith(copyGeneric)
	}
	return value
}

// deepCopy returns a copy of value which shares no maps, slices or pointers
// with it. Struct fields are copied as a whole first, so unexported fields
// keep their values; only exported fields are copied deeply.
func deepCopy(value interface{}) interface{} {
	if value == nil {
		return nil
	}
	if obj, ok := value.(*Object); ok {
		if obj == nil {
			return obj
		}
		return obj.copyWith(deepCopy)
	}
	return deepCopyValue(reflect.ValueOf(value)).Interface()
}

func deepCopyValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return v
		}
		if v.Type() == objectPtrType {
			return reflect.ValueOf(v.Interface().(*Object).copyWith(deepCopy))
		}
		cp := reflect.New(v.Type().Elem())
		cp.Elem().Set(deepCopyValue(v.Elem()))
		return cp
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		cp := reflect.New(v.Type()).Elem()
		cp.Set(deepCopyValue(v.Elem()))
		return cp
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		cp := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			cp.SetMapIndex(iter.Key(), deepCopyValue(iter.Value()))
		}
		return cp
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		cp := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			cp.Index(i).Set(deepCopyValue(v.Index(i)))
		}
		return cp
	case reflect.Array:
		cp := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			cp.Index(i).Set(deepCopyValue(v.Index(i)))
		}
		return cp
	case reflect.Struct:
		cp := reflect.New(v.Type()).Elem()
		cp.Set(v)
		for i := 0; i < v.NumField(); i++ {
			if !v.Type().Field(i).IsExported() {
				continue
			}
			cp.Field(i).Set(deepCopyValue(v.Field(i)))
		}
		return cp
	}
	return v
}

// convertLike converts value to the runtime type of existing. An existing
// *Object passes its case policy on to the converted value.
func convertLike(value interface{}, existing interface{}) (reflect.Value, bool) {
	if obj, ok := existing.(*Object); ok && value != nil {
		if _, same := value.(*Object); !same {
			data, err := json.Marshal(value)
			if err != nil {
				return reflect.Value{}, false
			}
			converted := &Object{caseInsensitive: obj.caseInsensitive}
			if err := converted.UnmarshalJSON(data); err != nil {
				return reflect.Value{}, false
			}
			return reflect.ValueOf(converted), true
		}
	}
	return convertValue(value, reflect.TypeOf(existing))
}
