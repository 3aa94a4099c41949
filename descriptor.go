package objpatch

import (
	"reflect"
	"strings"
	"sync"
)

// FieldDescriptor describes one named, typed field of a record type.
type FieldDescriptor struct {
	Name     string
	Type     reflect.Type
	Readable bool
	Writable bool

	// Get and Set receive the record itself (an addressable struct value).
	Get func(record reflect.Value) reflect.Value
	Set func(record reflect.Value, value reflect.Value)
}

type TypeDescriptor struct {
	Type   reflect.Type
	Fields []FieldDescriptor
}

// Lookup finds a field by case-insensitive name. The first declared match wins.
func (d TypeDescriptor) Lookup(name string) (FieldDescriptor, bool) {
	for _, f := range d.Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// DescriptorProvider maps a record type to the fields a patch may address.
type DescriptorProvider interface {
	Describe(t reflect.Type) TypeDescriptor
}

// StructDescriptors describes Go structs by reflection.
//
// Exported fields are named by their json tag, or their Go name when there is
// none; `json:"-"` hides a field. Embedded structs are flattened, as are
// exported embedded struct pointers, which are allocated when a promoted field
// is written through a nil pointer.
// Access is restricted with the patch tag:
//
//	Created time.Time `patch:"readonly"`
//	Secret  string    `patch:"writeonly"`
//	Locked  string    `patch:"-"`
type StructDescriptors struct {
	cache sync.Map // reflect.Type -> TypeDescriptor
}

func NewStructDescriptors() *StructDescriptors {
	return &StructDescriptors{}
}

var defaultDescriptors = NewStructDescriptors()

func (p *StructDescriptors) Describe(t reflect.Type) TypeDescriptor {
	if d, ok := p.cache.Load(t); ok {
		return d.(TypeDescriptor)
	}
	d := TypeDescriptor{Type: t, Fields: describeFields(t, nil, map[reflect.Type]bool{})}
	actual, _ := p.cache.LoadOrStore(t, d)
	return actual.(TypeDescriptor)
}

func describeFields(t reflect.Type, prefix []int, visiting map[reflect.Type]bool) []FieldDescriptor {
	if visiting[t] {
		return nil
	}
	visiting[t] = true
	defer delete(visiting, t)

	var fields []FieldDescriptor
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		index := append(append([]int{}, prefix...), i)

		jsonTag := sf.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name, _, _ := strings.Cut(jsonTag, ",")

		if sf.Anonymous && name == "" {
			if sf.Type.Kind() == reflect.Struct {
				fields = append(fields, describeFields(sf.Type, index, visiting)...)
				continue
			}
			if sf.IsExported() && sf.Type.Kind() == reflect.Ptr && sf.Type.Elem().Kind() == reflect.Struct {
				fields = append(fields, describeFields(sf.Type.Elem(), index, visiting)...)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
		}

		readable, writable := true, true
		switch sf.Tag.Get("patch") {
		case "readonly":
			writable = false
		case "writeonly":
			readable = false
		case "-":
			readable, writable = false, false
		}

		fields = append(fields, FieldDescriptor{
			Name:     name,
			Type:     sf.Type,
			Readable: readable,
			Writable: writable,
			Get: func(record reflect.Value) reflect.Value {
				if v := fieldByIndex(record, index, false); v.IsValid() {
					return v
				}
				return reflect.Zero(sf.Type)
			},
			Set: func(record reflect.Value, value reflect.Value) {
				fieldByIndex(record, index, true).Set(value)
			},
		})
	}
	return fields
}

// fieldByIndex is reflect.Value.FieldByIndex for paths through embedded
// pointers. A nil pointer on the way yields the zero Value, or is allocated
// when alloc is set.
func fieldByIndex(v reflect.Value, index []int, alloc bool) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				if !alloc {
					return reflect.Value{}
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}
