package objpatch

import (
	"fmt"
	"reflect"
)

// mappingBackend abstracts the two mapping representations: *Object and
// native Go maps keyed by strings.
type mappingBackend interface {
	lookup(segment string) (string, bool)
	resolve(segment string) string
	get(key string) interface{}
	set(key string, value reflect.Value)
	remove(key string)
	valueType() reflect.Type
	child(key string) slot
}

type mappingAdapter struct {
	ctx     *opContext
	node    slot
	backend mappingBackend
}

func (c *opContext) mappingAdapter(node slot) (adapter, error) {
	if node.value.Type() == objectPtrType {
		obj := node.value.Interface().(*Object)
		return &mappingAdapter{ctx: c, node: node, backend: objectBackend{obj: obj}}, nil
	}
	m := node.value
	if m.Type().Key().Kind() != reflect.String {
		return nil, c.fail(node.interfaceValue(), UnsupportedContainer,
			fmt.Sprintf("The type '%s' is not supported for json patch operations as its keys are not strings.", m.Type()))
	}
	return &mappingAdapter{ctx: c, node: node, backend: nativeBackend{m: m, commit: node.commit}}, nil
}

func (a *mappingAdapter) traverse(segment string) (slot, bool) {
	key, ok := a.backend.lookup(segment)
	if !ok {
		return slot{}, false
	}
	return a.backend.child(key), true
}

func (a *mappingAdapter) locate(segment string) (Location, error) {
	return &mappingLocation{adapter: a, segment: segment}, nil
}

type mappingLocation struct {
	adapter *mappingAdapter
	segment string
}

func (l *mappingLocation) notFound() error {
	return l.adapter.ctx.fail(l.adapter.node.interfaceValue(), TargetNotFound, msgTargetNotFound(l.segment))
}

func (l *mappingLocation) Get() (interface{}, error) {
	key, ok := l.adapter.backend.lookup(l.segment)
	if !ok {
		return nil, l.notFound()
	}
	return l.adapter.backend.get(key), nil
}

// Add inserts under the segment's original casing unless a matching key
// already exists, in which case that key is overwritten.
func (l *mappingLocation) Add(value interface{}) error {
	b := l.adapter.backend
	key := b.resolve(l.segment)
	v, err := l.convert(key, value)
	if err != nil {
		return err
	}
	b.set(key, v)
	l.adapter.node.done()
	return nil
}

func (l *mappingLocation) Remove() error {
	b := l.adapter.backend
	key, ok := b.lookup(l.segment)
	if !ok {
		return l.notFound()
	}
	b.remove(key)
	l.adapter.node.done()
	return nil
}

func (l *mappingLocation) Replace(value interface{}) error {
	b := l.adapter.backend
	key, ok := b.lookup(l.segment)
	if !ok {
		return l.notFound()
	}
	v, err := l.convert(key, value)
	if err != nil {
		return err
	}
	b.set(key, v)
	l.adapter.node.done()
	return nil
}

// convert reconciles value with the mapping. Schema-less mappings try to keep
// the runtime type of the value being overwritten and otherwise store the raw
// value. Typed mappings require a conversion to their value type.
func (l *mappingLocation) convert(key string, value interface{}) (reflect.Value, error) {
	b := l.adapter.backend
	vt := b.valueType()
	if vt.Kind() == reflect.Interface {
		if _, exists := b.lookup(key); exists {
			if existing := b.get(key); existing != nil {
				if v, ok := convertLike(value, existing); ok && v.Type().AssignableTo(vt) {
					return v, nil
				}
			}
		}
		if value == nil {
			return reflect.Zero(vt), nil
		}
		if raw := reflect.ValueOf(value); raw.Type().AssignableTo(vt) {
			return raw, nil
		}
	}
	v, ok := convertValue(value, vt)
	if !ok {
		return reflect.Value{}, l.adapter.ctx.fail(l.adapter.node.interfaceValue(), InvalidValue, msgInvalidValue(value, l.adapter.ctx.path))
	}
	return v, nil
}

type objectBackend struct {
	obj *Object
}

func (b objectBackend) lookup(segment string) (string, bool) {
	return b.obj.Lookup(segment)
}

func (b objectBackend) resolve(segment string) string {
	return b.obj.Resolve(segment)
}

func (b objectBackend) get(key string) interface{} {
	return b.obj.values[key]
}

func (b objectBackend) set(key string, value reflect.Value) {
	b.obj.Set(key, value.Interface())
}

func (b objectBackend) remove(key string) {
	b.obj.Delete(key)
}

func (b objectBackend) valueType() reflect.Type {
	return anyType
}

func (b objectBackend) child(key string) slot {
	value := b.obj.values[key]
	if value == nil {
		return slot{}
	}
	holder := reflect.New(anyType).Elem()
	holder.Set(reflect.ValueOf(value))
	obj := b.obj
	return settle(holder, func() {
		obj.values[key] = holder.Interface()
	})
}

type nativeBackend struct {
	m      reflect.Value
	commit func()
}

func (b nativeBackend) key(key string) reflect.Value {
	return reflect.ValueOf(key).Convert(b.m.Type().Key())
}

func (b nativeBackend) lookup(segment string) (string, bool) {
	if b.m.IsNil() {
		return "", false
	}
	return segment, b.m.MapIndex(b.key(segment)).IsValid()
}

func (b nativeBackend) resolve(segment string) string {
	return segment
}

func (b nativeBackend) get(key string) interface{} {
	return b.m.MapIndex(b.key(key)).Interface()
}

func (b nativeBackend) set(key string, value reflect.Value) {
	if b.m.IsNil() {
		b.m.Set(reflect.MakeMap(b.m.Type()))
	}
	b.m.SetMapIndex(b.key(key), value)
}

func (b nativeBackend) remove(key string) {
	b.m.SetMapIndex(b.key(key), reflect.Value{})
}

func (b nativeBackend) valueType() reflect.Type {
	return b.m.Type().Elem()
}

func (b nativeBackend) child(key string) slot {
	k := b.key(key)
	cp := reflect.New(b.valueType()).Elem()
	cp.Set(b.m.MapIndex(k))
	m, parent := b.m, b.commit
	return settle(cp, func() {
		m.SetMapIndex(k, cp)
		if parent != nil {
			parent()
		}
	})
}
