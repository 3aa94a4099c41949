package objpatch

import "reflect"

type recordAdapter struct {
	ctx        *opContext
	node       slot
	descriptor TypeDescriptor
}

func (c *opContext) recordAdapter(node slot) adapter {
	return &recordAdapter{
		ctx:        c,
		node:       node,
		descriptor: c.options.descriptorProvider().Describe(node.value.Type()),
	}
}

func (a *recordAdapter) traverse(segment string) (slot, bool) {
	field, ok := a.descriptor.Lookup(segment)
	if !ok {
		return slot{}, false
	}
	record := a.node.value
	fv, commit := writable(field.Get(record), func(v reflect.Value) {
		field.Set(record, v)
	}, a.node.commit)
	return settle(fv, commit), true
}

func (a *recordAdapter) locate(segment string) (Location, error) {
	field, ok := a.descriptor.Lookup(segment)
	if !ok {
		return nil, a.ctx.fail(a.node.interfaceValue(), TargetNotFound, msgTargetNotFound(segment))
	}
	return &recordLocation{adapter: a, field: field}, nil
}

type recordLocation struct {
	adapter *recordAdapter
	field   FieldDescriptor
}

func (l *recordLocation) fail(kind ErrorKind, message string) error {
	return l.adapter.ctx.fail(l.adapter.node.interfaceValue(), kind, message)
}

func (l *recordLocation) Get() (interface{}, error) {
	if !l.field.Readable {
		return nil, l.fail(PropertyNotReadable, msgNotReadable(l.adapter.ctx.path))
	}
	return l.field.Get(l.adapter.node.value).Interface(), nil
}

// Records cannot grow, so Add writes the field just like Replace.
func (l *recordLocation) Add(value interface{}) error {
	return l.write(value)
}

// Remove resets the field to the zero value of its type.
func (l *recordLocation) Remove() error {
	if !l.field.Writable {
		return l.fail(PropertyNotWritable, msgNotWritable(l.adapter.ctx.path))
	}
	l.field.Set(l.adapter.node.value, reflect.Zero(l.field.Type))
	l.adapter.node.done()
	return nil
}

func (l *recordLocation) Replace(value interface{}) error {
	return l.write(value)
}

func (l *recordLocation) write(value interface{}) error {
	if !l.field.Writable {
		return l.fail(PropertyNotWritable, msgNotWritable(l.adapter.ctx.path))
	}
	v, ok := convertValue(value, l.field.Type)
	if !ok {
		return l.fail(InvalidValue, msgInvalidValue(value, l.adapter.ctx.path))
	}
	l.field.Set(l.adapter.node.value, v)
	l.adapter.node.done()
	return nil
}
