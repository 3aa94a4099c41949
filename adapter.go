package objpatch

import (
	"fmt"
	"reflect"
)

// Location is a resolved slot inside its immediate parent container. It is
// only valid for the graph as it was when the location was resolved.
type Location interface {
	Get() (interface{}, error)
	Add(value interface{}) error
	Remove() error
	Replace(value interface{}) error
}

// adapter addresses one child segment of a node of a specific variant.
type adapter interface {
	// traverse descends into an existing child for a non-final segment.
	traverse(segment string) (slot, bool)
	// locate binds the final segment to a Location.
	locate(segment string) (Location, error)
}

// opContext is the per-operation state shared by the walker and adapters.
type opContext struct {
	op      Operation
	path    string
	options *Options
}

func (c *opContext) fail(target interface{}, kind ErrorKind, message string) *Error {
	return &Error{PatchError{
		Target:    target,
		Operation: c.op,
		Kind:      kind,
		Message:   message,
	}}
}

func (c *opContext) adapterFor(node slot) (adapter, error) {
	switch classify(node) {
	case MappingNode:
		return c.mappingAdapter(node)
	case SequenceNode:
		return c.sequenceAdapter(node)
	case RecordNode:
		return c.recordAdapter(node), nil
	case ScalarNode:
		return scalarAdapter{ctx: c, node: node}, nil
	}
	panic(fmt.Errorf("objpatch: unknown node kind for %s", node.value.Type()))
}

type scalarAdapter struct {
	ctx  *opContext
	node slot
}

func (a scalarAdapter) traverse(string) (slot, bool) {
	return slot{}, false
}

func (a scalarAdapter) locate(segment string) (Location, error) {
	return nil, a.ctx.fail(a.node.interfaceValue(), TargetNotFound, msgTargetNotFound(segment))
}

// writable returns a settable copy of v when v itself cannot be set, with a
// commit function storing the copy through store.
func writable(v reflect.Value, store func(reflect.Value), parent func()) (reflect.Value, func()) {
	if v.CanSet() {
		return v, parent
	}
	cp := reflect.New(v.Type()).Elem()
	cp.Set(v)
	return cp, func() {
		store(cp)
		if parent != nil {
			parent()
		}
	}
}
