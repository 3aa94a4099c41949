package objpatch

import (
	"fmt"
	"reflect"
)

// resolve walks c.path from root and binds its final segment to a Location.
// Each step selects the adapter for the current node's variant; a failed
// traversal reports the full path rather than the failing segment.
func (c *opContext) resolve(root interface{}) (Location, error) {
	node, err := c.rootSlot(root)
	if err != nil {
		return nil, err
	}

	it := ParsePath(c.path).Segments()
	seg, ok := it.Next()
	if !ok {
		return nil, c.fail(root, InvalidPath, msgCannotPerform(c.op.Op, c.path))
	}
	for {
		if node.isNil() {
			return nil, c.fail(nil, TargetNotFound, msgTargetNotFound(seg.Value))
		}
		a, err := c.adapterFor(node)
		if err != nil {
			return nil, err
		}
		if seg.Final {
			return a.locate(seg.Value)
		}
		child, ok := a.traverse(seg.Value)
		if !ok {
			return nil, c.fail(node.interfaceValue(), TargetNotFound, msgCannotPerform(c.op.Op, c.path))
		}
		node = child
		seg, _ = it.Next()
	}
}

// rootSlot accepts roots which can be mutated in place: pointers, maps and
// *Object. Slices, arrays and structs passed by value cannot be.
func (c *opContext) rootSlot(root interface{}) (slot, error) {
	v := reflect.ValueOf(root)
	if !v.IsValid() {
		return slot{}, c.fail(nil, TargetNotFound, msgCannotPerform(c.op.Op, c.path))
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Struct:
		return slot{}, c.fail(root, UnsupportedContainer,
			fmt.Sprintf("The root of type '%s' must be passed by pointer to be patched in place.", v.Type()))
	case reflect.Map, reflect.Ptr:
		if v.IsNil() {
			return slot{}, c.fail(root, TargetNotFound, msgCannotPerform(c.op.Op, c.path))
		}
	}
	return settle(v, nil), nil
}
