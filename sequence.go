package objpatch

import (
	"fmt"
	"reflect"
	"strconv"
)

type positionKind uint8

const (
	atIndex positionKind = iota
	atEnd
	invalidPosition
	outOfBounds
)

type position struct {
	kind  positionKind
	index int
}

// parsePosition interprets a sequence segment. Adding accepts indexes up to
// and including the length, every other operation requires an existing
// element. The end sentinel appends for add and addresses the last element
// otherwise.
func parsePosition(segment string, length int, adding bool) position {
	if segment == EndOfSequence {
		if adding {
			return position{kind: atEnd, index: length}
		}
		if length == 0 {
			return position{kind: outOfBounds, index: -1}
		}
		return position{kind: atIndex, index: length - 1}
	}
	i, err := strconv.Atoi(segment)
	if err != nil {
		return position{kind: invalidPosition, index: -1}
	}
	limit := length - 1
	if adding {
		limit = length
	}
	if i < 0 || i > limit {
		return position{kind: outOfBounds, index: i}
	}
	return position{kind: atIndex, index: i}
}

type sequenceAdapter struct {
	ctx  *opContext
	node slot
}

func (c *opContext) sequenceAdapter(node slot) (adapter, error) {
	if node.value.Kind() == reflect.Array {
		return nil, c.fail(node.interfaceValue(), UnsupportedContainer, msgFixedSize(node.value.Type().String()))
	}
	if !node.value.CanSet() {
		return nil, c.fail(node.interfaceValue(), UnsupportedContainer,
			fmt.Sprintf("The sequence of type '%s' is not addressable and cannot be patched in place.", node.value.Type()))
	}
	return &sequenceAdapter{ctx: c, node: node}, nil
}

func (a *sequenceAdapter) traverse(segment string) (slot, bool) {
	pos := parsePosition(segment, a.node.value.Len(), false)
	if pos.kind != atIndex || segment == EndOfSequence {
		return slot{}, false
	}
	return settle(a.node.value.Index(pos.index), a.node.commit), true
}

func (a *sequenceAdapter) locate(segment string) (Location, error) {
	return &sequenceLocation{adapter: a, segment: segment}, nil
}

type sequenceLocation struct {
	adapter *sequenceAdapter
	segment string
}

func (l *sequenceLocation) position(adding bool) (int, error) {
	a := l.adapter
	pos := parsePosition(l.segment, a.node.value.Len(), adding)
	switch pos.kind {
	case invalidPosition:
		return 0, a.ctx.fail(a.node.interfaceValue(), InvalidPath, msgInvalidArrayPath(a.ctx.op.Op, a.ctx.path))
	case outOfBounds:
		return 0, a.ctx.fail(a.node.interfaceValue(), IndexOutOfBounds, msgIndexOutOfBounds(a.ctx.op.Op, a.ctx.path))
	}
	return pos.index, nil
}

func (l *sequenceLocation) convert(value interface{}) (reflect.Value, error) {
	a := l.adapter
	v, ok := convertValue(value, a.node.value.Type().Elem())
	if !ok {
		return reflect.Value{}, a.ctx.fail(a.node.interfaceValue(), InvalidValue, msgInvalidValue(value, a.ctx.path))
	}
	return v, nil
}

func (l *sequenceLocation) Get() (interface{}, error) {
	i, err := l.position(false)
	if err != nil {
		return nil, err
	}
	return l.adapter.node.value.Index(i).Interface(), nil
}

func (l *sequenceLocation) Add(value interface{}) error {
	i, err := l.position(true)
	if err != nil {
		return err
	}
	v, err := l.convert(value)
	if err != nil {
		return err
	}
	seq := l.adapter.node.value
	n := seq.Len()
	grown := reflect.MakeSlice(seq.Type(), n+1, n+1)
	reflect.Copy(grown, seq.Slice(0, i))
	grown.Index(i).Set(v)
	reflect.Copy(grown.Slice(i+1, n+1), seq.Slice(i, n))
	seq.Set(grown)
	l.adapter.node.done()
	return nil
}

func (l *sequenceLocation) Remove() error {
	i, err := l.position(false)
	if err != nil {
		return err
	}
	seq := l.adapter.node.value
	n := seq.Len()
	shrunk := reflect.MakeSlice(seq.Type(), n-1, n-1)
	reflect.Copy(shrunk, seq.Slice(0, i))
	reflect.Copy(shrunk.Slice(i, n-1), seq.Slice(i+1, n))
	seq.Set(shrunk)
	l.adapter.node.done()
	return nil
}

func (l *sequenceLocation) Replace(value interface{}) error {
	i, err := l.position(false)
	if err != nil {
		return err
	}
	v, err := l.convert(value)
	if err != nil {
		return err
	}
	l.adapter.node.value.Index(i).Set(v)
	l.adapter.node.done()
	return nil
}
