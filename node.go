package objpatch

import "reflect"

// NodeKind is the closed set of node variants the engine knows how to address.
type NodeKind uint8

const (
	ScalarNode NodeKind = iota
	MappingNode
	SequenceNode
	RecordNode
)

func (k NodeKind) String() string {
	switch k {
	case MappingNode:
		return "mapping"
	case SequenceNode:
		return "sequence"
	case RecordNode:
		return "record"
	default:
		return "scalar"
	}
}

var (
	objectPtrType = reflect.TypeOf((*Object)(nil))
	objectType    = objectPtrType.Elem()
	anyType       = reflect.TypeOf((*interface{})(nil)).Elem()
)

// slot is an addressable point in the graph. value is always settable (or a
// reference such as *Object); commit writes value back into its parent after
// a mutation.
type slot struct {
	value  reflect.Value
	commit func()
}

func (s slot) isNil() bool {
	return !s.value.IsValid()
}

func (s slot) done() {
	if s.commit != nil {
		s.commit()
	}
}

func (s slot) interfaceValue() interface{} {
	if !s.value.IsValid() {
		return nil
	}
	return s.value.Interface()
}

// settle unwraps interfaces and pointers until it reaches a concrete node.
// Interface contents are copied into fresh addressable values so that every
// variant can be mutated uniformly.
func settle(v reflect.Value, commit func()) slot {
	for {
		if !v.IsValid() {
			return slot{}
		}
		if v.Type() == objectPtrType {
			if v.IsNil() {
				return slot{}
			}
			return slot{value: v, commit: commit}
		}
		if v.Type() == objectType && v.CanAddr() {
			return slot{value: v.Addr(), commit: commit}
		}
		switch v.Kind() {
		case reflect.Interface:
			if v.IsNil() {
				return slot{}
			}
			elem := v.Elem()
			holder := v
			parent := commit
			cp := reflect.New(elem.Type()).Elem()
			cp.Set(elem)
			if holder.CanSet() {
				commit = func() {
					holder.Set(cp)
					if parent != nil {
						parent()
					}
				}
			}
			v = cp
		case reflect.Ptr:
			if v.IsNil() {
				return slot{}
			}
			// The pointee is shared, no write-back needed beyond this point.
			v = v.Elem()
			commit = nil
		default:
			return slot{value: v, commit: commit}
		}
	}
}

// classify selects the variant of a settled slot. The order of the checks is
// the dispatch precedence: mapping, sequence, record.
func classify(s slot) NodeKind {
	v := s.value
	if v.Type() == objectPtrType {
		return MappingNode
	}
	switch v.Kind() {
	case reflect.Map:
		return MappingNode
	case reflect.Slice, reflect.Array:
		return SequenceNode
	case reflect.Struct:
		return RecordNode
	}
	return ScalarNode
}

// KindOf reports the node variant of value.
func KindOf(value interface{}) NodeKind {
	s := settle(reflect.ValueOf(value), nil)
	if s.isNil() {
		return ScalarNode
	}
	return classify(s)
}
