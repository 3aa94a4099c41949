package objpatch

import "fmt"

// Writer is an interface for writing values. This can be used for supporting a custom serialization format.
type Writer interface {
	WriteUint8(v uint8) error
	WriteString(v string) error
	WriteValue(v interface{}) error
}

// Reader is an interface for reading values. This can be used for supporting a custom serialization format.
type Reader interface {
	ReadUint8() (uint8, error)
	ReadString() (string, error)
	ReadValue() (interface{}, error)
}

// Note: This code is intentionally very verbose/repetitive in order to be forward compatible.

const (
	codeAdd uint8 = iota
	codeRemove
	codeReplace
	codeMove
	codeCopy
	codeTest
)

// Reads a single operation.
func ReadFrom(r Reader) (Operation, error) {
	code, err := r.ReadUint8()
	if err != nil {
		return Operation{}, err
	}

	switch code {
	case codeAdd:
		path, value, err := readPathValue(r)
		if err != nil {
			return Operation{}, err
		}
		return Operation{Op: OpAdd, Path: path, Value: value}, nil
	case codeRemove:
		path, err := r.ReadString()
		if err != nil {
			return Operation{}, err
		}
		return Operation{Op: OpRemove, Path: path}, nil
	case codeReplace:
		path, value, err := readPathValue(r)
		if err != nil {
			return Operation{}, err
		}
		return Operation{Op: OpReplace, Path: path, Value: value}, nil
	case codeMove:
		from, path, err := readFromPath(r)
		if err != nil {
			return Operation{}, err
		}
		return Operation{Op: OpMove, From: from, Path: path}, nil
	case codeCopy:
		from, path, err := readFromPath(r)
		if err != nil {
			return Operation{}, err
		}
		return Operation{Op: OpCopy, From: from, Path: path}, nil
	case codeTest:
		path, value, err := readPathValue(r)
		if err != nil {
			return Operation{}, err
		}
		return Operation{Op: OpTest, Path: path, Value: value}, nil
	default:
		return Operation{}, fmt.Errorf("unknown code: %d", code)
	}
}

func readPathValue(r Reader) (string, interface{}, error) {
	path, err := r.ReadString()
	if err != nil {
		return "", nil, err
	}
	value, err := r.ReadValue()
	if err != nil {
		return "", nil, err
	}
	return path, value, nil
}

func readFromPath(r Reader) (string, string, error) {
	from, err := r.ReadString()
	if err != nil {
		return "", "", err
	}
	path, err := r.ReadString()
	if err != nil {
		return "", "", err
	}
	return from, path, nil
}

// Writes a single operation to a writer.
func WriteTo(w Writer, op Operation) error {
	switch op.Op {
	case OpAdd:
		err := w.WriteUint8(codeAdd)
		if err != nil {
			return err
		}
		return writePathValue(w, op)
	case OpRemove:
		err := w.WriteUint8(codeRemove)
		if err != nil {
			return err
		}
		return w.WriteString(op.Path)
	case OpReplace:
		err := w.WriteUint8(codeReplace)
		if err != nil {
			return err
		}
		return writePathValue(w, op)
	case OpMove:
		err := w.WriteUint8(codeMove)
		if err != nil {
			return err
		}
		return writeFromPath(w, op)
	case OpCopy:
		err := w.WriteUint8(codeCopy)
		if err != nil {
			return err
		}
		return writeFromPath(w, op)
	case OpTest:
		err := w.WriteUint8(codeTest)
		if err != nil {
			return err
		}
		return writePathValue(w, op)
	default:
		return fmt.Errorf("unknown op: %q", op.Op)
	}
}

func writePathValue(w Writer, op Operation) error {
	err := w.WriteString(op.Path)
	if err != nil {
		return err
	}
	return w.WriteValue(op.Value)
}

func writeFromPath(w Writer, op Operation) error {
	err := w.WriteString(op.From)
	if err != nil {
		return err
	}
	return w.WriteString(op.Path)
}

// Encode writes every operation of the patch in order.
func (patch Patch) Encode(w Writer) error {
	for _, op := range patch {
		if err := WriteTo(w, op); err != nil {
			return err
		}
	}
	return nil
}
