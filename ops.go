package objpatch

type OpKind string

const (
	OpAdd     OpKind = "add"
	OpRemove  OpKind = "remove"
	OpReplace OpKind = "replace"
	OpMove    OpKind = "move"
	OpCopy    OpKind = "copy"
	OpTest    OpKind = "test"
)

func (k OpKind) valid() bool {
	switch k {
	case OpAdd, OpRemove, OpReplace, OpMove, OpCopy, OpTest:
		return true
	}
	return false
}

// hasValue reports whether operations of this kind carry a value.
func (k OpKind) hasValue() bool {
	return k == OpAdd || k == OpReplace || k == OpTest
}

// hasFrom reports whether operations of this kind read from a second path.
func (k OpKind) hasFrom() bool {
	return k == OpMove || k == OpCopy
}

// Operation is a single RFC 6902 instruction.
type Operation struct {
	Op    OpKind      `json:"op"`
	Path  string      `json:"path"`
	From  string      `json:"from,omitempty"`
	Value interface{} `json:"value,omitempty"`
}

// Patch is an ordered list of operations.
type Patch []Operation

func NewPatch() Patch {
	return Patch{}
}

// with returns p extended by op. The result never shares its backing array
// with p, so several patches can be built from a common prefix.
func (p Patch) with(op Operation) Patch {
	return append(p[:len(p):len(p)], op)
}

func (p Patch) Add(path string, value interface{}) Patch {
	return p.with(Operation{Op: OpAdd, Path: path, Value: value})
}

func (p Patch) Remove(path string) Patch {
	return p.with(Operation{Op: OpRemove, Path: path})
}

func (p Patch) Replace(path string, value interface{}) Patch {
	return p.with(Operation{Op: OpReplace, Path: path, Value: value})
}

func (p Patch) Move(from, path string) Patch {
	return p.with(Operation{Op: OpMove, From: from, Path: path})
}

func (p Patch) Copy(from, path string) Patch {
	return p.with(Operation{Op: OpCopy, From: from, Path: path})
}

func (p Patch) Test(path string, value interface{}) Patch {
	return p.with(Operation{Op: OpTest, Path: path, Value: value})
}
