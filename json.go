package objpatch

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/pkg/errors"
)

type jsonOperation struct {
	Op    OpKind       `json:"op"`
	Path  string       `json:"path"`
	From  *string      `json:"from,omitempty"`
	Value *interface{} `json:"value,omitempty"`
}

// MarshalJSON emits the RFC 6902 form. The value member is present exactly
// when the operation kind carries one, even if it is null.
func (op Operation) MarshalJSON() ([]byte, error) {
	out := jsonOperation{Op: op.Op, Path: op.Path}
	if op.Op.hasFrom() {
		from := op.From
		out.From = &from
	}
	if op.Op.hasValue() {
		value := op.Value
		out.Value = &value
	}
	return json.Marshal(out)
}

func (patch *Patch) UnmarshalJSON(data []byte) error {
	decoded, err := DecodePatch(data)
	if err != nil {
		return err
	}
	*patch = decoded
	return nil
}

// DecodePatch parses an RFC 6902 patch document.
func DecodePatch(data []byte) (Patch, error) {
	ops, err := jsonpatch.DecodePatch(data)
	if err != nil {
		return nil, errors.Wrap(err, "decoding patch document")
	}
	patch := make(Patch, 0, len(ops))
	for i, o := range ops {
		op, err := fromJSONPatch(o)
		if err != nil {
			return nil, errors.Wrapf(err, "operation %d", i)
		}
		patch = append(patch, op)
	}
	return patch, nil
}

// DecodeJSON decodes a patch from an []interface{} as parsed by encoding/json.
func (patch *Patch) DecodeJSON(data []interface{}) error {
	b, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "encoding patch document")
	}
	return patch.UnmarshalJSON(b)
}

// fromJSONPatch copies o into an Operation. Missing members are left at their
// zero value so that applying the operation reports them.
func fromJSONPatch(o jsonpatch.Operation) (Operation, error) {
	op := Operation{Op: OpKind(o.Kind())}

	path, err := o.Path()
	if err != nil && !errors.Is(err, jsonpatch.ErrMissing) {
		return Operation{}, err
	}
	if err == nil {
		op.Path = path
	}

	if op.Op.hasFrom() {
		from, err := o.From()
		if err != nil && !errors.Is(err, jsonpatch.ErrMissing) {
			return Operation{}, err
		}
		if err == nil {
			op.From = from
		}
	}

	if op.Op.hasValue() {
		value, err := o.ValueInterface()
		if err != nil && !errors.Is(err, jsonpatch.ErrMissing) {
			return Operation{}, err
		}
		op.Value = value
	}
	return op, nil
}
