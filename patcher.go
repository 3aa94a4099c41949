package objpatch

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

type patcher struct {
	root    interface{}
	options *Options
	log     logrus.FieldLogger
}

// Applies a patch to a document in place. Operations are applied in order and
// each one observes the effects of the ones before it. The first failing
// operation aborts the patch and is returned as an *Error.
//
// This function uses the default options.
func ApplyPatch(root interface{}, patch Patch) error {
	return DefaultOptions.ApplyPatch(root, patch)
}

// Applies a patch to a document in place. Without an error sink the first
// failing operation aborts the patch; with one, every failure is reported to
// the sink and ApplyPatch returns nil.
func (options *Options) ApplyPatch(root interface{}, patch Patch) error {
	p := patcher{
		root:    root,
		options: options,
		log:     options.log(),
	}

	for _, op := range patch {
		if err := p.report(p.apply(op)); err != nil {
			return err
		}
	}
	return nil
}

// Apply applies a single operation to a document in place.
func (options *Options) Apply(root interface{}, op Operation) error {
	p := patcher{
		root:    root,
		options: options,
		log:     options.log(),
	}
	return p.report(p.apply(op))
}

// Locate resolves path inside root on behalf of an operation of kind op.
func (options *Options) Locate(root interface{}, op OpKind, path string) (Location, error) {
	ctx := opContext{
		op:      Operation{Op: op, Path: path},
		path:    path,
		options: options,
	}
	return ctx.resolve(root)
}

// report funnels every failure either to the caller or to the error sink.
func (p *patcher) report(err error) error {
	if err == nil {
		return nil
	}
	var patchErr *Error
	if !errors.As(err, &patchErr) {
		return err
	}
	if p.options.errorSink == nil {
		return patchErr
	}
	p.log.WithFields(logrus.Fields{
		"op":   patchErr.Operation.Op,
		"path": patchErr.Operation.Path,
		"kind": patchErr.Kind.String(),
	}).Debug(patchErr.Message)
	p.options.errorSink(patchErr.PatchError)
	return nil
}

func (p *patcher) locate(op Operation, path string) (Location, error) {
	ctx := opContext{
		op:      op,
		path:    path,
		options: p.options,
	}
	return ctx.resolve(p.root)
}

func (p *patcher) invalid(op Operation, message string) error {
	ctx := opContext{op: op, path: op.Path, options: p.options}
	return ctx.fail(p.root, InvalidOperation, message)
}

func (p *patcher) apply(op Operation) error {
	fields := logrus.Fields{"op": op.Op, "path": op.Path}
	if op.Op.hasFrom() {
		fields["from"] = op.From
	}
	p.log.WithFields(fields).Debug("applying operation")

	if !op.Op.valid() {
		return p.invalid(op, fmt.Sprintf("The operation '%s' is not supported.", op.Op))
	}
	if op.Op.hasFrom() && op.From == "" {
		return p.invalid(op, fmt.Sprintf("The '%s' operation at path '%s' requires a 'from' path.", op.Op, op.Path))
	}

	switch op.Op {
	case OpAdd:
		loc, err := p.locate(op, op.Path)
		if err != nil {
			return err
		}
		return loc.Add(p.value(op))
	case OpRemove:
		loc, err := p.locate(op, op.Path)
		if err != nil {
			return err
		}
		return loc.Remove()
	case OpReplace:
		loc, err := p.locate(op, op.Path)
		if err != nil {
			return err
		}
		return loc.Replace(p.value(op))
	case OpMove:
		return p.move(op)
	case OpCopy:
		return p.copy(op)
	case OpTest:
		return p.test(op)
	}
	return nil
}

// value is the converted payload of op. Schema-less containers are copied so
// that applying a decoded patch twice does not share structure between the
// documents; typed values are passed on unchanged.
func (p *patcher) value(op Operation) interface{} {
	return copyGeneric(p.options.convert(op.Value))
}

// move is get, remove, add. It is not atomic: when the destination cannot
// take the value, the source has already been removed.
func (p *patcher) move(op Operation) error {
	from, err := p.locate(op, op.From)
	if err != nil {
		return err
	}
	value, err := from.Get()
	if err != nil {
		return err
	}
	if err := from.Remove(); err != nil {
		return err
	}
	to, err := p.locate(op, op.Path)
	if err != nil {
		return err
	}
	return to.Add(value)
}

func (p *patcher) copy(op Operation) error {
	from, err := p.locate(op, op.From)
	if err != nil {
		return err
	}
	value, err := from.Get()
	if err != nil {
		return err
	}
	to, err := p.locate(op, op.Path)
	if err != nil {
		return err
	}
	return to.Add(deepCopy(value))
}

func (p *patcher) test(op Operation) error {
	loc, err := p.locate(op, op.Path)
	if err != nil {
		return err
	}
	current, err := loc.Get()
	if err != nil {
		return err
	}
	expected := p.options.convert(op.Value)
	if Equal(current, expected) {
		return nil
	}
	if d := diff(expected, current); d != "" {
		p.log.WithField("path", op.Path).Debugf("test mismatch (-want +got):\n%s", d)
	}
	ctx := opContext{op: op, path: op.Path, options: p.options}
	return ctx.fail(current, TestFailed, msgTestFailed(current, op.Path, expected))
}
