// Package objpatchmsgpack stores patches in msgpack. Every operation is an op
// code followed by its path members and, for add, replace and test, the value.
// Operations follow each other without a surrounding array, so a patch can be
// written and read one operation at a time.
package objpatchmsgpack

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/sanity-io/objpatch"
	"github.com/vmihailenco/msgpack/v4"
)

// MsgpackPatch implements CustomEncoder and CustomDecoder for a patch embedded
// in a larger msgpack structure. The decoder consumes the rest of its input,
// so the patch has to be the last value of the enclosing structure.
type MsgpackPatch objpatch.Patch

var _ msgpack.CustomEncoder = (*MsgpackPatch)(nil)
var _ msgpack.CustomDecoder = (*MsgpackPatch)(nil)

func (patch *MsgpackPatch) EncodeMsgpack(enc *msgpack.Encoder) error {
	return objpatch.Patch(*patch).Encode(opWriter{enc})
}

func (patch *MsgpackPatch) DecodeMsgpack(dec *msgpack.Decoder) error {
	decoded, err := readAll(opReader{dec})
	if err != nil {
		return err
	}
	*patch = append(*patch, decoded...)
	return nil
}

// Marshal encodes a whole patch.
func Marshal(patch objpatch.Patch) ([]byte, error) {
	buf := bytes.NewBuffer([]byte{})
	if err := NewEncoder(buf).EncodePatch(patch); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a whole patch.
func Unmarshal(data []byte) (objpatch.Patch, error) {
	return NewDecoder(bytes.NewReader(data)).DecodePatch()
}

// Encoder writes operations to a stream.
type Encoder struct {
	w opWriter
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: opWriter{msgpack.NewEncoder(w)}}
}

func (e *Encoder) Encode(op objpatch.Operation) error {
	return errors.Wrapf(objpatch.WriteTo(e.w, op), "encoding %s operation", op.Op)
}

func (e *Encoder) EncodePatch(patch objpatch.Patch) error {
	for _, op := range patch {
		if err := e.Encode(op); err != nil {
			return err
		}
	}
	return nil
}

// Decoder reads operations from a stream.
type Decoder struct {
	r opReader
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: opReader{msgpack.NewDecoder(r)}}
}

// Decode reads the next operation. It returns io.EOF once the stream ends
// between two operations.
func (d *Decoder) Decode() (objpatch.Operation, error) {
	return objpatch.ReadFrom(d.r)
}

// DecodePatch reads operations until the stream ends.
func (d *Decoder) DecodePatch() (objpatch.Patch, error) {
	patch, err := readAll(d.r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding msgpack patch")
	}
	return patch, nil
}

func readAll(r objpatch.Reader) (objpatch.Patch, error) {
	patch := objpatch.Patch{}
	for {
		op, err := objpatch.ReadFrom(r)
		if err == io.EOF {
			return patch, nil
		}
		if err != nil {
			return nil, err
		}
		patch = append(patch, op)
	}
}

type opWriter struct {
	enc *msgpack.Encoder
}

func (w opWriter) WriteUint8(v uint8) error { return w.enc.EncodeUint8(v) }
func (w opWriter) WriteString(v string) error { return w.enc.EncodeString(v) }
func (w opWriter) WriteValue(v interface{}) error { return w.enc.Encode(v) }

type opReader struct {
	dec *msgpack.Decoder
}

func (r opReader) ReadUint8() (uint8, error) { return r.dec.DecodeUint8() }
func (r opReader) ReadString() (string, error) { return r.dec.DecodeString() }
func (r opReader) ReadValue() (interface{}, error) { return r.dec.DecodeInterface() }
