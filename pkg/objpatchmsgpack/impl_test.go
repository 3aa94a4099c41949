package objpatchmsgpack_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/sanity-io/objpatch"
	"github.com/sanity-io/objpatch/pkg/objpatchmsgpack"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v4"
)

func TestRoundtrip(t *testing.T) {
	patch := objpatch.NewPatch().
		Add("/name", "abc").
		Remove("/age").
		Replace("/tags/0", "x").
		Move("/a", "/b").
		Copy("/b", "/c").
		Test("/name", "abc")

	b, err := objpatchmsgpack.Marshal(patch)
	require.NoError(t, err)

	decodedPatch, err := objpatchmsgpack.Unmarshal(b)
	require.NoError(t, err)
	require.EqualValues(t, patch, decodedPatch)
}

func TestRoundtripStructuredValue(t *testing.T) {
	patch := objpatch.NewPatch().Add("/address", map[string]interface{}{
		"city": "Oslo",
		"zip":  1234,
	})

	b, err := objpatchmsgpack.Marshal(patch)
	require.NoError(t, err)

	decodedPatch, err := objpatchmsgpack.Unmarshal(b)
	require.NoError(t, err)
	require.Len(t, decodedPatch, 1)
	require.Equal(t, objpatch.OpAdd, decodedPatch[0].Op)
	require.True(t, objpatch.Equal(patch[0].Value, decodedPatch[0].Value))
}

func TestSize(t *testing.T) {
	patch := objpatch.NewPatch().Remove("/a")

	b, err := objpatchmsgpack.Marshal(patch)
	require.NoError(t, err)

	// two bytes for the op code, three for the path
	require.Len(t, b, 5)
}

func TestEmptyPatch(t *testing.T) {
	patch := objpatch.Patch{}
	b, err := objpatchmsgpack.Marshal(patch)
	require.NoError(t, err)
	require.NotNil(t, b)
}

func TestStream(t *testing.T) {
	var buf bytes.Buffer
	enc := objpatchmsgpack.NewEncoder(&buf)
	require.NoError(t, enc.Encode(objpatch.Operation{Op: objpatch.OpAdd, Path: "/name", Value: "abc"}))
	require.NoError(t, enc.EncodePatch(objpatch.NewPatch().Remove("/age").Move("/a", "/b")))

	dec := objpatchmsgpack.NewDecoder(&buf)
	op, err := dec.Decode()
	require.NoError(t, err)
	require.Equal(t, objpatch.Operation{Op: objpatch.OpAdd, Path: "/name", Value: "abc"}, op)

	rest, err := dec.DecodePatch()
	require.NoError(t, err)
	require.Equal(t, objpatch.NewPatch().Remove("/age").Move("/a", "/b"), rest)

	_, err = dec.Decode()
	require.Equal(t, io.EOF, err)
}

func TestEmbeddedPatch(t *testing.T) {
	patch := objpatchmsgpack.MsgpackPatch(objpatch.NewPatch().Replace("/title", "x").Copy("/a", "/b"))

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	require.NoError(t, enc.Encode("doc-1"))
	require.NoError(t, enc.Encode(&patch))

	var id string
	var decoded objpatchmsgpack.MsgpackPatch
	dec := msgpack.NewDecoder(&buf)
	require.NoError(t, dec.Decode(&id))
	require.NoError(t, dec.Decode(&decoded))
	require.Equal(t, "doc-1", id)
	require.Equal(t, patch, decoded)
}
