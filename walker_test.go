package objpatch_test

import (
	"fmt"
	"testing"

	"github.com/sanity-io/objpatch"
	"github.com/stretchr/testify/require"
)

type Stack []int

var Kinds = []struct {
	Value interface{}
	Kind  objpatch.NodeKind
}{
	{nil, objpatch.ScalarNode},
	{1.0, objpatch.ScalarNode},
	{"a", objpatch.ScalarNode},
	{(*Person)(nil), objpatch.ScalarNode},
	{objpatch.NewObject(), objpatch.MappingNode},
	{map[string]interface{}{}, objpatch.MappingNode},
	{Labels{}, objpatch.MappingNode},
	{&map[string]int{}, objpatch.MappingNode},
	{[]interface{}{}, objpatch.SequenceNode},
	{Stack{}, objpatch.SequenceNode},
	{[3]int{}, objpatch.SequenceNode},
	{Person{}, objpatch.RecordNode},
	{&Person{}, objpatch.RecordNode},
}

func TestKindOf(t *testing.T) {
	for idx, pair := range Kinds {
		t.Run(fmt.Sprintf("N%d", idx), func(t *testing.T) {
			require.Equal(t, pair.Kind, objpatch.KindOf(pair.Value))
		})
	}
}

func TestNodeKindString(t *testing.T) {
	require.Equal(t, "mapping", objpatch.MappingNode.String())
	require.Equal(t, "sequence", objpatch.SequenceNode.String())
	require.Equal(t, "record", objpatch.RecordNode.String())
	require.Equal(t, "scalar", objpatch.ScalarNode.String())
}

func TestWalkMixedGraph(t *testing.T) {
	type Inventory struct {
		Owner Person                   `json:"owner"`
		Items []map[string]interface{} `json:"items"`
		Meta  *objpatch.Object         `json:"meta"`
		Notes map[string][]string      `json:"notes"`
	}
	meta := objpatch.NewObject()
	meta.Set("version", 1.0)
	inv := &Inventory{
		Items: []map[string]interface{}{{"sku": "a1"}},
		Meta:  meta,
		Notes: map[string][]string{"todo": {"x"}},
	}

	err := objpatch.ApplyPatch(inv, objpatch.NewPatch().
		Replace("/owner/address/city", "Oslo").
		Add("/items/0/qty", 3.0).
		Add("/items/-", map[string]interface{}{"sku": "b2"}).
		Replace("/meta/version", 2.0).
		Add("/notes/todo/-", "y"))
	require.NoError(t, err)

	require.Equal(t, "Oslo", inv.Owner.Address.City)
	require.Equal(t, []map[string]interface{}{{"sku": "a1", "qty": 3.0}, {"sku": "b2"}}, inv.Items)
	version, _ := meta.Get("version")
	require.Equal(t, 2.0, version)
	require.Equal(t, []string{"x", "y"}, inv.Notes["todo"])
}

func TestWalkThroughScalar(t *testing.T) {
	doc := map[string]interface{}{"a": "text"}

	err := objpatch.ApplyPatch(doc, objpatch.NewPatch().Add("/a/b", 1.0))
	patchErr := requireKind(t, objpatch.TargetNotFound, err)
	require.Equal(t, "The target location specified by path segment 'b' was not found.", patchErr.Message)

	err = objpatch.ApplyPatch(doc, objpatch.NewPatch().Add("/a/b/c", 1.0))
	patchErr = requireKind(t, objpatch.TargetNotFound, err)
	require.Equal(t, "The 'add' operation at path '/a/b/c' could not be performed.", patchErr.Message)
}

func TestWalkNullIntermediate(t *testing.T) {
	doc := map[string]interface{}{"a": nil}

	err := objpatch.ApplyPatch(doc, objpatch.NewPatch().Add("/a/b", 1.0))
	patchErr := requireKind(t, objpatch.TargetNotFound, err)
	require.Equal(t, "The target location specified by path segment 'b' was not found.", patchErr.Message)
}

func TestWalkRoots(t *testing.T) {
	err := objpatch.ApplyPatch(nil, objpatch.NewPatch().Add("/a", 1.0))
	requireKind(t, objpatch.TargetNotFound, err)

	var nilMap map[string]interface{}
	err = objpatch.ApplyPatch(nilMap, objpatch.NewPatch().Add("/a", 1.0))
	requireKind(t, objpatch.TargetNotFound, err)

	err = objpatch.ApplyPatch((*Person)(nil), objpatch.NewPatch().Add("/Name", "Bob"))
	requireKind(t, objpatch.TargetNotFound, err)

	err = objpatch.ApplyPatch(5, objpatch.NewPatch().Add("/a", 1.0))
	requireKind(t, objpatch.TargetNotFound, err)

	var iface interface{} = map[string]interface{}{}
	err = objpatch.ApplyPatch(&iface, objpatch.NewPatch().Add("/a", 1.0))
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"a": 1.0}, iface)
}

func TestWalkEmptyPath(t *testing.T) {
	doc := map[string]interface{}{}

	for _, path := range []string{"", "/", "//"} {
		err := objpatch.ApplyPatch(doc, objpatch.NewPatch().Add(path, 1.0))
		patchErr := requireKind(t, objpatch.InvalidPath, err)
		require.Equal(t, fmt.Sprintf("The 'add' operation at path '%s' could not be performed.", path), patchErr.Message)
	}
	require.Empty(t, doc)
}
