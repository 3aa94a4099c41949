package objpatch_test

import (
	"reflect"
	"testing"

	"github.com/sanity-io/objpatch"
	"github.com/stretchr/testify/require"
)

type Custom struct {
	attrs map[string]interface{}
}

func TestConvertFunc(t *testing.T) {
	opts := objpatch.DefaultOptions.WithConvertFunc(func(value interface{}) interface{} {
		if value, ok := value.(Custom); ok {
			return value.attrs
		}
		return value
	})

	doc := map[string]interface{}{
		"a": "abcdefgh",
	}

	patch := objpatch.NewPatch().Add("/b", Custom{
		attrs: map[string]interface{}{
			"c": 123.0,
		},
	})

	err := opts.ApplyPatch(doc, patch)
	require.NoError(t, err)
	require.EqualValues(t, map[string]interface{}{
		"a": "abcdefgh",
		"b": map[string]interface{}{"c": 123.0},
	}, doc)
}

type Address struct {
	City string `json:"city"`
	Zip  int    `json:"zip"`
}

var (
	intType     = reflect.TypeOf(0)
	intPtrType  = reflect.TypeOf((*int)(nil))
	addressType = reflect.TypeOf(Address{})
)

func TestConvertTo(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		result := objpatch.ConvertTo(5, intType)
		require.True(t, result.CanBeConverted)
		require.Equal(t, 5, result.ConvertedInstance)
	})

	t.Run("identity does not copy", func(t *testing.T) {
		src := []int{1, 2}
		result := objpatch.ConvertTo(src, reflect.TypeOf(src))
		require.True(t, result.CanBeConverted)
		result.ConvertedInstance.([]int)[0] = 9
		require.Equal(t, 9, src[0])
	})

	t.Run("number", func(t *testing.T) {
		result := objpatch.ConvertTo(3.0, intType)
		require.True(t, result.CanBeConverted)
		require.Equal(t, 3, result.ConvertedInstance)
	})

	t.Run("fraction into int", func(t *testing.T) {
		result := objpatch.ConvertTo(3.5, intType)
		require.False(t, result.CanBeConverted)
		require.Nil(t, result.ConvertedInstance)
	})

	t.Run("string into int", func(t *testing.T) {
		require.False(t, objpatch.ConvertTo("abc", intType).CanBeConverted)
	})

	t.Run("null into value type", func(t *testing.T) {
		require.False(t, objpatch.ConvertTo(nil, intType).CanBeConverted)
	})

	t.Run("null into pointer", func(t *testing.T) {
		result := objpatch.ConvertTo(nil, intPtrType)
		require.True(t, result.CanBeConverted)
		require.Nil(t, result.ConvertedInstance)
	})

	t.Run("structured", func(t *testing.T) {
		result := objpatch.ConvertTo(map[string]interface{}{"city": "Oslo", "zip": 150.0}, addressType)
		require.True(t, result.CanBeConverted)
		require.Equal(t, Address{City: "Oslo", Zip: 150}, result.ConvertedInstance)
	})

	t.Run("structured mismatch", func(t *testing.T) {
		result := objpatch.ConvertTo(map[string]interface{}{"zip": "north"}, addressType)
		require.False(t, result.CanBeConverted)
	})

	t.Run("object into map", func(t *testing.T) {
		obj := objpatch.NewObject()
		obj.Set("a", 1.0)
		result := objpatch.ConvertTo(obj, reflect.TypeOf(map[string]float64{}))
		require.True(t, result.CanBeConverted)
		require.Equal(t, map[string]float64{"a": 1}, result.ConvertedInstance)
	})

	t.Run("unencodable", func(t *testing.T) {
		result := objpatch.ConvertTo(make(chan int), intType)
		require.False(t, result.CanBeConverted)
	})
}
