package objpatch

import (
	"encoding/json"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// Equal reports whether a and b have the same JSON structure. Numbers are
// compared by value regardless of their Go type, and mappings regardless of
// their key order or representation.
func Equal(a, b interface{}) bool {
	na, okA := normalize(a)
	nb, okB := normalize(b)
	if !okA || !okB {
		return reflect.DeepEqual(a, b)
	}
	return cmp.Equal(na, nb)
}

func diff(a, b interface{}) string {
	na, okA := normalize(a)
	nb, okB := normalize(b)
	if !okA || !okB {
		return ""
	}
	return cmp.Diff(na, nb)
}

func normalize(value interface{}) (interface{}, bool) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, false
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	return out, true
}
