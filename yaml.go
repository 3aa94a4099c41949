package objpatch

import (
	"encoding/json"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// DecodeYAMLPatch parses a patch document written in YAML.
//
//	- op: replace
//	  path: /name
//	  value: James
func DecodeYAMLPatch(data []byte) (Patch, error) {
	j, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, errors.Wrap(err, "converting yaml patch document")
	}
	return DecodePatch(j)
}

func EncodeYAMLPatch(patch Patch) ([]byte, error) {
	j, err := json.Marshal(patch)
	if err != nil {
		return nil, err
	}
	out, err := yaml.JSONToYAML(j)
	if err != nil {
		return nil, errors.Wrap(err, "converting patch document to yaml")
	}
	return out, nil
}
