package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/sanity-io/objpatch"
	"github.com/sanity-io/objpatch/pkg/objpatchmsgpack"
	"github.com/scott-cotton/cli"
)

const (
	formatJSON    = "json"
	formatYAML    = "yaml"
	formatMsgpack = "msgpack"
)

func parseFormat(s string) (string, error) {
	switch s {
	case "", "j", formatJSON:
		return formatJSON, nil
	case "y", formatYAML:
		return formatYAML, nil
	case "m", formatMsgpack:
		return formatMsgpack, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", cli.ErrUsage, s)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return data, nil
}

func decodePatch(data []byte, format string) (objpatch.Patch, error) {
	switch format {
	case formatYAML:
		return objpatch.DecodeYAMLPatch(data)
	case formatMsgpack:
		return objpatchmsgpack.Unmarshal(data)
	}
	return objpatch.DecodePatch(data)
}

func encodePatch(patch objpatch.Patch, format string) ([]byte, error) {
	switch format {
	case formatYAML:
		return objpatch.EncodeYAMLPatch(patch)
	case formatMsgpack:
		return objpatchmsgpack.Marshal(patch)
	}
	data, err := json.MarshalIndent(patch, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// decodeDocument reads a document into an ordered object so that the output
// keeps the input's key order.
func decodeDocument(data []byte, format string, caseInsensitive bool) (*objpatch.Object, error) {
	if format == formatYAML {
		j, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, errors.Wrap(err, "converting yaml document")
		}
		data = j
	}
	doc := objpatch.NewObject()
	if caseInsensitive {
		doc = objpatch.NewCaseInsensitiveObject()
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errors.Wrap(err, "decoding document")
	}
	return doc, nil
}

func encodeDocument(doc *objpatch.Object, format string) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	if format == formatYAML {
		return yaml.JSONToYAML(data)
	}
	return append(data, '\n'), nil
}
