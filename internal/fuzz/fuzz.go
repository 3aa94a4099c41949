package fuzz

import (
	"bytes"
	"encoding/json"

	"github.com/sanity-io/objpatch"
)

// Fuzz decodes a document followed by a patch and applies the patch with an
// error sink. Applying must never panic, and every reported error must carry
// a kind and a message.
func Fuzz(data []byte) int {
	dec := json.NewDecoder(bytes.NewReader(data))
	doc := objpatch.NewObject()
	var rawPatch json.RawMessage

	err := dec.Decode(doc)
	if err != nil {
		return -1
	}

	err = dec.Decode(&rawPatch)
	if err != nil {
		return -1
	}

	patch, err := objpatch.DecodePatch(rawPatch)
	if err != nil {
		return -1
	}

	var log objpatch.ErrorLog
	opts := objpatch.DefaultOptions.WithErrorSink(log.Add)
	if err := opts.ApplyPatch(doc, patch); err != nil {
		panic(err)
	}

	for _, e := range log.Errors() {
		if e.Kind == 0 || e.Message == "" {
			panic("incomplete patch error")
		}
	}

	if _, err := json.Marshal(doc); err != nil {
		panic(err)
	}

	if log.Len() > 0 {
		return 0
	}
	return 1
}
