package board

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/clubboard/core"
)

// ToJSON is the portable snapshot of doc.
func ToJSON(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshalling document")
	}
	return data, nil
}

// documentShape lists the top-level members a document must carry and the JSON container each one must be.
var documentShape = []struct {
	key  string
	open byte
}{
	{"meta", '{'},
	{"students", '['},
	{"objectives", '['},
	{"submissions", '['},
}

// FromJSON decodes a snapshot, checking its top-level shape first.
// Any failure is a *core.DeserializationError.
func FromJSON(data []byte) (Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return Document{}, core.NewDeserializationError(err)
	}
	for _, member := range documentShape {
		raw, ok := top[member.key]
		if !ok {
			return Document{}, core.NewDeserializationError(fmt.Errorf("missing %q", member.key))
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != member.open {
			return Document{}, core.NewDeserializationError(fmt.Errorf("%q has the wrong type", member.key))
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, core.NewDeserializationError(err)
	}
	return doc.clone(), nil
}
