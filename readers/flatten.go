package readers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/data"
)

// FlattenWarning records a designated field whose value could not be decoded
// as a JSON object. Flattening continues regardless; the warning only makes
// the skip observable.
type FlattenWarning struct {
	Field  string
	Reason string
}

func (w FlattenWarning) String() string {
	return fmt.Sprintf("field %q left unflattened: %s", w.Field, w.Reason)
}

// Flatten expands JSON-encoded sub-objects held in the named fields into
// top-level keys, one level deep. For each designated field, in the order
// given:
//
//   - a value that is not a string, or whose string does not decode as a
//     JSON object, leaves the record unchanged for that field and emits a
//     warning;
//   - each key of the decoded object becomes a top-level key, except that a
//     sub-object's keys are emitted as "{key}_{subkey}" (its own deeper
//     sub-objects are written as-is, as compact JSON text);
//   - an emitted key that already exists, including keys emitted by an
//     earlier designated field, overwrites the prior value;
//   - the designated field itself is removed after a successful decode.
//
// The input record is not modified.
func Flatten(rec *data.Record, nestedFields []string) (*data.Record, []FlattenWarning) {
	result := NewRecordCopy(rec)
	var warnings []FlattenWarning

	for _, field := range nestedFields {
		v, ok := rec.Get(field)
		if !ok {
			continue
		}
		if v.Kind != data.KindString {
			warnings = append(warnings, FlattenWarning{Field: field, Reason: "value is not a string"})
			continue
		}

		pairs, err := decodeObjectOrdered([]byte(v.Str))
		if err != nil {
			warnings = append(warnings, FlattenWarning{Field: field, Reason: err.Error()})
			continue
		}

		for _, p := range pairs {
			if isJSONObject(p.raw) {
				subPairs, err := decodeObjectOrdered(p.raw)
				if err != nil {
					warnings = append(warnings, FlattenWarning{Field: field, Reason: err.Error()})
					continue
				}
				for _, sp := range subPairs {
					sv, err := data.FromJSONRaw(sp.raw)
					if err != nil {
						warnings = append(warnings, FlattenWarning{Field: field, Reason: err.Error()})
						continue
					}
					result.Set(p.key+"_"+sp.key, sv)
				}
				continue
			}
			sv, err := data.FromJSONRaw(p.raw)
			if err != nil {
				warnings = append(warnings, FlattenWarning{Field: field, Reason: err.Error()})
				continue
			}
			result.Set(p.key, sv)
		}

		result.Delete(field)
	}

	return result, warnings
}

// NewRecordCopy clones a record, preserving key order.
func NewRecordCopy(rec *data.Record) *data.Record {
	out := data.NewRecord()
	for _, k := range rec.Keys() {
		v, _ := rec.Get(k)
		out.Set(k, v)
	}
	return out
}

type jsonPair struct {
	key string
	raw json.RawMessage
}

// decodeObjectOrdered decodes a single JSON object into key/raw-value pairs
// in the object's own key order, which encoding/json maps would lose.
func decodeObjectOrdered(b []byte) ([]jsonPair, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("not a JSON object")
	}

	var pairs []jsonPair
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		pairs = append(pairs, jsonPair{key: key, raw: raw})
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}

	// Trailing garbage after the object means the string was not a lone
	// JSON object.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON object")
	}
	return pairs, nil
}

func isJSONObject(raw json.RawMessage) bool {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return c == '{'
	}
	return false
}
