package readers

import (
	"encoding/json"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/data"
)

// JSONL returns a reader for inputs holding one JSON array of objects (the
// upstream export calls these files "jsonl" even though they are a single
// array, not one object per line). Each element is decoded in its own key
// order, passed through Flatten with the given designated fields, and the
// flattened records are union-built into a table.
func JSONL(nestedFields ...string) func(io.Reader) (*data.Table, error) {
	return func(r io.Reader) (*data.Table, error) {
		raw, err := io.ReadAll(r)
		if err != nil {
			return nil, &data.ParseError{Format: "jsonl", Err: err}
		}

		var elements []json.RawMessage
		if err := json.Unmarshal(raw, &elements); err != nil {
			return nil, &data.ParseError{Format: "jsonl", Err: fmt.Errorf("top-level value is not a JSON array: %w", err)}
		}

		records := make([]*data.Record, 0, len(elements))
		for i, element := range elements {
			pairs, err := decodeObjectOrdered(element)
			if err != nil {
				return nil, &data.ParseError{Format: "jsonl", Err: fmt.Errorf("element %d: %w", i, err)}
			}
			rec := data.NewRecord()
			for _, p := range pairs {
				v, err := data.FromJSONRaw(p.raw)
				if err != nil {
					return nil, &data.ParseError{Format: "jsonl", Err: fmt.Errorf("element %d, key %q: %w", i, p.key, err)}
				}
				rec.Set(p.key, v)
			}

			flattened, warnings := Flatten(rec, nestedFields)
			for _, w := range warnings {
				log.WithFields(log.Fields{
					"element": i,
					"field":   w.Field,
					"reason":  w.Reason,
				}).Warnln("skipped flattening a nested field")
			}
			records = append(records, flattened)
		}

		return data.BuildTable(records), nil
	}
}
