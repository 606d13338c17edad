package data

// Record is a field-name-to-value mapping that remembers insertion order.
// JSON object key order drives both flattening collisions and the first-seen
// column order of a built table, so a plain map is not enough.
type Record struct {
	keys []string
	vals map[string]Value
}

func NewRecord() *Record {
	return &Record{vals: make(map[string]Value)}
}

// Set stores v under k. A new key keeps its insertion position; setting an
// existing key overwrites the value in place (last write wins).
func (r *Record) Set(k string, v Value) {
	if _, ok := r.vals[k]; !ok {
		r.keys = append(r.keys, k)
	}
	r.vals[k] = v
}

func (r *Record) Get(k string) (Value, bool) {
	v, ok := r.vals[k]
	return v, ok
}

func (r *Record) Delete(k string) {
	if _, ok := r.vals[k]; !ok {
		return
	}
	delete(r.vals, k)
	for i, key := range r.keys {
		if key == k {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the field names in insertion order. The slice is shared;
// callers must not mutate it.
func (r *Record) Keys() []string { return r.keys }

func (r *Record) Len() int { return len(r.keys) }
