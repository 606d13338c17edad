package data

import "fmt"

// Column is a named sequence of nullable values, one entry per record.
type Column struct {
	Name   string
	Values []Value
}

// Table is the normalized columnar form every reader produces. All columns
// have the same length; a field missing from a record is null at that row.
type Table struct {
	Columns []Column

	index map[string]int
}

// NewTable builds a table from pre-aligned columns. All columns must share
// one length.
func NewTable(columns []Column) (*Table, error) {
	t := &Table{Columns: columns, index: make(map[string]int, len(columns))}
	rows := -1
	for i, c := range columns {
		if _, ok := t.index[c.Name]; ok {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		t.index[c.Name] = i
		if rows == -1 {
			rows = len(c.Values)
		} else if len(c.Values) != rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name, len(c.Values), rows)
		}
	}
	return t, nil
}

func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

func (t *Table) NumColumns() int { return len(t.Columns) }

// Column returns the named column, or nil when absent.
func (t *Table) Column(name string) *Column {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	return &t.Columns[i]
}

// BuildTable unions the key sets of all records into one column schema.
// Column order is first-seen across the record sequence; a record that lacks
// a key contributes null at its row. The whole record set and the whole
// table are held in memory at once, which caps dataset size at available
// memory.
func BuildTable(records []*Record) *Table {
	var names []string
	seen := make(map[string]struct{})
	for _, r := range records {
		for _, k := range r.Keys() {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				names = append(names, k)
			}
		}
	}

	columns := make([]Column, len(names))
	index := make(map[string]int, len(names))
	for i, name := range names {
		values := make([]Value, len(records))
		for j, r := range records {
			if v, ok := r.Get(name); ok {
				values[j] = v
			} else {
				values[j] = Null()
			}
		}
		columns[i] = Column{Name: name, Values: values}
		index[name] = i
	}

	return &Table{Columns: columns, index: index}
}
