// Package parquet serializes a columnar table into a self-describing,
// in-memory parquet buffer and back. The buffer embeds the column names and
// types, which is what lets the warehouse auto-infer the destination schema.
package parquet

import (
	"bytes"
	"context"
	"fmt"

	"github.com/apache/arrow/go/v10/arrow"
	"github.com/apache/arrow/go/v10/arrow/array"
	"github.com/apache/arrow/go/v10/arrow/memory"
	pq "github.com/apache/arrow/go/v10/parquet"
	"github.com/apache/arrow/go/v10/parquet/file"
	"github.com/apache/arrow/go/v10/parquet/pqarrow"

	"github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/data"
)

const writeChunkSize = 4096

// FromTable encodes a table into an in-memory parquet buffer. The returned
// reader is positioned at the start. Column types come from the values a
// column actually holds; see columnType for the promotion rules.
func FromTable(t *data.Table) (*bytes.Reader, error) {
	if t.NumColumns() == 0 {
		return nil, fmt.Errorf("cannot serialize a table with no columns")
	}

	mem := memory.NewGoAllocator()
	fields := make([]arrow.Field, t.NumColumns())
	chunks := make([]arrow.Array, t.NumColumns())

	for i, col := range t.Columns {
		typ := columnType(col)
		fields[i] = arrow.Field{Name: col.Name, Type: typ, Nullable: true}

		switch typ {
		case arrow.FixedWidthTypes.Boolean:
			b := array.NewBooleanBuilder(mem)
			for _, v := range col.Values {
				if v.IsNull() {
					b.AppendNull()
				} else {
					b.Append(v.Bool)
				}
			}
			chunks[i] = b.NewArray()
			b.Release()
		case arrow.PrimitiveTypes.Float64:
			b := array.NewFloat64Builder(mem)
			for _, v := range col.Values {
				if v.IsNull() {
					b.AppendNull()
				} else {
					b.Append(v.Number)
				}
			}
			chunks[i] = b.NewArray()
			b.Release()
		default:
			b := array.NewStringBuilder(mem)
			for _, v := range col.Values {
				if v.IsNull() {
					b.AppendNull()
				} else {
					b.Append(v.String())
				}
			}
			chunks[i] = b.NewArray()
			b.Release()
		}
	}

	schema := arrow.NewSchema(fields, nil)
	rec := array.NewRecord(schema, chunks, int64(t.NumRows()))
	defer rec.Release()
	tbl := array.NewTableFromRecords(schema, []arrow.Record{rec})
	defer tbl.Release()
	for _, c := range chunks {
		defer c.Release()
	}

	var buf bytes.Buffer
	props := pq.NewWriterProperties(pq.WithDictionaryDefault(false))
	arrProps := pqarrow.DefaultWriterProps()
	if err := pqarrow.WriteTable(tbl, &buf, writeChunkSize, props, arrProps); err != nil {
		return nil, err
	}

	return bytes.NewReader(buf.Bytes()), nil
}

// ToTable decodes a parquet buffer produced by FromTable. Column names, row
// count, value kinds and null positions round-trip exactly.
func ToTable(r *bytes.Reader) (*data.Table, error) {
	pf, err := file.NewParquetReader(r)
	if err != nil {
		return nil, err
	}
	defer pf.Close()

	mem := memory.NewGoAllocator()
	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, err
	}
	tbl, err := reader.ReadTable(context.Background())
	if err != nil {
		return nil, err
	}
	defer tbl.Release()

	columns := make([]data.Column, tbl.NumCols())
	for i := 0; i < int(tbl.NumCols()); i++ {
		col := tbl.Column(i)
		out := data.Column{Name: tbl.Schema().Field(i).Name}
		for _, chunk := range col.Data().Chunks() {
			values, err := chunkValues(chunk)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", out.Name, err)
			}
			out.Values = append(out.Values, values...)
		}
		columns[i] = out
	}

	return data.NewTable(columns)
}

func chunkValues(chunk arrow.Array) ([]data.Value, error) {
	values := make([]data.Value, chunk.Len())
	switch arr := chunk.(type) {
	case *array.Boolean:
		for i := range values {
			if arr.IsNull(i) {
				values[i] = data.Null()
			} else {
				values[i] = data.BoolValue(arr.Value(i))
			}
		}
	case *array.Float64:
		for i := range values {
			if arr.IsNull(i) {
				values[i] = data.Null()
			} else {
				values[i] = data.NumberValue(arr.Value(i))
			}
		}
	case *array.Int64:
		for i := range values {
			if arr.IsNull(i) {
				values[i] = data.Null()
			} else {
				values[i] = data.NumberValue(float64(arr.Value(i)))
			}
		}
	case *array.String:
		for i := range values {
			if arr.IsNull(i) {
				values[i] = data.Null()
			} else {
				values[i] = data.StringValue(arr.Value(i))
			}
		}
	default:
		return nil, fmt.Errorf("unsupported arrow array type %T", chunk)
	}
	return values, nil
}

// columnType picks the arrow type for a column. A column whose non-null
// values all share one kind keeps that kind; mixed kinds promote to string,
// as does a column with no values or only nulls.
func columnType(col data.Column) arrow.DataType {
	kind := data.KindNull
	for _, v := range col.Values {
		if v.IsNull() {
			continue
		}
		if kind == data.KindNull {
			kind = v.Kind
			continue
		}
		if v.Kind != kind {
			return arrow.BinaryTypes.String
		}
	}

	switch kind {
	case data.KindBool:
		return arrow.FixedWidthTypes.Boolean
	case data.KindNumber:
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}
