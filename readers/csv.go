package readers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/data"
)

const utf8BOM = "\uFEFF"

// CSV reads delimited text where the first line names the columns and every
// following line is one record with positional values. The underlying
// csv.Reader enforces a uniform field count, so a ragged row surfaces here
// as a ParseError rather than being skipped.
func CSV(r io.Reader) (*data.Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &data.ParseError{Format: "csv", Err: fmt.Errorf("empty input")}
	}
	if err != nil {
		return nil, &data.ParseError{Format: "csv", Err: err}
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	columns := make([]data.Column, len(header))
	for i, name := range header {
		columns[i] = data.Column{Name: name}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &data.ParseError{Format: "csv", Err: err}
		}
		for i, cell := range row {
			columns[i].Values = append(columns[i].Values, inferCell(cell))
		}
	}

	t, err := data.NewTable(columns)
	if err != nil {
		return nil, &data.ParseError{Format: "csv", Err: err}
	}
	return t, nil
}

// inferCell types a raw cell the way a columnar CSV reader would: empty is
// null, then bool, then number, else string.
func inferCell(cell string) data.Value {
	if cell == "" {
		return data.Null()
	}
	switch cell {
	case "true", "True", "TRUE":
		return data.BoolValue(true)
	case "false", "False", "FALSE":
		return data.BoolValue(false)
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return data.NumberValue(f)
	}
	return data.StringValue(cell)
}
