package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(pairs ...interface{}) *Record {
	r := NewRecord()
	for i := 0; i < len(pairs); i += 2 {
		r.Set(pairs[i].(string), pairs[i+1].(Value))
	}
	return r
}

func TestBuildTableUnion(t *testing.T) {
	assert := assert.New(t)

	records := []*Record{
		record("a", NumberValue(1)),
		record("b", NumberValue(2)),
		record("a", NumberValue(3), "b", NumberValue(4)),
	}

	table := BuildTable(records)

	require.Equal(t, 2, table.NumColumns())
	assert.Equal(3, table.NumRows())
	assert.Equal("a", table.Columns[0].Name)
	assert.Equal("b", table.Columns[1].Name)

	a := table.Column("a")
	require.NotNil(t, a)
	assert.Equal([]Value{NumberValue(1), Null(), NumberValue(3)}, a.Values)

	b := table.Column("b")
	require.NotNil(t, b)
	assert.Equal([]Value{Null(), NumberValue(2), NumberValue(4)}, b.Values)
}

func TestBuildTableColumnOrderIsFirstSeen(t *testing.T) {
	assert := assert.New(t)

	records := []*Record{
		record("z", StringValue("x"), "m", StringValue("y")),
		record("a", StringValue("w"), "z", StringValue("v")),
	}

	table := BuildTable(records)

	var names []string
	for _, c := range table.Columns {
		names = append(names, c.Name)
	}
	assert.Equal([]string{"z", "m", "a"}, names)
}

func TestBuildTableEmpty(t *testing.T) {
	assert := assert.New(t)

	table := BuildTable(nil)
	assert.Equal(0, table.NumColumns())
	assert.Equal(0, table.NumRows())
}

func TestNewTableRejectsRaggedColumns(t *testing.T) {
	assert := assert.New(t)

	_, err := NewTable([]Column{
		{Name: "a", Values: []Value{Null(), Null()}},
		{Name: "b", Values: []Value{Null()}},
	})
	assert.Error(err)
}

func TestNewTableRejectsDuplicateNames(t *testing.T) {
	assert := assert.New(t)

	_, err := NewTable([]Column{
		{Name: "a"},
		{Name: "a"},
	})
	assert.Error(err)
}

func TestRecordSetOverwritesInPlace(t *testing.T) {
	assert := assert.New(t)

	r := NewRecord()
	r.Set("x", NumberValue(1))
	r.Set("y", NumberValue(2))
	r.Set("x", NumberValue(3))

	assert.Equal([]string{"x", "y"}, r.Keys())
	v, ok := r.Get("x")
	assert.True(ok)
	assert.Equal(NumberValue(3), v)
}

func TestRecordDelete(t *testing.T) {
	assert := assert.New(t)

	r := NewRecord()
	r.Set("x", NumberValue(1))
	r.Set("y", NumberValue(2))
	r.Delete("x")

	assert.Equal([]string{"y"}, r.Keys())
	_, ok := r.Get("x")
	assert.False(ok)
}
