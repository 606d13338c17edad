package readers

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/data"
)

func TestJSONLReadsArrayOfObjects(t *testing.T) {
	assert := assert.New(t)

	input := `[
		{"id": 1, "name": "first"},
		{"id": 2, "extra": true}
	]`

	table, err := JSONL()(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(3, table.NumColumns())
	assert.Equal(2, table.NumRows())

	id := table.Column("id")
	require.NotNil(t, id)
	assert.Equal([]data.Value{data.NumberValue(1), data.NumberValue(2)}, id.Values)

	name := table.Column("name")
	require.NotNil(t, name)
	assert.Equal([]data.Value{data.StringValue("first"), data.Null()}, name.Values)

	extra := table.Column("extra")
	require.NotNil(t, extra)
	assert.Equal([]data.Value{data.Null(), data.BoolValue(true)}, extra.Values)
}

func TestJSONLFlattensNestedFields(t *testing.T) {
	assert := assert.New(t)

	input := `[{"id": 1, "LOG": "{\"level\":\"info\",\"ctx\":{\"ip\":\"1.2.3.4\"}}"}]`

	table, err := JSONL("LOG", "GEO")(strings.NewReader(input))
	require.NoError(t, err)

	assert.Nil(table.Column("LOG"))
	assert.Equal(data.StringValue("info"), table.Column("level").Values[0])
	assert.Equal(data.StringValue("1.2.3.4"), table.Column("ctx_ip").Values[0])
	assert.Equal(data.NumberValue(1), table.Column("id").Values[0])
}

func TestJSONLKeepsUnflattenableFields(t *testing.T) {
	assert := assert.New(t)

	input := `[{"id": 1, "LOG": "not-json"}]`

	table, err := JSONL("LOG")(strings.NewReader(input))
	require.NoError(t, err)

	logCol := table.Column("LOG")
	require.NotNil(t, logCol)
	assert.Equal(data.StringValue("not-json"), logCol.Values[0])
}

func TestJSONLNotAnArrayIsParseError(t *testing.T) {
	assert := assert.New(t)

	_, err := JSONL()(strings.NewReader(`{"id": 1}`))

	var parseErr *data.ParseError
	assert.True(errors.As(err, &parseErr))
}

func TestJSONLNonObjectElementIsParseError(t *testing.T) {
	assert := assert.New(t)

	_, err := JSONL()(strings.NewReader(`[{"id": 1}, 42]`))

	var parseErr *data.ParseError
	assert.True(errors.As(err, &parseErr))
}

func TestJSONLEmptyArray(t *testing.T) {
	assert := assert.New(t)

	table, err := JSONL()(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Equal(0, table.NumColumns())
	assert.Equal(0, table.NumRows())
}
