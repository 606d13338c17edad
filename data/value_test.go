package data

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromJSONRaw(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		raw  string
		want Value
	}{
		{`null`, Null()},
		{`true`, BoolValue(true)},
		{`3.5`, NumberValue(3.5)},
		{`"hi"`, StringValue("hi")},
		{`[1,2]`, StringValue("[1,2]")},
		{`{"a":1}`, StringValue(`{"a":1}`)},
	}

	for _, c := range cases {
		v, err := FromJSONRaw(json.RawMessage(c.raw))
		assert.NoError(err, c.raw)
		assert.True(c.want.Equal(v), "raw %s: got %v", c.raw, v)
	}
}

func TestFromJSONRawInvalid(t *testing.T) {
	assert := assert.New(t)

	_, err := FromJSONRaw(json.RawMessage(`{broken`))
	assert.Error(err)
}

func TestValueString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", Null().String())
	assert.Equal("true", BoolValue(true).String())
	assert.Equal("42", NumberValue(42).String())
	assert.Equal("1.25", NumberValue(1.25).String())
	assert.Equal("abc", StringValue("abc").String())
}
