package data

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind enumerates the scalar shapes a cell can hold. Columns stay
// heterogeneous in memory; the serializer decides the column type.
type Kind int8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	}
	return fmt.Sprintf("kind(%d)", int8(k))
}

// Value is a nullable tagged scalar. The zero value is null.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	Str    string
}

func Null() Value            { return Value{Kind: KindNull} }
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }
func NumberValue(f float64) Value {
	return Value{Kind: KindNumber, Number: f}
}
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

// String renders the value for promotion into a string column.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	default:
		return v.Str
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool == o.Bool
	case KindNumber:
		return v.Number == o.Number
	default:
		return v.Str == o.Str
	}
}

// FromJSONRaw converts a raw JSON value into a scalar. Arrays and objects
// have no scalar representation, so they keep their compact JSON text.
func FromJSONRaw(raw json.RawMessage) (Value, error) {
	var any interface{}
	if err := json.Unmarshal(raw, &any); err != nil {
		return Null(), err
	}
	switch t := any.(type) {
	case nil:
		return Null(), nil
	case bool:
		return BoolValue(t), nil
	case float64:
		return NumberValue(t), nil
	case string:
		return StringValue(t), nil
	default:
		compact, err := json.Marshal(any)
		if err != nil {
			return Null(), err
		}
		return StringValue(string(compact)), nil
	}
}
