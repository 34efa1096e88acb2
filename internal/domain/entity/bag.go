package entity

import (
	"fmt"

	json "github.com/goccy/go-json"
)

type ValueKind int

const (
	KindString ValueKind = iota + 1
	KindNumber
	KindBool
)

// Value is a single primitive stored in a Bag.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
}

func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Num: n} }
func BoolValue(b bool) Value      { return Value{Kind: KindBool, Bool: b} }

// Interface returns the underlying Go value.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, ok := ValueOf(raw)
	if !ok {
		return fmt.Errorf("unsupported bag value %s", string(data))
	}
	*v = parsed
	return nil
}

// ValueOf converts a decoded document value. Only strings, numbers and booleans are accepted.
func ValueOf(raw interface{}) (Value, bool) {
	switch t := raw.(type) {
	case string:
		return StringValue(t), true
	case bool:
		return BoolValue(t), true
	case float64:
		return NumberValue(t), true
	case float32:
		return NumberValue(float64(t)), true
	case int:
		return NumberValue(float64(t)), true
	case int32:
		return NumberValue(float64(t)), true
	case int64:
		return NumberValue(float64(t)), true
	}
	return Value{}, false
}

// Bag is an open-ended key/value mapping restricted to primitive values.
type Bag map[string]Value

// BagFrom keeps the primitive entries of raw and drops the rest.
func BagFrom(raw map[string]interface{}) Bag {
	bag := make(Bag, len(raw))
	for k, v := range raw {
		if value, ok := ValueOf(v); ok {
			bag[k] = value
		}
	}
	return bag
}

// Raw converts the bag back into a document map.
func (b Bag) Raw() map[string]interface{} {
	out := make(map[string]interface{}, len(b))
	for k, v := range b {
		out[k] = v.Interface()
	}
	return out
}
