package interop

import (
	"fmt"

	"github.com/casualjim/eventchannel/events"
)

// Any is a value tagged with its type code. Values are built with the typed
// constructors and read back with the matching extractor; reading with the
// wrong one fails with events.ErrTypeMismatch.
type Any struct {
	tc    TypeCode
	value any
}

func Null() Any { return Any{tc: TypeCodeOf(KindNull)} }

func Bool(v bool) Any { return Any{tc: TypeCodeOf(KindBoolean), value: v} }

func Char(v byte) Any { return Any{tc: TypeCodeOf(KindChar), value: v} }

func WChar(v rune) Any { return Any{tc: TypeCodeOf(KindWChar), value: v} }

func Octet(v byte) Any { return Any{tc: TypeCodeOf(KindOctet), value: v} }

func Short(v int16) Any { return Any{tc: TypeCodeOf(KindShort), value: v} }

func UShort(v uint16) Any { return Any{tc: TypeCodeOf(KindUShort), value: v} }

func Long(v int32) Any { return Any{tc: TypeCodeOf(KindLong), value: v} }

func ULong(v uint32) Any { return Any{tc: TypeCodeOf(KindULong), value: v} }

func LongLong(v int64) Any { return Any{tc: TypeCodeOf(KindLongLong), value: v} }

func ULongLong(v uint64) Any { return Any{tc: TypeCodeOf(KindULongLong), value: v} }

func Float(v float32) Any { return Any{tc: TypeCodeOf(KindFloat), value: v} }

func Double(v float64) Any { return Any{tc: TypeCodeOf(KindDouble), value: v} }

func String(v string) Any { return Any{tc: TypeCodeOf(KindString), value: v} }

func WString(v string) Any { return Any{tc: TypeCodeOf(KindWString), value: v} }

// Nested wraps another Any.
func Nested(v Any) Any { return Any{tc: TypeCodeOf(KindAny), value: v} }

// OfTypeCode carries a type code as the value.
func OfTypeCode(v TypeCode) Any { return Any{tc: TypeCodeOf(KindTypeCode), value: v} }

// Object carries an arbitrary value under an explicit type code, typically
// an objref or struct code naming the Go type.
func Object(v any, tc TypeCode) Any { return Any{tc: tc, value: v} }

func (a Any) Type() TypeCode { return a.tc }

func (a Any) Kind() Kind { return a.tc.Kind }

// Value returns the carried value as is.
func (a Any) Value() any { return a.value }

func (a Any) IsNull() bool { return a.tc.Kind == KindNull }

func (a Any) String() string {
	return fmt.Sprintf("Any[%s, %v]", a.tc, a.value)
}

func (a Any) AsBool() (bool, error) { return extract[bool](a, KindBoolean) }

func (a Any) AsChar() (byte, error) { return extract[byte](a, KindChar) }

func (a Any) AsWChar() (rune, error) { return extract[rune](a, KindWChar) }

func (a Any) AsOctet() (byte, error) { return extract[byte](a, KindOctet) }

func (a Any) AsShort() (int16, error) { return extract[int16](a, KindShort) }

func (a Any) AsUShort() (uint16, error) { return extract[uint16](a, KindUShort) }

func (a Any) AsLong() (int32, error) { return extract[int32](a, KindLong) }

func (a Any) AsULong() (uint32, error) { return extract[uint32](a, KindULong) }

func (a Any) AsLongLong() (int64, error) { return extract[int64](a, KindLongLong) }

func (a Any) AsULongLong() (uint64, error) { return extract[uint64](a, KindULongLong) }

func (a Any) AsFloat() (float32, error) { return extract[float32](a, KindFloat) }

func (a Any) AsDouble() (float64, error) { return extract[float64](a, KindDouble) }

func (a Any) AsString() (string, error) { return extract[string](a, KindString) }

func (a Any) AsWString() (string, error) { return extract[string](a, KindWString) }

func (a Any) AsNested() (Any, error) { return extract[Any](a, KindAny) }

func (a Any) AsTypeCode() (TypeCode, error) { return extract[TypeCode](a, KindTypeCode) }

// AsObject returns the value when the Any carries exactly tc.
func (a Any) AsObject(tc TypeCode) (any, error) {
	if a.tc != tc {
		return nil, mismatch(tc, a.tc)
	}
	return a.value, nil
}

func extract[V any](a Any, kind Kind) (V, error) {
	var zero V
	if a.tc.Kind != kind {
		return zero, mismatch(TypeCodeOf(kind), a.tc)
	}
	v, ok := a.value.(V)
	if !ok {
		return zero, fmt.Errorf("%w: %s carries %T", events.ErrTypeMismatch, kind, a.value)
	}
	return v, nil
}

func mismatch(want, have TypeCode) error {
	return fmt.Errorf("%w: want %s, have %s", events.ErrTypeMismatch, want, have)
}

// ToValue unwraps an Any into a plain Go value. Null becomes nil and nested
// Anys are unwrapped recursively.
func ToValue(a Any) any {
	switch a.tc.Kind {
	case KindNull:
		return nil
	case KindAny:
		if inner, ok := a.value.(Any); ok {
			return ToValue(inner)
		}
	}
	return a.value
}

// FromValue picks the constructor matching v's Go type. int32 maps to Long,
// so runes come back as longs; use WChar explicitly for characters. Types
// without a matching kind are carried as their fmt representation in a
// string.
func FromValue(v any) Any {
	switch v := v.(type) {
	case nil:
		return Null()
	case Any:
		return Nested(v)
	case TypeCode:
		return OfTypeCode(v)
	case bool:
		return Bool(v)
	case byte:
		return Octet(v)
	case int32:
		return Long(v)
	case int16:
		return Short(v)
	case uint16:
		return UShort(v)
	case uint32:
		return ULong(v)
	case int:
		return LongLong(int64(v))
	case int64:
		return LongLong(v)
	case uint64:
		return ULongLong(v)
	case float32:
		return Float(v)
	case float64:
		return Double(v)
	case string:
		return String(v)
	case fmt.Stringer:
		return String(v.String())
	default:
		return String(fmt.Sprint(v))
	}
}
