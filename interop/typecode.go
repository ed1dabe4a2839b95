package interop

import "fmt"

// Kind identifies the shape of a value carried in an Any.
type Kind int

const (
	KindNull Kind = iota
	KindVoid
	KindShort
	KindLong
	KindUShort
	KindULong
	KindFloat
	KindDouble
	KindBoolean
	KindChar
	KindOctet
	KindAny
	KindTypeCode
	KindPrincipal
	KindObjRef
	KindStruct
	KindUnion
	KindEnum
	KindString
	KindSequence
	KindArray
	KindAlias
	KindExcept
	KindLongLong
	KindULongLong
	KindLongDouble
	KindWChar
	KindWString
	KindFixed
	KindValue
	KindValueBox
	KindNative
	KindAbstractInterface
	KindLocalInterface
)

var kindNames = [...]string{
	KindNull:              "tk_null",
	KindVoid:              "tk_void",
	KindShort:             "tk_short",
	KindLong:              "tk_long",
	KindUShort:            "tk_ushort",
	KindULong:             "tk_ulong",
	KindFloat:             "tk_float",
	KindDouble:            "tk_double",
	KindBoolean:           "tk_boolean",
	KindChar:              "tk_char",
	KindOctet:             "tk_octet",
	KindAny:               "tk_any",
	KindTypeCode:          "tk_TypeCode",
	KindPrincipal:         "tk_Principal",
	KindObjRef:            "tk_objref",
	KindStruct:            "tk_struct",
	KindUnion:             "tk_union",
	KindEnum:              "tk_enum",
	KindString:            "tk_string",
	KindSequence:          "tk_sequence",
	KindArray:             "tk_array",
	KindAlias:             "tk_alias",
	KindExcept:            "tk_except",
	KindLongLong:          "tk_longlong",
	KindULongLong:         "tk_ulonglong",
	KindLongDouble:        "tk_longdouble",
	KindWChar:             "tk_wchar",
	KindWString:           "tk_wstring",
	KindFixed:             "tk_fixed",
	KindValue:             "tk_value",
	KindValueBox:          "tk_value_box",
	KindNative:            "tk_native",
	KindAbstractInterface: "tk_abstract_interface",
	KindLocalInterface:    "tk_local_interface",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("tk(%d)", int(k))
}

// TypeCode describes the type of a value. ID and Name are only meaningful
// for named kinds (objref, struct, enum and the like).
type TypeCode struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// TypeCodeOf returns the anonymous type code for kind.
func TypeCodeOf(kind Kind) TypeCode {
	return TypeCode{Kind: kind}
}

// Named returns a type code carrying a repository id and a name.
func Named(kind Kind, id, name string) TypeCode {
	return TypeCode{Kind: kind, ID: id, Name: name}
}

func (tc TypeCode) String() string {
	if tc.ID == "" && tc.Name == "" {
		return tc.Kind.String()
	}
	return fmt.Sprintf("%s(%s %s)", tc.Kind, tc.ID, tc.Name)
}
