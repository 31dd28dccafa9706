// Package types implements the Lift data type model (spec component A/F):
// the DataType algebra used throughout the syntax tree, its machine
// representation (integer register, float register, or pointer), and the
// single-octet type tag used at the runtime ABI boundary.
//
// This package owns no symbol table or scope knowledge; alias resolution
// here is parameterized over a lookup function so that both the semantic
// pass and the code generator can supply their own scope-walking lookup
// without types importing symtab.
package types

import "fmt"

// Kind enumerates the shapes a DataType can take.
type Kind int

const (
	KindUnsolved Kind = iota
	KindInt
	KindFlt
	KindBool
	KindStr
	KindList
	KindMap
	KindRange
	KindSet
	KindOptional
	KindEnum
	KindStruct
	KindTypeRef
)

func (k Kind) String() string {
	switch k {
	case KindUnsolved:
		return "Unsolved"
	case KindInt:
		return "Int"
	case KindFlt:
		return "Flt"
	case KindBool:
		return "Bool"
	case KindStr:
		return "Str"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	case KindRange:
		return "Range"
	case KindSet:
		return "Set"
	case KindOptional:
		return "Optional"
	case KindEnum:
		return "Enum"
	case KindStruct:
		return "Struct"
	case KindTypeRef:
		return "TypeRef"
	default:
		return "?"
	}
}

// StructField describes one field of a Struct DataType.
type StructField struct {
	Name string
	Type *DataType
}

// DataType is a tagged type representation. Only the fields relevant to
// a given Kind are populated; the zero value is KindUnsolved.
type DataType struct {
	Kind Kind

	// List, Set, Optional
	Elem *DataType

	// Map
	Key   *DataType
	Value *DataType

	// Enum, Struct, TypeRef
	Name string

	// Struct
	Fields []StructField
}

func Int() *DataType  { return &DataType{Kind: KindInt} }
func Flt() *DataType  { return &DataType{Kind: KindFlt} }
func Bool() *DataType { return &DataType{Kind: KindBool} }
func Str() *DataType  { return &DataType{Kind: KindStr} }
func Range() *DataType { return &DataType{Kind: KindRange} }
func Unsolved() *DataType { return &DataType{Kind: KindUnsolved} }

func ListOf(elem *DataType) *DataType { return &DataType{Kind: KindList, Elem: elem} }
func SetOf(elem *DataType) *DataType  { return &DataType{Kind: KindSet, Elem: elem} }
func OptionalOf(inner *DataType) *DataType {
	return &DataType{Kind: KindOptional, Elem: inner}
}
func MapOf(key, value *DataType) *DataType {
	return &DataType{Kind: KindMap, Key: key, Value: value}
}
func EnumType(name string) *DataType   { return &DataType{Kind: KindEnum, Name: name} }
func TypeRefTo(name string) *DataType  { return &DataType{Kind: KindTypeRef, Name: name} }
func StructType(name string, fields []StructField) *DataType {
	return &DataType{Kind: KindStruct, Name: name, Fields: fields}
}

// String renders a DataType for diagnostics.
func (dt *DataType) String() string {
	if dt == nil {
		return "<nil>"
	}
	switch dt.Kind {
	case KindList:
		return fmt.Sprintf("List of %s", dt.Elem)
	case KindSet:
		return fmt.Sprintf("Set of %s", dt.Elem)
	case KindOptional:
		return fmt.Sprintf("Optional %s", dt.Elem)
	case KindMap:
		return fmt.Sprintf("Map of %s to %s", dt.Key, dt.Value)
	case KindEnum, KindTypeRef, KindStruct:
		return dt.Name
	default:
		return dt.Kind.String()
	}
}

// Equals compares two DataTypes structurally. TypeRef names compare by name
// only; callers that need alias-transparent comparison must resolve first.
func (dt *DataType) Equals(other *DataType) bool {
	if dt == nil || other == nil {
		return dt == other
	}
	if dt.Kind != other.Kind {
		return false
	}
	switch dt.Kind {
	case KindList, KindSet, KindOptional:
		return dt.Elem.Equals(other.Elem)
	case KindMap:
		return dt.Key.Equals(other.Key) && dt.Value.Equals(other.Value)
	case KindEnum, KindTypeRef:
		return dt.Name == other.Name
	case KindStruct:
		if dt.Name != other.Name || len(dt.Fields) != len(other.Fields) {
			return false
		}
		for i := range dt.Fields {
			if dt.Fields[i].Name != other.Fields[i].Name ||
				!dt.Fields[i].Type.Equals(other.Fields[i].Type) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// MachineKind is the machine representation a DataType lowers to (spec §3.2).
type MachineKind int

const (
	MachineInt64 MachineKind = iota
	MachineFloat64
	MachinePointer
)

func (m MachineKind) String() string {
	switch m {
	case MachineInt64:
		return "i64"
	case MachineFloat64:
		return "f64"
	case MachinePointer:
		return "ptr"
	default:
		return "?"
	}
}

// MachineRepr maps a DataType to its machine representation. Unsolved is
// treated as a 64-bit integer, since later code generation assumes that
// representation when it can't determine anything more specific.
func (dt *DataType) MachineRepr() MachineKind {
	if dt == nil {
		return MachineInt64
	}
	switch dt.Kind {
	case KindInt, KindBool, KindEnum, KindUnsolved:
		return MachineInt64
	case KindFlt:
		return MachineFloat64
	case KindOptional:
		// Optional borrows its inner type's machine representation rather
		// than always boxing, so absence is just the inner's own
		// zero/null bit pattern.
		return dt.Elem.MachineRepr()
	default:
		return MachinePointer
	}
}

// Tag is the single-octet runtime type tag used at struct-field and
// container boundaries. Set reuses the tag space adjacent to Struct.
type Tag byte

const (
	TagInt    Tag = 0
	TagFlt    Tag = 1
	TagBool   Tag = 2
	TagStr    Tag = 3
	TagList   Tag = 4
	TagMap    Tag = 5
	TagRange  Tag = 6
	TagStruct Tag = 7
	TagSet    Tag = 8
)

// RuntimeTag returns the ABI type tag for dt. Aliases must already be
// resolved by the caller; TypeRef and Unsolved have no runtime tag.
func (dt *DataType) RuntimeTag() (Tag, bool) {
	if dt == nil {
		return 0, false
	}
	switch dt.Kind {
	case KindInt, KindEnum:
		return TagInt, true
	case KindFlt:
		return TagFlt, true
	case KindBool:
		return TagBool, true
	case KindStr:
		return TagStr, true
	case KindList:
		return TagList, true
	case KindMap:
		return TagMap, true
	case KindRange:
		return TagRange, true
	case KindStruct:
		return TagStruct, true
	case KindSet:
		return TagSet, true
	default:
		return 0, false
	}
}
