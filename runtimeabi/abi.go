// Package runtimeabi declares the fixed contract between generated code
// and the Lift runtime library. The runtime library's implementation is
// out of scope; this package only knows shapes, grounded on
// original_source/src/cranelift/runtime.rs's table of extern "C" runtime
// entries, declared here as github.com/llir/llvm external function
// declarations (a Func with no basic blocks prints as `declare`, exactly
// like Cranelift's imported-function handles).
package runtimeabi

import (
	"fmt"

	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"
)

// ABIType is a parameter/return shape at the runtime boundary. It has
// more shapes than types.MachineKind: i8 exists here because Bool narrows to
// 8 bits specifically at ABI calls, never in ordinary expression
// lowering.
type ABIType int

const (
	Void ABIType = iota
	I64
	F64
	I8
	Ptr
)

func (t ABIType) llvm(ptrElem lltypes.Type) lltypes.Type {
	switch t {
	case I64:
		return lltypes.I64
	case F64:
		return lltypes.Double
	case I8:
		return lltypes.I8
	case Ptr:
		return lltypes.NewPointer(ptrElem)
	default:
		return lltypes.Void
	}
}

// Signature is one runtime entry's shape.
type Signature struct {
	Name    string
	Params  []ABIType
	Returns ABIType // Void for "—"
}

// Table lists every runtime entry point the code generator may call.
var Table = []Signature{
	{Name: "output_int", Params: []ABIType{I64}},
	{Name: "output_float", Params: []ABIType{F64}},
	{Name: "output_bool", Params: []ABIType{I8}},
	{Name: "output_str", Params: []ABIType{Ptr}},
	{Name: "output_newline"},
	{Name: "output_list", Params: []ABIType{Ptr}},
	{Name: "output_map", Params: []ABIType{Ptr}},
	{Name: "output_range", Params: []ABIType{Ptr}},
	{Name: "output_struct", Params: []ABIType{Ptr}},
	{Name: "output_set", Params: []ABIType{Ptr}},

	{Name: "str_new", Params: []ABIType{Ptr}, Returns: Ptr},
	{Name: "str_concat", Params: []ABIType{Ptr, Ptr}, Returns: Ptr},
	{Name: "str_eq", Params: []ABIType{Ptr, Ptr}, Returns: I8},
	{Name: "str_len", Params: []ABIType{Ptr}, Returns: I64},
	{Name: "str_upper", Params: []ABIType{Ptr}, Returns: Ptr},
	{Name: "str_lower", Params: []ABIType{Ptr}, Returns: Ptr},
	{Name: "str_trim", Params: []ABIType{Ptr}, Returns: Ptr},
	{Name: "str_substring", Params: []ABIType{Ptr, I64, I64}, Returns: Ptr},
	{Name: "str_contains", Params: []ABIType{Ptr, Ptr}, Returns: I8},
	{Name: "str_starts_with", Params: []ABIType{Ptr, Ptr}, Returns: I8},
	{Name: "str_ends_with", Params: []ABIType{Ptr, Ptr}, Returns: I8},
	{Name: "str_is_empty", Params: []ABIType{Ptr}, Returns: I8},
	{Name: "str_split", Params: []ABIType{Ptr, Ptr}, Returns: Ptr},
	{Name: "str_replace", Params: []ABIType{Ptr, Ptr, Ptr}, Returns: Ptr},

	{Name: "list_new", Params: []ABIType{I64, I8}, Returns: Ptr},
	{Name: "list_set", Params: []ABIType{Ptr, I64, I64}},
	{Name: "list_get", Params: []ABIType{Ptr, I64}, Returns: I64},
	{Name: "list_len", Params: []ABIType{Ptr}, Returns: I64},
	{Name: "list_first", Params: []ABIType{Ptr}, Returns: I64},
	{Name: "list_last", Params: []ABIType{Ptr}, Returns: I64},
	{Name: "list_contains", Params: []ABIType{Ptr, I64}, Returns: I8},
	{Name: "list_slice", Params: []ABIType{Ptr, I64, I64}, Returns: Ptr},
	{Name: "list_reverse", Params: []ABIType{Ptr}, Returns: Ptr},
	{Name: "list_join", Params: []ABIType{Ptr, Ptr}, Returns: Ptr},
	{Name: "list_is_empty", Params: []ABIType{Ptr}, Returns: I8},

	{Name: "map_new", Params: []ABIType{I64, I8, I8}, Returns: Ptr},
	{Name: "map_set", Params: []ABIType{Ptr, I64, I64}},
	{Name: "map_get", Params: []ABIType{Ptr, I64}, Returns: I64},
	{Name: "map_keys", Params: []ABIType{Ptr}, Returns: Ptr},
	{Name: "map_values", Params: []ABIType{Ptr}, Returns: Ptr},
	{Name: "map_contains_key", Params: []ABIType{Ptr, I64}, Returns: I8},
	{Name: "map_is_empty", Params: []ABIType{Ptr}, Returns: I8},
	{Name: "map_len", Params: []ABIType{Ptr}, Returns: I64},

	{Name: "range_new", Params: []ABIType{I64, I64}, Returns: Ptr},
	{Name: "range_start", Params: []ABIType{Ptr}, Returns: I64},
	{Name: "range_end", Params: []ABIType{Ptr}, Returns: I64},

	{Name: "struct_new", Params: []ABIType{Ptr, I64}, Returns: Ptr},
	{Name: "struct_set_field", Params: []ABIType{Ptr, Ptr, I8, I64}},
	{Name: "struct_get_field", Params: []ABIType{Ptr, Ptr}, Returns: I64},
	{Name: "struct_get_field_type", Params: []ABIType{Ptr, Ptr}, Returns: I8},
	{Name: "struct_eq", Params: []ABIType{Ptr, Ptr}, Returns: I8},
	{Name: "struct_free", Params: []ABIType{Ptr}},

	{Name: "set_new", Params: []ABIType{I64, I8}, Returns: Ptr},
	{Name: "set_add", Params: []ABIType{Ptr, I64}},
	{Name: "set_contains", Params: []ABIType{Ptr, I64}, Returns: I8},
	{Name: "set_len", Params: []ABIType{Ptr}, Returns: I64},
	{Name: "set_is_empty", Params: []ABIType{Ptr}, Returns: I8},
}

// Declare registers every Table entry as an external function in m.
// byteType is the pointer element type used for opaque runtime handles
// (i8, giving LLVM's classic i8* opaque-pointer convention).
func Declare(m *ir.Module) map[string]*ir.Func {
	byteType := lltypes.I8
	funcs := make(map[string]*ir.Func, len(Table))
	for _, sig := range Table {
		params := make([]*ir.Param, len(sig.Params))
		for i, p := range sig.Params {
			params[i] = ir.NewParam(fmt.Sprintf("a%d", i), p.llvm(byteType))
		}
		fn := m.NewFunc(sig.Name, sig.Returns.llvm(byteType), params...)
		funcs[sig.Name] = fn
	}
	return funcs
}

// Lookup returns the Signature for name, for callers that need to check
// arity/shape before emitting a call.
func Lookup(name string) (Signature, bool) {
	for _, sig := range Table {
		if sig.Name == name {
			return sig, true
		}
	}
	return Signature{}, false
}
