package codegen

import (
	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// toI64Payload narrows a value to the uniform i64 slot every collection
// runtime entry stores: integers pass through, floats are bitcast (not
// converted — generated code reads the raw bits back with a matching
// fromI64Payload), pointers are ptrtoint'd.
func toI64Payload(b *ir.Block, v value.Value, machine lltypes.Type) value.Value {
	switch machine.(type) {
	case *lltypes.FloatType:
		return b.NewBitCast(v, lltypes.I64)
	case *lltypes.PointerType:
		return b.NewPtrToInt(v, lltypes.I64)
	default:
		return v
	}
}

// fromI64Payload is toI64Payload's inverse, used when a collection
// accessor hands back a raw i64 that the caller's element type expects
// as a float or pointer.
func fromI64Payload(b *ir.Block, v value.Value, machine lltypes.Type) value.Value {
	switch t := machine.(type) {
	case *lltypes.FloatType:
		return b.NewBitCast(v, t)
	case *lltypes.PointerType:
		return b.NewIntToPtr(v, t)
	default:
		return v
	}
}
