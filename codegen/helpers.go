package codegen

import (
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

func constant0() value.Value {
	return constant.NewInt(lltypes.I64, 0)
}

func constI8One() value.Value {
	return constant.NewInt(lltypes.I8, 1)
}

// zero returns the zero value of t: an integer/float zero constant for
// scalar machine types, or a null pointer constant for pointer types.
// Used by If's Unit-arm slot store and Optional's absent encoding.
func zero(t lltypes.Type) value.Value {
	switch tt := t.(type) {
	case *lltypes.IntType:
		return constant.NewInt(tt, 0)
	case *lltypes.FloatType:
		return constant.NewFloat(tt, 0)
	case *lltypes.PointerType:
		return constant.NewNull(tt)
	default:
		return constant.NewInt(lltypes.I64, 0)
	}
}
