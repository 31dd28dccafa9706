package codegen

import (
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/ccdavis/liftc/types"
)

// llvmType converts a DataType's machine representation to the concrete
// LLVM IR type the generator allocates stack slots and signatures with.
// Pointer-represented values (strings, lists, maps, ranges, structs,
// sets, optionals-of-pointer) all use the same opaque i8* handle; the
// runtime library is the only code that needs to know the pointee's real
// shape.
func llvmType(dt *types.DataType) lltypes.Type {
	switch dt.MachineRepr() {
	case types.MachineFloat64:
		return lltypes.Double
	case types.MachinePointer:
		return lltypes.NewPointer(lltypes.I8)
	default:
		return lltypes.I64
	}
}
