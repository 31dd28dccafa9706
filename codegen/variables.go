package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"github.com/ccdavis/liftc/ast"
	"github.com/ccdavis/liftc/errors"
)

// compileLet lowers a Let binding. The alloca always backs an
// i64/double/ptr slot (each 8 bytes on a 64-bit target) — every local
// gets uniform storage without needing a separate byte-sized buffer.
func (g *CodeGenerator) compileLet(b *ir.Block, n *ast.Let) (value.Value, *ir.Block, error) {
	val, cur, err := g.compileExpr(b, n.Value)
	if err != nil {
		return nil, cur, err
	}
	val, err = requireValue(val, "let '"+n.Name+"' initializer")
	if err != nil {
		return nil, cur, err
	}

	machineType := llvmType(g.resolveAlias(n.DeclaredType))
	slot := g.entryBlock.NewAlloca(machineType)
	cur.NewStore(val, slot)

	g.variables[n.Name] = varInfo{slot: slot, machine: machineType}
	return nil, cur, nil
}

// compileVariable loads a Variable reference's stack slot.
func (g *CodeGenerator) compileVariable(b *ir.Block, n *ast.Variable) (value.Value, *ir.Block, error) {
	info, ok := g.variables[n.Name]
	if !ok {
		return nil, b, errors.New(errors.UndeclaredName, "'%s' is not declared", n.Name)
	}
	return b.NewLoad(info.machine, info.slot), b, nil
}

// compileAssign lowers an Assign by storing the new value into the
// variable's existing stack slot.
func (g *CodeGenerator) compileAssign(b *ir.Block, n *ast.Assign) (value.Value, *ir.Block, error) {
	info, ok := g.variables[n.Name]
	if !ok {
		return nil, b, errors.New(errors.UndeclaredName, "'%s' is not declared", n.Name)
	}
	val, cur, err := g.compileExpr(b, n.Value)
	if err != nil {
		return nil, cur, err
	}
	val, err = requireValue(val, "assignment to '"+n.Name+"'")
	if err != nil {
		return nil, cur, err
	}
	cur.NewStore(val, info.slot)
	return nil, cur, nil
}
