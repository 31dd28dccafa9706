package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/ccdavis/liftc/ast"
)

func nonzero(b *ir.Block, v value.Value) value.Value {
	return b.NewICmp(enum.IPredNE, v, constant0())
}

// compileIf lowers the expression-form If/Else: both arms run in their
// own block and join at a merge block.
func (g *CodeGenerator) compileIf(b *ir.Block, n *ast.If) (value.Value, *ir.Block, error) {
	cond, cur, err := g.compileExpr(b, n.Cond)
	if err != nil {
		return nil, cur, err
	}
	cond, err = requireValue(cond, "if condition")
	if err != nil {
		return nil, cur, err
	}

	fn := cur.Parent
	thenBlk := fn.NewBlock("")
	elseBlk := fn.NewBlock("")
	mergeBlk := fn.NewBlock("")
	cur.NewCondBr(nonzero(cur, cond), thenBlk, elseBlk)

	elseExpr := n.Else
	if elseExpr == nil {
		elseExpr = ast.Unit{}
	}

	thenVal, thenEnd, err := g.compileExpr(thenBlk, n.Then)
	if err != nil {
		return nil, thenEnd, err
	}
	elseVal, elseEnd, err := g.compileExpr(elseBlk, elseExpr)
	if err != nil {
		return nil, elseEnd, err
	}

	if thenVal == nil && elseVal == nil {
		thenEnd.NewBr(mergeBlk)
		elseEnd.NewBr(mergeBlk)
		return nil, mergeBlk, nil
	}

	// At least one arm produces a value: both arms must agree on machine
	// representation; the Unit arm (if any) stores the zero/null value of
	// that representation.
	var slotType lltypes.Type
	if thenVal != nil {
		slotType = thenVal.Type()
	} else {
		slotType = elseVal.Type()
	}
	slot := g.entryBlock.NewAlloca(slotType)

	storeArm(thenEnd, thenVal, slot, slotType)
	thenEnd.NewBr(mergeBlk)
	storeArm(elseEnd, elseVal, slot, slotType)
	elseEnd.NewBr(mergeBlk)

	loaded := mergeBlk.NewLoad(slotType, slot)
	return loaded, mergeBlk, nil
}

func storeArm(b *ir.Block, v value.Value, slot value.Value, slotType lltypes.Type) {
	if v == nil {
		b.NewStore(zero(slotType), slot)
		return
	}
	b.NewStore(v, slot)
}

// compileWhile lowers While: header evaluates the condition and
// branches, body lowers then jumps back to the header. Always produces
// Unit.
func (g *CodeGenerator) compileWhile(b *ir.Block, n *ast.While) (value.Value, *ir.Block, error) {
	fn := b.Parent
	headerBlk := fn.NewBlock("")
	bodyBlk := fn.NewBlock("")
	exitBlk := fn.NewBlock("")

	b.NewBr(headerBlk)

	cond, headerEnd, err := g.compileExpr(headerBlk, n.Cond)
	if err != nil {
		return nil, headerEnd, err
	}
	cond, err = requireValue(cond, "while condition")
	if err != nil {
		return nil, headerEnd, err
	}
	headerEnd.NewCondBr(nonzero(headerEnd, cond), bodyBlk, exitBlk)

	_, bodyEnd, err := g.compileExpr(bodyBlk, n.Body)
	if err != nil {
		return nil, bodyEnd, err
	}
	bodyEnd.NewBr(headerBlk)

	return nil, exitBlk, nil
}
