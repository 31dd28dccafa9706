// Package codegen implements the tree-to-IR lowering code generator: a
// tree-walking emitter that lowers each expression form to
// basic-block-structured IR via github.com/llir/llvm, the third-party
// low-level code generator this module targets. It is grounded on
// original_source/src/cranelift/codegen.rs's CodeGenerator struct and
// compile_expr_static dispatch, translated from Cranelift's
// FunctionBuilder/Value API to llir/llvm's Block/value.Value API, and on
// the Go dispatch-switch idiom of
// github.com/cwbudde/go-dws/internal/bytecode/compiler_core.go.
package codegen

import (
	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/ccdavis/liftc/ast"
	"github.com/ccdavis/liftc/errors"
	"github.com/ccdavis/liftc/runtimeabi"
	"github.com/ccdavis/liftc/symtab"
)

// Options configures a compilation run. There is currently one knob;
// it exists as a struct (rather than a bare bool parameter) so future
// options — target features, optimization requests passed through to the
// IR backend — have somewhere to land without changing CompileProgram's
// signature, following the small-option-struct idiom
// github.com/cwbudde/go-dws's bytecode.Compiler constructors use.
type Options struct {
	// ModuleName is the name attached to the emitted ir.Module's source
	// filename metadata.
	ModuleName string
}

// DefaultOptions returns the options CompileProgram uses when none are
// given explicitly.
func DefaultOptions() Options {
	return Options{ModuleName: "lift_module"}
}

// varInfo records a Let or parameter's stack slot and the machine type it
// was stored with, so a later Variable/Assign loads and stores using the
// correct LLVM type.
type varInfo struct {
	slot    value.Value
	machine lltypes.Type
}

// CodeGenerator lowers a semantically-analyzed tree to an ir.Module
// exporting a single main() -> i64 symbol.
//
// runtimeFuncs and userFuncs are filled before any body is compiled and
// read-only thereafter. variables is rebuilt for each function compiled;
// a variable map shared across functions is easy to regress, so this
// generator clears it explicitly at the start of every function to avoid
// that.
type CodeGenerator struct {
	opts   Options
	module *ir.Module
	table  *symtab.Table

	runtimeFuncs map[string]*ir.Func
	userFuncs    map[string]*ir.Func
	lambdas      map[string]*ast.Lambda // declared function name -> its Lambda, for param reordering and UFCS/method dispatch

	variables  map[string]varInfo
	strCount   int
	entryBlock *ir.Block // current function's entry block, where stack slots are hoisted
}

// New creates a CodeGenerator over an empty module. table must already
// have been produced by a successful semantic.Analyzer.Analyze call: the
// symbol table is owned exclusively by the semantic pass and is
// read-only from here on.
func New(table *symtab.Table, opts Options) *CodeGenerator {
	m := ir.NewModule()
	m.SourceFilename = opts.ModuleName
	return &CodeGenerator{
		opts:      opts,
		module:    m,
		table:     table,
		userFuncs: make(map[string]*ir.Func),
		lambdas:   make(map[string]*ast.Lambda),
	}
}

// CompileProgram runs all three phases against prog and returns the
// finished module. The first error aborts compilation; no partial module
// is returned.
func CompileProgram(prog *ast.Program, table *symtab.Table, opts Options) (*ir.Module, error) {
	g := New(table, opts)

	// Phase 1 — Runtime-function declaration.
	g.runtimeFuncs = runtimeabi.Declare(g.module)

	// Phase 2 — User-function collection and compilation.
	var defs []*ast.DefineFunction
	collectFunctionDefinitions(prog.Body, &defs)
	for _, def := range defs {
		g.lambdas[def.Name] = def.Value
		if err := g.declareUserFunction(def); err != nil {
			return nil, err
		}
	}
	for _, def := range defs {
		if err := g.compileUserFunction(def); err != nil {
			return nil, err
		}
	}

	// Phase 3 — main emission.
	if err := g.compileMain(prog); err != nil {
		return nil, err
	}

	return g.module, nil
}

// collectFunctionDefinitions recursively enumerates every DefineFunction
// node in the tree, descending into blocks, conditionals, loops, lets and
// assigns, but not into a DefineFunction's own body: functions are not
// nestable as closures, so a DefineFunction nested inside another
// function's body is not collected.
func collectFunctionDefinitions(body []ast.Expr, out *[]*ast.DefineFunction) {
	for _, e := range body {
		collectFromExpr(e, out)
	}
}

func collectFromExpr(e ast.Expr, out *[]*ast.DefineFunction) {
	switch n := e.(type) {
	case *ast.DefineFunction:
		*out = append(*out, n)
	case *ast.Program:
		collectFunctionDefinitions(n.Body, out)
	case *ast.Block:
		collectFunctionDefinitions(n.Body, out)
	case *ast.If:
		collectFromExpr(n.Cond, out)
		collectFromExpr(n.Then, out)
		collectFromExpr(n.Else, out)
	case *ast.While:
		collectFromExpr(n.Cond, out)
		collectFromExpr(n.Body, out)
	case *ast.Let:
		collectFromExpr(n.Value, out)
	case *ast.Assign:
		collectFromExpr(n.Value, out)
	}
}

// compileExpr is the main dispatch: it lowers one expression and returns
// either a single IR value (value-producing forms) or nil (Unit forms).
func (g *CodeGenerator) compileExpr(b *ir.Block, e ast.Expr) (value.Value, *ir.Block, error) {
	switch n := e.(type) {
	case nil, ast.Unit:
		return nil, b, nil

	case *ast.LiteralExpr:
		return g.compileLiteral(b, n)

	case *ast.Program:
		return g.compileBody(b, n.Body)
	case *ast.Block:
		return g.compileBody(b, n.Body)

	case *ast.BinaryExpr:
		return g.compileBinaryExpr(b, n)
	case *ast.UnaryExpr:
		return g.compileUnaryExpr(b, n)

	case *ast.If:
		return g.compileIf(b, n)
	case *ast.While:
		return g.compileWhile(b, n)

	case *ast.Let:
		return g.compileLet(b, n)
	case *ast.Variable:
		return g.compileVariable(b, n)
	case *ast.Assign:
		return g.compileAssign(b, n)

	case *ast.ListLiteral:
		return g.compileListLiteral(b, n)
	case *ast.SetLiteral:
		return g.compileSetLiteral(b, n)
	case *ast.MapLiteral:
		return g.compileMapLiteral(b, n)
	case *ast.Index:
		return g.compileIndex(b, n)
	case *ast.Range:
		return g.compileRange(b, n)
	case *ast.EnumLiteral:
		return g.compileEnumLiteral(b, n)
	case *ast.OptionalLiteral:
		return g.compileOptionalLiteral(b, n)

	case *ast.StructLiteral:
		return g.compileStructLiteral(b, n)
	case *ast.FieldAccess:
		return g.compileFieldAccess(b, n)
	case *ast.FieldAssign:
		return g.compileFieldAssign(b, n)

	case *ast.Call:
		return g.compileCall(b, n)
	case *ast.MethodCall:
		return g.compileMethodCall(b, n)

	case *ast.Output:
		blk, err := g.compileOutput(b, n)
		return nil, blk, err

	case *ast.DefineFunction, *ast.DefineType:
		// Handled in preprocessing/Phase 2; nothing to emit here.
		return nil, b, nil

	default:
		return nil, b, errors.New(errors.TypeMismatch, "lowering not implemented for %T", e)
	}
}

// compileBody lowers a Program/Block: every sub-expression is lowered in
// order, and the value of the last one (or Unit, if empty) is the
// block's value.
func (g *CodeGenerator) compileBody(b *ir.Block, body []ast.Expr) (value.Value, *ir.Block, error) {
	var last value.Value
	cur := b
	for _, e := range body {
		v, next, err := g.compileExpr(cur, e)
		if err != nil {
			return nil, cur, err
		}
		last = v
		cur = next
	}
	return last, cur, nil
}

// requireValue enforces the rule that an attempt to use a Unit value as
// an operand is a UnitOperand error.
func requireValue(v value.Value, context string) (value.Value, error) {
	if v == nil {
		return nil, errors.New(errors.UnitOperand, "%s requires a value but received Unit", context)
	}
	return v, nil
}

