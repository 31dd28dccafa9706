package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/ccdavis/liftc/ast"
	"github.com/ccdavis/liftc/errors"
	"github.com/ccdavis/liftc/runtimeabi"
	"github.com/ccdavis/liftc/types"
)

// declareUserFunction builds the IR signature from the Lambda's parameter
// and return types (aliases resolved) before any body is compiled, so
// mutually-recursive calls resolve against an already-declared ir.Func.
func (g *CodeGenerator) declareUserFunction(def *ast.DefineFunction) error {
	lambda := def.Value
	params := make([]*ir.Param, len(lambda.Params))
	for i, p := range lambda.Params {
		params[i] = ir.NewParam(p.Name, llvmType(g.resolveAlias(p.Type)))
	}
	retType := llvmType(g.resolveAlias(lambda.ReturnType))
	fn := g.module.NewFunc(def.Name, retType, params...)
	g.userFuncs[def.Name] = fn
	return nil
}

// compileUserFunction allocates one parameter stack slot per formal, then
// lowers the body to supply the return value. variables is rebuilt fresh
// for each function so one function's locals never alias another's.
func (g *CodeGenerator) compileUserFunction(def *ast.DefineFunction) error {
	fn := g.userFuncs[def.Name]
	lambda := def.Value

	g.variables = make(map[string]varInfo)
	entry := fn.NewBlock("entry")
	g.entryBlock = entry

	for i, p := range lambda.Params {
		machine := llvmType(g.resolveAlias(p.Type))
		slot := entry.NewAlloca(machine)
		entry.NewStore(fn.Params[i], slot)
		g.variables[p.Name] = varInfo{slot: slot, machine: machine}
	}

	val, cur, err := g.compileExpr(entry, lambda.Body)
	if err != nil {
		return err
	}
	if val == nil {
		return errors.New(errors.MissingReturn, "function '%s' has a Unit body and cannot return a value", def.Name)
	}
	cur.NewRet(val)
	return nil
}

// compileMain runs the same process as a user function, with an implicit
// () -> Int signature. The program's value (or 0 if Unit) is returned.
func (g *CodeGenerator) compileMain(prog *ast.Program) error {
	g.variables = make(map[string]varInfo)
	fn := g.module.NewFunc("main", lltypes.I64)
	entry := fn.NewBlock("entry")
	g.entryBlock = entry

	val, cur, err := g.compileBody(entry, prog.Body)
	if err != nil {
		return err
	}
	if val == nil {
		val = constant.NewInt(lltypes.I64, 0)
	}
	cur.NewRet(val)
	return nil
}

func paramIndex(lambda *ast.Lambda, name string) int {
	for i, p := range lambda.Params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// compileCall reorders keyword arguments against the callee's declared
// parameter order, and rewrites a `self:`-first call to a MethodCall
// (UFCS).
func (g *CodeGenerator) compileCall(b *ir.Block, n *ast.Call) (value.Value, *ir.Block, error) {
	lambda, ok := g.lambdas[n.FnName]
	if !ok {
		return nil, b, errors.New(errors.UndeclaredName, "function '%s' is not declared", n.FnName)
	}

	if len(n.Args) > 0 && n.Args[0].Name == "self" {
		rest := make([]ast.Expr, len(n.Args)-1)
		for i, a := range n.Args[1:] {
			rest[i] = a.Value
		}
		return g.compileMethodCall(b, &ast.MethodCall{
			Receiver: n.Args[0].Value,
			Method:   n.FnName,
			Args:     rest,
		})
	}

	ordered := make([]value.Value, len(lambda.Params))
	filled := make([]bool, len(lambda.Params))
	cur := b
	for _, arg := range n.Args {
		idx := paramIndex(lambda, arg.Name)
		if idx < 0 {
			return nil, cur, errors.New(errors.MissingArgument, "function '%s' has no parameter named '%s'", n.FnName, arg.Name)
		}
		v, next, err := g.compileExpr(cur, arg.Value)
		cur = next
		if err != nil {
			return nil, cur, err
		}
		v, err = requireValue(v, "argument '"+arg.Name+"'")
		if err != nil {
			return nil, cur, err
		}
		ordered[idx] = v
		filled[idx] = true
	}
	for i, was := range filled {
		if !was {
			return nil, cur, errors.New(errors.MissingArgument, "call to '%s' is missing argument '%s'", n.FnName, lambda.Params[i].Name)
		}
	}

	fn, ok := g.userFuncs[n.FnName]
	if !ok {
		return nil, cur, errors.New(errors.UndeclaredName, "function '%s' is not declared", n.FnName)
	}
	return cur.NewCall(fn, ordered...), cur, nil
}

// builtinMethod names one receiver-kind method's runtime target.
type builtinMethod struct {
	runtime string
}

var strMethods = map[string]builtinMethod{
	"upper":       {"str_upper"},
	"lower":       {"str_lower"},
	"trim":        {"str_trim"},
	"substring":   {"str_substring"},
	"contains":    {"str_contains"},
	"split":       {"str_split"},
	"replace":     {"str_replace"},
	"starts_with": {"str_starts_with"},
	"ends_with":   {"str_ends_with"},
	"is_empty":    {"str_is_empty"},
}

var listMethods = map[string]builtinMethod{
	"first":    {"list_first"},
	"last":     {"list_last"},
	"contains": {"list_contains"},
	"slice":    {"list_slice"},
	"reverse":  {"list_reverse"},
	"join":     {"list_join"},
	"is_empty": {"list_is_empty"},
}

var mapMethods = map[string]builtinMethod{
	"keys":         {"map_keys"},
	"values":       {"map_values"},
	"contains_key": {"map_contains_key"},
	"is_empty":     {"map_is_empty"},
}

var setMethods = map[string]builtinMethod{
	"contains": {"set_contains"},
	"is_empty": {"set_is_empty"},
	"len":      {"set_len"},
}

// compileMethodCall dispatches a MethodCall against the receiver type's
// builtin method table (falling back to a mangled user-method name), or,
// for an Optional receiver, lowers IsSome/IsNone directly rather than
// through a runtime call.
func (g *CodeGenerator) compileMethodCall(b *ir.Block, n *ast.MethodCall) (value.Value, *ir.Block, error) {
	recv, cur, err := g.compileExpr(b, n.Receiver)
	if err != nil {
		return nil, cur, err
	}
	recv, err = requireValue(recv, "method receiver")
	if err != nil {
		return nil, cur, err
	}

	rawType := g.exprType(n.Receiver)
	resolvedType := g.resolveAlias(rawType)

	if resolvedType.Kind == types.KindOptional {
		return g.compileOptionalMethodCall(cur, n.Method, recv, resolvedType)
	}

	var table map[string]builtinMethod
	switch resolvedType.Kind {
	case types.KindStr:
		table = strMethods
	case types.KindList:
		table = listMethods
	case types.KindMap:
		table = mapMethods
	case types.KindSet:
		table = setMethods
	}

	args := []value.Value{recv}
	for _, a := range n.Args {
		v, next, err := g.compileExpr(cur, a)
		cur = next
		if err != nil {
			return nil, cur, err
		}
		v, err = requireValue(v, "method argument")
		if err != nil {
			return nil, cur, err
		}
		args = append(args, v)
	}

	if table != nil {
		if entry, ok := table[n.Method]; ok {
			fn := g.runtimeFuncs[entry.runtime]
			call := cur.NewCall(fn, args...)
			if sig, ok := runtimeabi.Lookup(entry.runtime); ok && sig.Returns == runtimeabi.I8 {
				return zextI64(cur, call), cur, nil
			}
			return call, cur, nil
		}
	}

	// Mangled user-method fallback: try the pre-alias name first, then the
	// resolved name.
	mangled := rawType.Name + "." + n.Method
	fn, ok := g.userFuncs[mangled]
	if !ok {
		mangled = resolvedType.Name + "." + n.Method
		fn, ok = g.userFuncs[mangled]
	}
	if !ok {
		return nil, cur, errors.New(errors.UndeclaredName, "no method '%s' on type %s", n.Method, resolvedType)
	}
	return cur.NewCall(fn, args...), cur, nil
}

// compileOptionalMethodCall lowers IsSome/IsNone on an Optional receiver
// to a direct comparison against the zero/null value of the inner type's
// machine representation, the same way UnaryExpr{Not} compares an Int
// against zero — there is no runtime entry for this, since an Optional's
// absence is encoded in the value itself rather than a separate tag.
func (g *CodeGenerator) compileOptionalMethodCall(b *ir.Block, method string, recv value.Value, resolvedType *types.DataType) (value.Value, *ir.Block, error) {
	machine := llvmType(g.resolveAlias(resolvedType.Elem))
	zeroVal := zero(machine)
	_, isFloat := machine.(*lltypes.FloatType)

	switch method {
	case "IsNone":
		if isFloat {
			return zextI64(b, b.NewFCmp(enum.FPredOEQ, recv, zeroVal)), b, nil
		}
		return zextI64(b, b.NewICmp(enum.IPredEQ, recv, zeroVal)), b, nil
	case "IsSome":
		if isFloat {
			return zextI64(b, b.NewFCmp(enum.FPredONE, recv, zeroVal)), b, nil
		}
		return zextI64(b, b.NewICmp(enum.IPredNE, recv, zeroVal)), b, nil
	default:
		return nil, b, errors.New(errors.UndeclaredName, "no method '%s' on type %s", method, resolvedType)
	}
}
