package codegen

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/ccdavis/liftc/ast"
	"github.com/ccdavis/liftc/semantic"
	"github.com/ccdavis/liftc/types"
)

func compile(t *testing.T, body ...ast.Expr) string {
	t.Helper()
	prog := &ast.Program{Body: body}
	analyzer := semantic.NewAnalyzer()
	if err := analyzer.Analyze(prog); err != nil {
		t.Fatalf("semantic analysis failed: %v", err)
	}
	module, err := CompileProgram(prog, analyzer.Table, DefaultOptions())
	if err != nil {
		t.Fatalf("code generation failed: %v", err)
	}
	return module.String()
}

func intLit(v int64) *ast.LiteralExpr { return &ast.LiteralExpr{LitKind: ast.LitInt, IntVal: v} }
func strLit(v string) *ast.LiteralExpr { return &ast.LiteralExpr{LitKind: ast.LitStr, StrVal: v} }

// TestArithmeticScenario exercises output(1 + 2 * 3).
func TestArithmeticScenario(t *testing.T) {
	ir := compile(t, &ast.Output{Data: []ast.Expr{
		&ast.BinaryExpr{
			Left: intLit(1),
			Op:   ast.OpAdd,
			Right: &ast.BinaryExpr{Left: intLit(2), Op: ast.OpMul, Right: intLit(3)},
		},
	}})
	if !strings.Contains(ir, "@output_int") {
		t.Errorf("expected a call to output_int, got:\n%s", ir)
	}
	snaps.MatchSnapshot(t, ir)
}

// TestMutationScenario exercises let x = 10; x := x + 5; output(x).
func TestMutationScenario(t *testing.T) {
	ir := compile(t,
		&ast.Let{Name: "x", DeclaredType: types.Int(), Value: intLit(10)},
		&ast.Assign{Name: "x", Value: &ast.BinaryExpr{Left: &ast.Variable{Name: "x"}, Op: ast.OpAdd, Right: intLit(5)}},
		&ast.Output{Data: []ast.Expr{&ast.Variable{Name: "x"}}},
	)
	if !strings.Contains(ir, "alloca") {
		t.Errorf("expected a stack slot allocation, got:\n%s", ir)
	}
	snaps.MatchSnapshot(t, ir)
}

// TestFunctionCallScenario checks that a function defined after main's
// reference to it still resolves (forward declaration).
func TestFunctionCallScenario(t *testing.T) {
	double := &ast.DefineFunction{
		Name: "double",
		Value: &ast.Lambda{
			Params:     []ast.Param{{Name: "n", Type: types.Int()}},
			ReturnType: types.Int(),
			Body: &ast.BinaryExpr{
				Left: &ast.Variable{Name: "n"},
				Op:   ast.OpMul,
				Right: intLit(2),
			},
		},
	}
	call := &ast.Call{FnName: "double", Args: []ast.KeywordArg{{Name: "n", Value: intLit(21)}}}
	ir := compile(t, &ast.Output{Data: []ast.Expr{call}}, double)
	if !strings.Contains(ir, "define i64 @double") {
		t.Errorf("expected a defined double function, got:\n%s", ir)
	}
	snaps.MatchSnapshot(t, ir)
}

// TestListIndexScenario exercises let xs = [1,2,3]; output(xs[1]).
func TestListIndexScenario(t *testing.T) {
	ir := compile(t,
		&ast.Let{Name: "xs", DeclaredType: types.ListOf(types.Int()), Value: &ast.ListLiteral{
			ElemType: types.Int(),
			Data:     []ast.Expr{intLit(1), intLit(2), intLit(3)},
		}},
		&ast.Output{Data: []ast.Expr{&ast.Index{Collection: &ast.Variable{Name: "xs"}, IndexExpr: intLit(1)}}},
	)
	if !strings.Contains(ir, "@list_get") {
		t.Errorf("expected a call to list_get, got:\n%s", ir)
	}
	snaps.MatchSnapshot(t, ir)
}

// TestMapIndexScenario exercises let m = {1: 10, 2: 20}; output(m[2]).
func TestMapIndexScenario(t *testing.T) {
	ir := compile(t,
		&ast.Let{Name: "m", DeclaredType: types.MapOf(types.Int(), types.Int()), Value: &ast.MapLiteral{
			KeyType:   types.Int(),
			ValueType: types.Int(),
			Data: []ast.MapEntry{
				{Key: ast.KeyData{LitKind: ast.LitInt, IntVal: 1}, Value: intLit(10)},
				{Key: ast.KeyData{LitKind: ast.LitInt, IntVal: 2}, Value: intLit(20)},
			},
		}},
		&ast.Output{Data: []ast.Expr{&ast.Index{Collection: &ast.Variable{Name: "m"}, IndexExpr: intLit(2)}}},
	)
	if !strings.Contains(ir, "@map_get") {
		t.Errorf("expected a call to map_get, got:\n%s", ir)
	}
	snaps.MatchSnapshot(t, ir)
}

// TestStringMethodScenario exercises let s = 'hello'; output(s.upper()).
func TestStringMethodScenario(t *testing.T) {
	ir := compile(t,
		&ast.Let{Name: "s", DeclaredType: types.Str(), Value: strLit("hello")},
		&ast.Output{Data: []ast.Expr{&ast.MethodCall{Receiver: &ast.Variable{Name: "s"}, Method: "upper"}}},
	)
	if !strings.Contains(ir, "@str_upper") {
		t.Errorf("expected a call to str_upper, got:\n%s", ir)
	}
	snaps.MatchSnapshot(t, ir)
}

// TestMissingReturnRejected checks that a function whose body is Unit is
// rejected rather than silently returning garbage.
func TestMissingReturnRejected(t *testing.T) {
	prog := &ast.Program{Body: []ast.Expr{
		&ast.DefineFunction{
			Name: "noop",
			Value: &ast.Lambda{
				ReturnType: types.Unsolved(),
				Body:       &ast.While{Cond: intLit(0), Body: ast.Unit{}},
			},
		},
	}}
	analyzer := semantic.NewAnalyzer()
	if err := analyzer.Analyze(prog); err != nil {
		t.Fatalf("semantic analysis failed: %v", err)
	}
	_, err := CompileProgram(prog, analyzer.Table, DefaultOptions())
	if err == nil {
		t.Fatal("expected MissingReturn error, got nil")
	}
}

// TestSetContainsScenario exercises let xs = {1,2,3}; output(xs.contains(2)).
func TestSetContainsScenario(t *testing.T) {
	ir := compile(t,
		&ast.Let{Name: "xs", DeclaredType: types.SetOf(types.Int()), Value: &ast.SetLiteral{
			ElemType: types.Int(),
			Data:     []ast.Expr{intLit(1), intLit(2), intLit(3)},
		}},
		&ast.Output{Data: []ast.Expr{&ast.MethodCall{
			Receiver: &ast.Variable{Name: "xs"},
			Method:   "contains",
			Args:     []ast.Expr{intLit(2)},
		}}},
	)
	if !strings.Contains(ir, "@set_contains") {
		t.Errorf("expected a call to set_contains, got:\n%s", ir)
	}
	snaps.MatchSnapshot(t, ir)
}

// TestOptionalAbsentScenario exercises let x: Int? = None; output(x.IsNone()).
// An absent Optional is encoded as its inner type's zero value, so IsSome
// and IsNone must compare against that zero directly rather than calling
// into the runtime.
func TestOptionalAbsentScenario(t *testing.T) {
	ir := compile(t,
		&ast.Let{Name: "x", DeclaredType: types.OptionalOf(types.Int()), Value: &ast.OptionalLiteral{
			Inner:   types.Int(),
			Present: false,
		}},
		&ast.Output{Data: []ast.Expr{&ast.MethodCall{
			Receiver: &ast.Variable{Name: "x"},
			Method:   "IsNone",
		}}},
	)
	if strings.Contains(ir, "@optional_") {
		t.Errorf("expected no runtime optional call, got:\n%s", ir)
	}
	if !strings.Contains(ir, "icmp eq i64") {
		t.Errorf("expected a direct zero comparison, got:\n%s", ir)
	}
	snaps.MatchSnapshot(t, ir)
}
