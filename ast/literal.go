package ast

import (
	"fmt"
	"strconv"

	"github.com/ccdavis/liftc/types"
)

// LitKind narrows Literal down to the four immediate-constant shapes the
// syntax allows: a literal can only ever be Int, Flt, Bool or Str, a
// narrower set than the full DataType algebra.
type LitKind int

const (
	LitInt LitKind = iota
	LitFlt
	LitBool
	LitStr
)

// LiteralExpr is an immediate constant. Exactly one of the value fields is
// meaningful, selected by LitKind.
type LiteralExpr struct {
	LitKind LitKind
	IntVal  int64
	FltVal  float64
	BoolVal bool
	StrVal  string
}

func (*LiteralExpr) Kind() ExprKind { return KLiteral }

func (l *LiteralExpr) String() string {
	switch l.LitKind {
	case LitInt:
		return strconv.FormatInt(l.IntVal, 10)
	case LitFlt:
		return strconv.FormatFloat(l.FltVal, 'g', -1, 64)
	case LitBool:
		return strconv.FormatBool(l.BoolVal)
	case LitStr:
		return strconv.Quote(l.StrVal)
	default:
		return "<bad literal>"
	}
}

// DataType reports the literal's obvious DataType, the base case type
// inference falls back on.
func (l *LiteralExpr) DataType() *types.DataType {
	switch l.LitKind {
	case LitInt:
		return types.Int()
	case LitFlt:
		return types.Flt()
	case LitBool:
		return types.Bool()
	case LitStr:
		return types.Str()
	default:
		return types.Unsolved()
	}
}

// KeyData is the narrower literal variant accepted as a map-literal key;
// the syntax forbids floating-point keys.
type KeyData struct {
	LitKind LitKind // LitInt, LitStr or LitBool
	IntVal  int64
	StrVal  string
	BoolVal bool
}

func (k KeyData) String() string {
	switch k.LitKind {
	case LitInt:
		return strconv.FormatInt(k.IntVal, 10)
	case LitStr:
		return strconv.Quote(k.StrVal)
	case LitBool:
		return strconv.FormatBool(k.BoolVal)
	default:
		return fmt.Sprintf("<bad key kind %d>", k.LitKind)
	}
}
