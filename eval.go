package pbg

import (
	"bytes"
	"math"
)

// Evaluate walks expr's tree to a single boolean verdict, resolving
// each VAR field through dict the first time evaluation actually
// visits it — never more than once per field, and never for a VAR an
// AND/OR short-circuit skips entirely. A single *Expression may be
// evaluated any number of times, including concurrently with
// different dicts, since resolution state lives on a per-call context
// rather than on the Expression itself.
func Evaluate(expr *Expression, dict Dict) (bool, error) {
	result, err := evaluate(expr, dict)
	if err != nil {
		return false, err
	}
	return result, nil
}

// evalCtx carries one Evaluate call's memoized variable resolutions.
// resolved/values are parallel to expr.variables.
type evalCtx struct {
	expr     *Expression
	dict     Dict
	resolved []bool
	values   []Field
}

func evaluate(expr *Expression, dict Dict) (bool, *Error) {
	ctx := &evalCtx{
		expr:     expr,
		dict:     dict,
		resolved: make([]bool, len(expr.variables)),
		values:   make([]Field, len(expr.variables)),
	}
	return evalBool(ctx, expr.root)
}

// get resolves id to the field it addresses, calling ctx.dict on
// first access for a variable id and caching the result for any later
// reference to the same field.
func (ctx *evalCtx) get(id NodeID) Field {
	if id >= 0 {
		return ctx.expr.get(id)
	}
	i := -id - 1
	if !ctx.resolved[i] {
		ctx.values[i] = ctx.dict(string(ctx.expr.variables[i].Bytes))
		ctx.resolved[i] = true
	}
	return ctx.values[i]
}

func evalBool(ctx *evalCtx, id NodeID) (bool, *Error) {
	f := ctx.get(id)
	switch f.Type {
	case FTTrue:
		return true, nil
	case FTFalse:
		return false, nil

	case FTNot:
		return evalNot(ctx, f)
	case FTAnd:
		return evalAnd(ctx, f)
	case FTOr:
		return evalOr(ctx, f)
	case FTExst:
		return evalExst(ctx, f)
	case FTEq:
		return evalEq(ctx, f, false)
	case FTNeq:
		return evalEq(ctx, f, true)
	case FTLt, FTGt, FTLte, FTGte:
		return evalOrder(ctx, f)
	case FTType:
		return evalType(ctx, f)

	default:
		return false, newStateError("field of type %s cannot be evaluated as a boolean expression", f.Type)
	}
}

func evalNot(ctx *evalCtx, f Field) (bool, *Error) {
	v, err := evalBool(ctx, f.Children[0])
	if err != nil {
		return false, err
	}
	return !v, nil
}

func evalAnd(ctx *evalCtx, f Field) (bool, *Error) {
	for _, c := range f.Children {
		v, err := evalBool(ctx, c)
		if err != nil {
			return false, err
		}
		if !v {
			return false, nil
		}
	}
	return true, nil
}

func evalOr(ctx *evalCtx, f Field) (bool, *Error) {
	for _, c := range f.Children {
		v, err := evalBool(ctx, c)
		if err != nil {
			return false, err
		}
		if v {
			return true, nil
		}
	}
	return false, nil
}

// evalExst reports whether every operand refers to a resolved field.
// A VAR that dict leaves unresolved (returns MakeNull() for) makes the
// whole group not exist; literal operands always exist.
func evalExst(ctx *evalCtx, f Field) (bool, *Error) {
	for _, c := range f.Children {
		if ctx.get(c).Type == FTNull {
			return false, nil
		}
	}
	return true, nil
}

func evalType(ctx *evalCtx, f Field) (bool, *Error) {
	tag := ctx.get(f.Children[0])
	if !tag.Type.IsTypeTag() {
		return false, newOpArgTypeError("first operand of %s must be a type tag, got %s", FTType, tag.Type)
	}
	for _, c := range f.Children[1:] {
		matched, err := matchesTag(ctx, c, tag.Type)
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}

func matchesTag(ctx *evalCtx, id NodeID, tag FieldType) (bool, *Error) {
	v, err := resolveValue(ctx, id)
	if err != nil {
		return false, err
	}
	switch tag {
	case FTTPDate:
		return v.Type == FTDate, nil
	case FTTPBool:
		return v.Type == FTTrue || v.Type == FTFalse, nil
	case FTTPNumber:
		return v.Type == FTNumber, nil
	case FTTPString:
		return v.Type == FTString, nil
	default:
		return false, nil
	}
}

// evalEq implements both "=" (neg==false) and "!=" (neg==true). "="
// accepts two or more operands and holds only if all of them compare
// equal to the first; "!=" accepts exactly two and holds when they
// differ.
func evalEq(ctx *evalCtx, f Field, neg bool) (bool, *Error) {
	first, err := resolveValue(ctx, f.Children[0])
	if err != nil {
		return false, err
	}
	allEqual := true
	for _, c := range f.Children[1:] {
		v, err := resolveValue(ctx, c)
		if err != nil {
			return false, err
		}
		eq, err := valuesEqual(first, v)
		if err != nil {
			return false, err
		}
		if !eq {
			allEqual = false
			if !neg {
				break
			}
		}
	}
	if neg {
		return !allEqual, nil
	}
	return allEqual, nil
}

func evalOrder(ctx *evalCtx, f Field) (bool, *Error) {
	a, err := resolveValue(ctx, f.Children[0])
	if err != nil {
		return false, err
	}
	b, err := resolveValue(ctx, f.Children[1])
	if err != nil {
		return false, err
	}
	cmp, err := compareValues(a, b)
	if err != nil {
		return false, err
	}
	switch f.Type {
	case FTLt:
		return cmp < 0, nil
	case FTGt:
		return cmp > 0, nil
	case FTLte:
		return cmp <= 0, nil
	case FTGte:
		return cmp >= 0, nil
	default:
		return false, newStateError("unreachable ordering operator %s", f.Type)
	}
}

// resolveValue returns the leaf field id addresses, evaluating it
// first if it's a boolean sub-expression rather than a literal.
func resolveValue(ctx *evalCtx, id NodeID) (Field, *Error) {
	f := ctx.get(id)
	if f.Type.IsOp() || f.Type == FTTrue || f.Type == FTFalse {
		v, err := evalBool(ctx, id)
		if err != nil {
			return Field{}, err
		}
		return Field{Type: boolFieldType(v)}, nil
	}
	return f, nil
}

func boolFieldType(v bool) FieldType {
	if v {
		return FTTrue
	}
	return FTFalse
}

// valuesEqual compares two already-resolved leaf values. NUMBER
// equality compares the raw IEEE-754 bit pattern rather than the
// numeric value, so +0 and -0 differ and a NaN equals another NaN
// only when their bit patterns are identical, matching this grammar's documented departure from ordinary floating
// point equality. STRING equality requires the same length and
// byte-identical payloads; only ordering (in compareValues) is
// bounded to the shorter operand's length.
func valuesEqual(a, b Field) (bool, *Error) {
	if !sameValueCategory(a.Type, b.Type) {
		return false, newOpArgTypeError("cannot compare %s to %s", a.Type, b.Type)
	}
	switch {
	case isBoolValue(a.Type):
		return a.Type == b.Type, nil
	case a.Type == FTNumber:
		return math.Float64bits(a.Number) == math.Float64bits(b.Number), nil
	case a.Type == FTString:
		return len(a.Bytes) == len(b.Bytes) && bytes.Equal(a.Bytes, b.Bytes), nil
	case a.Type == FTDate:
		return a.DateVal.Equal(b.DateVal), nil
	default:
		return false, newOpArgTypeError("values of type %s cannot be compared", a.Type)
	}
}

// compareValues orders two already-resolved leaf values of the same
// type, returning -1, 0 or 1. STRING ordering compares only the first
// min(len(a), len(b)) bytes with no length tiebreaker, so a string and
// any of its prefixes compare equal ('ab' vs 'abc' gives 0).
func compareValues(a, b Field) (int, *Error) {
	if !sameValueCategory(a.Type, b.Type) {
		return 0, newOpArgTypeError("cannot order %s against %s", a.Type, b.Type)
	}
	switch {
	case a.Type == FTNumber:
		switch {
		case a.Number < b.Number:
			return -1, nil
		case a.Number > b.Number:
			return 1, nil
		default:
			return 0, nil
		}
	case a.Type == FTString:
		n := min(len(a.Bytes), len(b.Bytes))
		return bytes.Compare(a.Bytes[:n], b.Bytes[:n]), nil
	case a.Type == FTDate:
		switch {
		case a.DateVal.Equal(b.DateVal):
			return 0, nil
		case a.DateVal.Less(b.DateVal):
			return -1, nil
		default:
			return 1, nil
		}
	default:
		return 0, newOpArgTypeError("values of type %s cannot be ordered", a.Type)
	}
}

func isBoolValue(t FieldType) bool {
	return t == FTTrue || t == FTFalse
}

func sameValueCategory(a, b FieldType) bool {
	if isBoolValue(a) && isBoolValue(b) {
		return true
	}
	return a == b
}
