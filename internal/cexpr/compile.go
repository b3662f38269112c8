package cexpr

import (
	"fmt"

	"surge/internal/contract"
	"surge/internal/label"
	"surge/internal/sealing"
)

// binding is what Compile remembers about a name introduced by an
// enclosing ForallExpr: the sealing key minted for it, and (for a row
// variable) the field names its prefix already claims.
type binding struct {
	key         sealing.Key
	constraints []string
}

type env map[string]binding

// Compile turns a parsed Expr into a runnable contract.Contract. Every
// `forall` in expr mints one fresh sealing.Key, so compiling the same
// Expr twice produces two contracts with distinct identity — callers
// that need a single contract instance reused across many checks
// should compile once and keep the result.
func Compile(expr Expr) (contract.Contract, error) {
	return compile(expr, env{})
}

func compile(expr Expr, e env) (contract.Contract, error) {
	switch ex := expr.(type) {
	case NameExpr:
		return compileName(ex, e)
	case ArrayExpr:
		elem, err := compile(ex.Elem, e)
		if err != nil {
			return nil, err
		}
		return contract.Array(elem), nil
	case DictExpr:
		elem, err := compile(ex.Elem, e)
		if err != nil {
			return nil, err
		}
		if ex.Eager {
			return contract.DictType(elem), nil
		}
		return contract.DictContract(elem), nil
	case EnumExpr:
		return contract.Enums(ex.Tags...), nil
	case FuncExpr:
		dom, err := compile(ex.Dom, e)
		if err != nil {
			return nil, err
		}
		cod, err := compile(ex.Cod, e)
		if err != nil {
			return nil, err
		}
		return contract.Func(dom, cod), nil
	case RecordExpr:
		return compileRecord(ex, e)
	case ForallExpr:
		return compileForall(ex, e)
	default:
		return nil, fmt.Errorf("cexpr: unhandled expression %T", expr)
	}
}

func compileName(ex NameExpr, e env) (contract.Contract, error) {
	switch ex.Name {
	case "Dyn":
		return contract.Dyn, nil
	case "Number":
		return contract.Num, nil
	case "Bool":
		return contract.Bool, nil
	case "String":
		return contract.String, nil
	default:
		b, ok := e[ex.Name]
		if !ok {
			return nil, fmt.Errorf("cexpr: undefined variable %q", ex.Name)
		}
		return contract.ForallVar(b.key), nil
	}
}

func compileRecord(ex RecordExpr, e env) (contract.Contract, error) {
	fields := make([]contract.FieldSpec, len(ex.Fields))
	for i, f := range ex.Fields {
		c, err := compile(f.Type, e)
		if err != nil {
			return nil, err
		}
		fields[i] = contract.FieldSpec{Name: f.Name, Contract: c}
	}

	var tail contract.TailContract
	switch ex.Tail.Kind {
	case "empty":
		tail = contract.EmptyTail
	case "dyn":
		tail = contract.DynTail
	case "var":
		b, ok := e[ex.Tail.Var]
		if !ok {
			return nil, fmt.Errorf("cexpr: undefined row variable %q", ex.Tail.Var)
		}
		tail = contract.ForallTail(b.key, label.Positive, ex.Tail.Var, b.constraints)
	default:
		return nil, fmt.Errorf("cexpr: unknown tail kind %q", ex.Tail.Kind)
	}
	return contract.Record(fields, tail), nil
}

func compileForall(ex ForallExpr, e env) (contract.Contract, error) {
	key := sealing.FreshKey()
	inner := make(env, len(e)+1)
	for k, v := range e {
		inner[k] = v
	}
	inner[ex.Var] = binding{key: key, constraints: ex.Constraints}
	body, err := compile(ex.Body, inner)
	if err != nil {
		return nil, err
	}
	return contract.Forall(key, label.Positive, body), nil
}
