// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package filter

// Expr is one side of a comparison: either a path into the resource being filtered, or a
// literal parameter. Exactly one of Path/Parameter is set.
type Expr struct {
	Path      QueryPath
	Parameter *Parameter
}

// PathExpr wraps a QueryPath as an Expr.
func PathExpr(p QueryPath) *Expr { return &Expr{Path: p} }

// ParamExpr wraps a Parameter as an Expr.
func ParamExpr(p Parameter) *Expr { return &Expr{Parameter: &p} }

// expectedType returns the type this side of a comparison is typed against, or Any if the
// side carries a bare parameter with no path to coerce against.
func (e *Expr) expectedType() ParamType {
	if e == nil || e.Path == nil {
		return Any
	}
	return e.Path.ExpectedType()
}
