package format

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Replicator multiplies the frame, insertion or collection it
// precedes. A static replicator carries its value in N; a dynamic one
// carries expression text, evaluated against the caller's environment
// each time the replicator is consulted.
type Replicator struct {
	N    int
	Expr string
}

// Value evaluates the replicator. A nil replicator is one.
func (r *Replicator) Value(env starlark.StringDict) (int, error) {
	if r == nil {
		return 1, nil
	}
	if r.Expr == "" {
		return r.N, nil
	}

	return Eval(r.Expr, env)
}

// Eval does interpretation-time evaluation of an integer expression
// captured from a format text.
func Eval(expr string, env starlark.StringDict) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "format", prog, env)
	if err != nil {
		return
	}
	rc, ok := dict["rc"]
	if !ok {
		err = ErrExpression(expr)
		return
	}
	st_int, ok := rc.(starlark.Int)
	if !ok {
		err = ErrExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrExpression(expr)
		return
	}
	value = int(st_int64)

	return
}

// EvalText evaluates an expression expected to yield a format text,
// the unit of an embedded-format pattern.
func EvalText(expr string, env starlark.StringDict) (text string, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "format", prog, env)
	if err != nil {
		return
	}
	rc, ok := dict["rc"]
	if !ok {
		err = ErrExpression(expr)
		return
	}
	st_str, ok := rc.(starlark.String)
	if !ok {
		err = ErrExpression(expr)
		return
	}
	text = string(st_str)

	return
}
