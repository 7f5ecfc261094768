// Copyright 2025, the transput authors.

// Package bench is a scriptable test bench for the transput runtime:
// a Starlark environment whose builtins open documents and move
// values through them.
//
// A script drives one Runtime:
//
//	f = associate("")
//	put(f, 42, newline)
//	reset(f)
//	i = get(f, "int")
//
// Reading builtins name the modes they expect ("int", "real", "bool",
// "char", "string", "bits", "compl" and the long variants); writing
// builtins take script values, with a two-number tuple standing for a
// COMPL item. In putf, getf, writef and readf an argument string
// opening with '$' is compiled as a format text. Layout passes under
// the names newline, newpage, space and backspace.
//
// The print builtin writes its line to stand error. Globals a chunk
// leaves behind stay in scope for later chunks and join the
// environment dynamic replicators and embedded formats are evaluated
// against; define binds such a name mid-chunk, and defines() hands
// back the environment enquiries as a dict.
package bench

import (
	"log"
	"maps"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/NevilleDNZ/a68/transput"
)

// Bench owns a transput runtime and the Starlark environment driving
// it.
type Bench struct {
	Verbose bool
	Runtime *transput.Runtime

	thread  *starlark.Thread
	env     starlark.StringDict // builtin names
	globals starlark.StringDict // survivors of the chunks run so far
}

// New builds a bench around a fresh runtime.
func New(config transput.Config) (b *Bench, err error) {
	b = &Bench{Verbose: config.Verbose}

	b.Runtime, err = transput.New(config)
	if err != nil {
		return
	}

	b.thread = &starlark.Thread{
		Name: "bench",
		Print: func(_ *starlark.Thread, msg string) {
			if e := b.Runtime.StandError.Put(msg, transput.NewLine); e != nil {
				log.Printf("bench: print: %v", e)
			}
		},
	}
	b.env = b.builtins()
	b.globals = starlark.StringDict{}

	return
}

// Close closes the runtime under the bench.
func (b *Bench) Close() (err error) {
	return b.Runtime.Close()
}

// Run executes a script. src is a string, a []byte or an io.Reader;
// name labels it in tracebacks.
func (b *Bench) Run(name string, src any) (err error) {
	if b.Verbose {
		log.Printf("bench: run %v", name)
	}

	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, b.thread, name, src, b.scope())
	if err != nil {
		return
	}

	b.keep(globals)
	return
}

// Interact executes one line of dialogue. An expression answers with
// its value's spelling; a statement answers nothing and its bindings
// stay.
func (b *Bench) Interact(line string) (out string, err error) {
	opts := syntax.FileOptions{}

	if expr, perr := opts.ParseExpr("<stdin>", line, 0); perr == nil {
		var value starlark.Value
		value, err = starlark.EvalExprOptions(&opts, b.thread, expr, b.scope())
		if err != nil || value == starlark.None {
			return
		}
		out = value.String()
		return
	}

	globals, err := starlark.ExecFileOptions(&opts, b.thread, "<stdin>", line, b.scope())
	if err != nil {
		return
	}

	b.keep(globals)
	return
}

// Global returns a name bound by the chunks run so far.
func (b *Bench) Global(name string) (value starlark.Value, ok bool) {
	value, ok = b.globals[name]
	return
}

// scope is the name space of the next chunk.
func (b *Bench) scope() starlark.StringDict {
	env := make(starlark.StringDict, len(b.env)+len(b.globals))
	maps.Copy(env, b.env)
	maps.Copy(env, b.globals)
	return env
}

// keep carries chunk globals forward, and into the environment format
// expressions see.
func (b *Bench) keep(globals starlark.StringDict) {
	maps.Copy(b.globals, globals)
	maps.Copy(b.Runtime.Environ, globals)
}
