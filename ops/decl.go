package ops

import "context"

// Fn is the native entry point of an op. Synchronous ops run on the engine
// turn thread; async ops run on a background goroutine and deliver their
// result back into the turn loop.
type Fn func(ctx context.Context, state *OpState, args []any) (any, error)

// OpDecl describes one native-callable function exposed to script code.
type OpDecl struct {
	Name    string
	Fn      Fn
	Enabled bool
	IsAsync bool

	IsUnstable bool

	// Argc is the script-side argument count. Used as an optimization hint
	// by the async-op bridge; it does not gate dispatch.
	Argc int

	// IsV8 marks ops that use the generic engine-value dispatch path
	// instead of plain exported arguments.
	IsV8 bool

	// FastFn is an optional specialized fast-path entry. When set, the
	// engine may invoke it instead of Fn for synchronous calls.
	FastFn Fn
}

// WithEnabled returns a copy of the declaration with the enabled flag set.
func (d OpDecl) WithEnabled(enabled bool) OpDecl {
	d.Enabled = enabled
	return d
}

// Disable returns a copy of the declaration with the enabled flag cleared.
func (d OpDecl) Disable() OpDecl {
	return d.WithEnabled(false)
}

// Sync declares an enabled synchronous op.
func Sync(name string, argc int, fn Fn) OpDecl {
	return OpDecl{Name: name, Fn: fn, Enabled: true, Argc: argc}
}

// Async declares an enabled asynchronous op.
func Async(name string, argc int, fn Fn) OpDecl {
	return OpDecl{Name: name, Fn: fn, Enabled: true, IsAsync: true, Argc: argc}
}
