package extension

import (
	"fmt"

	"github.com/ExProbitasFiducia/deno/errors"
	"github.com/ExProbitasFiducia/deno/ops"
)

// FileSource is a namespaced, immutable script source record.
type FileSource struct {
	Specifier string
	Code      string
}

// StateFn sets up the initial op state of an engine instance at startup.
type StateFn func(state *ops.OpState) error

// MiddlewareFn transforms op declarations before registration. A middleware
// observes the declared op list, before the enabled mask is applied.
type MiddlewareFn func(decl ops.OpDecl) ops.OpDecl

// EventLoopFn is polled once per engine turn and reports whether the
// extension still has pending work. It must return in bounded time; a hook
// that never reports false keeps the process from reaching idle.
type EventLoopFn func(state *ops.OpState) bool

// Extension is an immutable bundle of bootstrap scripts, ES-module sources,
// op declarations, lifecycle hooks, and declared dependency names. Build one
// with a Builder.
type Extension struct {
	name        string
	jsFiles     []FileSource
	esmFiles    []FileSource
	ops         []ops.OpDecl
	stateFn     StateFn
	middleware  MiddlewareFn
	eventLoop   EventLoopFn
	deps        []string
	enabled     bool
	initialized bool
}

// Name returns the extension's unique, process-lifetime name.
func (e *Extension) Name() string { return e.name }

// Enabled reports whether the extension is enabled.
func (e *Extension) Enabled() bool { return e.enabled }

// Initialized reports whether op initialization has already run.
func (e *Extension) Initialized() bool { return e.initialized }

// Deps returns the declared dependency names in declaration order.
func (e *Extension) Deps() []string { return e.deps }

// JSSources returns the bootstrap-script sources to be executed at engine
// startup or snapshotting, in declaration order.
func (e *Extension) JSSources() []FileSource { return e.jsFiles }

// ESMSources returns the ES-module sources, in declaration order.
func (e *Extension) ESMSources() []FileSource { return e.esmFiles }

// OpCount returns the number of declared ops. The declarations themselves
// are drained by InitOps.
func (e *Extension) OpCount() int { return len(e.ops) }

// WithEnabled returns the extension with the enabled flag set. The flag is
// folded into every op's effective enabled state during initialization.
func (e *Extension) WithEnabled(enabled bool) *Extension {
	e.enabled = enabled
	return e
}

// Disable clears the enabled flag.
func (e *Extension) Disable() *Extension {
	return e.WithEnabled(false)
}

// CheckDependencies validates this extension against the extensions loaded
// before it. A dependency naming the extension itself is a SelfDependency
// defect; a dependency not present among previous is a MissingDependency
// defect. Both poison the composition via panic.
func (e *Extension) CheckDependencies(previous []*Extension) {
depLoop:
	for _, dep := range e.deps {
		if dep == e.name {
			errors.Violate(errors.SelfDependency(e.name))
		}
		for _, prev := range previous {
			if dep == prev.name {
				continue depLoop
			}
		}
		errors.Violate(errors.MissingDependency(e.name, dep))
	}
}

// InitOps drains the op declarations, folding the extension's enabled flag
// into each op's effective enabled state. Calling it twice on the same
// extension is a fatal defect: the one-shot contract was violated by the
// caller, and there is no correct way to continue.
func (e *Extension) InitOps() []ops.OpDecl {
	if e.initialized {
		errors.Violate(errors.DoubleInit(e.name))
	}
	e.initialized = true

	decls := e.ops
	e.ops = nil
	for i := range decls {
		decls[i].Enabled = e.enabled && decls[i].Enabled
	}
	return decls
}

// InitState runs the state hook with exclusive access to the shared state
// container. Absence of a hook is a no-op success.
func (e *Extension) InitState(state *ops.OpState) error {
	if e.stateFn == nil {
		return nil
	}
	if err := e.stateFn(state); err != nil {
		return errors.StateInit(e.name, err)
	}
	return nil
}

// TakeMiddleware consumes the middleware hook. The slot is emptied; each
// middleware runs exactly once across the whole composition.
func (e *Extension) TakeMiddleware() MiddlewareFn {
	fn := e.middleware
	e.middleware = nil
	return fn
}

// TakeEventLoop consumes the event-loop hook.
func (e *Extension) TakeEventLoop() EventLoopFn {
	fn := e.eventLoop
	e.eventLoop = nil
	return fn
}

func (e *Extension) String() string {
	return fmt.Sprintf("extension %q (%d js, %d esm, %d ops)",
		e.name, len(e.jsFiles), len(e.esmFiles), len(e.ops))
}
