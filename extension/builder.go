package extension

import (
	"fmt"

	"github.com/ExProbitasFiducia/deno/ops"
)

// Builder accumulates the contents of an Extension across repeated calls.
// Build moves the accumulated contents into a fresh Extension and resets the
// builder, so one builder can produce multiple distinct Extensions.
type Builder struct {
	name      string
	js        []FileSource
	esm       []FileSource
	ops       []ops.OpDecl
	deps      []string
	stateFn   StateFn
	middle    MiddlewareFn
	eventLoop EventLoopFn
}

// NewBuilder starts building an extension with the given name. The name
// prefixes every contributed file specifier.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Dependencies appends declared dependency names.
func (b *Builder) Dependencies(names ...string) *Builder {
	b.deps = append(b.deps, names...)
	return b
}

// JS appends bootstrap-script sources. Each specifier is rewritten to
// "internal:<name>/<specifier>" before storage.
func (b *Builder) JS(files ...FileSource) *Builder {
	for _, f := range files {
		b.js = append(b.js, FileSource{
			Specifier: b.namespace(f.Specifier),
			Code:      f.Code,
		})
	}
	return b
}

// ESM appends ES-module sources, namespaced like JS.
func (b *Builder) ESM(files ...FileSource) *Builder {
	for _, f := range files {
		b.esm = append(b.esm, FileSource{
			Specifier: b.namespace(f.Specifier),
			Code:      f.Code,
		})
	}
	return b
}

// Ops appends op declarations.
func (b *Builder) Ops(decls ...ops.OpDecl) *Builder {
	b.ops = append(b.ops, decls...)
	return b
}

// State sets the state-initialization hook. A later call overwrites.
func (b *Builder) State(fn StateFn) *Builder {
	b.stateFn = fn
	return b
}

// Middleware sets the op-middleware hook. A later call overwrites.
func (b *Builder) Middleware(fn MiddlewareFn) *Builder {
	b.middle = fn
	return b
}

// EventLoopMiddleware sets the per-turn event-loop hook. A later call
// overwrites.
func (b *Builder) EventLoopMiddleware(fn EventLoopFn) *Builder {
	b.eventLoop = fn
	return b
}

// Build drains every accumulated list and hook into a new Extension with
// enabled=true and initialized=false. The accumulators are emptied, not
// copied: building again yields only content added since this call.
func (b *Builder) Build() *Extension {
	ext := &Extension{
		name:        b.name,
		jsFiles:     b.js,
		esmFiles:    b.esm,
		ops:         b.ops,
		deps:        b.deps,
		stateFn:     b.stateFn,
		middleware:  b.middle,
		eventLoop:   b.eventLoop,
		enabled:     true,
		initialized: false,
	}
	b.js = nil
	b.esm = nil
	b.ops = nil
	b.deps = nil
	b.stateFn = nil
	b.middle = nil
	b.eventLoop = nil
	return ext
}

func (b *Builder) namespace(specifier string) string {
	return fmt.Sprintf("internal:%s/%s", b.name, specifier)
}
