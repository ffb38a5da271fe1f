package extension

import (
	"github.com/ExProbitasFiducia/deno/errors"
	"github.com/ExProbitasFiducia/deno/ops"
)

// Phase is a state of the initialization protocol. Phases are strictly
// sequential; there is no branching and no re-entry.
type Phase int

const (
	PhaseUnvalidated Phase = iota
	PhaseDepsValidated
	PhaseMiddlewareApplied
	PhaseOpsInitialized
	PhaseStateInitialized
	PhaseEventLoopHooked
	PhaseRunning

	// PhasePoisoned is terminal. Any contract violation lands here, and any
	// operation attempted from here is itself a fatal error.
	PhasePoisoned
)

func (p Phase) String() string {
	switch p {
	case PhaseUnvalidated:
		return "unvalidated"
	case PhaseDepsValidated:
		return "deps_validated"
	case PhaseMiddlewareApplied:
		return "middleware_applied"
	case PhaseOpsInitialized:
		return "ops_initialized"
	case PhaseStateInitialized:
		return "state_initialized"
	case PhaseEventLoopHooked:
		return "event_loop_hooked"
	case PhaseRunning:
		return "running"
	case PhasePoisoned:
		return "poisoned"
	}
	return "unknown"
}

// EventLoopHook pairs a consumed event-loop middleware with the extension
// that contributed it.
type EventLoopHook struct {
	Extension string
	Poll      EventLoopFn
}

// Composition is the product of a successful Compose: the effective op set,
// the registered event-loop hooks, and every script source in execution
// order (bootstrap scripts of all extensions first, then module sources).
type Composition struct {
	Ops            []ops.OpDecl
	EventLoopHooks []EventLoopHook
	JSSources      []FileSource
	ESMSources     []FileSource
}

// Composer drives an ordered list of Extensions through the initialization
// protocol. The order is the caller's; the composer validates it and never
// reorders. A Composer is single-use: composition runs once, synchronously,
// strictly before the engine executes arbitrary script code.
type Composer struct {
	exts  []*Extension
	phase Phase
}

// NewComposer creates a composer over the given extensions, in the given
// order.
func NewComposer(exts ...*Extension) *Composer {
	return &Composer{exts: exts}
}

// Phase returns the composer's current protocol phase.
func (c *Composer) Phase() Phase { return c.phase }

// Extensions returns the composed extensions in caller order.
func (c *Composer) Extensions() []*Extension { return c.exts }

// Compose runs the full protocol over the composition:
//
//  1. dependency validation, a linear scan against caller order
//  2. middleware application: every extension's middleware hook is consumed
//     and applied once to every op declared in the composition
//  3. op initialization: each extension's declarations are drained and each
//     op's effective enabled flag becomes extension.enabled && op.Enabled
//  4. state initialization with exclusive access to the shared container
//  5. event-loop hook registration
//
// Middleware deliberately runs before the enabled mask: a middleware
// observes declared flags and its output is what the mask is applied to, so
// a middleware can still force an op on or off. Violations of the one-shot
// or ordering contracts poison the composer and panic with a
// ContractViolation; a state hook failure is an ordinary error.
func (c *Composer) Compose(state *ops.OpState) (comp *Composition, err error) {
	switch c.phase {
	case PhaseUnvalidated:
	case PhasePoisoned:
		errors.Violate(errors.Poisoned("Compose"))
	default:
		c.phase = PhasePoisoned
		errors.Violate(errors.New(errors.PhaseCompose, errors.KindDoubleInit).
			Detail("Compose called twice on one composer").Build())
	}

	defer func() {
		if r := recover(); r != nil {
			c.phase = PhasePoisoned
			panic(r)
		}
	}()

	for i, ext := range c.exts {
		ext.CheckDependencies(c.exts[:i])
	}
	c.phase = PhaseDepsValidated

	for _, ext := range c.exts {
		mw := ext.TakeMiddleware()
		if mw == nil {
			continue
		}
		for _, target := range c.exts {
			target.applyMiddleware(mw)
		}
	}
	c.phase = PhaseMiddlewareApplied

	comp = &Composition{}
	for _, ext := range c.exts {
		comp.Ops = append(comp.Ops, ext.InitOps()...)
	}
	c.phase = PhaseOpsInitialized

	for _, ext := range c.exts {
		if err := ext.InitState(state); err != nil {
			return nil, err
		}
	}
	c.phase = PhaseStateInitialized

	for _, ext := range c.exts {
		if poll := ext.TakeEventLoop(); poll != nil {
			comp.EventLoopHooks = append(comp.EventLoopHooks, EventLoopHook{
				Extension: ext.Name(),
				Poll:      poll,
			})
		}
	}
	c.phase = PhaseEventLoopHooked

	for _, ext := range c.exts {
		comp.JSSources = append(comp.JSSources, ext.JSSources()...)
	}
	for _, ext := range c.exts {
		comp.ESMSources = append(comp.ESMSources, ext.ESMSources()...)
	}
	c.phase = PhaseRunning

	return comp, nil
}

// applyMiddleware rewrites every still-declared op through fn. Runs before
// InitOps drains the list, so middleware observes pre-mask declarations.
func (e *Extension) applyMiddleware(fn MiddlewareFn) {
	for i := range e.ops {
		e.ops[i] = fn(e.ops[i])
	}
}
