package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/ExProbitasFiducia/deno/errors"
	"github.com/ExProbitasFiducia/deno/extension"
	"github.com/ExProbitasFiducia/deno/ops"
)

// Option configures engine creation.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithTurnInterval sets how often the turn loop re-polls event-loop hooks
// when no op completion is ready. Default 1ms.
func WithTurnInterval(d time.Duration) Option {
	return func(e *Engine) { e.turnInterval = d }
}

// Engine is one embedded script-engine instance: a VM, the shared op state,
// the bound op table, and the turn loop. Not safe for concurrent use; the
// turn loop is the single thread that touches the VM once Run starts.
type Engine struct {
	vm           *goja.Runtime
	state        *ops.OpState
	log          *zap.Logger
	opsObj       *goja.Object
	opTable      []ops.OpDecl
	hooks        []extension.EventLoopHook
	completions  chan func()
	inflight     atomic.Int64
	sources      []extension.FileSource
	installed    bool
	turnInterval time.Duration
	runCtx       context.Context
}

// New creates an empty engine. Install extensions before executing scripts.
func New(opts ...Option) *Engine {
	e := &Engine{
		vm:           goja.New(),
		state:        ops.NewState(),
		log:          Logger(),
		completions:  make(chan func(), 256),
		turnInterval: time.Millisecond,
		runCtx:       context.Background(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.initGlobals()
	return e
}

func (e *Engine) initGlobals() {
	deno := e.vm.NewObject()
	core := e.vm.NewObject()
	e.opsObj = e.vm.NewObject()
	_ = core.Set("ops", e.opsObj)
	_ = deno.Set("core", core)
	_ = e.vm.Set("Deno", deno)
}

// State returns the shared op state container.
func (e *Engine) State() *ops.OpState { return e.state }

// OpTable returns the effective op declarations bound into this instance.
func (e *Engine) OpTable() []ops.OpDecl { return e.opTable }

// Sources returns the executed extension sources in execution order.
func (e *Engine) Sources() []extension.FileSource { return e.sources }

// Install composes the given extensions, in the given order, into this
// engine: ops are bound under Deno.core.ops, sources execute under their
// internal: specifiers, event-loop hooks register with the turn loop.
// The op set is fixed afterwards; a second Install is a contract violation.
func (e *Engine) Install(exts ...*extension.Extension) error {
	if e.installed {
		errors.Violate(errors.New(errors.PhaseInit, errors.KindDoubleInit).
			Detail("engine already composed: the op set is immutable after installation").Build())
	}

	comp, err := extension.NewComposer(exts...).Compose(e.state)
	if err != nil {
		return err
	}

	for _, decl := range comp.Ops {
		e.bindOp(decl)
	}
	e.opTable = comp.Ops
	e.hooks = comp.EventLoopHooks
	e.installed = true

	for _, src := range comp.JSSources {
		if _, err := e.Execute(src.Specifier, src.Code); err != nil {
			return err
		}
		e.sources = append(e.sources, src)
	}
	for _, src := range comp.ESMSources {
		if _, err := e.Execute(src.Specifier, src.Code); err != nil {
			return err
		}
		e.sources = append(e.sources, src)
	}

	e.log.Debug("engine composed",
		zap.Int("extensions", len(exts)),
		zap.Int("ops", len(comp.Ops)),
		zap.Int("sources", len(e.sources)),
		zap.Int("event_loop_hooks", len(e.hooks)))
	return nil
}

// Execute runs a script under the given specifier. Failures surface as
// catchable *errors.Error values, never panics.
func (e *Engine) Execute(specifier, code string) (goja.Value, error) {
	v, err := e.vm.RunScript(specifier, code)
	if err != nil {
		return nil, errors.ScriptFailed(specifier, err)
	}
	return v, nil
}

// ExecuteBootstrap runs a designated bootstrap entry and records it in the
// executed-source registry, so it is baked into captured heap images.
func (e *Engine) ExecuteBootstrap(src extension.FileSource) error {
	if _, err := e.Execute(src.Specifier, src.Code); err != nil {
		return err
	}
	e.sources = append(e.sources, src)
	return nil
}

// Run drives the cooperative turn loop: drain async op completions, then
// poll each event-loop hook once per turn. Returns nil when idle (no hook
// pending, no op in flight), or ctx.Err() on cancellation. Teardown is
// cancellation; hooks receive no separate signal.
func (e *Engine) Run(ctx context.Context) error {
	e.runCtx = ctx
	defer func() { e.runCtx = context.Background() }()

	ticker := time.NewTicker(e.turnInterval)
	defer ticker.Stop()

	for {
		// Deliver every completion that is already queued before polling.
	drain:
		for {
			select {
			case fn := <-e.completions:
				fn()
			default:
				break drain
			}
		}

		pending := false
		for _, h := range e.hooks {
			if h.Poll(e.state) {
				pending = true
			}
		}

		if !pending && e.inflight.Load() == 0 && len(e.completions) == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-e.completions:
			fn()
		case <-ticker.C:
		}
	}
}

func (e *Engine) bindOp(decl ops.OpDecl) {
	name := decl.Name

	if !decl.Enabled {
		// Disabled ops keep their binding so the name resolves, and throw a
		// named failure when called.
		_ = e.opsObj.Set(name, func(call goja.FunctionCall) goja.Value {
			panic(e.vm.NewGoError(errors.OpDisabled(name)))
		})
		return
	}

	if decl.IsAsync {
		e.bindAsyncOp(decl)
		return
	}

	fn := decl.Fn
	if decl.FastFn != nil {
		fn = decl.FastFn
	}
	_ = e.opsObj.Set(name, func(call goja.FunctionCall) goja.Value {
		res, err := fn(e.runCtx, e.state, exportArgs(call))
		if err != nil {
			panic(e.vm.NewGoError(err))
		}
		return e.vm.ToValue(res)
	})
}

func (e *Engine) bindAsyncOp(decl ops.OpDecl) {
	_ = e.opsObj.Set(decl.Name, func(call goja.FunctionCall) goja.Value {
		args := exportArgs(call)
		promise, resolve, reject := e.vm.NewPromise()
		e.inflight.Add(1)
		go func() {
			res, err := decl.Fn(e.runCtx, e.state, args)
			// Results re-enter the turn loop; nothing here may touch the VM.
			e.completions <- func() {
				defer e.inflight.Add(-1)
				if err != nil {
					reject(err.Error())
				} else {
					resolve(res)
				}
			}
		}()
		return e.vm.ToValue(promise)
	})
}

func exportArgs(call goja.FunctionCall) []any {
	args := make([]any, len(call.Arguments))
	for i, arg := range call.Arguments {
		args[i] = arg.Export()
	}
	return args
}

// InstalledLibs returns the library names the bootstrap recorded in the VM,
// or nil when no library bootstrap has run.
func (e *Engine) InstalledLibs() []string {
	v := e.vm.GlobalObject().Get("__installedLibs")
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	switch exported := v.Export().(type) {
	case []string:
		// A restored image carries the list as a native slice.
		return exported
	case []any:
		libs := make([]string, 0, len(exported))
		for _, item := range exported {
			if s, ok := item.(string); ok {
				libs = append(libs, s)
			}
		}
		return libs
	}
	return nil
}
