package extension

import (
	"testing"

	"github.com/ExProbitasFiducia/deno/errors"
	"github.com/ExProbitasFiducia/deno/ops"
)

func TestCompose_OrderIsCallerOwned(t *testing.T) {
	build := func() (core, web *Extension) {
		core = NewBuilder("core").Build()
		web = NewBuilder("web").Dependencies("core").Build()
		return core, web
	}

	t.Run("dependency later in list fails", func(t *testing.T) {
		core, web := build()
		expectViolation(t, errors.KindMissingDependency, func() {
			NewComposer(web, core).Compose(ops.NewState())
		})
	})

	t.Run("moving the dependency earlier makes the same list pass", func(t *testing.T) {
		core, web := build()
		if _, err := NewComposer(core, web).Compose(ops.NewState()); err != nil {
			t.Fatalf("Compose failed: %v", err)
		}
	})
}

func TestCompose_OpsAndMask(t *testing.T) {
	enabled := NewBuilder("a").Ops(nopOp("op_a1"), nopOp("op_a2").Disable()).Build()
	disabled := NewBuilder("b").Ops(nopOp("op_b1")).Build().Disable()

	comp, err := NewComposer(enabled, disabled).Compose(ops.NewState())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	want := map[string]bool{"op_a1": true, "op_a2": false, "op_b1": false}
	if len(comp.Ops) != len(want) {
		t.Fatalf("Expected %d ops, got %d", len(want), len(comp.Ops))
	}
	for _, decl := range comp.Ops {
		if decl.Enabled != want[decl.Name] {
			t.Errorf("%s: effective enabled = %v, want %v", decl.Name, decl.Enabled, want[decl.Name])
		}
	}
}

func TestCompose_MiddlewareRunsOnceOverAllOps(t *testing.T) {
	var observed []string
	mw := func(d ops.OpDecl) ops.OpDecl {
		observed = append(observed, d.Name)
		d.IsUnstable = true
		return d
	}

	a := NewBuilder("a").Ops(nopOp("op_a")).Middleware(mw).Build()
	b := NewBuilder("b").Ops(nopOp("op_b1"), nopOp("op_b2")).Build()

	comp, err := NewComposer(a, b).Compose(ops.NewState())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	// One middleware, three visible ops: exactly one observation each.
	if len(observed) != 3 {
		t.Fatalf("Middleware observed %d ops, want 3: %v", len(observed), observed)
	}
	for _, decl := range comp.Ops {
		if !decl.IsUnstable {
			t.Errorf("%s not transformed by middleware", decl.Name)
		}
	}
	if a.TakeMiddleware() != nil {
		t.Fatal("Middleware must be consumed during composition")
	}
}

func TestCompose_MiddlewareObservesPreMaskFlags(t *testing.T) {
	var sawEnabled []bool
	mw := func(d ops.OpDecl) ops.OpDecl {
		sawEnabled = append(sawEnabled, d.Enabled)
		return d
	}

	// The extension is disabled; the mask will turn its op off. Middleware
	// runs first and must still observe the declared flag.
	ext := NewBuilder("masked").Ops(nopOp("op_m")).Middleware(mw).Build().Disable()

	comp, err := NewComposer(ext).Compose(ops.NewState())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if len(sawEnabled) != 1 || !sawEnabled[0] {
		t.Fatalf("Middleware saw %v, want the pre-mask declared flag (true)", sawEnabled)
	}
	if comp.Ops[0].Enabled {
		t.Fatal("Mask must still apply after middleware")
	}
}

func TestCompose_StateHooksRunInOrder(t *testing.T) {
	var order []string
	mk := func(name string) *Extension {
		return NewBuilder(name).State(func(s *ops.OpState) error {
			order = append(order, name)
			return nil
		}).Build()
	}

	if _, err := NewComposer(mk("one"), mk("two"), mk("three")).Compose(ops.NewState()); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if len(order) != 3 || order[0] != "one" || order[1] != "two" || order[2] != "three" {
		t.Fatalf("State hooks ran out of order: %v", order)
	}
}

func TestCompose_EventLoopHooks(t *testing.T) {
	withHook := NewBuilder("timers").
		EventLoopMiddleware(func(*ops.OpState) bool { return false }).
		Build()
	without := NewBuilder("plain").Build()

	comp, err := NewComposer(without, withHook).Compose(ops.NewState())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if len(comp.EventLoopHooks) != 1 {
		t.Fatalf("Expected 1 hook, got %d", len(comp.EventLoopHooks))
	}
	if comp.EventLoopHooks[0].Extension != "timers" {
		t.Fatalf("Hook attributed to %q", comp.EventLoopHooks[0].Extension)
	}
	if withHook.TakeEventLoop() != nil {
		t.Fatal("Event-loop hook must be consumed during composition")
	}
}

func TestCompose_SourceOrder(t *testing.T) {
	a := NewBuilder("a").
		JS(FileSource{Specifier: "01.js", Code: "1"}).
		ESM(FileSource{Specifier: "mod_a.js", Code: "ma"}).
		Build()
	b := NewBuilder("b").
		JS(FileSource{Specifier: "01.js", Code: "2"}).
		Build()

	comp, err := NewComposer(a, b).Compose(ops.NewState())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	wantJS := []string{"internal:a/01.js", "internal:b/01.js"}
	if len(comp.JSSources) != 2 {
		t.Fatalf("Expected 2 js sources, got %d", len(comp.JSSources))
	}
	for i, want := range wantJS {
		if comp.JSSources[i].Specifier != want {
			t.Errorf("js[%d] = %q, want %q", i, comp.JSSources[i].Specifier, want)
		}
	}
	if len(comp.ESMSources) != 1 || comp.ESMSources[0].Specifier != "internal:a/mod_a.js" {
		t.Fatalf("Unexpected esm sources: %v", comp.ESMSources)
	}
}

func TestCompose_Phases(t *testing.T) {
	c := NewComposer(NewBuilder("only").Build())
	if c.Phase() != PhaseUnvalidated {
		t.Fatalf("New composer phase = %s", c.Phase())
	}
	if _, err := c.Compose(ops.NewState()); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if c.Phase() != PhaseRunning {
		t.Fatalf("Composed phase = %s, want running", c.Phase())
	}
}

func TestCompose_ReentryIsFatal(t *testing.T) {
	c := NewComposer(NewBuilder("only").Build())
	if _, err := c.Compose(ops.NewState()); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	expectViolation(t, errors.KindDoubleInit, func() {
		c.Compose(ops.NewState())
	})
}

func TestCompose_ViolationPoisons(t *testing.T) {
	web := NewBuilder("web").Dependencies("core").Build()
	c := NewComposer(web)

	func() {
		defer func() { recover() }()
		c.Compose(ops.NewState())
	}()

	if c.Phase() != PhasePoisoned {
		t.Fatalf("Phase after violation = %s, want poisoned", c.Phase())
	}

	// Anything attempted from the poisoned state is itself fatal.
	expectViolation(t, errors.KindPoisoned, func() {
		c.Compose(ops.NewState())
	})
}
